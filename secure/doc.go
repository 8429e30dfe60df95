// Package secure orchestrates guarded model calls. Each call flows through
// input guardrails, adversarial analysis, the model itself behind a security
// preamble, and output guardrails, and ends with a single audit event.
// Blocked calls return a safe refusal without ever reaching the model.
package secure
