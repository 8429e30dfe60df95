// Package adversary classifies text against typed attack patterns:
// prompt injection, jailbreak, information extraction, data poisoning,
// and code injection. A positive verdict carries the primary attack type,
// a match-count-derived confidence, and every matched rule, and is
// persisted synchronously when an event sink is configured.
package adversary
