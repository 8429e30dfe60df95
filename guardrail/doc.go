// Package guardrail scans model inputs and outputs against an ordered set
// of tagged patterns: prompt injection, PII, sensitive terms, system
// information exposure, and financial-regulation phrasing. Scans report
// every matching rule, produce a sanitized copy of the text, and decide
// blocking asymmetrically: inputs block at HIGH severity and above, outputs
// only at CRITICAL.
package guardrail
