package adversary

import (
	"regexp"

	"github.com/poiesic/rampart/core"
)

// AttackRule is one tagged pattern in the adversarial rule set. Unlike
// guardrail rules, attack rules never sanitize; a match is evidence for
// the analysis verdict.
type AttackRule struct {
	Id       string
	Pattern  *regexp.Regexp
	Type     core.AttackType
	Severity core.Severity
	Message  string
}

// DefaultAttackRules returns the built-in adversarial rule set.
func DefaultAttackRules() []AttackRule {
	return []AttackRule{
		// Prompt injection: attempts to override or displace instructions.
		{
			Id:       "atk-inj-override",
			Pattern:  regexp.MustCompile(`(?i)(ignore|disregard|forget|override)\s+(all\s+|any\s+)?(previous|prior|above|earlier|system)\s+(instructions?|prompts?|rules?|context)`),
			Type:     core.AttackPromptInjection,
			Severity: core.SeverityCritical,
			Message:  "instruction override phrasing",
		},
		{
			Id:       "atk-inj-delimiter",
			Pattern:  regexp.MustCompile(`(?i)(---+\s*end\s+of\s+(system\s+)?(prompt|instructions?)|</?(system|assistant)>|\[/?INST\])`),
			Type:     core.AttackPromptInjection,
			Severity: core.SeverityHigh,
			Message:  "prompt delimiter forgery",
		},
		{
			Id:       "atk-inj-override-ko",
			Pattern:  regexp.MustCompile(`(이전|위의?|기존|시스템)\s*(지시|지침|명령|프롬프트)(사항)?\s*(을|를)?\s*(무시|잊|거부)`),
			Type:     core.AttackPromptInjection,
			Severity: core.SeverityCritical,
			Message:  "instruction override phrasing",
		},

		// Jailbreak: attempts to bypass policy constraints.
		{
			Id:       "atk-jb-persona",
			Pattern:  regexp.MustCompile(`(?i)(\bDAN\b|do\s+anything\s+now|developer\s+mode|jailbreak|no\s+(ethical|moral)\s+(guidelines?|restrictions?)|without\s+(any\s+)?(restrictions?|limitations?|filters?))`),
			Type:     core.AttackJailbreak,
			Severity: core.SeverityHigh,
			Message:  "jailbreak persona phrasing",
		},
		{
			Id:       "atk-jb-roleplay",
			Pattern:  regexp.MustCompile(`(?i)(pretend\s+(you\s+are|to\s+be)\s+(an?\s+)?(unrestricted|uncensored)|hypothetically,?\s+if\s+you\s+had\s+no\s+rules|탈옥)`),
			Type:     core.AttackJailbreak,
			Severity: core.SeverityHigh,
			Message:  "jailbreak roleplay phrasing",
		},

		// Information extraction: attempts to exfiltrate internals.
		{
			Id:       "atk-ext-system",
			Pattern:  regexp.MustCompile(`(?i)(reveal|show|print|repeat|leak|dump)\s+(your\s+|the\s+)?(system\s+prompt|initial\s+instructions?|hidden\s+(rules?|instructions?)|training\s+data|internal\s+config)`),
			Type:     core.AttackInformationExtraction,
			Severity: core.SeverityHigh,
			Message:  "internal information request",
		},
		{
			Id:       "atk-ext-credentials",
			Pattern:  regexp.MustCompile(`(?i)(what\s+is|give\s+me|tell\s+me)\s+(your\s+|the\s+)?(api[\s_-]?key|password|secret|access\s+token)`),
			Type:     core.AttackInformationExtraction,
			Severity: core.SeverityHigh,
			Message:  "credential extraction request",
		},

		// Data poisoning: attempts to plant false authority in context.
		{
			Id:       "atk-poison-authority",
			Pattern:  regexp.MustCompile(`(?i)(the\s+following\s+is\s+(a\s+)?verified\s+fact|remember\s+this\s+as\s+(the\s+)?truth|from\s+now\s+on,?\s+treat\s+this\s+as\s+fact|update\s+your\s+knowledge\s+(base\s+)?with)`),
			Type:     core.AttackDataPoisoning,
			Severity: core.SeverityMedium,
			Message:  "false authority insertion",
		},
		{
			Id:       "atk-poison-source",
			Pattern:  regexp.MustCompile(`(?i)(official\s+(announcement|statement)\s*:\s*ignore|trusted\s+source\s+says\s+you\s+must)`),
			Type:     core.AttackDataPoisoning,
			Severity: core.SeverityMedium,
			Message:  "forged source attribution",
		},

		// Code injection: attempts to smuggle executable payloads.
		{
			Id:       "atk-code-script",
			Pattern:  regexp.MustCompile(`(?i)(<script[\s>]|javascript\s*:|on(load|error|click)\s*=)`),
			Type:     core.AttackCodeInjection,
			Severity: core.SeverityHigh,
			Message:  "script payload",
		},
		{
			Id:       "atk-code-exec",
			Pattern:  regexp.MustCompile(`(?i)(\beval\s*\(|\bexec\s*\(|os\.system\s*\(|subprocess\.|rm\s+-rf\s+/|;\s*DROP\s+TABLE|UNION\s+SELECT)`),
			Type:     core.AttackCodeInjection,
			Severity: core.SeverityHigh,
			Message:  "executable payload",
		},
	}
}
