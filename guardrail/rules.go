// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package guardrail

import (
	"regexp"

	"github.com/poiesic/rampart/core"
)

// Redaction selects how a matched span is sanitized.
type Redaction int

const (
	// RedactNone leaves the text unchanged (detection only).
	RedactNone Redaction = iota
	// RedactReplace substitutes the span with the rule's placeholder.
	RedactReplace
	// RedactStrip removes the span entirely. Used for injection phrasing,
	// which has no safe placeholder form.
	RedactStrip
)

// Detection type names. These values end up in audit events, so they are
// stable identifiers, not display strings.
const (
	TypePromptInjection     = "PROMPT_INJECTION"
	TypeSensitiveInfo       = "SENSITIVE_INFO_DETECTED"
	TypePIIPhone            = "PII_PHONE"
	TypePIINationalID       = "PII_NATIONAL_ID"
	TypePIIEmail            = "PII_EMAIL"
	TypePIIBirthdate        = "PII_BIRTHDATE"
	TypePIIHonorific        = "PII_NAME_HONORIFIC"
	TypeSystemInfoExposure  = "SYSTEM_INFO_EXPOSURE"
	TypeModelIdentity       = "MODEL_IDENTITY_EXPOSURE"
	TypeFinancialRegulation = "FINANCIAL_REGULATION_VIOLATION"
)

// Sanitization placeholders. None of them can re-match any rule pattern,
// which is what makes sanitization idempotent.
const (
	placeholderSensitive  = "[REDACTED:SENSITIVE]"
	placeholderPhone      = "[REDACTED:PHONE]"
	placeholderNationalID = "[REDACTED:NATIONAL-ID]"
	placeholderEmail      = "[REDACTED:EMAIL]"
	placeholderBirthdate  = "[REDACTED:BIRTHDATE]"
	placeholderHonorific  = "[REDACTED:NAME]"
	placeholderSystemInfo = "[REDACTED:SYSTEM]"
	placeholderModelInfo  = "[REDACTED:MODEL]"
	placeholderRegulatory = "[REMOVED:REGULATORY-CLAIM]"
)

// Rule is one tagged pattern in the ordered guardrail rule set. Every rule
// is evaluated on every scan; there is no early exit, so adding rules can
// only raise the aggregate severity.
type Rule struct {
	Id              string
	Pattern         *regexp.Regexp
	Severity        core.Severity
	Category        string
	Direction       core.Direction
	Redaction       Redaction
	Placeholder     string
	Message         string
	SuggestedAction string
}

// DefaultRules returns the built-in ordered rule set covering both scan
// directions.
func DefaultRules() []Rule {
	return []Rule{
		// --- Input rules ---
		{
			Id:              "inj-override",
			Pattern:         regexp.MustCompile(`(?i)(ignore|disregard|forget)\s+(all\s+|any\s+)?(previous|prior|above|earlier)\s+(instructions?|prompts?|rules?|directives?)`),
			Severity:        core.SeverityCritical,
			Category:        TypePromptInjection,
			Direction:       core.DirectionInput,
			Redaction:       RedactStrip,
			Message:         "instruction override attempt",
			SuggestedAction: "block",
		},
		{
			Id:              "inj-override-ko",
			Pattern:         regexp.MustCompile(`(이전|위의?|기존)\s*(지시|지침|명령|프롬프트)(사항)?\s*(을|를)?\s*(무시|잊어)`),
			Severity:        core.SeverityCritical,
			Category:        TypePromptInjection,
			Direction:       core.DirectionInput,
			Redaction:       RedactStrip,
			Message:         "instruction override attempt",
			SuggestedAction: "block",
		},
		{
			Id:              "inj-persona",
			Pattern:         regexp.MustCompile(`(?i)(you\s+are\s+now|act\s+as\s+if\s+you\s+(have\s+no|had\s+no)|pretend\s+(you\s+are|to\s+be)\s+(an?\s+)?unrestricted)`),
			Severity:        core.SeverityHigh,
			Category:        TypePromptInjection,
			Direction:       core.DirectionInput,
			Redaction:       RedactStrip,
			Message:         "persona override attempt",
			SuggestedAction: "block",
		},
		{
			Id:              "inj-system-prompt",
			Pattern:         regexp.MustCompile(`(?i)(reveal|show|print|repeat|output)\s+(your\s+)?(the\s+)?system\s+(prompt|instructions?|message)`),
			Severity:        core.SeverityCritical,
			Category:        TypePromptInjection,
			Direction:       core.DirectionInput,
			Redaction:       RedactStrip,
			Message:         "system prompt extraction attempt",
			SuggestedAction: "block",
		},
		{
			Id:              "sens-credentials",
			Pattern:         regexp.MustCompile(`(?i)(api[\s_-]?key|password|passphrase|credential|secret\s+key|access\s+token|private\s+key|비밀번호|인증키)`),
			Severity:        core.SeverityHigh,
			Category:        TypeSensitiveInfo,
			Direction:       core.DirectionInput,
			Redaction:       RedactReplace,
			Placeholder:     placeholderSensitive,
			Message:         "credential-related term",
			SuggestedAction: "sanitize",
		},
		{
			Id:              "sens-account",
			Pattern:         regexp.MustCompile(`(?i)(account\s+number|card\s+number|계좌\s*번호|카드\s*번호)`),
			Severity:        core.SeverityMedium,
			Category:        TypeSensitiveInfo,
			Direction:       core.DirectionInput,
			Redaction:       RedactReplace,
			Placeholder:     placeholderSensitive,
			Message:         "account or card reference",
			SuggestedAction: "sanitize",
		},
		{
			Id:              "pii-phone",
			Pattern:         regexp.MustCompile(`\b01[016789][-.\s]?\d{3,4}[-.\s]?\d{4}\b`),
			Severity:        core.SeverityMedium,
			Category:        TypePIIPhone,
			Direction:       core.DirectionInput,
			Redaction:       RedactReplace,
			Placeholder:     placeholderPhone,
			Message:         "phone-like number",
			SuggestedAction: "sanitize",
		},
		{
			Id:              "pii-national-id",
			Pattern:         regexp.MustCompile(`\b\d{6}[-\s]?[1-4]\d{6}\b`),
			Severity:        core.SeverityHigh,
			Category:        TypePIINationalID,
			Direction:       core.DirectionInput,
			Redaction:       RedactReplace,
			Placeholder:     placeholderNationalID,
			Message:         "national-ID-like number",
			SuggestedAction: "sanitize",
		},
		{
			Id:              "pii-email",
			Pattern:         regexp.MustCompile(`\b[\w.+-]+@[\w-]+\.[\w.]+\b`),
			Severity:        core.SeverityMedium,
			Category:        TypePIIEmail,
			Direction:       core.DirectionInput,
			Redaction:       RedactReplace,
			Placeholder:     placeholderEmail,
			Message:         "email address",
			SuggestedAction: "sanitize",
		},
		{
			Id:              "pii-birthdate",
			Pattern:         regexp.MustCompile(`\b(19|20)\d{2}[-./년]\s?\d{1,2}[-./월]\s?\d{1,2}일?\b`),
			Severity:        core.SeverityMedium,
			Category:        TypePIIBirthdate,
			Direction:       core.DirectionInput,
			Redaction:       RedactReplace,
			Placeholder:     placeholderBirthdate,
			Message:         "birthdate-like value",
			SuggestedAction: "sanitize",
		},
		{
			Id:              "pii-honorific",
			Pattern:         regexp.MustCompile(`[가-힣]{2,4}\s?(님|씨|고객님|대표님)`),
			Severity:        core.SeverityLow,
			Category:        TypePIIHonorific,
			Direction:       core.DirectionInput,
			Redaction:       RedactReplace,
			Placeholder:     placeholderHonorific,
			Message:         "name with honorific",
			SuggestedAction: "sanitize",
		},

		// --- Output rules ---
		{
			Id:              "out-credential-leak",
			Pattern:         regexp.MustCompile(`(?i)(api[\s_-]?key|password|secret|token)\s*[:=]\s*\S+`),
			Severity:        core.SeverityCritical,
			Category:        TypeSystemInfoExposure,
			Direction:       core.DirectionOutput,
			Redaction:       RedactReplace,
			Placeholder:     placeholderSystemInfo,
			Message:         "credential value in output",
			SuggestedAction: "block",
		},
		{
			Id:              "out-stack-trace",
			Pattern:         regexp.MustCompile(`(goroutine \d+ \[\w+\]|panic: |\.go:\d+\s+\+0x|Traceback \(most recent call last\))`),
			Severity:        core.SeverityHigh,
			Category:        TypeSystemInfoExposure,
			Direction:       core.DirectionOutput,
			Redaction:       RedactReplace,
			Placeholder:     placeholderSystemInfo,
			Message:         "stack trace in output",
			SuggestedAction: "sanitize",
		},
		{
			Id:              "out-internal-endpoint",
			Pattern:         regexp.MustCompile(`(?i)https?://(localhost|127\.0\.0\.1|10\.\d+\.\d+\.\d+|192\.168\.\d+\.\d+|[\w-]+\.internal)\S*`),
			Severity:        core.SeverityHigh,
			Category:        TypeSystemInfoExposure,
			Direction:       core.DirectionOutput,
			Redaction:       RedactReplace,
			Placeholder:     placeholderSystemInfo,
			Message:         "internal endpoint in output",
			SuggestedAction: "sanitize",
		},
		{
			Id:              "out-model-identity",
			Pattern:         regexp.MustCompile(`(?i)(as an ai (language )?model|i (was|am) (created|developed|trained) by \w+|gpt-[3-5][\w.-]*|claude[\s-][\w.]+|gemini[\s-][\w.]+)`),
			Severity:        core.SeverityMedium,
			Category:        TypeModelIdentity,
			Direction:       core.DirectionOutput,
			Redaction:       RedactReplace,
			Placeholder:     placeholderModelInfo,
			Message:         "model identity in output",
			SuggestedAction: "sanitize",
		},
		{
			Id:              "out-guaranteed-return",
			Pattern:         regexp.MustCompile(`(보장\s*수익(률)?|수익(률)?\s*(을|이)?\s*보장|원금\s*보장|(?i:guaranteed\s+(high\s+)?(returns?|profits?)))`),
			Severity:        core.SeverityHigh,
			Category:        TypeFinancialRegulation,
			Direction:       core.DirectionOutput,
			Redaction:       RedactReplace,
			Placeholder:     placeholderRegulatory,
			Message:         "guaranteed-return claim",
			SuggestedAction: "sanitize",
		},
		{
			Id:              "out-risk-free",
			Pattern:         regexp.MustCompile(`(무위험\s*(투자|수익)|손실\s*없(는|이)|(?i:risk[\s-]?free\s+(investment|profit|returns?)))`),
			Severity:        core.SeverityHigh,
			Category:        TypeFinancialRegulation,
			Direction:       core.DirectionOutput,
			Redaction:       RedactReplace,
			Placeholder:     placeholderRegulatory,
			Message:         "risk-free claim",
			SuggestedAction: "sanitize",
		},
		{
			Id:              "out-urgency-buy",
			Pattern:         regexp.MustCompile(`(지금\s*(당장|바로)?\s*(매수|투자|가입)|마지막\s*기회|(?i:buy\s+now\s+before|last\s+chance\s+to\s+(buy|invest)))`),
			Severity:        core.SeverityHigh,
			Category:        TypeFinancialRegulation,
			Direction:       core.DirectionOutput,
			Redaction:       RedactReplace,
			Placeholder:     placeholderRegulatory,
			Message:         "urgency-to-buy claim",
			SuggestedAction: "sanitize",
		},
	}
}
