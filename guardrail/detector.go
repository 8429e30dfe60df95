package guardrail

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/poiesic/rampart/core"
)

// Report is the outcome of scanning one piece of text in one direction.
type Report struct {
	Direction  core.Direction
	Detections []core.GuardrailDetection
	// Sanitized is the text after all matched redactions were applied.
	// Sanitizing an already-sanitized text is a no-op.
	Sanitized string
	// Blocked is true when the aggregate severity crosses the direction's
	// blocking threshold: HIGH for input, CRITICAL for output.
	Blocked bool
}

// MaxSeverity returns the highest severity across the report's detections,
// or SeverityNone when nothing matched.
func (r Report) MaxSeverity() core.Severity {
	return core.MaxSeverity(r.Detections)
}

// Detector evaluates an ordered rule set against text. Scanning is
// stateless and safe for concurrent use.
type Detector struct {
	rules  []Rule
	logger *slog.Logger
}

// Option configures a Detector.
type Option func(*Detector) error

// WithRules replaces the default rule set.
func WithRules(rules []Rule) Option {
	return func(d *Detector) error {
		if len(rules) == 0 {
			return ErrNoRules
		}
		d.rules = rules
		return nil
	}
}

// WithLogger sets the logger used for scan diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Detector) error {
		d.logger = logger.With("component", "guardrail")
		return nil
	}
}

// NewDetector builds a Detector with the default rule set unless overridden.
func NewDetector(opts ...Option) (*Detector, error) {
	d := &Detector{
		rules:  DefaultRules(),
		logger: slog.Default().With("component", "guardrail"),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Scan evaluates every rule for the given direction against text. All rules
// run on every call, so the result never depends on rule order for
// detection, only for sanitization.
func (d *Detector) Scan(text string, direction core.Direction) Report {
	report := Report{Direction: direction, Sanitized: text}
	if text == "" {
		return report
	}

	for _, rule := range d.rules {
		if rule.Direction != direction {
			continue
		}
		matches := rule.Pattern.FindAllStringIndex(text, -1)
		if len(matches) == 0 {
			continue
		}
		report.Detections = append(report.Detections, core.GuardrailDetection{
			Severity: rule.Severity,
			Type:     rule.Category,
			Message:  rule.Message,
			Details: map[string]string{
				"rule":    rule.Id,
				"matches": strconv.Itoa(len(matches)),
			},
			SuggestedAction: rule.SuggestedAction,
		})
		report.Sanitized = applyRedaction(report.Sanitized, rule)
	}

	report.Blocked = shouldBlock(direction, report.MaxSeverity())
	if len(report.Detections) > 0 {
		d.logger.Debug("guardrail scan matched",
			"direction", direction.String(),
			"detections", len(report.Detections),
			"severity", report.MaxSeverity().String(),
			"blocked", report.Blocked)
	}
	return report
}

// Sanitize returns the redacted form of text without the full report.
func (d *Detector) Sanitize(text string, direction core.Direction) string {
	return d.Scan(text, direction).Sanitized
}

func shouldBlock(direction core.Direction, severity core.Severity) bool {
	if direction == core.DirectionInput {
		return severity >= core.SeverityHigh
	}
	return severity >= core.SeverityCritical
}

func applyRedaction(text string, rule Rule) string {
	switch rule.Redaction {
	case RedactReplace:
		return rule.Pattern.ReplaceAllString(text, rule.Placeholder)
	case RedactStrip:
		stripped := rule.Pattern.ReplaceAllString(text, "")
		return strings.Join(strings.Fields(stripped), " ")
	default:
		return text
	}
}
