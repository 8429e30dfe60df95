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


package adversary

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/poiesic/rampart/core"
)

// Confidence is base plus one step per matching rule, capped at 1.
const (
	confidenceBase = 0.7
	confidenceStep = 0.1
)

// EventSink persists security events. Implemented by storage.EventRepository.
type EventSink interface {
	Append(ctx context.Context, event *core.SecurityEvent) error
}

// Monitor scans text for adversarial patterns and records positive
// detections as security events. Analysis is deterministic; persistence
// failures are logged and never change the verdict.
type Monitor struct {
	rules  []AttackRule
	sink   EventSink
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Monitor.
type Option func(*Monitor) error

// WithAttackRules replaces the default attack rule set.
func WithAttackRules(rules []AttackRule) Option {
	return func(m *Monitor) error {
		if len(rules) == 0 {
			return ErrNoAttackRules
		}
		m.rules = rules
		return nil
	}
}

// WithEventSink sets the repository positive detections are appended to.
// Without a sink the monitor analyzes only.
func WithEventSink(sink EventSink) Option {
	return func(m *Monitor) error {
		m.sink = sink
		return nil
	}
}

// WithMonitorLogger sets the logger used for analysis diagnostics.
func WithMonitorLogger(logger *slog.Logger) Option {
	return func(m *Monitor) error {
		m.logger = logger.With("component", "adversary")
		return nil
	}
}

// NewMonitor builds a Monitor with the default attack rules unless
// overridden.
func NewMonitor(opts ...Option) (*Monitor, error) {
	m := &Monitor{
		rules:  DefaultAttackRules(),
		logger: slog.Default().With("component", "adversary"),
		now:    time.Now,
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Analyze evaluates every attack rule against text and returns the verdict.
// The primary attack type is the matched rule with the highest severity;
// ties break on the attack type's precedence. When a sink is configured,
// a positive verdict is appended synchronously before returning.
func (m *Monitor) Analyze(ctx context.Context, callId, text string) core.AttackAnalysis {
	analysis := core.AttackAnalysis{Type: core.AttackNone}
	if text == "" {
		return analysis
	}

	var (
		primaryType     core.AttackType
		primarySeverity core.Severity
	)
	matchCount := 0
	for _, rule := range m.rules {
		matches := rule.Pattern.FindAllStringIndex(text, -1)
		if len(matches) == 0 {
			continue
		}
		matchCount++
		analysis.Detections = append(analysis.Detections, core.GuardrailDetection{
			Severity: rule.Severity,
			Type:     rule.Type.String(),
			Message:  rule.Message,
			Details: map[string]string{
				"rule":    rule.Id,
				"matches": strconv.Itoa(len(matches)),
			},
			SuggestedAction: "block",
		})
		if betterPrimary(rule.Type, rule.Severity, primaryType, primarySeverity) {
			primaryType = rule.Type
			primarySeverity = rule.Severity
		}
	}

	if matchCount == 0 {
		return analysis
	}

	analysis.IsAttack = true
	analysis.Type = primaryType
	analysis.Severity = primarySeverity
	analysis.Confidence = confidenceBase + confidenceStep*float64(matchCount)
	if analysis.Confidence > 1 {
		analysis.Confidence = 1
	}

	m.logger.Warn("adversarial pattern detected",
		"call_id", callId,
		"type", analysis.Type.String(),
		"severity", analysis.Severity.String(),
		"confidence", analysis.Confidence,
		"rules_matched", matchCount)

	m.record(ctx, callId, analysis)
	return analysis
}

// record appends the verdict as a security event. A sink failure is a
// storage problem, not a detection problem, so it only logs.
func (m *Monitor) record(ctx context.Context, callId string, analysis core.AttackAnalysis) {
	if m.sink == nil {
		return
	}
	now := m.now()
	event := &core.SecurityEvent{
		Id:            core.IDFromContent(fmt.Sprintf("%s|%s|%d", callId, analysis.Type, now.UnixNano())),
		CallId:        callId,
		Kind:          core.EventAttack,
		Severity:      analysis.Severity,
		DetectionType: analysis.Type.String(),
		Direction:     core.DirectionInput,
		Message:       fmt.Sprintf("attack detected with confidence %.2f", analysis.Confidence),
		Blocked:       true,
		Timestamp:     now,
		InsertedAt:    now,
	}
	if err := m.sink.Append(ctx, event); err != nil {
		m.logger.Error("failed to persist attack event", "call_id", callId, "error", err)
	}
}

// betterPrimary reports whether candidate should replace current as the
// primary attack: higher severity wins, then higher type precedence.
func betterPrimary(candType core.AttackType, candSev core.Severity, curType core.AttackType, curSev core.Severity) bool {
	if candSev != curSev {
		return candSev > curSev
	}
	return candType.Precedence() > curType.Precedence()
}
