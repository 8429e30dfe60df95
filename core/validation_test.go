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


package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     *Document
		wantErr error
	}{
		{
			name: "valid document",
			doc:  &Document{Content: "quarterly earnings report", Source: SourceFinancial},
		},
		{
			name: "valid without vector",
			doc:  &Document{Content: "city festival announcement", Source: SourceEvent},
		},
		{
			name:    "nil document",
			doc:     nil,
			wantErr: ErrInvalidDocument,
		},
		{
			name:    "empty content",
			doc:     &Document{Source: SourceNews},
			wantErr: ErrEmptyContent,
		},
		{
			name:    "unknown source kind",
			doc:     &Document{Content: "text", Source: SourceKind(99)},
			wantErr: ErrInvalidSourceKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.doc)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateDocument() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDocument() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSecurityEvent(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		event   *SecurityEvent
		wantErr error
	}{
		{
			name: "valid event",
			event: &SecurityEvent{
				Kind:      EventAttack,
				Severity:  SeverityHigh,
				Timestamp: now.Add(-time.Minute),
			},
		},
		{
			name:    "nil event",
			event:   nil,
			wantErr: ErrInvalidSecurityEvent,
		},
		{
			name: "unknown kind",
			event: &SecurityEvent{
				Kind:      EventKind(42),
				Timestamp: now,
			},
			wantErr: ErrInvalidEventKind,
		},
		{
			name: "severity out of range",
			event: &SecurityEvent{
				Kind:      EventAudit,
				Severity:  Severity(17),
				Timestamp: now,
			},
			wantErr: ErrInvalidSeverity,
		},
		{
			name: "future timestamp",
			event: &SecurityEvent{
				Kind:      EventGuardrail,
				Severity:  SeverityLow,
				Timestamp: now.Add(time.Hour),
			},
			wantErr: ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSecurityEvent(tt.event)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateSecurityEvent() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateSecurityEvent() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSecurityEventMUS_RoundTrip(t *testing.T) {
	event := SecurityEvent{
		Id:            IDFromContent("event"),
		CallId:        "2f1b7a9c",
		Kind:          EventAttack,
		Severity:      SeverityCritical,
		DetectionType: "prompt_injection",
		Direction:     DirectionInput,
		Message:       "instruction override attempt",
		Blocked:       true,
		Timestamp:     time.UnixMicro(time.Now().Add(-time.Second).UnixMicro()),
		InsertedAt:    time.UnixMicro(time.Now().UnixMicro()),
	}

	buf := make([]byte, SecurityEventMUS.Size(event))
	n := SecurityEventMUS.Marshal(event, buf)
	if n != len(buf) {
		t.Fatalf("Marshal wrote %d bytes, sized %d", n, len(buf))
	}

	got, m, err := SecurityEventMUS.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if m != n {
		t.Errorf("Unmarshal consumed %d bytes, want %d", m, n)
	}
	if got.Id != event.Id || got.CallId != event.CallId || got.Kind != event.Kind ||
		got.Severity != event.Severity || got.DetectionType != event.DetectionType ||
		got.Direction != event.Direction || got.Message != event.Message ||
		got.Blocked != event.Blocked ||
		!got.Timestamp.Equal(event.Timestamp) || !got.InsertedAt.Equal(event.InsertedAt) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, event)
	}
}
