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
	"fmt"
	"time"
)

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Content must not be empty
//   - Source must be a known SourceKind
//
// NOT validated (populated by processors):
//   - Vector (can be empty until the embedding pipeline runs)
//   - ID (0 is valid before content hashing)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyContent)
	}

	if err := ValidateSourceKind(doc.Source); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return nil
}

// ValidateSecurityEvent validates a SecurityEvent according to domain rules.
//
// Validation rules:
//   - Kind must be a known EventKind
//   - Severity must not exceed the known range
//   - Timestamp must not be in the future
func ValidateSecurityEvent(event *SecurityEvent) error {
	if event == nil {
		return fmt.Errorf("%w: event is nil", ErrInvalidSecurityEvent)
	}

	if err := ValidateEventKind(event.Kind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSecurityEvent, err)
	}

	if event.Severity < SeverityNone || event.Severity > SeverityCritical {
		return fmt.Errorf("%w: %w: value %d", ErrInvalidSecurityEvent, ErrInvalidSeverity, event.Severity)
	}

	if !IsValidTimestamp(event.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidSecurityEvent, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateSourceKind validates that a SourceKind has a valid value.
func ValidateSourceKind(kind SourceKind) error {
	if kind != SourceFinancial && kind != SourceNews && kind != SourceEvent {
		return fmt.Errorf("%w: value %d", ErrInvalidSourceKind, kind)
	}
	return nil
}

// ValidateEventKind validates that an EventKind has a valid value.
func ValidateEventKind(kind EventKind) error {
	if kind != EventGuardrail && kind != EventAttack && kind != EventAudit {
		return fmt.Errorf("%w: value %d", ErrInvalidEventKind, kind)
	}
	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
