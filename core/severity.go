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
	"strings"
)

// Severity is the ordinal policy-violation level driving block and
// sanitize decisions. The ordering Low < Medium < High < Critical is
// part of the public contract: numeric comparison is the total order.
type Severity int

const (
	// SeverityNone means no violation was found.
	SeverityNone Severity = iota
	// SeverityLow marks informational findings.
	SeverityLow
	// SeverityMedium marks findings that warrant sanitization.
	SeverityMedium
	// SeverityHigh marks findings that block inbound content.
	SeverityHigh
	// SeverityCritical marks findings that block content in both directions.
	SeverityCritical
)

// String returns the canonical uppercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "NONE"
	}
}

// ParseSeverity converts a severity name (case-insensitive) to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LOW":
		return SeverityLow, nil
	case "MEDIUM":
		return SeverityMedium, nil
	case "HIGH":
		return SeverityHigh, nil
	case "CRITICAL":
		return SeverityCritical, nil
	case "NONE", "":
		return SeverityNone, nil
	default:
		return SeverityNone, fmt.Errorf("%w: %q", ErrInvalidSeverity, s)
	}
}
