package core

import (
	"math"
	"testing"
)

func TestIDFromContent_Deterministic(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "simple content", content: "test content"},
		{name: "empty string", content: ""},
		{name: "long content", content: "This is a much longer piece of content that should still hash consistently"},
		{name: "korean content", content: "삼성전자 반도체 가격"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestWeightVector_Normalize(t *testing.T) {
	tests := []struct {
		name        string
		in          WeightVector
		wantVector  float64
		wantKeyword float64
	}{
		{name: "already normalized", in: WeightVector{Vector: 0.7, Keyword: 0.3}, wantVector: 0.7, wantKeyword: 0.3},
		{name: "over unit sum", in: WeightVector{Vector: 0.9, Keyword: 0.45}, wantVector: 0.9 / 1.35, wantKeyword: 0.45 / 1.35},
		{name: "zero vector", in: WeightVector{}, wantVector: 0.5, wantKeyword: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if math.Abs(got.Vector+got.Keyword-1.0) > 1e-9 {
				t.Errorf("Normalize() components sum to %f, want 1.0", got.Vector+got.Keyword)
			}
			if math.Abs(got.Vector-tt.wantVector) > 1e-9 || math.Abs(got.Keyword-tt.wantKeyword) > 1e-9 {
				t.Errorf("Normalize() = %+v, want {%f %f}", got, tt.wantVector, tt.wantKeyword)
			}
		})
	}
}

func TestWeightVector_Blend(t *testing.T) {
	base := WeightVector{Vector: 0.7, Keyword: 0.3}
	hist := WeightVector{Vector: 0.5, Keyword: 0.5}

	got := base.Blend(hist, 0.7).Normalize()
	if math.Abs(got.Vector+got.Keyword-1.0) > 1e-9 {
		t.Errorf("blended weights sum to %f, want 1.0", got.Vector+got.Keyword)
	}
	if got.Vector <= hist.Vector || got.Vector >= base.Vector {
		t.Errorf("blend should land between the inputs, got vector weight %f", got.Vector)
	}
}

func TestMaxSeverity(t *testing.T) {
	tests := []struct {
		name       string
		detections []GuardrailDetection
		want       Severity
	}{
		{name: "empty", detections: nil, want: SeverityNone},
		{
			name: "single",
			detections: []GuardrailDetection{
				{Severity: SeverityMedium},
			},
			want: SeverityMedium,
		},
		{
			name: "max wins",
			detections: []GuardrailDetection{
				{Severity: SeverityLow},
				{Severity: SeverityCritical},
				{Severity: SeverityHigh},
			},
			want: SeverityCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxSeverity(tt.detections); got != tt.want {
				t.Errorf("MaxSeverity() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Adding more detections must never lower the aggregate severity.
func TestMaxSeverity_Monotonic(t *testing.T) {
	detections := []GuardrailDetection{{Severity: SeverityHigh}}
	before := MaxSeverity(detections)

	detections = append(detections, GuardrailDetection{Severity: SeverityLow})
	after := MaxSeverity(detections)

	if after < before {
		t.Errorf("aggregate severity decreased from %v to %v after adding a detection", before, after)
	}
}

func TestAttackType_Precedence(t *testing.T) {
	order := []AttackType{
		AttackPromptInjection,
		AttackJailbreak,
		AttackInformationExtraction,
		AttackDataPoisoning,
		AttackCodeInjection,
		AttackNone,
	}
	for i := 1; i < len(order); i++ {
		if order[i-1].Precedence() <= order[i].Precedence() {
			t.Errorf("precedence of %v should exceed %v", order[i-1], order[i])
		}
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in      string
		want    Severity
		wantErr bool
	}{
		{in: "LOW", want: SeverityLow},
		{in: "medium", want: SeverityMedium},
		{in: " High ", want: SeverityHigh},
		{in: "CRITICAL", want: SeverityCritical},
		{in: "", want: SeverityNone},
		{in: "bogus", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSeverity(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSeverity(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSeverity(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseSeverity(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
