package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or assigned by storage.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// SourceKind identifies the corpus a document originates from.
type SourceKind int

const (
	// SourceFinancial marks documents from the financial corpus.
	SourceFinancial SourceKind = iota + 1
	// SourceNews marks documents from the news corpus.
	SourceNews
	// SourceEvent marks documents from the event corpus.
	SourceEvent
)

// String returns the lowercase name of the source kind.
func (k SourceKind) String() string {
	switch k {
	case SourceFinancial:
		return "financial"
	case SourceNews:
		return "news"
	case SourceEvent:
		return "event"
	default:
		return "unknown"
	}
}

// Document is a corpus entry that may carry a precomputed embedding.
// A document without a vector degrades to lexical-only retrieval.
type Document struct {
	Id       ID
	Content  string
	Vector   []float32 // Embedding vector; nil or empty when not yet embedded
	Source   SourceKind
	Metadata map[string]string
}

// HasVector reports whether the document carries an embedding.
func (d *Document) HasVector() bool {
	return len(d.Vector) > 0
}

// Scores carries the per-signal relevance scores of a search result.
type Scores struct {
	Vector    float64
	Keyword   float64
	Semantic  float64
	Combined  float64
	Diversity float64
}

// SearchResult is a single ranked retrieval hit. Results are ephemeral,
// constructed per query and never persisted.
type SearchResult struct {
	DocumentId ID
	Content    string
	Source     SourceKind
	Scores     Scores
	Highlights []string
	Confidence float64
}

// QueryType classifies a query's balance between lexical and semantic signals.
type QueryType int

const (
	// QueryBalanced is the default classification.
	QueryBalanced QueryType = iota + 1
	// QueryKeywordHeavy marks queries with many distinct keywords.
	QueryKeywordHeavy
	// QuerySemanticHeavy marks question-form queries.
	QuerySemanticHeavy
)

// String returns the classification name.
func (t QueryType) String() string {
	switch t {
	case QueryBalanced:
		return "balanced"
	case QueryKeywordHeavy:
		return "keyword_heavy"
	case QuerySemanticHeavy:
		return "semantic_heavy"
	default:
		return "unknown"
	}
}

// Intent classifies what the user is trying to accomplish with a query.
type Intent int

const (
	// IntentExploration is the default intent.
	IntentExploration Intent = iota + 1
	// IntentSpecificFact marks queries asking for a concrete fact about named entities.
	IntentSpecificFact
	// IntentTrendAnalysis marks queries about trends and changes over time.
	IntentTrendAnalysis
	// IntentComparison marks queries comparing alternatives.
	IntentComparison
)

// String returns the intent name.
func (i Intent) String() string {
	switch i {
	case IntentExploration:
		return "exploration"
	case IntentSpecificFact:
		return "specific_fact"
	case IntentTrendAnalysis:
		return "trend_analysis"
	case IntentComparison:
		return "comparison"
	default:
		return "unknown"
	}
}

// QueryAnalysis is the feature set derived deterministically from a raw query.
type QueryAnalysis struct {
	Type     QueryType
	Entities []string
	Keywords []string
	Intent   Intent
	Domains  []SourceKind
}

// HasDomain reports whether the analysis flagged the given domain.
func (qa *QueryAnalysis) HasDomain(kind SourceKind) bool {
	for _, d := range qa.Domains {
		if d == kind {
			return true
		}
	}
	return false
}

// WeightVector holds the vector/keyword weights feeding the hybrid score.
// After Normalize the two components sum to 1.
type WeightVector struct {
	Vector  float64
	Keyword float64
}

// Normalize returns a weight vector whose components sum to 1.
// A degenerate zero vector normalizes to an even split.
func (w WeightVector) Normalize() WeightVector {
	total := w.Vector + w.Keyword
	if total <= 0 {
		return WeightVector{Vector: 0.5, Keyword: 0.5}
	}
	return WeightVector{Vector: w.Vector / total, Keyword: w.Keyword / total}
}

// Blend mixes this weight vector with another, keeping ratio of the receiver.
func (w WeightVector) Blend(other WeightVector, ratio float64) WeightVector {
	return WeightVector{
		Vector:  w.Vector*ratio + other.Vector*(1-ratio),
		Keyword: w.Keyword*ratio + other.Keyword*(1-ratio),
	}
}

// Direction distinguishes inbound prompts from outbound model content.
type Direction int

const (
	// DirectionInput marks content headed to the model.
	DirectionInput Direction = iota + 1
	// DirectionOutput marks content produced by the model.
	DirectionOutput
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionInput:
		return "input"
	case DirectionOutput:
		return "output"
	default:
		return "unknown"
	}
}

// GuardrailDetection is a single policy-violation finding from a rule scan.
// Multiple detections may exist for one scanned text; they are never deduplicated.
type GuardrailDetection struct {
	Severity        Severity
	Type            string
	Message         string
	Details         map[string]string
	SuggestedAction string
}

// MaxSeverity returns the highest severity across detections,
// or SeverityNone when the slice is empty.
func MaxSeverity(detections []GuardrailDetection) Severity {
	max := SeverityNone
	for _, d := range detections {
		if d.Severity > max {
			max = d.Severity
		}
	}
	return max
}

// AttackType identifies a class of adversarial input.
type AttackType int

const (
	// AttackNone means no attack was detected.
	AttackNone AttackType = iota
	// AttackCodeInjection is an attempt to smuggle executable code.
	AttackCodeInjection
	// AttackDataPoisoning is an attempt to corrupt retrieved context.
	AttackDataPoisoning
	// AttackInformationExtraction is an attempt to exfiltrate secrets or system details.
	AttackInformationExtraction
	// AttackJailbreak is an attempt to bypass model policy constraints.
	AttackJailbreak
	// AttackPromptInjection is an attempt to override instructions.
	AttackPromptInjection
)

// String returns the attack type name.
func (t AttackType) String() string {
	switch t {
	case AttackPromptInjection:
		return "prompt_injection"
	case AttackJailbreak:
		return "jailbreak"
	case AttackInformationExtraction:
		return "information_extraction"
	case AttackDataPoisoning:
		return "data_poisoning"
	case AttackCodeInjection:
		return "code_injection"
	default:
		return "none"
	}
}

// Precedence returns the tie-break rank for attack types at equal severity.
// Higher wins: injection > jailbreak > extraction > poisoning > code.
func (t AttackType) Precedence() int {
	switch t {
	case AttackPromptInjection:
		return 5
	case AttackJailbreak:
		return 4
	case AttackInformationExtraction:
		return 3
	case AttackDataPoisoning:
		return 2
	case AttackCodeInjection:
		return 1
	default:
		return 0
	}
}

// AttackAnalysis is the adversarial monitor's verdict for a scanned text.
type AttackAnalysis struct {
	IsAttack   bool
	Type       AttackType
	Severity   Severity
	Confidence float64
	// Detections retains every matched rule for audit, not just the primary attack.
	Detections []GuardrailDetection
}

// SecureCallResult is the immutable outcome of one secure model call.
type SecureCallResult struct {
	CallId              string
	RawContent          string
	SanitizedContent    string
	Blocked             bool
	BlockReason         string
	GuardrailDetections []GuardrailDetection
	AttackDetections    []GuardrailDetection
	ExecutionTime       time.Duration
}

// ThemeItem is a scored, labeled item eligible for clustering.
type ThemeItem struct {
	Id     ID
	Name   string
	Score  float64
	Vector []float32
}

// ClusterMember is an item that joined a cluster, with its similarity
// to the cluster seed.
type ClusterMember struct {
	Item       ThemeItem
	Similarity float64
}

// ThemeCluster groups similar items under a representative.
// Clusters are built fresh on each run, never updated incrementally.
type ThemeCluster struct {
	Representative ThemeItem
	Members        []ClusterMember
	Size           int
	AverageScore   float64
}

// EventKind classifies persisted security events.
type EventKind int

const (
	// EventGuardrail records a guardrail detection.
	EventGuardrail EventKind = iota + 1
	// EventAttack records a positive adversarial detection.
	EventAttack
	// EventAudit records a secure-call terminal transition.
	EventAudit
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventGuardrail:
		return "guardrail"
	case EventAttack:
		return "attack"
	case EventAudit:
		return "audit"
	default:
		return "unknown"
	}
}

// SecurityEvent is a persisted record of a guardrail detection, attack
// detection, or secure-call audit entry.
type SecurityEvent struct {
	Id            ID
	CallId        string
	Kind          EventKind
	Severity      Severity
	DetectionType string
	Direction     Direction
	Message       string
	Blocked       bool
	Timestamp     time.Time // When the triggering call happened
	InsertedAt    time.Time // When the event was persisted
}
