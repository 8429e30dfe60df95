package query

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/poiesic/rampart/core"
)

const (
	// maxExpansions bounds the deduplicated expansion list.
	maxExpansions = 10
	// effectiveQueryTerms is how many expansions join the effective query.
	effectiveQueryTerms = 5
)

// Expander produces bounded expansion term lists from lexicon tables and a
// knowledge lookup. Expansions are additive hints; the original query is
// never rewritten.
type Expander struct {
	lexicon   *Lexicon
	knowledge KnowledgeLookup
	logger    *slog.Logger
}

// ExpanderOption configures an Expander.
type ExpanderOption func(*Expander) error

// WithLexicon sets a custom lookup table set.
// Default is DefaultLexicon().
func WithLexicon(lexicon *Lexicon) ExpanderOption {
	return func(e *Expander) error {
		if lexicon == nil {
			return ErrLexiconRequired
		}
		e.lexicon = lexicon
		return nil
	}
}

// WithKnowledge sets the entity concept lookup.
// Default is DefaultKnowledge().
func WithKnowledge(knowledge KnowledgeLookup) ExpanderOption {
	return func(e *Expander) error {
		if knowledge == nil {
			knowledge = NoopKnowledge{}
		}
		e.knowledge = knowledge
		return nil
	}
}

// WithExpanderLogger sets a custom logger.
// Default is slog.Default().
func WithExpanderLogger(logger *slog.Logger) ExpanderOption {
	return func(e *Expander) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewExpander creates a query expander.
func NewExpander(opts ...ExpanderOption) (*Expander, error) {
	e := &Expander{
		lexicon:   DefaultLexicon(),
		knowledge: DefaultKnowledge(),
		logger:    slog.Default().With("component", "query-expander"),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Expand returns up to maxExpansions deduplicated expansion terms for the
// query. Terms already present in the query are skipped.
func (e *Expander) Expand(rawQuery string, analysis core.QueryAnalysis) []string {
	seen := make(map[string]bool)
	loweredQuery := strings.ToLower(rawQuery)
	var expansions []string

	add := func(terms ...string) {
		for _, term := range terms {
			if len(expansions) >= maxExpansions {
				return
			}
			key := strings.ToLower(term)
			if key == "" || seen[key] || strings.Contains(loweredQuery, key) {
				continue
			}
			seen[key] = true
			expansions = append(expansions, term)
		}
	}

	// Synonyms per keyword
	for _, kw := range analysis.Keywords {
		add(e.lexicon.Synonyms[kw]...)
	}

	// Domain terms per flagged domain indicator
	for _, domain := range analysis.Domains {
		add(e.lexicon.DomainTerms[domain]...)
	}

	// Acronym expansions for all-caps tokens of length >= 2
	for _, tok := range strings.Fields(rawQuery) {
		cleaned := strings.Trim(tok, ".,!?;:'\"-()[]{}")
		if isAcronym(cleaned) {
			add(e.lexicon.Acronyms[cleaned]...)
		}
	}

	// Related concepts per detected entity
	for _, entity := range analysis.Entities {
		add(e.knowledge.RelatedConcepts(entity)...)
	}

	// Temporal terms only for trend-analysis queries
	if analysis.Intent == core.IntentTrendAnalysis {
		add(e.lexicon.Temporal...)
	}

	e.logger.Debug("expanded query", "query", rawQuery, "expansions", len(expansions))
	return expansions
}

// EffectiveQuery appends the top expansions to the original query. The
// original text always leads so its precision is preserved.
func EffectiveQuery(rawQuery string, expansions []string) string {
	if len(expansions) == 0 {
		return rawQuery
	}
	top := expansions
	if len(top) > effectiveQueryTerms {
		top = top[:effectiveQueryTerms]
	}
	return rawQuery + " " + strings.Join(top, " ")
}

// isAcronym reports whether a token is an all-caps run of length >= 2.
func isAcronym(tok string) bool {
	runes := []rune(tok)
	if len(runes) < 2 {
		return false
	}
	sawLetter := false
	for _, r := range runes {
		if unicode.IsLetter(r) {
			sawLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return sawLetter
}
