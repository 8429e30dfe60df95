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


package query

import (
	"strings"

	"github.com/poiesic/rampart/core"
)

// lowerKey normalizes a lookup key for case-insensitive matching.
func lowerKey(s string) string { return strings.ToLower(s) }

// Lexicon holds the static lookup tables used by the Expander. It is an
// injectable, versioned value so tables can be swapped or extended without
// touching pipeline logic.
type Lexicon struct {
	// Version identifies the table revision for audit and cache keying.
	Version string

	// Synonyms maps a lowercase keyword to its synonym list.
	Synonyms map[string][]string

	// DomainTerms maps a flagged domain to its expansion terms.
	DomainTerms map[core.SourceKind][]string

	// Acronyms maps an uppercase acronym to its expansions.
	Acronyms map[string][]string

	// Temporal lists the recency and quarter-marker terms added for
	// trend-analysis queries.
	Temporal []string
}

// DefaultLexicon returns the built-in table set.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		Version: "2025-08",
		Synonyms: map[string][]string{
			"price":    {"cost", "value", "가격"},
			"가격":       {"price", "시세"},
			"stock":    {"share", "equity", "주식"},
			"주식":       {"stock", "증권"},
			"earnings": {"profit", "income", "실적"},
			"실적":       {"earnings", "성과"},
			"forecast": {"outlook", "projection", "전망"},
			"news":     {"article", "report", "뉴스"},
			"event":    {"conference", "행사"},
			"increase": {"rise", "growth", "상승"},
			"decrease": {"decline", "drop", "하락"},
			"company":  {"firm", "corporation", "기업"},
		},
		DomainTerms: map[core.SourceKind][]string{
			core.SourceFinancial: {"market", "investment", "금융", "증시"},
			core.SourceNews:      {"headline", "coverage", "속보"},
			core.SourceEvent:     {"schedule", "venue", "개최"},
		},
		Acronyms: map[string][]string{
			"AI":   {"artificial intelligence", "인공지능"},
			"IPO":  {"initial public offering", "상장"},
			"GDP":  {"gross domestic product"},
			"ETF":  {"exchange traded fund"},
			"CPI":  {"consumer price index", "물가지수"},
			"M&A":  {"merger and acquisition", "인수합병"},
			"ESG":  {"environmental social governance"},
			"HBM":  {"high bandwidth memory"},
			"FOMC": {"federal open market committee"},
		},
		Temporal: []string{"recent", "latest", "quarterly", "최근", "분기"},
	}
}

// KnowledgeLookup resolves entities to related concepts. It stands in for
// a knowledge-graph backend; implementations must be safe for concurrent
// use. A no-op implementation returning nil is a valid default.
type KnowledgeLookup interface {
	// RelatedConcepts returns concepts related to the entity, or nil when
	// the entity is unknown.
	RelatedConcepts(entity string) []string
}

// StaticKnowledge is a table-backed KnowledgeLookup keyed by lowercase
// entity name.
type StaticKnowledge struct {
	concepts map[string][]string
}

var _ KnowledgeLookup = (*StaticKnowledge)(nil)

// NewStaticKnowledge creates a table-backed knowledge lookup. Keys are
// matched case-insensitively.
func NewStaticKnowledge(concepts map[string][]string) *StaticKnowledge {
	normalized := make(map[string][]string, len(concepts))
	for k, v := range concepts {
		normalized[lowerKey(k)] = v
	}
	return &StaticKnowledge{concepts: normalized}
}

// DefaultKnowledge returns the built-in entity-to-concept table.
func DefaultKnowledge() *StaticKnowledge {
	return NewStaticKnowledge(map[string][]string{
		"samsung":  {"semiconductor", "electronics", "반도체"},
		"삼성전자":     {"semiconductor", "memory chip"},
		"hynix":    {"memory chip", "semiconductor"},
		"nvidia":   {"gpu", "artificial intelligence"},
		"tesla":    {"electric vehicle", "battery"},
		"kospi":    {"korean stock market", "index"},
		"bitcoin":  {"cryptocurrency", "blockchain"},
		"tsmc":     {"foundry", "semiconductor"},
		"kakao":    {"platform", "messenger"},
		"naver":    {"search engine", "platform"},
	})
}

// RelatedConcepts returns the table entry for the entity, or nil.
func (k *StaticKnowledge) RelatedConcepts(entity string) []string {
	return k.concepts[lowerKey(entity)]
}

// NoopKnowledge is a KnowledgeLookup that knows nothing.
type NoopKnowledge struct{}

var _ KnowledgeLookup = (*NoopKnowledge)(nil)

// RelatedConcepts always returns nil.
func (NoopKnowledge) RelatedConcepts(string) []string { return nil }
