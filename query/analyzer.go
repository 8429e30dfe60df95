package query

import (
	"strings"
	"unicode"

	"github.com/poiesic/rampart/core"
	"github.com/poiesic/rampart/similarity"
)

// keywordHeavyThreshold is the keyword count above which a query is
// classified as keyword-heavy.
const keywordHeavyThreshold = 5

// specificFactKeywordLimit is the keyword count below which a query with
// entities is treated as a specific-fact lookup.
const specificFactKeywordLimit = 4

// interrogatives mark question-form queries even without a question mark.
var interrogatives = []string{
	"what", "how", "why", "which", "when", "where", "who",
	"무엇", "어떻게", "왜", "언제", "어디",
}

// trendMarkers signal trend-analysis intent. The set is multilingual on
// purpose: the corpus carries mixed English/Korean queries.
var trendMarkers = []string{
	"trend", "trends", "forecast", "outlook", "over time",
	"추세", "동향", "트렌드", "전망", "추이",
}

// comparisonMarkers signal comparison intent.
var comparisonMarkers = []string{
	"vs", "versus", "compare", "comparison", "difference between",
	"비교", "차이",
}

// domainMarkers flag domain indicators via substring checks. A query can
// carry more than one domain.
var domainMarkers = map[core.SourceKind][]string{
	core.SourceFinancial: {
		"price", "stock", "revenue", "earnings", "dividend", "investment",
		"interest rate", "가격", "주가", "주식", "금리", "수익", "투자", "실적",
	},
	core.SourceNews: {
		"news", "headline", "article", "announced", "report",
		"뉴스", "기사", "보도", "발표",
	},
	core.SourceEvent: {
		"event", "conference", "festival", "schedule", "seminar",
		"행사", "축제", "일정", "세미나", "컨퍼런스",
	},
}

// Analyzer classifies raw queries into the feature set that drives
// adaptive weighting and expansion. It is stateless and safe for
// concurrent use.
type Analyzer struct{}

// NewAnalyzer creates a query analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze derives a QueryAnalysis from the raw query text. The result is
// deterministic: the same query always yields the same analysis.
func (a *Analyzer) Analyze(rawQuery string) core.QueryAnalysis {
	tokens := strings.Fields(rawQuery)
	keywords := similarity.Tokenize(rawQuery)
	entities := extractEntities(tokens)
	lowered := strings.ToLower(rawQuery)

	analysis := core.QueryAnalysis{
		Type:     classifyType(rawQuery, lowered, keywords),
		Entities: entities,
		Keywords: keywords,
		Intent:   detectIntent(lowered, entities, keywords),
		Domains:  detectDomains(lowered),
	}
	return analysis
}

// classifyType applies the lexical/semantic thresholds. Question form
// dominates the length heuristic when both match.
func classifyType(rawQuery, lowered string, keywords []string) core.QueryType {
	if strings.Contains(rawQuery, "?") || startsWithInterrogative(lowered) {
		return core.QuerySemanticHeavy
	}
	if len(keywords) > keywordHeavyThreshold {
		return core.QueryKeywordHeavy
	}
	return core.QueryBalanced
}

func startsWithInterrogative(lowered string) bool {
	for _, marker := range interrogatives {
		if strings.HasPrefix(lowered, marker) {
			return true
		}
	}
	return false
}

// detectIntent is pattern-based over the fixed marker sets. Trend and
// comparison markers take priority; specificFact requires entities plus a
// short keyword list; everything else is exploration.
func detectIntent(lowered string, entities, keywords []string) core.Intent {
	for _, marker := range trendMarkers {
		if containsMarker(lowered, marker) {
			return core.IntentTrendAnalysis
		}
	}
	for _, marker := range comparisonMarkers {
		if containsMarker(lowered, marker) {
			return core.IntentComparison
		}
	}
	if len(entities) > 0 && len(keywords) < specificFactKeywordLimit {
		return core.IntentSpecificFact
	}
	return core.IntentExploration
}

// containsMarker matches short Latin markers ("vs") on token boundaries so
// they cannot fire inside words like "investors"; longer markers match as
// substrings, which also covers agglutinated Korean forms.
func containsMarker(lowered, marker string) bool {
	if len(marker) <= 3 {
		for _, tok := range strings.Fields(lowered) {
			if strings.Trim(tok, ".,!?;:'\"-()[]{}") == marker {
				return true
			}
		}
		return false
	}
	return strings.Contains(lowered, marker)
}

func detectDomains(lowered string) []core.SourceKind {
	var domains []core.SourceKind
	for _, kind := range []core.SourceKind{core.SourceFinancial, core.SourceNews, core.SourceEvent} {
		for _, marker := range domainMarkers[kind] {
			if strings.Contains(lowered, marker) {
				domains = append(domains, kind)
				break
			}
		}
	}
	return domains
}

// extractEntities flags capitalized tokens as candidate entities. This is
// a heuristic, not true NER: the first token is included only if it stays
// capitalized past the sentence start convention.
func extractEntities(tokens []string) []string {
	var entities []string
	for _, tok := range tokens {
		cleaned := strings.Trim(tok, ".,!?;:'\"-()[]{}")
		runes := []rune(cleaned)
		if len(runes) < 2 {
			continue
		}
		if unicode.IsUpper(runes[0]) && !allUpper(runes) {
			entities = append(entities, cleaned)
		}
	}
	return entities
}

// allUpper reports whether every cased rune is uppercase (acronym form).
func allUpper(runes []rune) bool {
	sawLetter := false
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			continue
		}
		sawLetter = true
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return sawLetter
}
