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


package search

import (
	"strings"

	"github.com/poiesic/rampart/similarity"
)

// Recombination weights after reranking.
const (
	rerankVectorWeight   = 0.3
	rerankKeywordWeight  = 0.2
	rerankSemanticWeight = 0.5
)

// Reranker computes a semantic relevance score for one result.
// Scores must fall in [0, 1].
type Reranker interface {
	Score(query, content string) float64
}

// overlapReranker is the default cross-encoder-style heuristic: token
// overlap with a position-weighted bonus for matches appearing early in
// the content.
type overlapReranker struct{}

var _ Reranker = (*overlapReranker)(nil)

func (overlapReranker) Score(query, content string) float64 {
	queryTokens := similarity.Tokenize(query)
	if len(queryTokens) == 0 {
		return 0
	}
	contentTokens := similarity.Tokenize(strings.ToLower(content))
	if len(contentTokens) == 0 {
		return 0
	}

	positions := make(map[string]int, len(contentTokens))
	for i, tok := range contentTokens {
		if _, seen := positions[tok]; !seen {
			positions[tok] = i
		}
	}

	var score float64
	for _, tok := range queryTokens {
		pos, ok := positions[tok]
		if !ok {
			continue
		}
		// Full credit for a match, plus up to 50% extra when it appears
		// near the start of the content.
		bonus := 0.5 * (1 - float64(pos)/float64(len(contentTokens)))
		score += 1 + bonus
	}

	// Normalize against the best case: every query token matched at
	// position zero.
	score /= float64(len(queryTokens)) * 1.5
	if score > 1 {
		score = 1
	}
	return score
}
