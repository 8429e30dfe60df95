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


// Package query analyzes raw search queries and expands them with related
// terms before retrieval.
//
// The Analyzer derives a deterministic feature set from the query text:
// keyword/entity extraction, a lexical-vs-semantic classification, intent
// detection over a fixed multilingual marker set, and independent domain
// flags. The Expander produces a bounded, deduplicated list of expansion
// terms from injectable lookup tables (synonyms, domain terms, acronyms,
// related concepts) plus temporal markers for trend queries. Expansions are
// additive hints appended to the original query, never replacements.
package query
