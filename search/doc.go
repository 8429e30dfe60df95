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


// Package search provides adaptive hybrid retrieval over a document corpus.
//
// The Retriever type implements a multi-stage pipeline that combines:
//   - Query analysis and expansion
//   - Weight adaptation from query type, caller context, and learned history
//   - Hybrid vector/keyword scoring via a pluggable corpus primitive
//   - Conditional cross-encoder-style reranking
//   - Maximal-marginal-relevance diversity selection
//
// Retrieval degrades to a keyword-only path when vector scoring is
// unavailable rather than failing the request.
package search
