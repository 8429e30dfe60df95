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


// Package similarity provides the pure scoring primitives shared by the
// retrieval pipeline and the theme clusterer:
//
//   - Cosine similarity over embedding vectors
//   - Lexical keyword overlap scoring
//   - Weighted hybrid score combination
//   - Token-set Jaccard similarity for diversity selection
//
// All functions are deterministic, perform no I/O, and report degenerate
// input (empty or mismatched vectors, empty term lists) as a zero score
// rather than an error.
package similarity
