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

import "errors"

var (
	// ErrCorpusRequired is returned when a corpus searcher is not provided.
	ErrCorpusRequired = errors.New("corpus searcher required")

	// ErrVectorUnavailable signals that embedding-based scoring cannot run.
	// The retriever degrades to keyword-only retrieval on this error.
	ErrVectorUnavailable = errors.New("vector scoring unavailable")

	// ErrRetrievalUnavailable is returned when both the hybrid and the
	// keyword-only corpus paths failed.
	ErrRetrievalUnavailable = errors.New("retrieval unavailable")
)
