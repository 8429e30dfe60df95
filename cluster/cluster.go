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


package cluster

import (
	"log/slog"
	"sort"

	"github.com/poiesic/rampart/core"
	"github.com/poiesic/rampart/similarity"
)

// Grouping is the outcome of one clustering run. Items that never joined a
// cluster are counted, not dropped.
type Grouping struct {
	Clusters    []core.ThemeCluster
	Unclustered int
}

// Clusterer groups scored items by embedding similarity using a greedy
// single-pass O(n²) sweep. The sweep is intentionally not hierarchical or
// iterative; it trades optimality for speed and predictability.
type Clusterer struct {
	logger *slog.Logger
}

// Option configures a Clusterer.
type Option func(*Clusterer) error

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Clusterer) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger.With("component", "cluster")
		return nil
	}
}

// NewClusterer creates a Clusterer.
func NewClusterer(opts ...Option) (*Clusterer, error) {
	c := &Clusterer{logger: slog.Default().With("component", "cluster")}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Cluster sweeps items once in score order. Each unused item seeds a
// candidate cluster; every other unused item at or above the similarity
// threshold joins it. The cluster forms only when it reaches minSize,
// otherwise the seed stays available, both as a candidate for later seeds
// and to be absorbed by a later cluster. The highest-scored member of a
// formed cluster is the representative.
func (c *Clusterer) Cluster(items []core.ThemeItem, threshold float64, minSize int) (Grouping, error) {
	if threshold < 0 || threshold > 1 {
		return Grouping{}, ErrInvalidThreshold
	}
	if minSize < 1 {
		return Grouping{}, ErrInvalidMinSize
	}

	sorted := make([]core.ThemeItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	used := make([]bool, len(sorted))
	var grouping Grouping

	for i := range sorted {
		if used[i] {
			continue
		}
		seed := sorted[i]
		if len(seed.Vector) == 0 {
			grouping.Unclustered++
			used[i] = true
			continue
		}

		memberIdxs := []int{i}
		for j := range sorted {
			if j == i || used[j] || len(sorted[j].Vector) == 0 {
				continue
			}
			if similarity.Cosine(seed.Vector, sorted[j].Vector) >= threshold {
				memberIdxs = append(memberIdxs, j)
			}
		}

		if len(memberIdxs) < minSize {
			// The seed stays unused; a later seed may still absorb it.
			continue
		}

		// A passed-over earlier seed can join here, so the seed is not
		// guaranteed to be the highest-scored member.
		sort.Ints(memberIdxs)
		members := make([]core.ClusterMember, 0, len(memberIdxs))
		total := 0.0
		for _, j := range memberIdxs {
			sim := 1.0
			if j != i {
				sim = similarity.Cosine(seed.Vector, sorted[j].Vector)
			}
			members = append(members, core.ClusterMember{Item: sorted[j], Similarity: sim})
			total += sorted[j].Score
			used[j] = true
		}

		grouping.Clusters = append(grouping.Clusters, core.ThemeCluster{
			Representative: sorted[memberIdxs[0]],
			Members:        members,
			Size:           len(members),
			AverageScore:   total / float64(len(members)),
		})
	}

	for i := range sorted {
		if !used[i] {
			grouping.Unclustered++
		}
	}

	c.logger.Debug("clustering completed",
		"items", len(items),
		"clusters", len(grouping.Clusters),
		"unclustered", grouping.Unclustered)
	return grouping, nil
}
