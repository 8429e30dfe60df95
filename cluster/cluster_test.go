package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/rampart/core"
)

func item(id uint64, name string, score float64, vector []float32) core.ThemeItem {
	return core.ThemeItem{Id: core.ID(id), Name: name, Score: score, Vector: vector}
}

func newTestClusterer(t *testing.T) *Clusterer {
	t.Helper()
	c, err := NewClusterer()
	require.NoError(t, err)
	return c
}

func TestClusterGroupsSimilarItems(t *testing.T) {
	c := newTestClusterer(t)

	// Two orthogonal themes.
	semis := []float32{1, 0, 0}
	semisNear := []float32{0.95, 0.05, 0}
	autos := []float32{0, 1, 0}
	autosNear := []float32{0, 0.9, 0.1}

	grouping, err := c.Cluster([]core.ThemeItem{
		item(1, "반도체 수출", 0.9, semis),
		item(2, "반도체 가격", 0.8, semisNear),
		item(3, "전기차 판매", 0.85, autos),
		item(4, "자동차 수출", 0.7, autosNear),
	}, 0.8, 2)
	require.NoError(t, err)

	require.Len(t, grouping.Clusters, 2)
	assert.Zero(t, grouping.Unclustered)

	first := grouping.Clusters[0]
	assert.Equal(t, "반도체 수출", first.Representative.Name, "highest score is representative")
	assert.Equal(t, 2, first.Size)
	assert.InDelta(t, 0.85, first.AverageScore, 1e-9)
	assert.Equal(t, 1.0, first.Members[0].Similarity)
	assert.GreaterOrEqual(t, first.Members[1].Similarity, 0.8)
}

func TestClusterBelowMinSizeStaysUnclustered(t *testing.T) {
	c := newTestClusterer(t)

	grouping, err := c.Cluster([]core.ThemeItem{
		item(1, "반도체", 0.9, []float32{1, 0}),
		item(2, "항공", 0.8, []float32{0, 1}),
	}, 0.8, 2)
	require.NoError(t, err)

	assert.Empty(t, grouping.Clusters)
	assert.Equal(t, 2, grouping.Unclustered)
}

func TestClusterCandidatesSurviveFailedSeed(t *testing.T) {
	c := newTestClusterer(t)

	// The top-scored item matches nothing; the two below it match each
	// other and must still form a cluster.
	grouping, err := c.Cluster([]core.ThemeItem{
		item(1, "고립", 0.95, []float32{0, 0, 1}),
		item(2, "반도체 가격", 0.9, []float32{1, 0, 0}),
		item(3, "반도체 수출", 0.8, []float32{0.97, 0.03, 0}),
	}, 0.85, 2)
	require.NoError(t, err)

	require.Len(t, grouping.Clusters, 1)
	assert.Equal(t, "반도체 가격", grouping.Clusters[0].Representative.Name)
	assert.Equal(t, 1, grouping.Unclustered)
}

func TestClusterFailedSeedJoinsLaterCluster(t *testing.T) {
	c := newTestClusterer(t)

	// Unit vectors at 35, 0, -35 and -20 degrees; cosine threshold 0.8 is
	// roughly a 37-degree cone. The top-scored item only reaches the second
	// one, so it cannot form a cluster of three itself, but the second item
	// reaches all of them and must absorb the passed-over top item.
	grouping, err := c.Cluster([]core.ThemeItem{
		item(1, "반도체 수출", 0.95, []float32{0.8192, 0.5736}),
		item(2, "반도체 가격", 0.9, []float32{1, 0}),
		item(3, "반도체 장비", 0.8, []float32{0.8192, -0.5736}),
		item(4, "반도체 소재", 0.7, []float32{0.9397, -0.3420}),
	}, 0.8, 3)
	require.NoError(t, err)

	require.Len(t, grouping.Clusters, 1)
	assert.Zero(t, grouping.Unclustered)

	got := grouping.Clusters[0]
	assert.Equal(t, 4, got.Size)
	assert.Equal(t, "반도체 수출", got.Representative.Name, "highest score is representative")
	assert.Equal(t, "반도체 수출", got.Members[0].Item.Name)
	assert.Less(t, got.Members[0].Similarity, 1.0, "absorbed item is scored against the seed")
	assert.Equal(t, 1.0, got.Members[1].Similarity, "seed keeps similarity 1")
}

func TestClusterItemsWithoutVectors(t *testing.T) {
	c := newTestClusterer(t)

	grouping, err := c.Cluster([]core.ThemeItem{
		item(1, "임베딩 없음", 0.9, nil),
		item(2, "반도체", 0.8, []float32{1, 0}),
		item(3, "반도체 근접", 0.7, []float32{0.99, 0.01}),
	}, 0.9, 2)
	require.NoError(t, err)

	require.Len(t, grouping.Clusters, 1)
	assert.Equal(t, 1, grouping.Unclustered)
}

func TestClusterEmptyInput(t *testing.T) {
	c := newTestClusterer(t)

	grouping, err := c.Cluster(nil, 0.8, 2)
	require.NoError(t, err)
	assert.Empty(t, grouping.Clusters)
	assert.Zero(t, grouping.Unclustered)
}

func TestClusterValidation(t *testing.T) {
	c := newTestClusterer(t)

	_, err := c.Cluster(nil, -0.1, 2)
	assert.ErrorIs(t, err, ErrInvalidThreshold)
	_, err = c.Cluster(nil, 1.1, 2)
	assert.ErrorIs(t, err, ErrInvalidThreshold)
	_, err = c.Cluster(nil, 0.8, 0)
	assert.ErrorIs(t, err, ErrInvalidMinSize)
}
