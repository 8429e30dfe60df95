package search

import (
	"context"
	"errors"
	"hash/fnv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/rampart/ai/mock"
	"github.com/poiesic/rampart/core"
)

// bowEmbedder embeds text as a hashed bag of words so token overlap shows
// up as vector similarity, unlike the mock's content-hash default.
func bowEmbedder() *mock.MockEmbedder {
	embed := func(text string) []float32 {
		v := make([]float32, 64)
		for _, tok := range strings.Fields(strings.ToLower(text)) {
			h := fnv.New32a()
			h.Write([]byte(tok))
			v[h.Sum32()%64]++
		}
		return v
	}
	e := mock.NewMockEmbedder()
	e.EmbedTextFunc = func(_ context.Context, text string) ([]float32, error) {
		return embed(text), nil
	}
	return e
}

var corpusDocs = []core.Document{
	{Content: "삼성전자 반도체 부문 실적이 HBM 수요 증가로 개선되었다.", Source: core.SourceFinancial},
	{Content: "삼성전자 반도체 가격 상승 전망이 발표되었다.", Source: core.SourceNews},
	{Content: "현대차 전기차 판매가 유럽 시장에서 호조를 보였다.", Source: core.SourceNews},
	{Content: "국제 유가 하락으로 항공주가 강세를 보였다.", Source: core.SourceFinancial},
	{Content: "카카오 플랫폼 규제 이슈가 다시 부각되었다.", Source: core.SourceNews},
}

func newPopulatedCorpus(t *testing.T, embedder *mock.MockEmbedder) *MemoryCorpus {
	t.Helper()
	corpus := NewMemoryCorpus(embedder)
	require.NoError(t, corpus.Add(context.Background(), corpusDocs...))
	return corpus
}

// countingCorpus wraps a CorpusSearcher and counts Query invocations.
type countingCorpus struct {
	inner   CorpusSearcher
	queries int
}

func (c *countingCorpus) Query(ctx context.Context, q string, w core.WeightVector, limit int) ([]Candidate, error) {
	c.queries++
	return c.inner.Query(ctx, q, w, limit)
}

func (c *countingCorpus) KeywordOnly(ctx context.Context, q string, limit int) ([]Candidate, error) {
	return c.inner.KeywordOnly(ctx, q, limit)
}

// failingCorpus fails both retrieval paths.
type failingCorpus struct{}

func (failingCorpus) Query(context.Context, string, core.WeightVector, int) ([]Candidate, error) {
	return nil, errors.New("corpus unreachable")
}

func (failingCorpus) KeywordOnly(context.Context, string, int) ([]Candidate, error) {
	return nil, errors.New("corpus unreachable")
}

func TestAdaptiveSearchReturnsScoredResults(t *testing.T) {
	corpus := newPopulatedCorpus(t, bowEmbedder())
	r, err := NewRetriever(corpus)
	require.NoError(t, err)
	defer r.Close()

	results, err := r.AdaptiveSearch(context.Background(), "삼성전자 반도체 전망", Context{})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for _, res := range results {
		assert.NotZero(t, res.DocumentId)
		assert.Greater(t, res.Confidence, 0.0)
		assert.LessOrEqual(t, res.Confidence, 1.0)
		assert.LessOrEqual(t, len(res.Highlights), maxHighlights)
	}
	assert.Contains(t, results[0].Content, "삼성전자")
}

func TestAdaptiveSearchCacheHit(t *testing.T) {
	counting := &countingCorpus{inner: newPopulatedCorpus(t, bowEmbedder())}
	r, err := NewRetriever(counting)
	require.NoError(t, err)
	defer r.Close()

	ctx := context.Background()
	first, err := r.AdaptiveSearch(ctx, "반도체 가격", Context{})
	require.NoError(t, err)
	r.cache.wait()

	second, err := r.AdaptiveSearch(ctx, "반도체 가격", Context{})
	require.NoError(t, err)

	assert.Equal(t, 1, counting.queries, "second call must be served from cache")
	assert.Equal(t, first, second)

	// A different caller context is a different cache key.
	_, err = r.AdaptiveSearch(ctx, "반도체 가격", Context{Expert: true})
	require.NoError(t, err)
	assert.Equal(t, 2, counting.queries)
}

func TestAdaptiveSearchDegradesToKeywordOnly(t *testing.T) {
	embedder := bowEmbedder()
	corpus := newPopulatedCorpus(t, embedder)

	// Embedding breaks after ingestion; retrieval must still answer.
	embedder.EmbedTextFunc = func(context.Context, string) ([]float32, error) {
		return nil, errors.New("embedding provider down")
	}

	r, err := NewRetriever(corpus)
	require.NoError(t, err)
	defer r.Close()

	results, err := r.AdaptiveSearch(context.Background(), "삼성전자 반도체", Context{})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for _, res := range results {
		assert.Zero(t, res.Scores.Vector)
		assert.Greater(t, res.Scores.Keyword, 0.0)
	}
}

func TestAdaptiveSearchTotalFailure(t *testing.T) {
	r, err := NewRetriever(failingCorpus{})
	require.NoError(t, err)
	defer r.Close()

	_, err = r.AdaptiveSearch(context.Background(), "반도체", Context{})
	assert.ErrorIs(t, err, ErrRetrievalUnavailable)
}

func TestAdaptiveSearchExpertTriggersRerank(t *testing.T) {
	corpus := newPopulatedCorpus(t, bowEmbedder())
	r, err := NewRetriever(corpus)
	require.NoError(t, err)
	defer r.Close()

	results, err := r.AdaptiveSearch(context.Background(), "삼성전자 반도체 실적", Context{Expert: true})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	var reranked bool
	for _, res := range results {
		if res.Scores.Semantic > 0 {
			reranked = true
		}
	}
	assert.True(t, reranked, "expert context must populate semantic scores")
}

func TestAdaptiveSearchDiversityOverDuplicates(t *testing.T) {
	embedder := bowEmbedder()
	corpus := NewMemoryCorpus(embedder)
	require.NoError(t, corpus.Add(context.Background(),
		core.Document{Content: "삼성전자 HBM 반도체 가격 상승 전망 발표", Source: core.SourceNews},
		core.Document{Content: "삼성전자 HBM 반도체 가격 상승 전망 발표 기사", Source: core.SourceNews},
		core.Document{Content: "반도체 장비 수입 규제가 국내 가격에 영향", Source: core.SourceNews},
	))

	r, err := NewRetriever(corpus)
	require.NoError(t, err)
	defer r.Close()

	results, err := r.AdaptiveSearch(context.Background(), "반도체 가격", Context{})
	require.NoError(t, err)
	require.Len(t, results, 3)

	// The two near-duplicates must not occupy both top slots.
	assert.NotEqual(t, results[0].Content+" 기사", results[1].Content)
	assert.NotEqual(t, results[1].Content+" 기사", results[0].Content)
}

func TestAdaptiveSearchMonitorCallbacks(t *testing.T) {
	corpus := newPopulatedCorpus(t, bowEmbedder())
	r, err := NewRetriever(corpus)
	require.NoError(t, err)
	defer r.Close()

	monitor := &recordingMonitor{}
	_, err = r.AdaptiveSearchWithMonitor(context.Background(), "반도체 수출 trend", Context{}, monitor)
	require.NoError(t, err)

	assert.Equal(t, []string{"start", "analysis", "weights", "expansion", "corpus", "finish"}, monitor.stages)
	assert.Equal(t, core.IntentTrendAnalysis, monitor.analysis.Intent)
}

type recordingMonitor struct {
	stages   []string
	analysis core.QueryAnalysis
}

var _ SearchMonitor = (*recordingMonitor)(nil)

func (m *recordingMonitor) Start(_ string)    { m.stages = append(m.stages, "start") }
func (m *recordingMonitor) CacheHit(_ string) { m.stages = append(m.stages, "cache") }
func (m *recordingMonitor) AfterAnalysis(a core.QueryAnalysis) {
	m.stages = append(m.stages, "analysis")
	m.analysis = a
}
func (m *recordingMonitor) AfterWeights(_ core.WeightVector)    { m.stages = append(m.stages, "weights") }
func (m *recordingMonitor) AfterExpansion(_ string, _ []string) { m.stages = append(m.stages, "expansion") }
func (m *recordingMonitor) AfterCorpusQuery(_ int, _ bool)      { m.stages = append(m.stages, "corpus") }
func (m *recordingMonitor) AfterRerank(_ []core.SearchResult)   { m.stages = append(m.stages, "rerank") }
func (m *recordingMonitor) Finish(_ []core.SearchResult)        { m.stages = append(m.stages, "finish") }
