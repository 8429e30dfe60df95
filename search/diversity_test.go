package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/rampart/core"
)

func result(id uint64, content string, combined float64) core.SearchResult {
	return core.SearchResult{
		DocumentId: core.ID(id),
		Content:    content,
		Scores:     core.Scores{Combined: combined},
	}
}

func TestSelectDiverseEmpty(t *testing.T) {
	assert.Empty(t, selectDiverse(nil, maxResults))
}

func TestSelectDiverseSeedsWithBest(t *testing.T) {
	results := []core.SearchResult{
		result(1, "삼성전자 반도체 수출 증가", 0.5),
		result(2, "현대차 전기차 판매 호조", 0.9),
		result(3, "카카오 플랫폼 규제 이슈", 0.7),
	}

	selected := selectDiverse(results, maxResults)
	require.NotEmpty(t, selected)
	assert.Equal(t, core.ID(2), selected[0].DocumentId)
	assert.Equal(t, 1.0, selected[0].Scores.Diversity)
}

func TestSelectDiverseDemotesNearDuplicates(t *testing.T) {
	// Two near-identical top results and one distinct lower-scored one.
	// MMR must rank the distinct result above the duplicate.
	results := []core.SearchResult{
		result(1, "삼성전자 HBM 반도체 가격 상승 전망 발표", 0.95),
		result(2, "삼성전자 HBM 반도체 가격 상승 전망 발표 기사", 0.93),
		result(3, "국제 유가 하락으로 항공주 강세", 0.60),
	}

	selected := selectDiverse(results, maxResults)
	require.Len(t, selected, 3)
	assert.Equal(t, core.ID(1), selected[0].DocumentId)
	assert.Equal(t, core.ID(3), selected[1].DocumentId, "distinct result outranks near-duplicate")
	assert.Equal(t, core.ID(2), selected[2].DocumentId)

	assert.Greater(t, selected[1].Scores.Diversity, selected[2].Scores.Diversity)
}

func TestSelectDiverseRespectsLimit(t *testing.T) {
	var results []core.SearchResult
	for i := 0; i < 30; i++ {
		results = append(results, result(uint64(i+1), uniqueContent(i), 0.9-float64(i)*0.01))
	}

	selected := selectDiverse(results, maxResults)
	assert.Len(t, selected, maxResults)
}

func uniqueContent(i int) string {
	subjects := []string{
		"반도체", "자동차", "철강", "조선", "화학", "바이오",
		"게임", "금융", "유통", "건설", "통신", "항공",
		"로봇", "배터리", "디스플레이", "엔터", "식품", "제약",
		"보험", "증권", "헬스케어", "소프트웨어", "여행", "에너지",
		"기계", "섬유", "광고", "물류", "교육", "농업",
	}
	return subjects[i%len(subjects)] + " 업종 동향 리포트"
}
