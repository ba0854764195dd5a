package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/localrank/insight-server/internal/insight"
	"github.com/localrank/insight-server/pkg/localrank"
)

func TestPortfolioSummary_AcmeImproving(t *testing.T) {
	t.Parallel()

	api := &mockAPI{}
	api.On("ListScans", mock.Anything, testCred, localrank.ListScansOptions{Limit: maxScanPage}).
		Return(acmeScans(), nil)

	svc := NewService(api, Options{})
	env := svc.Invoke(context.Background(), "portfolio_summary", testCred, nil)

	require.True(t, env.OK)
	summary, ok := env.Result.(insight.PortfolioSummary)
	require.True(t, ok)
	assert.Equal(t, 1, summary.TotalBusinesses)
	assert.Equal(t, 2, summary.TotalScans)
	require.Len(t, summary.Entries, 1)
	assert.Equal(t, "Acme Plumbing", summary.Entries[0].Business)
	assert.Equal(t, insight.StatusImproving, summary.Entries[0].Status)
	assert.Equal(t, 1, summary.StatusCounts[insight.StatusImproving])
}

func TestPortfolioSummary_SingleScanIsNew(t *testing.T) {
	t.Parallel()

	api := &mockAPI{}
	api.On("ListScans", mock.Anything, testCred, mock.Anything).
		Return([]localrank.Scan{scanAt("s1", "Bella Cafe", rank(22), 2)}, nil)

	svc := NewService(api, Options{})
	env := svc.Invoke(context.Background(), "portfolio_summary", testCred, nil)

	require.True(t, env.OK)
	summary := env.Result.(insight.PortfolioSummary)
	require.Len(t, summary.Entries, 1)
	assert.Equal(t, insight.StatusNew, summary.Entries[0].Status)
}

func TestGetRankingChanges_AcmeWin(t *testing.T) {
	t.Parallel()

	api := &mockAPI{}
	api.On("ListScans", mock.Anything, testCred, mock.Anything).Return(acmeScans(), nil)

	svc := NewService(api, Options{})
	env := svc.Invoke(context.Background(), "get_ranking_changes", testCred, nil)

	require.True(t, env.OK)
	result := env.Result.(map[string]any)
	changes := result["changes"].([]insight.RankingChange)
	require.Len(t, changes, 1)
	assert.Equal(t, "Acme Plumbing", changes[0].Business)
	assert.InDelta(t, 5.0, changes[0].Change, 0.001)
	assert.Equal(t, "improved", string(changes[0].Status))
}

func TestGetRankingChanges_FilterValidation(t *testing.T) {
	t.Parallel()

	svc := NewService(&mockAPI{}, Options{})
	env := svc.Invoke(context.Background(), "get_ranking_changes", testCred, Args{"type": "sideways"})

	assert.False(t, env.OK)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeInvalidArguments, env.Error.Code)
	assert.Contains(t, env.Error.Message, "wins, drops, all")
}

func TestGetRankingChanges_DropsOnly(t *testing.T) {
	t.Parallel()

	page := append(acmeScans(),
		scanAt("s-bella-2", "Bella Cafe", rank(18), 1),
		scanAt("s-bella-1", "Bella Cafe", rank(12), 31),
	)

	api := &mockAPI{}
	api.On("ListScans", mock.Anything, testCred, mock.Anything).Return(page, nil)

	svc := NewService(api, Options{})
	env := svc.Invoke(context.Background(), "get_ranking_changes", testCred, Args{"type": "drops"})

	require.True(t, env.OK)
	changes := env.Result.(map[string]any)["changes"].([]insight.RankingChange)
	require.Len(t, changes, 1)
	assert.Equal(t, "Bella Cafe", changes[0].Business)
	assert.InDelta(t, -6.0, changes[0].Change, 0.001)
}

func TestGetWinStories_LimitApplied(t *testing.T) {
	t.Parallel()

	page := append(acmeScans(),
		scanAt("s-bella-2", "Bella Cafe", rank(5), 1),
		scanAt("s-bella-1", "Bella Cafe", rank(15), 31),
	)

	api := &mockAPI{}
	api.On("ListScans", mock.Anything, testCred, mock.Anything).Return(page, nil)

	svc := NewService(api, Options{})
	env := svc.Invoke(context.Background(), "get_win_stories", testCred, Args{"limit": float64(1)})

	require.True(t, env.OK)
	stories := env.Result.(map[string]any)["stories"].([]insight.WinStory)
	require.Len(t, stories, 1)
	// Bella improved by 10, Acme by 5; the bigger win survives the cap.
	assert.Equal(t, "Bella Cafe", stories[0].Business)
	assert.InDelta(t, 10.0, stories[0].Improvement, 0.001)
}

func TestGetAtRiskClients_SingleScanPoorRank(t *testing.T) {
	t.Parallel()

	api := &mockAPI{}
	api.On("ListScans", mock.Anything, testCred, mock.Anything).
		Return([]localrank.Scan{scanAt("s1", "Bella Cafe", rank(22), 2)}, nil)

	svc := NewService(api, Options{})
	env := svc.Invoke(context.Background(), "get_at_risk_clients", testCred, nil)

	require.True(t, env.OK)
	atRisk := env.Result.(map[string]any)["at_risk"].([]insight.RiskAssessment)
	require.Len(t, atRisk, 1)
	assert.Equal(t, "Bella Cafe", atRisk[0].Business)
	assert.GreaterOrEqual(t, atRisk[0].RiskScore, 3)
}

func TestFindQuickWins_RankBand(t *testing.T) {
	t.Parallel()

	scan := scanAt("s-acme-2", "Acme Plumbing", rank(16), 1)
	detail := detailOf(scan,
		kwResult("plumber near me", rank(9)),
		kwResult("emergency plumber", rank(12)),
		kwResult("drain cleaning", rank(18)),
		kwResult("water heater repair", rank(25)),
	)

	api := &mockAPI{}
	api.On("ListScans", mock.Anything, testCred, mock.Anything).Return([]localrank.Scan{scan}, nil)
	api.On("GetScan", mock.Anything, testCred, "s-acme-2").Return(detail, nil)

	svc := NewService(api, Options{})
	env := svc.Invoke(context.Background(), "find_quick_wins", testCred, nil)

	require.True(t, env.OK)
	wins := env.Result.(map[string]any)["quick_wins"].([]insight.QuickWin)
	require.Len(t, wins, 2)
	assert.Equal(t, "emergency plumber", wins[0].Keyword)
	assert.InDelta(t, 2.0, wins[0].PositionsToPageOne, 0.001)
	assert.Equal(t, insight.OpportunityHigh, wins[0].Opportunity)
	assert.Equal(t, "drain cleaning", wins[1].Keyword)
	assert.Equal(t, insight.OpportunityMedium, wins[1].Opportunity)
}

func TestFindQuickWins_BusinessFilter(t *testing.T) {
	t.Parallel()

	acme := scanAt("s-acme-2", "Acme Plumbing", rank(16), 1)
	bella := scanAt("s-bella-1", "Bella Cafe", rank(13), 2)

	api := &mockAPI{}
	api.On("ListScans", mock.Anything, testCred, mock.Anything).
		Return([]localrank.Scan{acme, bella}, nil)
	api.On("GetScan", mock.Anything, testCred, "s-bella-1").
		Return(detailOf(bella, kwResult("cafe near me", rank(13))), nil)

	svc := NewService(api, Options{})
	env := svc.Invoke(context.Background(), "find_quick_wins", testCred, Args{"business_name": "bella"})

	require.True(t, env.OK)
	wins := env.Result.(map[string]any)["quick_wins"].([]insight.QuickWin)
	require.Len(t, wins, 1)
	assert.Equal(t, "Bella Cafe", wins[0].Business)
	// Only the matched business is detail-fetched.
	api.AssertNotCalled(t, "GetScan", mock.Anything, testCred, "s-acme-2")
}

func TestFindQuickWins_NoMatchIsGuidanceNotError(t *testing.T) {
	t.Parallel()

	api := &mockAPI{}
	api.On("ListScans", mock.Anything, testCred, mock.Anything).Return(acmeScans(), nil)

	svc := NewService(api, Options{})
	env := svc.Invoke(context.Background(), "find_quick_wins", testCred, Args{"business_name": "nowhere"})

	require.True(t, env.OK)
	miss, ok := env.Result.(noMatchResult)
	require.True(t, ok)
	assert.False(t, miss.Matched)
	assert.Contains(t, miss.Hint, "nowhere")
	assert.Equal(t, []string{"Acme Plumbing"}, miss.KnownBusinesses)
}
