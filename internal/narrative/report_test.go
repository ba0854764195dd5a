package narrative

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localrank/insight-server/internal/insight"
	"github.com/localrank/insight-server/pkg/localrank"
)

func rank(v float64) *float64 { return &v }

func detailScan(id string, created time.Time, avg *float64, results ...localrank.KeywordResult) *localrank.Scan {
	return &localrank.Scan{
		ID:             id,
		BusinessName:   "Acme Plumbing",
		CreatedAt:      created,
		AverageRank:    avg,
		KeywordResults: results,
	}
}

func TestShareLinksFor(t *testing.T) {
	t.Parallel()

	scan := &localrank.Scan{ShareToken: "tok123"}
	links := ShareLinksFor("https://app.localrank.so", scan)
	require.NotNil(t, links)
	assert.Equal(t, "https://app.localrank.so/share/tok123", links.ViewURL)
	assert.Equal(t, "https://app.localrank.so/share/tok123?embed=true", links.EmbedURL)

	// Trailing slash is normalized.
	links = ShareLinksFor("https://app.localrank.so/", scan)
	require.NotNil(t, links)
	assert.Equal(t, "https://app.localrank.so/share/tok123", links.ViewURL)

	// Empty base falls back to the default host.
	links = ShareLinksFor("", scan)
	require.NotNil(t, links)
	assert.Equal(t, DefaultShareBaseURL+"/share/tok123", links.ViewURL)

	assert.Nil(t, ShareLinksFor("https://app.localrank.so", &localrank.Scan{}))
	assert.Nil(t, ShareLinksFor("https://app.localrank.so", nil))
}

func TestBuildClientReport(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	latest := detailScan("s1", now, rank(9),
		localrank.KeywordResult{Keyword: "plumber near me", AverageRank: rank(7)},
		localrank.KeywordResult{Keyword: "water heater repair", AverageRank: rank(15)},
		localrank.KeywordResult{Keyword: "drain cleaning", AverageRank: rank(5)},
	)
	latest.ShareToken = "tok123"
	previous := detailScan("s2", now.AddDate(0, -1, 0), rank(14),
		localrank.KeywordResult{Keyword: "plumber near me", AverageRank: rank(12)},
		localrank.KeywordResult{Keyword: "water heater repair", AverageRank: rank(10)},
		localrank.KeywordResult{Keyword: "drain cleaning", AverageRank: rank(5)},
	)

	report := BuildClientReport("Acme Plumbing", insight.StatusImproving, 6, latest, previous, "https://app.localrank.so")

	assert.Equal(t, "Acme Plumbing", report.Business)
	assert.Equal(t, insight.StatusImproving, report.Status)
	assert.Equal(t, 6, report.TotalScans)
	assert.False(t, report.GeneratedAt.IsZero())

	require.NotNil(t, report.Overall)
	assert.InDelta(t, 5.0, report.Overall.Delta, 0.001)

	require.NotNil(t, report.Latest)
	assert.Equal(t, "s1", report.Latest.ScanID)
	assert.Equal(t, 3, report.Latest.Keywords)
	require.NotNil(t, report.Previous)
	assert.Equal(t, "s2", report.Previous.ScanID)

	require.Len(t, report.KeywordWins, 1)
	assert.Equal(t, "plumber near me", report.KeywordWins[0].Keyword)
	require.Len(t, report.KeywordDrops, 1)
	assert.Equal(t, "water heater repair", report.KeywordDrops[0].Keyword)
	require.Len(t, report.KeywordUnchanged, 1)
	assert.Equal(t, "drain cleaning", report.KeywordUnchanged[0].Keyword)

	require.NotNil(t, report.ShareLinks)
	assert.Equal(t, "https://app.localrank.so/share/tok123", report.ShareLinks.ViewURL)
}

func TestBuildClientReport_SingleScan(t *testing.T) {
	t.Parallel()

	latest := detailScan("s1", time.Now(), rank(22),
		localrank.KeywordResult{Keyword: "plumber near me", AverageRank: rank(22)})

	report := BuildClientReport("Acme Plumbing", insight.StatusNew, 1, latest, nil, "")

	assert.Nil(t, report.Previous)
	assert.Nil(t, report.Overall)
	assert.Empty(t, report.KeywordWins)
	assert.Empty(t, report.KeywordDrops)
	assert.Nil(t, report.ShareLinks)
}
