package insight

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localrank/insight-server/pkg/localrank"
)

func gridPoint(names ...string) localrank.GridPoint {
	p := localrank.GridPoint{Lat: 40.0, Lng: -75.0}
	for i, n := range names {
		p.Results = append(p.Results, localrank.PlaceResult{Name: n, Rank: i + 1})
	}
	return p
}

func TestCompetitors_ExcludesSubjectAndDedupes(t *testing.T) {
	t.Parallel()

	scan := localrank.Scan{
		BusinessName: "Acme Plumbing",
		KeywordResults: []localrank.KeywordResult{
			{
				Keyword: "plumber near me",
				GridPoints: []localrank.GridPoint{
					gridPoint("ACME PLUMBING", "Drain Kings", "Pipe Pros"),
					gridPoint("Drain Kings", "Flow Masters", "acme plumbing"),
				},
			},
		},
	}

	out := Competitors(&scan)
	require.Len(t, out, 1)
	assert.Equal(t, "plumber near me", out[0].Keyword)
	assert.Equal(t, []string{"Drain Kings", "Pipe Pros", "Flow Masters"}, out[0].Competitors)
}

func TestCompetitors_CapsPerKeyword(t *testing.T) {
	t.Parallel()

	var names []string
	for i := 0; i < 4; i++ {
		names = append(names, fmt.Sprintf("Competitor %d", i))
	}
	var more []string
	for i := 4; i < 9; i++ {
		more = append(more, fmt.Sprintf("Competitor %d", i))
	}

	scan := localrank.Scan{
		BusinessName: "Acme Plumbing",
		KeywordResults: []localrank.KeywordResult{
			{
				Keyword: "plumber near me",
				GridPoints: []localrank.GridPoint{
					gridPoint(names...),
					gridPoint(more...),
				},
			},
		},
	}

	out := Competitors(&scan)
	require.Len(t, out, 1)
	assert.Len(t, out[0].Competitors, maxCompetitorsPerKeyword)
	assert.Equal(t, "Competitor 4", out[0].Competitors[4])
}

func TestCompetitors_CapsPerGridPoint(t *testing.T) {
	t.Parallel()

	var crowded []string
	for i := 0; i < 9; i++ {
		crowded = append(crowded, fmt.Sprintf("Name %d", i))
	}

	scan := localrank.Scan{
		BusinessName: "Acme Plumbing",
		KeywordResults: []localrank.KeywordResult{
			{Keyword: "plumber near me", GridPoints: []localrank.GridPoint{gridPoint(crowded...)}},
		},
	}

	out := Competitors(&scan)
	require.Len(t, out, 1)
	assert.Len(t, out[0].Competitors, maxCompetitorsPerPoint)
}

func TestCompetitors_OmitsEmptyKeywords(t *testing.T) {
	t.Parallel()

	scan := localrank.Scan{
		BusinessName: "Acme Plumbing",
		KeywordResults: []localrank.KeywordResult{
			{Keyword: "only us", GridPoints: []localrank.GridPoint{gridPoint("Acme Plumbing")}},
			{Keyword: "no grid"},
		},
	}

	assert.Empty(t, Competitors(&scan))
}
