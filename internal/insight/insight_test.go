package insight

import (
	"fmt"
	"time"

	"github.com/localrank/insight-server/internal/scans"
	"github.com/localrank/insight-server/pkg/localrank"
)

func rank(v float64) *float64 { return &v }

// historyOf builds a history whose scans carry the given average ranks,
// most recent first, spaced a month apart.
func historyOf(name string, ranks ...*float64) scans.History {
	h := scans.History{Name: name}
	base := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	for i, r := range ranks {
		h.Scans = append(h.Scans, localrank.Scan{
			ID:           fmt.Sprintf("%s-%d", name, i),
			BusinessName: name,
			CreatedAt:    base.AddDate(0, 0, -30*i),
			AverageRank:  r,
		})
	}
	return h
}

// keywordResult builds a keyword result with an optional rank.
func keywordResult(keyword string, avg *float64) localrank.KeywordResult {
	return localrank.KeywordResult{Keyword: keyword, AverageRank: avg}
}
