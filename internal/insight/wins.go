package insight

import (
	"sort"
	"time"

	"github.com/localrank/insight-server/internal/delta"
	"github.com/localrank/insight-server/internal/scans"
)

// WinStory is the single best improvement in one business's history.
type WinStory struct {
	Business    string    `json:"business"`
	FromRank    float64   `json:"from_rank"`
	ToRank      float64   `json:"to_rank"`
	Improvement float64   `json:"improvement"`
	FromDate    time.Time `json:"from_date"`
	ToDate      time.Time `json:"to_date"`
}

// DefaultWinStoryLimit caps win stories when the caller does not ask for
// a specific count.
const DefaultWinStoryLimit = 5

// BestWins walks each history's adjacent scan pairs from newest to oldest
// and keeps the largest positive improvement per business. Businesses that
// never improved contribute nothing. Results sort descending by
// improvement magnitude; a non-positive limit falls back to the default.
func BestWins(groups []scans.History, limit int) []WinStory {
	if limit <= 0 {
		limit = DefaultWinStoryLimit
	}

	var stories []WinStory
	for i := range groups {
		h := &groups[i]

		var best *WinStory
		for j := 0; j+1 < len(h.Scans); j++ {
			curr, prev := &h.Scans[j], &h.Scans[j+1]
			change := delta.Compare(prev.AverageRank, curr.AverageRank)
			if change == nil || change.Delta <= 0 {
				continue
			}
			if best == nil || change.Delta > best.Improvement {
				best = &WinStory{
					Business:    h.Name,
					FromRank:    change.From,
					ToRank:      change.To,
					Improvement: change.Delta,
					FromDate:    prev.CreatedAt,
					ToDate:      curr.CreatedAt,
				}
			}
		}
		if best != nil {
			stories = append(stories, *best)
		}
	}

	sort.SliceStable(stories, func(a, b int) bool {
		return stories[a].Improvement > stories[b].Improvement
	})
	if len(stories) > limit {
		stories = stories[:limit]
	}
	return stories
}
