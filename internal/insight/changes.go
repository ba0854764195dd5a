package insight

import (
	"sort"

	"github.com/localrank/insight-server/internal/delta"
	"github.com/localrank/insight-server/internal/scans"
)

// ChangeFilter selects which ranking movements to report.
type ChangeFilter string

const (
	FilterAll   ChangeFilter = "all"
	FilterWins  ChangeFilter = "wins"
	FilterDrops ChangeFilter = "drops"
)

// ValidChangeFilter reports whether f is a recognized filter value.
func ValidChangeFilter(f ChangeFilter) bool {
	return f == FilterAll || f == FilterWins || f == FilterDrops
}

// RankingChange is one business's movement between its two latest scans.
type RankingChange struct {
	Business     string      `json:"business"`
	PreviousRank float64     `json:"previous_rank"`
	CurrentRank  float64     `json:"current_rank"`
	Change       float64     `json:"change"`
	Status       delta.Label `json:"status"`
}

// RankingChanges computes each business's latest movement, drops the
// unchanged, applies the filter, and sorts ascending by signed change so
// the steepest decline comes first.
func RankingChanges(groups []scans.History, filter ChangeFilter) []RankingChange {
	var out []RankingChange
	for i := range groups {
		h := &groups[i]
		prev := h.Previous()
		if prev == nil {
			continue
		}

		change := delta.Compare(prev.AverageRank, h.Latest().AverageRank)
		if change == nil || change.Delta == 0 {
			continue
		}
		switch filter {
		case FilterWins:
			if change.Delta <= 0 {
				continue
			}
		case FilterDrops:
			if change.Delta >= 0 {
				continue
			}
		}

		out = append(out, RankingChange{
			Business:     h.Name,
			PreviousRank: change.From,
			CurrentRank:  change.To,
			Change:       change.Delta,
			Status:       change.Label,
		})
	}

	sort.SliceStable(out, func(a, b int) bool { return out[a].Change < out[b].Change })
	return out
}
