// Package delta compares rank snapshots and classifies the movement.
package delta

import (
	"github.com/localrank/insight-server/pkg/localrank"
)

// Label is the direction of a rank change.
type Label string

const (
	Improved  Label = "improved"
	Declined  Label = "declined"
	Unchanged Label = "unchanged"
)

// RankChange is the comparison of two ranks. Delta is previous minus
// current, so a positive delta means the rank moved toward position 1.
type RankChange struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Delta float64 `json:"delta"`
	Label Label   `json:"label"`
}

// Compare computes the change between a previous and a current average
// rank. It returns nil when either rank is absent. Valid positions start
// at 1, so a rank of exactly 0 is treated as absent rather than as a
// comparable value.
func Compare(previous, current *float64) *RankChange {
	if previous == nil || current == nil {
		return nil
	}
	if *previous == 0 || *current == 0 {
		return nil
	}

	d := *previous - *current
	return &RankChange{
		From:  *previous,
		To:    *current,
		Delta: d,
		Label: labelFor(d),
	}
}

func labelFor(d float64) Label {
	switch {
	case d > 0:
		return Improved
	case d < 0:
		return Declined
	default:
		return Unchanged
	}
}

// KeywordChange pairs a keyword with its rank movement between two scans.
type KeywordChange struct {
	Keyword string `json:"keyword"`
	RankChange
}

// CompareKeywords matches keyword results between two scans by exact
// keyword string and computes the change for each match. Keywords present
// in only one scan are skipped, not reported as added or removed. Output
// follows the current scan's keyword order.
func CompareKeywords(previous, current []localrank.KeywordResult) []KeywordChange {
	prevRanks := make(map[string]*float64, len(previous))
	for i := range previous {
		prevRanks[previous[i].Keyword] = previous[i].AverageRank
	}

	var changes []KeywordChange
	for i := range current {
		prev, ok := prevRanks[current[i].Keyword]
		if !ok {
			continue
		}
		change := Compare(prev, current[i].AverageRank)
		if change == nil {
			continue
		}
		changes = append(changes, KeywordChange{
			Keyword:    current[i].Keyword,
			RankChange: *change,
		})
	}
	return changes
}
