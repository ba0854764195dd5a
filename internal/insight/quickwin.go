package insight

import (
	"sort"

	"github.com/localrank/insight-server/pkg/localrank"
)

// QuickWin is a keyword ranked just off page one.
type QuickWin struct {
	Business           string  `json:"business"`
	Keyword            string  `json:"keyword"`
	CurrentRank        float64 `json:"current_rank"`
	PositionsToPageOne float64 `json:"positions_to_page_one"`
	Opportunity        string  `json:"opportunity"`
}

const (
	OpportunityHigh   = "High"
	OpportunityMedium = "Medium"
)

// Quick-win boundaries. Ranks 11-20 sit on page two of a typical results
// page; 15 or better is within easy reach of page one.
const (
	quickWinFloor     = 11.0
	quickWinCeiling   = 20.0
	quickWinHighBound = 15.0

	// MaxQuickWins caps the aggregated output across all businesses.
	MaxQuickWins = 20
)

// QuickWins collects page-two keywords from the given scan details,
// easiest first. Each element of details should be one business's most
// recent detail snapshot. Output sorts ascending by current rank and is
// capped at MaxQuickWins.
func QuickWins(details []localrank.Scan) []QuickWin {
	var wins []QuickWin
	for i := range details {
		scan := &details[i]
		for _, kr := range scan.KeywordResults {
			if kr.AverageRank == nil {
				continue
			}
			r := *kr.AverageRank
			if r < quickWinFloor || r > quickWinCeiling {
				continue
			}

			opportunity := OpportunityMedium
			if r <= quickWinHighBound {
				opportunity = OpportunityHigh
			}
			wins = append(wins, QuickWin{
				Business:           scan.BusinessName,
				Keyword:            kr.Keyword,
				CurrentRank:        r,
				PositionsToPageOne: r - 10,
				Opportunity:        opportunity,
			})
		}
	}

	sort.SliceStable(wins, func(a, b int) bool { return wins[a].CurrentRank < wins[b].CurrentRank })
	if len(wins) > MaxQuickWins {
		wins = wins[:MaxQuickWins]
	}
	return wins
}
