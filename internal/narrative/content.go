package narrative

import (
	"fmt"

	"github.com/localrank/insight-server/pkg/localrank"
)

// ContentSuggestion is one proposed content task tied to a keyword.
type ContentSuggestion struct {
	Keyword     string   `json:"keyword"`
	CurrentRank *float64 `json:"current_rank,omitempty"`
	Suggestion  string   `json:"suggestion"`
}

// MaxContentSuggestions caps the suggestion list per business.
const MaxContentSuggestions = 10

// SuggestContent proposes content work from a detail scan's keyword
// standings. Keywords already in the top 10 are left alone; the rest get
// a task sized to how far off page one they sit. Output follows the
// scan's keyword order and is capped at MaxContentSuggestions.
func SuggestContent(detail *localrank.Scan) []ContentSuggestion {
	if detail == nil {
		return nil
	}

	var out []ContentSuggestion
	for _, kr := range detail.KeywordResults {
		if len(out) >= MaxContentSuggestions {
			break
		}

		var suggestion string
		var rank *float64
		switch {
		case kr.AverageRank == nil || *kr.AverageRank == 0:
			suggestion = fmt.Sprintf("Create a dedicated service page for %q; the business has no presence for it yet", kr.Keyword)
		case *kr.AverageRank > 20:
			suggestion = fmt.Sprintf("Build a pillar page with supporting posts around %q to break into the top 20", kr.Keyword)
			rank = kr.AverageRank
		case *kr.AverageRank >= 11:
			suggestion = fmt.Sprintf("Refresh and expand the page targeting %q; it sits just off page one", kr.Keyword)
			rank = kr.AverageRank
		default:
			continue
		}

		out = append(out, ContentSuggestion{
			Keyword:     kr.Keyword,
			CurrentRank: rank,
			Suggestion:  suggestion,
		})
	}
	return out
}
