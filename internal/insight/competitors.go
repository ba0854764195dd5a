package insight

import (
	"strings"

	"github.com/localrank/insight-server/pkg/localrank"
)

// KeywordCompetitors lists the distinct competitor names seen for one
// keyword across a scan's grid.
type KeywordCompetitors struct {
	Keyword     string   `json:"keyword"`
	Competitors []string `json:"competitors"`
}

// Grid extraction caps: at most five names are read per grid point and at
// most five distinct names are kept per keyword.
const (
	maxCompetitorsPerPoint   = 5
	maxCompetitorsPerKeyword = 5
)

// Competitors extracts competitor names from a scan detail's positional
// grid. The subject business is excluded by case-insensitive name match;
// names are de-duplicated across each keyword's grid points. Keywords
// with no competitors are omitted.
func Competitors(scan *localrank.Scan) []KeywordCompetitors {
	var out []KeywordCompetitors
	for _, kr := range scan.KeywordResults {
		names := keywordCompetitors(scan.BusinessName, kr)
		if len(names) > 0 {
			out = append(out, KeywordCompetitors{Keyword: kr.Keyword, Competitors: names})
		}
	}
	return out
}

func keywordCompetitors(subject string, kr localrank.KeywordResult) []string {
	seen := make(map[string]bool)
	var names []string

	for _, point := range kr.GridPoints {
		taken := 0
		for _, res := range point.Results {
			if len(names) >= maxCompetitorsPerKeyword {
				return names
			}
			if taken >= maxCompetitorsPerPoint {
				break
			}
			if res.Name == "" || strings.EqualFold(res.Name, subject) {
				continue
			}
			key := strings.ToLower(res.Name)
			if seen[key] {
				continue
			}
			seen[key] = true
			names = append(names, res.Name)
			taken++
		}
	}
	return names
}
