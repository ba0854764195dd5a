package insight

import (
	"fmt"
	"sort"

	"github.com/localrank/insight-server/internal/delta"
	"github.com/localrank/insight-server/internal/scans"
)

// RiskAssessment is the additive churn heuristic for one business.
type RiskAssessment struct {
	Business    string   `json:"business"`
	RiskScore   int      `json:"risk_score"`
	Factors     []string `json:"factors"`
	AverageRank *float64 `json:"average_rank,omitempty"`
	ScanCount   int      `json:"scan_count"`
}

// Risk factor weights. Factors contribute independently, so adding a
// qualifying factor can only raise the score.
const (
	riskPointsRecentDrop = 3
	riskPointsPoorRank   = 2
	riskPointsSingleScan = 1

	riskDropThreshold = 2.0
	riskRankThreshold = 15.0
)

// AssessRisk scores each history and returns the at-risk businesses
// sorted descending by score. Zero-score businesses are left out; ties
// keep encounter order.
func AssessRisk(groups []scans.History) []RiskAssessment {
	var out []RiskAssessment
	for i := range groups {
		h := &groups[i]
		latest := h.Latest()
		if latest == nil {
			continue
		}

		a := RiskAssessment{
			Business:    h.Name,
			ScanCount:   len(h.Scans),
			AverageRank: latest.AverageRank,
		}

		if prev := h.Previous(); prev != nil {
			change := delta.Compare(prev.AverageRank, latest.AverageRank)
			if change != nil && change.Delta < -riskDropThreshold {
				a.RiskScore += riskPointsRecentDrop
				a.Factors = append(a.Factors,
					fmt.Sprintf("rank dropped %.1f positions since the last scan", -change.Delta))
			}
		}
		if latest.AverageRank != nil && *latest.AverageRank > riskRankThreshold {
			a.RiskScore += riskPointsPoorRank
			a.Factors = append(a.Factors,
				fmt.Sprintf("average rank %.1f is outside the top %.0f", *latest.AverageRank, riskRankThreshold))
		}
		if len(h.Scans) == 1 {
			a.RiskScore += riskPointsSingleScan
			a.Factors = append(a.Factors, "only one scan on record")
		}

		if a.RiskScore == 0 {
			continue
		}
		out = append(out, a)
	}

	sort.SliceStable(out, func(a, b int) bool { return out[a].RiskScore > out[b].RiskScore })
	return out
}
