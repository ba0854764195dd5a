package insight

import (
	"fmt"

	"github.com/localrank/insight-server/internal/delta"
	"github.com/localrank/insight-server/internal/scans"
)

// Recommendation is one suggested next step for a business. Action and
// Priority come from the playbook; Reason carries the numbers that
// triggered the rule.
type Recommendation struct {
	Action   string `json:"action"`
	Priority string `json:"priority"`
	Reason   string `json:"reason"`
}

// Signals are the inputs the recommendation rules evaluate, derived from
// one business's history plus an optional campaign lookup.
type Signals struct {
	// AverageRank is the latest scan's average rank, nil when absent or
	// reported as zero.
	AverageRank *float64
	// KeywordCount is the size of the latest tracked keyword set.
	KeywordCount int
	// HasReviewCampaign is supplied by the caller; the lookup is an
	// auxiliary fetch whose failure counts as no campaign.
	HasReviewCampaign bool
	// GainGivenBack is set when the history shows an improvement that the
	// latest scan reversed by more than the recovery threshold.
	GainGivenBack bool
	// SlipMagnitude is how many positions the latest scan gave back.
	SlipMagnitude float64
}

// Rule thresholds over the latest average rank and keyword set.
const (
	flagshipRankThreshold  = 10.0
	authorityRankFloor     = 5.0
	contentRankThreshold   = 7.0
	maintenanceRankCeiling = 5.0
	recoverySlipThreshold  = 2.0
	minTrackedKeywords     = 5
)

// SignalsFrom derives rule inputs from a history. hasCampaign comes from
// the caller's campaign lookup.
func SignalsFrom(h *scans.History, hasCampaign bool) Signals {
	s := Signals{HasReviewCampaign: hasCampaign}
	latest := h.Latest()
	if latest == nil {
		return s
	}

	if latest.AverageRank != nil && *latest.AverageRank != 0 {
		s.AverageRank = latest.AverageRank
	}
	s.KeywordCount = len(latest.Keywords)
	if len(latest.KeywordResults) > s.KeywordCount {
		s.KeywordCount = len(latest.KeywordResults)
	}

	// Recovery signal: a gain between the third and second most recent
	// scans that the latest scan reversed past the threshold.
	if len(h.Scans) >= 3 {
		gained := delta.Compare(h.Scans[2].AverageRank, h.Scans[1].AverageRank)
		slipped := delta.Compare(h.Scans[1].AverageRank, h.Scans[0].AverageRank)
		if gained != nil && gained.Delta > 0 && slipped != nil && slipped.Delta < -recoverySlipThreshold {
			s.GainGivenBack = true
			s.SlipMagnitude = -slipped.Delta
		}
	}
	return s
}

// Recommend runs the decision table over the signals. Rules fire
// independently and several can apply to the same business; this is a
// checklist, not a single verdict. Maintenance is the exception: it fires
// alone, only when nothing else did and the rank is already strong.
func (p *Playbook) Recommend(s Signals) []Recommendation {
	var recs []Recommendation

	if s.AverageRank != nil {
		r := *s.AverageRank
		if r > flagshipRankThreshold {
			recs = append(recs, p.Flagship.with(
				fmt.Sprintf("average rank %.1f is off page one", r)))
		}
		if r > authorityRankFloor && r <= flagshipRankThreshold {
			recs = append(recs, p.Authority.with(
				fmt.Sprintf("average rank %.1f is on page one but outside the top 5", r)))
		}
		if r > contentRankThreshold {
			recs = append(recs, p.Content.with(
				fmt.Sprintf("average rank %.1f leaves room for content-driven gains", r)))
		}
	}
	if s.GainGivenBack {
		recs = append(recs, p.Recovery.with(
			fmt.Sprintf("a recent gain was given back by %.1f positions", s.SlipMagnitude)))
	}
	if !s.HasReviewCampaign {
		recs = append(recs, p.Reviews.with("no active review campaign found"))
	}
	if s.KeywordCount < minTrackedKeywords {
		recs = append(recs, p.Expansion.with(
			fmt.Sprintf("only %d keywords tracked", s.KeywordCount)))
	}

	if len(recs) == 0 && s.AverageRank != nil && *s.AverageRank <= maintenanceRankCeiling {
		recs = append(recs, p.Maintenance.with(
			fmt.Sprintf("average rank %.1f is holding in the top 5", *s.AverageRank)))
	}
	return recs
}
