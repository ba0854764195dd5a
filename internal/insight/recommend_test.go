package insight

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recommendedActions(recs []Recommendation) []string {
	actions := make([]string, 0, len(recs))
	for _, r := range recs {
		actions = append(actions, r.Action)
	}
	return actions
}

func TestRecommend_OffPageOne(t *testing.T) {
	t.Parallel()

	pb := DefaultPlaybook()
	recs := pb.Recommend(Signals{AverageRank: rank(12), KeywordCount: 8, HasReviewCampaign: true})

	actions := recommendedActions(recs)
	assert.Contains(t, actions, pb.Flagship.Action)
	assert.Contains(t, actions, pb.Content.Action)
	assert.NotContains(t, actions, pb.Authority.Action)
	assert.NotContains(t, actions, pb.Maintenance.Action)
}

func TestRecommend_MidPageOne(t *testing.T) {
	t.Parallel()

	pb := DefaultPlaybook()

	// Rank 8: on page one, outside the top 5, past the content threshold.
	recs := pb.Recommend(Signals{AverageRank: rank(8), KeywordCount: 8, HasReviewCampaign: true})
	actions := recommendedActions(recs)
	assert.Contains(t, actions, pb.Authority.Action)
	assert.Contains(t, actions, pb.Content.Action)
	assert.NotContains(t, actions, pb.Flagship.Action)

	// Rank 6: authority only, content needs rank past 7.
	recs = pb.Recommend(Signals{AverageRank: rank(6), KeywordCount: 8, HasReviewCampaign: true})
	actions = recommendedActions(recs)
	assert.Contains(t, actions, pb.Authority.Action)
	assert.NotContains(t, actions, pb.Content.Action)
}

func TestRecommend_RecoveryAndReviews(t *testing.T) {
	t.Parallel()

	pb := DefaultPlaybook()
	recs := pb.Recommend(Signals{
		AverageRank:       rank(4),
		KeywordCount:      9,
		HasReviewCampaign: false,
		GainGivenBack:     true,
		SlipMagnitude:     3.5,
	})

	actions := recommendedActions(recs)
	assert.Contains(t, actions, pb.Recovery.Action)
	assert.Contains(t, actions, pb.Reviews.Action)
	assert.NotContains(t, actions, pb.Maintenance.Action)

	for _, r := range recs {
		if r.Action == pb.Recovery.Action {
			assert.Contains(t, r.Reason, "3.5 positions")
		}
	}
}

func TestRecommend_Expansion(t *testing.T) {
	t.Parallel()

	pb := DefaultPlaybook()
	recs := pb.Recommend(Signals{AverageRank: rank(3), KeywordCount: 2, HasReviewCampaign: true})

	actions := recommendedActions(recs)
	assert.Contains(t, actions, pb.Expansion.Action)
	assert.NotContains(t, actions, pb.Maintenance.Action)
}

func TestRecommend_MaintenanceFiresAlone(t *testing.T) {
	t.Parallel()

	pb := DefaultPlaybook()
	recs := pb.Recommend(Signals{AverageRank: rank(3), KeywordCount: 10, HasReviewCampaign: true})

	require.Len(t, recs, 1)
	assert.Equal(t, pb.Maintenance.Action, recs[0].Action)
	assert.Equal(t, "low", recs[0].Priority)
}

func TestRecommend_NoRankNoCampaign(t *testing.T) {
	t.Parallel()

	pb := DefaultPlaybook()
	recs := pb.Recommend(Signals{KeywordCount: 10, HasReviewCampaign: false})

	require.Len(t, recs, 1)
	assert.Equal(t, pb.Reviews.Action, recs[0].Action)
}

func TestSignalsFrom(t *testing.T) {
	t.Parallel()

	// 12 -> 8 gained 4, then 8 -> 11 slipped 3: recovery signal fires.
	h := historyOf("Acme Plumbing", rank(11), rank(8), rank(12))
	h.Scans[0].Keywords = []string{"plumber near me", "water heater repair"}

	s := SignalsFrom(&h, true)
	require.NotNil(t, s.AverageRank)
	assert.InDelta(t, 11, *s.AverageRank, 0.001)
	assert.Equal(t, 2, s.KeywordCount)
	assert.True(t, s.HasReviewCampaign)
	assert.True(t, s.GainGivenBack)
	assert.InDelta(t, 3, s.SlipMagnitude, 0.001)
}

func TestSignalsFrom_NoRecoveryOnSmallSlip(t *testing.T) {
	t.Parallel()

	// Gain of 4 then a slip of exactly 2 stays under the threshold.
	h := historyOf("Acme Plumbing", rank(10), rank(8), rank(12))
	s := SignalsFrom(&h, true)
	assert.False(t, s.GainGivenBack)
}

func TestSignalsFrom_ZeroRankTreatedAsAbsent(t *testing.T) {
	t.Parallel()

	h := historyOf("Acme Plumbing", rank(0))
	s := SignalsFrom(&h, true)
	assert.Nil(t, s.AverageRank)
}

func TestLoadPlaybook_PartialOverride(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "playbook.yaml")
	content := "flagship:\n  action: Move to the enterprise retainer\n  priority: urgent\nreviews:\n  action: Kick off review outreach\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	pb, err := LoadPlaybook(path)
	require.NoError(t, err)

	assert.Equal(t, "Move to the enterprise retainer", pb.Flagship.Action)
	assert.Equal(t, "urgent", pb.Flagship.Priority)
	assert.Equal(t, "Kick off review outreach", pb.Reviews.Action)

	// Untouched rules keep their compiled-in copy.
	def := DefaultPlaybook()
	assert.Equal(t, def.Maintenance, pb.Maintenance)
	assert.Equal(t, def.Expansion, pb.Expansion)
}

func TestLoadPlaybook_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadPlaybook(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
