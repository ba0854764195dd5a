package narrative

import (
	"fmt"
	"strings"
	"time"

	"github.com/localrank/insight-server/internal/insight"
)

// PitchInputs carries the classifier outputs a renewal pitch draws from.
type PitchInputs struct {
	Business    string
	Status      insight.BusinessStatus
	TotalScans  int
	FirstScanAt time.Time
	LastScanAt  time.Time
	LatestRank  *float64
	Keywords    int
	BestWin     *insight.WinStory
}

// RenewalPitch is a retention document: a headline, talking points, and a
// short narrative an account manager can read from.
type RenewalPitch struct {
	Business      string   `json:"business"`
	Headline      string   `json:"headline"`
	TalkingPoints []string `json:"talking_points"`
	Narrative     string   `json:"narrative"`
}

// BuildRenewalPitch assembles the retention case from the history's
// strongest numbers.
func BuildRenewalPitch(in PitchInputs) RenewalPitch {
	var points []string

	if in.BestWin != nil {
		points = append(points, fmt.Sprintf(
			"Best result on record: average rank climbed from %.1f to %.1f between %s and %s, a %.1f position gain",
			in.BestWin.FromRank, in.BestWin.ToRank,
			in.BestWin.FromDate.Format("January 2006"), in.BestWin.ToDate.Format("January 2006"),
			in.BestWin.Improvement))
	}
	if in.LatestRank != nil {
		points = append(points, fmt.Sprintf(
			"Currently averaging position %.1f across %d tracked keywords", *in.LatestRank, in.Keywords))
	}
	if in.TotalScans > 0 && !in.FirstScanAt.IsZero() {
		points = append(points, fmt.Sprintf(
			"%d ranking scans on record since %s", in.TotalScans, in.FirstScanAt.Format("January 2006")))
	}
	points = append(points, statusPoint(in.Status))

	return RenewalPitch{
		Business:      in.Business,
		Headline:      pitchHeadline(in),
		TalkingPoints: points,
		Narrative:     pitchNarrative(in, points),
	}
}

func pitchHeadline(in PitchInputs) string {
	switch in.Status {
	case insight.StatusImproving:
		return fmt.Sprintf("%s is climbing; now is the time to press the advantage", in.Business)
	case insight.StatusDeclining:
		return fmt.Sprintf("%s needs continued coverage to reverse the recent slide", in.Business)
	case insight.StatusNew:
		return fmt.Sprintf("%s has a fresh baseline; the next quarter shows the payoff", in.Business)
	default:
		return fmt.Sprintf("%s is holding its ground; consistency is what keeps it there", in.Business)
	}
}

func statusPoint(status insight.BusinessStatus) string {
	switch status {
	case insight.StatusImproving:
		return "Momentum is positive going into the renewal window"
	case insight.StatusDeclining:
		return "Recent movement shows exactly why continuous monitoring matters"
	case insight.StatusNew:
		return "The baseline is set; renewal captures the growth phase"
	default:
		return "Stable rankings reflect the ongoing defensive work competitors would love to undo"
	}
}

func pitchNarrative(in PitchInputs, points []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Renewal case for %s.\n\n", in.Business)
	for _, p := range points {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	b.WriteString("\n")

	if in.BestWin != nil {
		fmt.Fprintf(&b, "Lead with the %.1f position gain; it is the clearest proof the program works. ",
			in.BestWin.Improvement)
	}
	switch in.Status {
	case insight.StatusDeclining:
		b.WriteString("Position the renewal as the recovery plan: pausing now locks in the drop.")
	case insight.StatusImproving:
		b.WriteString("Position the renewal as protecting gains competitors are actively contesting.")
	default:
		b.WriteString("Position the renewal as insurance on the visibility already earned.")
	}
	b.WriteString("\n")

	return b.String()
}
