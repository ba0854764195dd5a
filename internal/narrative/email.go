package narrative

import (
	"fmt"
	"strings"

	"github.com/localrank/insight-server/internal/insight"
)

// EmailDraft is a ready-to-edit monthly update for a client.
type EmailDraft struct {
	Business string `json:"business"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
}

// DraftEmail renders a client report into a plain-text email. The tone
// follows the portfolio status; numbers come straight from the report.
func DraftEmail(report *ClientReport) EmailDraft {
	var b strings.Builder

	fmt.Fprintf(&b, "Hi %s team,\n\n", report.Business)
	b.WriteString("Here is your latest local search update.\n\n")

	// Overall movement.
	switch {
	case report.Overall != nil && report.Overall.Delta > 0:
		fmt.Fprintf(&b, "Your average rank moved from %.1f to %.1f, up %.1f positions.\n\n",
			report.Overall.From, report.Overall.To, report.Overall.Delta)
	case report.Overall != nil && report.Overall.Delta < 0:
		fmt.Fprintf(&b, "Your average rank moved from %.1f to %.1f, down %.1f positions. We have an action plan below.\n\n",
			report.Overall.From, report.Overall.To, -report.Overall.Delta)
	case report.Overall != nil:
		fmt.Fprintf(&b, "Your average rank held steady at %.1f.\n\n", report.Overall.To)
	case report.Latest != nil && report.Latest.AverageRank != nil:
		fmt.Fprintf(&b, "Your current average rank is %.1f across %d tracked keywords.\n\n",
			*report.Latest.AverageRank, report.Latest.Keywords)
	default:
		b.WriteString("We completed your first ranking scan and are building your baseline.\n\n")
	}

	// Keyword wins.
	if len(report.KeywordWins) > 0 {
		b.WriteString("Wins this period:\n")
		for _, kc := range report.KeywordWins {
			fmt.Fprintf(&b, "- %q improved from %.1f to %.1f\n", kc.Keyword, kc.From, kc.To)
		}
		b.WriteString("\n")
	}

	// Keywords that slipped, framed as focus areas.
	if len(report.KeywordDrops) > 0 {
		b.WriteString("Focus areas for next month:\n")
		for _, kc := range report.KeywordDrops {
			fmt.Fprintf(&b, "- %q slipped from %.1f to %.1f\n", kc.Keyword, kc.From, kc.To)
		}
		b.WriteString("\n")
	}

	if report.ShareLinks != nil {
		fmt.Fprintf(&b, "See the full visual report: %s\n\n", report.ShareLinks.ViewURL)
	}

	b.WriteString("Questions? Just reply to this email.\n\nBest,\nYour local search team\n")

	return EmailDraft{
		Business: report.Business,
		Subject:  emailSubject(report),
		Body:     b.String(),
	}
}

func emailSubject(report *ClientReport) string {
	switch report.Status {
	case insight.StatusImproving:
		return fmt.Sprintf("%s: your local rankings are climbing", report.Business)
	case insight.StatusDeclining:
		return fmt.Sprintf("%s: this month's rankings and our action plan", report.Business)
	case insight.StatusNew:
		return fmt.Sprintf("%s: your first local ranking snapshot", report.Business)
	default:
		return fmt.Sprintf("%s: your local rankings held steady", report.Business)
	}
}
