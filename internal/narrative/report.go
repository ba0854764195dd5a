// Package narrative renders classifier outputs into client-facing
// documents: structured reports, email drafts, renewal pitches, and
// content suggestions. It formats; it does not derive new metrics beyond
// simple counts.
package narrative

import (
	"strings"
	"time"

	"github.com/localrank/insight-server/internal/delta"
	"github.com/localrank/insight-server/internal/insight"
	"github.com/localrank/insight-server/pkg/localrank"
)

// DefaultShareBaseURL hosts the public visual report pages.
const DefaultShareBaseURL = "https://app.localrank.so"

// Snapshot is the subset of scan fields a report surfaces.
type Snapshot struct {
	ScanID      string    `json:"scan_id"`
	CreatedAt   time.Time `json:"created_at"`
	AverageRank *float64  `json:"average_rank,omitempty"`
	Keywords    int       `json:"keywords"`
}

// ShareLinks are the public visual report URLs derived from a share token.
type ShareLinks struct {
	ViewURL  string `json:"view_url"`
	EmbedURL string `json:"embed_url"`
}

// ShareLinksFor derives the public URLs for a scan. Returns nil when the
// scan is missing or carries no share token.
func ShareLinksFor(baseURL string, scan *localrank.Scan) *ShareLinks {
	if scan == nil || scan.ShareToken == "" {
		return nil
	}
	if baseURL == "" {
		baseURL = DefaultShareBaseURL
	}
	view := strings.TrimSuffix(baseURL, "/") + "/share/" + scan.ShareToken
	return &ShareLinks{ViewURL: view, EmbedURL: view + "?embed=true"}
}

// ClientReport is the structured client summary for one business.
type ClientReport struct {
	Business         string                 `json:"business"`
	GeneratedAt      time.Time              `json:"generated_at"`
	Status           insight.BusinessStatus `json:"status"`
	TotalScans       int                    `json:"total_scans"`
	Latest           *Snapshot              `json:"latest,omitempty"`
	Previous         *Snapshot              `json:"previous,omitempty"`
	Overall          *delta.RankChange      `json:"overall_change,omitempty"`
	KeywordWins      []delta.KeywordChange  `json:"keyword_wins,omitempty"`
	KeywordDrops     []delta.KeywordChange  `json:"keyword_drops,omitempty"`
	KeywordUnchanged []delta.KeywordChange  `json:"keyword_unchanged,omitempty"`
	ShareLinks       *ShareLinks            `json:"share_links,omitempty"`
}

// BuildClientReport assembles the structured summary. latest and previous
// are detail snapshots with keyword results; previous is nil for a
// business with a single scan.
func BuildClientReport(business string, status insight.BusinessStatus, totalScans int, latest, previous *localrank.Scan, shareBase string) ClientReport {
	report := ClientReport{
		Business:    business,
		GeneratedAt: time.Now().UTC(),
		Status:      status,
		TotalScans:  totalScans,
		Latest:      snapshotOf(latest),
		Previous:    snapshotOf(previous),
		ShareLinks:  ShareLinksFor(shareBase, latest),
	}

	if latest != nil && previous != nil {
		report.Overall = delta.Compare(previous.AverageRank, latest.AverageRank)
		for _, kc := range delta.CompareKeywords(previous.KeywordResults, latest.KeywordResults) {
			switch kc.Label {
			case delta.Improved:
				report.KeywordWins = append(report.KeywordWins, kc)
			case delta.Declined:
				report.KeywordDrops = append(report.KeywordDrops, kc)
			default:
				report.KeywordUnchanged = append(report.KeywordUnchanged, kc)
			}
		}
	}
	return report
}

func snapshotOf(scan *localrank.Scan) *Snapshot {
	if scan == nil {
		return nil
	}
	keywords := len(scan.Keywords)
	if len(scan.KeywordResults) > keywords {
		keywords = len(scan.KeywordResults)
	}
	return &Snapshot{
		ScanID:      scan.ID,
		CreatedAt:   scan.CreatedAt,
		AverageRank: scan.AverageRank,
		Keywords:    keywords,
	}
}
