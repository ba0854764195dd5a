// Package insight derives portfolio judgments from grouped scan
// histories: trend status, ranking movement, churn risk, quick wins,
// competitor extraction, and next-step recommendations.
package insight

import (
	"time"

	"github.com/localrank/insight-server/internal/delta"
	"github.com/localrank/insight-server/internal/scans"
)

// BusinessStatus is the portfolio trend for one business.
type BusinessStatus string

const (
	StatusNew       BusinessStatus = "new"
	StatusImproving BusinessStatus = "improving"
	StatusDeclining BusinessStatus = "declining"
	StatusStable    BusinessStatus = "stable"
)

// DefaultStableBand is the half-width of the band around zero movement
// that still counts as stable.
const DefaultStableBand = 0.5

// StatusFor classifies a history by its two most recent scans. A history
// with fewer than two scans is "new". Movement within the band is
// "stable"; the inequality is strict, so a change of exactly band stays
// stable rather than tipping either way.
func StatusFor(h *scans.History, band float64) BusinessStatus {
	if len(h.Scans) < 2 {
		return StatusNew
	}
	change := delta.Compare(h.Previous().AverageRank, h.Latest().AverageRank)
	if change == nil {
		return StatusStable
	}
	switch {
	case change.Delta > band:
		return StatusImproving
	case change.Delta < -band:
		return StatusDeclining
	default:
		return StatusStable
	}
}

// PortfolioEntry is one business's line in the portfolio summary.
type PortfolioEntry struct {
	Business    string            `json:"business"`
	Status      BusinessStatus    `json:"status"`
	ScanCount   int               `json:"scan_count"`
	AverageRank *float64          `json:"average_rank,omitempty"`
	Change      *delta.RankChange `json:"change,omitempty"`
	LastScanAt  time.Time         `json:"last_scan_at"`
}

// PortfolioSummary rolls every business up into status counts plus one
// entry per business, in first-seen order.
type PortfolioSummary struct {
	TotalBusinesses int                    `json:"total_businesses"`
	TotalScans      int                    `json:"total_scans"`
	StatusCounts    map[BusinessStatus]int `json:"status_counts"`
	Entries         []PortfolioEntry       `json:"entries"`
}

// SummarizePortfolio classifies every history and aggregates counts.
func SummarizePortfolio(groups []scans.History, band float64) PortfolioSummary {
	summary := PortfolioSummary{
		TotalBusinesses: len(groups),
		StatusCounts:    make(map[BusinessStatus]int, 4),
		Entries:         make([]PortfolioEntry, 0, len(groups)),
	}

	for i := range groups {
		h := &groups[i]
		status := StatusFor(h, band)
		summary.TotalScans += len(h.Scans)
		summary.StatusCounts[status]++

		entry := PortfolioEntry{
			Business:  h.Name,
			Status:    status,
			ScanCount: len(h.Scans),
		}
		if latest := h.Latest(); latest != nil {
			entry.AverageRank = latest.AverageRank
			entry.LastScanAt = latest.CreatedAt
			if prev := h.Previous(); prev != nil {
				entry.Change = delta.Compare(prev.AverageRank, latest.AverageRank)
			}
		}
		summary.Entries = append(summary.Entries, entry)
	}

	return summary
}
