// Package scans groups raw scan records into per-business rank histories.
package scans

import (
	"sort"
	"strings"

	"github.com/localrank/insight-server/pkg/localrank"
	"golang.org/x/text/cases"
)

// UnknownBusiness is the group name for scans whose business name is blank.
const UnknownBusiness = "Unknown"

// foldName case-folds a name for comparison. A cases.Caser is stateful, so
// build one per call rather than sharing across goroutines.
func foldName(s string) string {
	return cases.Fold().String(s)
}

// History holds one business's scans. GroupByBusiness keeps upstream order;
// call SortNewestFirst before reading positional snapshots.
type History struct {
	// Name is the display name, the first non-blank spelling seen.
	Name  string
	Scans []localrank.Scan
}

// Latest returns the most recent scan, or nil for an empty history.
func (h *History) Latest() *localrank.Scan {
	if len(h.Scans) == 0 {
		return nil
	}
	return &h.Scans[0]
}

// Previous returns the second most recent scan, or nil if the history
// has fewer than two scans.
func (h *History) Previous() *localrank.Scan {
	if len(h.Scans) < 2 {
		return nil
	}
	return &h.Scans[1]
}

// GroupByBusiness partitions scans by business name. Matching folds case
// and trims surrounding whitespace; blank names land in the
// UnknownBusiness group. Groups appear in first-seen order and scans keep
// their input order within each group, so every scan ends up in exactly
// one group.
func GroupByBusiness(items []localrank.Scan) []History {
	var groups []History
	index := make(map[string]int, len(items))

	for _, s := range items {
		display := strings.TrimSpace(s.BusinessName)
		if display == "" {
			display = UnknownBusiness
		}

		key := foldName(display)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, History{Name: display})
		}
		groups[i].Scans = append(groups[i].Scans, s)
	}

	return groups
}

// SortNewestFirst orders each history by created_at descending. The API
// does not guarantee scan order, so callers that read Latest/Previous must
// sort first. The sort is stable: scans sharing a timestamp keep their
// upstream order.
func SortNewestFirst(groups []History) {
	for i := range groups {
		h := groups[i].Scans
		sort.SliceStable(h, func(a, b int) bool {
			return h[a].CreatedAt.After(h[b].CreatedAt)
		})
	}
}

// NameMatches reports whether a business name satisfies a user query.
// Matching is a folded substring test; a blank query matches nothing.
func NameMatches(name, query string) bool {
	q := foldName(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	return strings.Contains(foldName(name), q)
}

// FindHistory resolves a business query against grouped histories.
// An exact folded match wins over a containment match so "Acme" prefers
// the business named exactly Acme over "Acme Plumbing".
func FindHistory(groups []History, query string) (*History, bool) {
	q := foldName(strings.TrimSpace(query))
	if q == "" {
		return nil, false
	}
	for i := range groups {
		if foldName(groups[i].Name) == q {
			return &groups[i], true
		}
	}
	for i := range groups {
		if strings.Contains(foldName(groups[i].Name), q) {
			return &groups[i], true
		}
	}
	return nil, false
}
