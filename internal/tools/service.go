package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/localrank/insight-server/internal/insight"
	"github.com/localrank/insight-server/internal/scans"
	"github.com/localrank/insight-server/pkg/localrank"
)

// Options tunes the insight tools.
type Options struct {
	// StableBand is the movement half-width still reported as stable.
	StableBand float64
	// ScanPageLimit bounds the scan-list fetch behind every derived view.
	ScanPageLimit int
	// ShareBaseURL hosts public visual report pages.
	ShareBaseURL string
	// Playbook supplies recommendation copy; nil selects the defaults.
	Playbook *insight.Playbook
}

// maxScanPage is the hard ceiling on any scan-list fetch.
const maxScanPage = 50

// Service wires the LocalRank client to the insight tool surface. All
// derived views are recomputed per invocation from a fresh fetch; nothing
// is cached between calls.
type Service struct {
	api      localrank.Client
	registry *Registry
	opts     Options
}

// NewService builds the full tool registry over the given client.
func NewService(api localrank.Client, opts Options) *Service {
	if opts.StableBand <= 0 {
		opts.StableBand = insight.DefaultStableBand
	}
	if opts.ScanPageLimit == 0 {
		opts.ScanPageLimit = maxScanPage
	}
	opts.ScanPageLimit = clampInt(opts.ScanPageLimit, 1, maxScanPage)
	if opts.Playbook == nil {
		opts.Playbook = insight.DefaultPlaybook()
	}

	s := &Service{api: api, registry: NewRegistry(), opts: opts}
	s.registerPassthrough()
	s.registerPortfolio()
	s.registerReports()
	s.registerAdvice()
	return s
}

// Definitions lists the published tool contracts.
func (s *Service) Definitions() []Definition {
	return s.registry.Definitions()
}

// Invoke runs one tool call and always returns an envelope. Unknown
// tools, missing credentials, argument problems, upstream failures, and
// panics all come back as structured errors; the serving process never
// dies on a tool call.
func (s *Service) Invoke(ctx context.Context, name string, cred localrank.Credential, args Args) (env Envelope) {
	id := uuid.NewString()
	start := time.Now()
	log := zap.L().With(zap.String("tool", name), zap.String("invocation_id", id))

	defer func() {
		if r := recover(); r != nil {
			log.Error("tool call panicked", zap.Any("panic", r))
			env = errEnvelope(id, name, CodeInternalError, "tool execution failed", nil)
		}
		if env.OK {
			log.Info("tool call complete", zap.Duration("duration", time.Since(start)))
		} else if env.Error != nil {
			log.Warn("tool call failed",
				zap.String("code", string(env.Error.Code)),
				zap.String("message", env.Error.Message),
				zap.Duration("duration", time.Since(start)))
		}
	}()

	_, handler, ok := s.registry.Lookup(name)
	if !ok {
		return errEnvelope(id, name, CodeUnknownTool, fmt.Sprintf("unknown tool %q", name), nil)
	}
	if cred.IsZero() {
		return errEnvelope(id, name, CodeMissingCredentials,
			"no credential supplied: send a bearer token or API key, or configure a fallback key", nil)
	}
	if args == nil {
		args = Args{}
	}

	result, err := handler(ctx, Request{Credential: cred, Args: args})
	if err != nil {
		env := classifyError(id, name, err)
		if env.Error.Code == CodeInternalError {
			log.Error("tool call error", zap.Error(err))
		}
		return env
	}
	return okEnvelope(id, name, result)
}

// fetchHistories pulls one page of recent scans and shapes it into
// newest-first per-business histories.
func (s *Service) fetchHistories(ctx context.Context, cred localrank.Credential) ([]scans.History, error) {
	page, err := s.api.ListScans(ctx, cred, localrank.ListScansOptions{Limit: s.opts.ScanPageLimit})
	if err != nil {
		return nil, eris.Wrap(err, "tools: list scans")
	}
	groups := scans.GroupByBusiness(page)
	scans.SortNewestFirst(groups)
	return groups, nil
}

// noMatchResult is the empty-result document returned when a business
// query matches nothing. Not an error: the caller gets the names that do
// exist plus a hint.
type noMatchResult struct {
	Matched         bool     `json:"matched"`
	Query           string   `json:"query"`
	Hint            string   `json:"hint"`
	KnownBusinesses []string `json:"known_businesses,omitempty"`
}

func noMatch(query string, groups []scans.History) noMatchResult {
	known := make([]string, 0, len(groups))
	for i := range groups {
		known = append(known, groups[i].Name)
	}
	return noMatchResult{
		Matched:         false,
		Query:           query,
		Hint:            fmt.Sprintf("no business matching %q in the recent scans; try list_businesses for tracked names", query),
		KnownBusinesses: known,
	}
}

// detailFor returns a scan with keyword results, fetching the detail
// endpoint only when the list response did not already include them.
func (s *Service) detailFor(ctx context.Context, cred localrank.Credential, scan *localrank.Scan) (*localrank.Scan, error) {
	if scan == nil {
		return nil, nil
	}
	if len(scan.KeywordResults) > 0 {
		return scan, nil
	}
	detail, err := s.api.GetScan(ctx, cred, scan.ID)
	if err != nil {
		return nil, eris.Wrapf(err, "tools: get scan %s", scan.ID)
	}
	return detail, nil
}

// hasActiveCampaign reports whether a review campaign matches the
// business. This is the one best-effort lookup: a failed fetch counts as
// "no campaign" so a broken optional signal cannot abort the tool call.
func (s *Service) hasActiveCampaign(ctx context.Context, cred localrank.Credential, business string) bool {
	campaigns, err := s.api.ListReviewCampaigns(ctx, cred)
	if err != nil {
		zap.L().Debug("campaign lookup failed, treating as no campaign",
			zap.String("business", business), zap.Error(err))
		return false
	}
	for i := range campaigns {
		if !scans.NameMatches(campaigns[i].BusinessName, business) {
			continue
		}
		// Campaigns without a status field are counted as live.
		if campaigns[i].Status == "" || strings.EqualFold(campaigns[i].Status, "active") {
			return true
		}
	}
	return false
}
