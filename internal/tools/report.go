package tools

import (
	"context"

	"github.com/localrank/insight-server/internal/insight"
	"github.com/localrank/insight-server/internal/narrative"
	"github.com/localrank/insight-server/internal/scans"
	"github.com/localrank/insight-server/pkg/localrank"
)

func (s *Service) registerReports() {
	s.registry.Register(Definition{
		Name:        "client_report",
		Description: "Structured report for one business: latest vs previous scan, keyword wins and drops, share links.",
		Params: []Param{
			{Name: "business_name", Type: "string", Description: "Business to report on (partial name ok)", Required: true},
		},
	}, s.clientReport)

	s.registry.Register(Definition{
		Name:        "draft_client_email",
		Description: "Draft a monthly update email for a client from their latest ranking movement.",
		Params: []Param{
			{Name: "business_name", Type: "string", Description: "Business to draft for (partial name ok)", Required: true},
		},
	}, s.draftClientEmail)

	s.registry.Register(Definition{
		Name:        "renewal_pitch",
		Description: "Build a renewal pitch for a client from their strongest results on record.",
		Params: []Param{
			{Name: "business_name", Type: "string", Description: "Business to pitch (partial name ok)", Required: true},
		},
	}, s.renewalPitch)

	s.registry.Register(Definition{
		Name:        "suggest_content",
		Description: "Suggest content work per keyword based on where each one ranks today.",
		Params: []Param{
			{Name: "business_name", Type: "string", Description: "Business to plan for (partial name ok)", Required: true},
		},
	}, s.suggestContent)
}

// reportFor resolves a business and assembles its client report, the
// shared input for the report, email, and pitch tools. A nil report with
// a non-nil miss means the name matched nothing.
func (s *Service) reportFor(ctx context.Context, cred localrank.Credential, name string) (*narrative.ClientReport, *scans.History, *noMatchResult, error) {
	groups, err := s.fetchHistories(ctx, cred)
	if err != nil {
		return nil, nil, nil, err
	}
	h, ok := scans.FindHistory(groups, name)
	if !ok {
		miss := noMatch(name, groups)
		return nil, nil, &miss, nil
	}

	latest, err := s.detailFor(ctx, cred, h.Latest())
	if err != nil {
		return nil, nil, nil, err
	}
	previous, err := s.detailFor(ctx, cred, h.Previous())
	if err != nil {
		return nil, nil, nil, err
	}

	status := insight.StatusFor(h, s.opts.StableBand)
	report := narrative.BuildClientReport(h.Name, status, len(h.Scans), latest, previous, s.opts.ShareBaseURL)
	return &report, h, nil, nil
}

func (s *Service) clientReport(ctx context.Context, req Request) (any, error) {
	name, err := req.Args.String("business_name")
	if err != nil {
		return nil, err
	}
	report, _, miss, err := s.reportFor(ctx, req.Credential, name)
	if err != nil {
		return nil, err
	}
	if miss != nil {
		return *miss, nil
	}
	return report, nil
}

func (s *Service) draftClientEmail(ctx context.Context, req Request) (any, error) {
	name, err := req.Args.String("business_name")
	if err != nil {
		return nil, err
	}
	report, _, miss, err := s.reportFor(ctx, req.Credential, name)
	if err != nil {
		return nil, err
	}
	if miss != nil {
		return *miss, nil
	}
	return narrative.DraftEmail(report), nil
}

func (s *Service) renewalPitch(ctx context.Context, req Request) (any, error) {
	name, err := req.Args.String("business_name")
	if err != nil {
		return nil, err
	}

	groups, err := s.fetchHistories(ctx, req.Credential)
	if err != nil {
		return nil, err
	}
	h, ok := scans.FindHistory(groups, name)
	if !ok {
		return noMatch(name, groups), nil
	}

	in := narrative.PitchInputs{
		Business:   h.Name,
		Status:     insight.StatusFor(h, s.opts.StableBand),
		TotalScans: len(h.Scans),
	}
	if latest := h.Latest(); latest != nil {
		in.LastScanAt = latest.CreatedAt
		in.LatestRank = latest.AverageRank
		in.Keywords = len(latest.Keywords)
		in.FirstScanAt = h.Scans[len(h.Scans)-1].CreatedAt
	}
	if stories := insight.BestWins([]scans.History{*h}, 1); len(stories) > 0 {
		in.BestWin = &stories[0]
	}

	return narrative.BuildRenewalPitch(in), nil
}

func (s *Service) suggestContent(ctx context.Context, req Request) (any, error) {
	name, err := req.Args.String("business_name")
	if err != nil {
		return nil, err
	}

	groups, err := s.fetchHistories(ctx, req.Credential)
	if err != nil {
		return nil, err
	}
	h, ok := scans.FindHistory(groups, name)
	if !ok {
		return noMatch(name, groups), nil
	}

	detail, err := s.detailFor(ctx, req.Credential, h.Latest())
	if err != nil {
		return nil, err
	}

	suggestions := narrative.SuggestContent(detail)
	result := map[string]any{
		"business":    h.Name,
		"count":       len(suggestions),
		"suggestions": suggestions,
	}
	if detail != nil && detail.AverageRank != nil {
		result["average_rank"] = *detail.AverageRank
	}
	return result, nil
}
