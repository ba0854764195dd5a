package tools

import (
	"context"

	"github.com/localrank/insight-server/internal/insight"
	"github.com/localrank/insight-server/internal/scans"
)

func (s *Service) registerAdvice() {
	s.registry.Register(Definition{
		Name:        "get_recommendations",
		Description: "Next-step checklist for a business from its rank, keyword coverage, and review activity.",
		Params: []Param{
			{Name: "business_name", Type: "string", Description: "Business to advise (partial name ok)", Required: true},
		},
	}, s.getRecommendations)

	s.registry.Register(Definition{
		Name:        "get_competitors",
		Description: "Competitor names seen in the business's latest search grid, per keyword.",
		Params: []Param{
			{Name: "business_name", Type: "string", Description: "Business to analyze (partial name ok)", Required: true},
		},
	}, s.getCompetitors)
}

func (s *Service) getRecommendations(ctx context.Context, req Request) (any, error) {
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

	hasCampaign := s.hasActiveCampaign(ctx, req.Credential, h.Name)
	signals := insight.SignalsFrom(h, hasCampaign)
	recs := s.opts.Playbook.Recommend(signals)

	result := map[string]any{
		"business":            h.Name,
		"scan_count":          len(h.Scans),
		"has_review_campaign": hasCampaign,
		"recommendations":     recs,
	}
	if signals.AverageRank != nil {
		result["average_rank"] = *signals.AverageRank
	}
	return result, nil
}

func (s *Service) getCompetitors(ctx context.Context, req Request) (any, error) {
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
	if detail == nil {
		return noMatch(name, groups), nil
	}

	keywords := insight.Competitors(detail)
	return map[string]any{
		"business": h.Name,
		"scan_id":  detail.ID,
		"count":    len(keywords),
		"keywords": keywords,
	}, nil
}
