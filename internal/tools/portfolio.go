package tools

import (
	"context"

	"github.com/localrank/insight-server/internal/insight"
	"github.com/localrank/insight-server/internal/scans"
	"github.com/localrank/insight-server/pkg/localrank"
)

func (s *Service) registerPortfolio() {
	s.registry.Register(Definition{
		Name:        "portfolio_summary",
		Description: "Summarize every tracked business: trend status, scan counts, and latest movement.",
	}, s.portfolioSummary)

	s.registry.Register(Definition{
		Name:        "get_ranking_changes",
		Description: "Rank movements between each business's two latest scans, steepest decline first.",
		Params: []Param{
			{Name: "type", Type: "string", Description: "Filter: wins, drops, or all (default all)"},
		},
	}, s.getRankingChanges)

	s.registry.Register(Definition{
		Name:        "get_win_stories",
		Description: "The biggest ranking improvement on record for each business, best first.",
		Params: []Param{
			{Name: "limit", Type: "integer", Description: "Max stories to return (default 5)"},
		},
	}, s.getWinStories)

	s.registry.Register(Definition{
		Name:        "get_at_risk_clients",
		Description: "Businesses showing churn-risk signals: recent drops, poor visibility, or low engagement.",
	}, s.getAtRiskClients)

	s.registry.Register(Definition{
		Name:        "find_quick_wins",
		Description: "Keywords ranked 11-20, one step from page one, easiest first.",
		Params: []Param{
			{Name: "business_name", Type: "string", Description: "Only this business's keywords"},
		},
	}, s.findQuickWins)
}

func (s *Service) portfolioSummary(ctx context.Context, req Request) (any, error) {
	groups, err := s.fetchHistories(ctx, req.Credential)
	if err != nil {
		return nil, err
	}
	return insight.SummarizePortfolio(groups, s.opts.StableBand), nil
}

func (s *Service) getRankingChanges(ctx context.Context, req Request) (any, error) {
	kind, err := req.Args.OptionalString("type")
	if err != nil {
		return nil, err
	}
	filter := insight.FilterAll
	if kind != "" {
		filter = insight.ChangeFilter(kind)
		if !insight.ValidChangeFilter(filter) {
			return nil, argErrorf("type must be one of wins, drops, all")
		}
	}

	groups, err := s.fetchHistories(ctx, req.Credential)
	if err != nil {
		return nil, err
	}

	changes := insight.RankingChanges(groups, filter)
	return map[string]any{"filter": filter, "count": len(changes), "changes": changes}, nil
}

func (s *Service) getWinStories(ctx context.Context, req Request) (any, error) {
	limit, err := req.Args.Int("limit", insight.DefaultWinStoryLimit)
	if err != nil {
		return nil, err
	}

	groups, err := s.fetchHistories(ctx, req.Credential)
	if err != nil {
		return nil, err
	}

	stories := insight.BestWins(groups, limit)
	return map[string]any{"count": len(stories), "stories": stories}, nil
}

func (s *Service) getAtRiskClients(ctx context.Context, req Request) (any, error) {
	groups, err := s.fetchHistories(ctx, req.Credential)
	if err != nil {
		return nil, err
	}

	assessments := insight.AssessRisk(groups)
	return map[string]any{"count": len(assessments), "at_risk": assessments}, nil
}

func (s *Service) findQuickWins(ctx context.Context, req Request) (any, error) {
	name, err := req.Args.OptionalString("business_name")
	if err != nil {
		return nil, err
	}

	groups, err := s.fetchHistories(ctx, req.Credential)
	if err != nil {
		return nil, err
	}

	if name != "" {
		h, ok := scans.FindHistory(groups, name)
		if !ok {
			return noMatch(name, groups), nil
		}
		groups = []scans.History{*h}
	}

	// One detail fetch per business's latest scan; list responses carry no
	// keyword results.
	details := make([]localrank.Scan, 0, len(groups))
	for i := range groups {
		detail, err := s.detailFor(ctx, req.Credential, groups[i].Latest())
		if err != nil {
			return nil, err
		}
		if detail != nil {
			details = append(details, *detail)
		}
	}

	wins := insight.QuickWins(details)
	return map[string]any{"count": len(wins), "quick_wins": wins}, nil
}
