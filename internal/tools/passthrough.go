package tools

import (
	"context"

	"github.com/localrank/insight-server/internal/scans"
	"github.com/localrank/insight-server/pkg/localrank"
)

// The passthrough tools mirror the raw API: list/detail fetches with at
// most a name filter applied locally. No derived metrics live here.

func (s *Service) registerPassthrough() {
	s.registry.Register(Definition{
		Name:        "list_scans",
		Description: "List recent rank tracking scans. Returns scan ID, business, keywords, and current rankings.",
		Params: []Param{
			{Name: "limit", Type: "integer", Description: "Max scans to return (1-50)"},
			{Name: "business_name", Type: "string", Description: "Only scans for businesses matching this name"},
		},
	}, s.listScans)

	s.registry.Register(Definition{
		Name:        "get_scan",
		Description: "Get detailed ranking data for a specific scan",
		Params: []Param{
			{Name: "scan_id", Type: "string", Description: "The scan UUID", Required: true},
		},
	}, s.getScan)

	s.registry.Register(Definition{
		Name:        "list_citations",
		Description: "List all citations for the user's businesses",
		Params: []Param{
			{Name: "business_name", Type: "string", Description: "Only citations for businesses matching this name"},
		},
	}, s.listCitations)

	s.registry.Register(Definition{
		Name:        "list_businesses",
		Description: "List all businesses/locations being tracked",
		Params: []Param{
			{Name: "search", Type: "string", Description: "Only businesses whose name matches this text"},
		},
	}, s.listBusinesses)

	s.registry.Register(Definition{
		Name:        "list_review_campaigns",
		Description: "List all review collection campaigns",
	}, s.listReviewCampaigns)

	s.registry.Register(Definition{
		Name:        "get_review_campaign",
		Description: "Get details for a specific review campaign including analytics",
		Params: []Param{
			{Name: "campaign_id", Type: "integer", Description: "The campaign ID", Required: true},
		},
	}, s.getReviewCampaign)

	s.registry.Register(Definition{
		Name:        "list_gmb_locations",
		Description: "List all connected Google My Business locations",
	}, s.listGMBLocations)

	s.registry.Register(Definition{
		Name:        "list_gmb_reviews",
		Description: "List reviews for a GMB location",
		Params: []Param{
			{Name: "location_id", Type: "string", Description: "The GMB location ID", Required: true},
		},
	}, s.listGMBReviews)
}

func (s *Service) listScans(ctx context.Context, req Request) (any, error) {
	limit, err := req.Args.Int("limit", s.opts.ScanPageLimit)
	if err != nil {
		return nil, err
	}
	name, err := req.Args.OptionalString("business_name")
	if err != nil {
		return nil, err
	}

	page, err := s.api.ListScans(ctx, req.Credential, localrank.ListScansOptions{
		Limit: clampInt(limit, 1, maxScanPage),
	})
	if err != nil {
		return nil, err
	}

	if name != "" {
		filtered := page[:0]
		for _, scan := range page {
			if scans.NameMatches(scan.BusinessName, name) {
				filtered = append(filtered, scan)
			}
		}
		page = filtered
	}

	return map[string]any{"count": len(page), "scans": page}, nil
}

func (s *Service) getScan(ctx context.Context, req Request) (any, error) {
	scanID, err := req.Args.String("scan_id")
	if err != nil {
		return nil, err
	}
	return s.api.GetScan(ctx, req.Credential, scanID)
}

func (s *Service) listCitations(ctx context.Context, req Request) (any, error) {
	name, err := req.Args.OptionalString("business_name")
	if err != nil {
		return nil, err
	}

	citations, err := s.api.ListCitations(ctx, req.Credential)
	if err != nil {
		return nil, err
	}

	if name != "" {
		filtered := citations[:0]
		for _, c := range citations {
			if scans.NameMatches(c.BusinessName, name) {
				filtered = append(filtered, c)
			}
		}
		citations = filtered
	}

	return map[string]any{"count": len(citations), "citations": citations}, nil
}

func (s *Service) listBusinesses(ctx context.Context, req Request) (any, error) {
	search, err := req.Args.OptionalString("search")
	if err != nil {
		return nil, err
	}

	businesses, err := s.api.ListBusinesses(ctx, req.Credential)
	if err != nil {
		return nil, err
	}

	if search != "" {
		filtered := businesses[:0]
		for _, b := range businesses {
			if scans.NameMatches(b.Name, search) {
				filtered = append(filtered, b)
			}
		}
		businesses = filtered
	}

	return map[string]any{"count": len(businesses), "businesses": businesses}, nil
}

func (s *Service) listReviewCampaigns(ctx context.Context, req Request) (any, error) {
	campaigns, err := s.api.ListReviewCampaigns(ctx, req.Credential)
	if err != nil {
		return nil, err
	}
	return map[string]any{"count": len(campaigns), "campaigns": campaigns}, nil
}

func (s *Service) getReviewCampaign(ctx context.Context, req Request) (any, error) {
	id, err := req.Args.Int("campaign_id", 0)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, argErrorf("campaign_id is required")
	}
	return s.api.GetReviewCampaign(ctx, req.Credential, id)
}

func (s *Service) listGMBLocations(ctx context.Context, req Request) (any, error) {
	locations, err := s.api.ListGMBLocations(ctx, req.Credential)
	if err != nil {
		return nil, err
	}
	return map[string]any{"count": len(locations), "locations": locations}, nil
}

func (s *Service) listGMBReviews(ctx context.Context, req Request) (any, error) {
	locationID, err := req.Args.String("location_id")
	if err != nil {
		return nil, err
	}
	reviews, err := s.api.ListGMBReviews(ctx, req.Credential, locationID)
	if err != nil {
		return nil, err
	}
	return map[string]any{"count": len(reviews), "reviews": reviews}, nil
}
