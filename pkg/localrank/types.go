package localrank

import "time"

// Scan is a point-in-time rank-tracking snapshot for one business across a
// keyword set. List responses omit KeywordResults; only the detail endpoint
// populates it.
type Scan struct {
	ID             string          `json:"id"`
	BusinessName   string          `json:"business_name"`
	CreatedAt      time.Time       `json:"created_at"`
	AverageRank    *float64        `json:"average_rank"`
	Keywords       []string        `json:"keywords"`
	KeywordResults []KeywordResult `json:"keyword_results,omitempty"`
	ShareToken     string          `json:"share_token,omitempty"`
}

// KeywordResult is the per-keyword outcome within a scan.
type KeywordResult struct {
	Keyword     string      `json:"keyword"`
	AverageRank *float64    `json:"average_rank"`
	BestRank    *float64    `json:"best_rank"`
	FoundCount  int         `json:"found_count"`
	GridPoints  []GridPoint `json:"grid_points,omitempty"`
}

// GridPoint is one geographic sample point in a keyword's search grid.
type GridPoint struct {
	Lat     float64       `json:"lat"`
	Lng     float64       `json:"lng"`
	Results []PlaceResult `json:"results"`
}

// PlaceResult is a single search result at a grid point.
type PlaceResult struct {
	Name string `json:"name"`
	Rank int    `json:"rank"`
}

// Business is a tracked business/location.
type Business struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
}

// Citation is a business listing on an external directory.
type Citation struct {
	ID           string `json:"id"`
	BusinessName string `json:"business_name"`
	Source       string `json:"source"`
	URL          string `json:"url"`
	Status       string `json:"status"`
}

// ReviewCampaign is a review collection campaign.
type ReviewCampaign struct {
	ID           int                `json:"id"`
	Name         string             `json:"name"`
	BusinessName string             `json:"business_name"`
	Status       string             `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	Analytics    *CampaignAnalytics `json:"analytics,omitempty"`
}

// CampaignAnalytics holds campaign performance counters. Present only on the
// campaign detail endpoint.
type CampaignAnalytics struct {
	RequestsSent     int     `json:"requests_sent"`
	ReviewsCollected int     `json:"reviews_collected"`
	ConversionRate   float64 `json:"conversion_rate"`
}

// GMBLocation is a connected Google Business Profile location.
type GMBLocation struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// GMBReview is a single review on a GMB location.
type GMBReview struct {
	ID        string    `json:"id"`
	Reviewer  string    `json:"reviewer"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
