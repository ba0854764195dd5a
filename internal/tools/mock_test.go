package tools

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/localrank/insight-server/pkg/localrank"
)

// --- LocalRank API mock ---

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) ListScans(ctx context.Context, cred localrank.Credential, opts localrank.ListScansOptions) ([]localrank.Scan, error) {
	args := m.Called(ctx, cred, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]localrank.Scan), args.Error(1)
}

func (m *mockAPI) GetScan(ctx context.Context, cred localrank.Credential, scanID string) (*localrank.Scan, error) {
	args := m.Called(ctx, cred, scanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*localrank.Scan), args.Error(1)
}

func (m *mockAPI) ListBusinesses(ctx context.Context, cred localrank.Credential) ([]localrank.Business, error) {
	args := m.Called(ctx, cred)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]localrank.Business), args.Error(1)
}

func (m *mockAPI) ListCitations(ctx context.Context, cred localrank.Credential) ([]localrank.Citation, error) {
	args := m.Called(ctx, cred)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]localrank.Citation), args.Error(1)
}

func (m *mockAPI) ListReviewCampaigns(ctx context.Context, cred localrank.Credential) ([]localrank.ReviewCampaign, error) {
	args := m.Called(ctx, cred)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]localrank.ReviewCampaign), args.Error(1)
}

func (m *mockAPI) GetReviewCampaign(ctx context.Context, cred localrank.Credential, campaignID int) (*localrank.ReviewCampaign, error) {
	args := m.Called(ctx, cred, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*localrank.ReviewCampaign), args.Error(1)
}

func (m *mockAPI) ListGMBLocations(ctx context.Context, cred localrank.Credential) ([]localrank.GMBLocation, error) {
	args := m.Called(ctx, cred)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]localrank.GMBLocation), args.Error(1)
}

func (m *mockAPI) ListGMBReviews(ctx context.Context, cred localrank.Credential, locationID string) ([]localrank.GMBReview, error) {
	args := m.Called(ctx, cred, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]localrank.GMBReview), args.Error(1)
}

// --- fixtures ---

var testCred = localrank.APIKeyCredential("test-key")

func rank(v float64) *float64 { return &v }

// scanAt builds a list-shape scan (no keyword results).
func scanAt(id, business string, avg *float64, daysAgo int) localrank.Scan {
	base := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	return localrank.Scan{
		ID:           id,
		BusinessName: business,
		CreatedAt:    base.AddDate(0, 0, -daysAgo),
		AverageRank:  avg,
		Keywords:     []string{"plumber near me", "emergency plumber"},
	}
}

// detailOf upgrades a scan to detail shape with the given keyword results.
func detailOf(scan localrank.Scan, results ...localrank.KeywordResult) *localrank.Scan {
	scan.KeywordResults = results
	return &scan
}

func kwResult(keyword string, avg *float64) localrank.KeywordResult {
	return localrank.KeywordResult{Keyword: keyword, AverageRank: avg}
}

// acmeScans is the canonical two-scan fixture: 14.0 -> 9.0, newest first.
func acmeScans() []localrank.Scan {
	return []localrank.Scan{
		scanAt("s-acme-2", "Acme Plumbing", rank(9), 1),
		scanAt("s-acme-1", "Acme Plumbing", rank(14), 31),
	}
}
