// Package localrank provides a read-only client for the LocalRank
// rank-tracking API.
package localrank

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.localrank.so"

// Scheme is the Authorization header scheme for a credential.
type Scheme string

const (
	SchemeBearer Scheme = "Bearer"
	SchemeAPIKey Scheme = "Api-Key"
)

// Credential is a single API credential. It is resolved per request by the
// caller and threaded explicitly through every fetch; the client holds no
// credential state of its own.
type Credential struct {
	Scheme Scheme
	Token  string
}

// BearerCredential builds a bearer-token credential.
func BearerCredential(token string) Credential {
	return Credential{Scheme: SchemeBearer, Token: token}
}

// APIKeyCredential builds an API-key credential.
func APIKeyCredential(key string) Credential {
	return Credential{Scheme: SchemeAPIKey, Token: key}
}

// IsZero reports whether no credential is present.
func (c Credential) IsZero() bool {
	return c.Token == ""
}

func (c Credential) header() string {
	return string(c.Scheme) + " " + c.Token
}

// APIError is a non-success response from the LocalRank API. It carries the
// upstream status code and body so callers can surface both verbatim.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("localrank: api status %d: %s", e.StatusCode, e.Body)
}

// ListScansOptions bounds the scan list fetch.
type ListScansOptions struct {
	Limit int
}

// Client performs authenticated reads against the LocalRank API.
type Client interface {
	ListScans(ctx context.Context, cred Credential, opts ListScansOptions) ([]Scan, error)
	GetScan(ctx context.Context, cred Credential, scanID string) (*Scan, error)
	ListBusinesses(ctx context.Context, cred Credential) ([]Business, error)
	ListCitations(ctx context.Context, cred Credential) ([]Citation, error)
	ListReviewCampaigns(ctx context.Context, cred Credential) ([]ReviewCampaign, error)
	GetReviewCampaign(ctx context.Context, cred Credential, campaignID int) (*ReviewCampaign, error)
	ListGMBLocations(ctx context.Context, cred Credential) ([]GMBLocation, error)
	ListGMBReviews(ctx context.Context, cred Credential, locationID string) ([]GMBReview, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(base string) Option {
	return func(c *httpClient) {
		c.baseURL = strings.TrimSuffix(base, "/")
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout sets the fixed per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.Timeout = d
	}
}

// WithRateLimit bounds outbound request rate.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithObserver registers a callback invoked after every request with the
// endpoint template and response status. A status of 0 means the request
// never produced a response. Used for metrics; must not block.
func WithObserver(fn func(endpoint string, status int)) Option {
	return func(c *httpClient) {
		c.observe = fn
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	observe func(endpoint string, status int)
}

// NewClient creates a LocalRank API client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(5, 5),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// getRaw performs an authenticated GET and returns the raw body. A non-2xx
// status becomes an *APIError; there are no retries. endpoint is the path
// template reported to the observer, kept free of IDs so metric labels stay
// low-cardinality.
func (c *httpClient) getRaw(ctx context.Context, cred Credential, endpoint, path string, query url.Values) ([]byte, error) {
	if cred.IsZero() {
		return nil, eris.New("localrank: missing credential")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "localrank: rate limiter wait")
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, eris.Wrap(err, "localrank: create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", cred.header())

	resp, err := c.http.Do(req)
	if err != nil {
		c.observed(endpoint, 0)
		return nil, eris.Wrap(err, "localrank: send request")
	}
	defer resp.Body.Close()
	c.observed(endpoint, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "localrank: read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return body, nil
}

func (c *httpClient) observed(endpoint string, status int) {
	if c.observe != nil {
		c.observe(endpoint, status)
	}
}

func (c *httpClient) getObject(ctx context.Context, cred Credential, endpoint, path string, out any) error {
	body, err := c.getRaw(ctx, cred, endpoint, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrap(err, "localrank: unmarshal response")
	}
	return nil
}

func (c *httpClient) getList(ctx context.Context, cred Credential, endpoint, path string, query url.Values, out any) error {
	body, err := c.getRaw(ctx, cred, endpoint, path, query)
	if err != nil {
		return err
	}
	return decodeList(body, out)
}

func (c *httpClient) ListScans(ctx context.Context, cred Credential, opts ListScansOptions) ([]Scan, error) {
	q := url.Values{}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	var scans []Scan
	if err := c.getList(ctx, cred, "/api/scans/", "/api/scans/", q, &scans); err != nil {
		return nil, err
	}
	return scans, nil
}

func (c *httpClient) GetScan(ctx context.Context, cred Credential, scanID string) (*Scan, error) {
	var scan Scan
	path := "/api/scans/" + url.PathEscape(scanID) + "/"
	if err := c.getObject(ctx, cred, "/api/scans/{id}/", path, &scan); err != nil {
		return nil, err
	}
	return &scan, nil
}

func (c *httpClient) ListBusinesses(ctx context.Context, cred Credential) ([]Business, error) {
	var businesses []Business
	if err := c.getList(ctx, cred, "/api/businesses/", "/api/businesses/", nil, &businesses); err != nil {
		return nil, err
	}
	return businesses, nil
}

func (c *httpClient) ListCitations(ctx context.Context, cred Credential) ([]Citation, error) {
	var citations []Citation
	if err := c.getList(ctx, cred, "/citations/list/", "/citations/list/", nil, &citations); err != nil {
		return nil, err
	}
	return citations, nil
}

func (c *httpClient) ListReviewCampaigns(ctx context.Context, cred Credential) ([]ReviewCampaign, error) {
	var campaigns []ReviewCampaign
	if err := c.getList(ctx, cred, "/review-booster/campaigns/", "/review-booster/campaigns/", nil, &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (c *httpClient) GetReviewCampaign(ctx context.Context, cred Credential, campaignID int) (*ReviewCampaign, error) {
	var campaign ReviewCampaign
	path := "/review-booster/campaigns/" + strconv.Itoa(campaignID) + "/"
	if err := c.getObject(ctx, cred, "/review-booster/campaigns/{id}/", path, &campaign); err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (c *httpClient) ListGMBLocations(ctx context.Context, cred Credential) ([]GMBLocation, error) {
	var locations []GMBLocation
	if err := c.getList(ctx, cred, "/api/gmb/locations/", "/api/gmb/locations/", nil, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

func (c *httpClient) ListGMBReviews(ctx context.Context, cred Credential, locationID string) ([]GMBReview, error) {
	var reviews []GMBReview
	path := "/api/gmb/locations/" + url.PathEscape(locationID) + "/reviews/"
	if err := c.getList(ctx, cred, "/api/gmb/locations/{id}/reviews/", path, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
