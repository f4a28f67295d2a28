package gov

import (
	"context"
	"net/url"
	"strconv"

	"github.com/insightsgpt/insightsgpt/internal/fetch"
)

const fecBaseURL = "https://api.open.fec.gov/v1"

// FECClient talks to the Federal Election Commission API. Auth is an
// api_key query parameter on every request.
type FECClient struct {
	BaseURL string
	client  *fetch.Client
	apiKey  string
}

// NewFECClient creates an FEC adapter.
func NewFECClient(client *fetch.Client, apiKey string) *FECClient {
	return &FECClient{
		BaseURL: fecBaseURL,
		client:  client,
		apiKey:  apiKey,
	}
}

// Get fetches an arbitrary FEC endpoint path with params.
func (c *FECClient) Get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, &MissingKeyError{EnvVar: "FEC_API_KEY"}
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	return c.client.GetJSON(ctx, fetch.BuildURL(c.BaseURL, path, params), nil)
}

// FECSearch holds the common FEC list filters.
type FECSearch struct {
	Query   string
	Cycle   int
	State   string
	Party   string
	Office  string
	PerPage int
	Page    int
}

func (s FECSearch) query() url.Values {
	params := url.Values{}
	if s.Query != "" {
		params.Set("q", s.Query)
	}
	if s.Cycle != 0 {
		params.Set("cycle", strconv.Itoa(s.Cycle))
	}
	if s.State != "" {
		params.Set("state", s.State)
	}
	if s.Party != "" {
		params.Set("party", s.Party)
	}
	if s.Office != "" {
		params.Set("office", s.Office)
	}
	perPage := s.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	params.Set("per_page", strconv.Itoa(perPage))
	if s.Page > 1 {
		params.Set("page", strconv.Itoa(s.Page))
	}
	return params
}

// Candidates searches candidate records.
func (c *FECClient) Candidates(ctx context.Context, search FECSearch) ([]byte, error) {
	return c.Get(ctx, "/candidates/search/", search.query())
}

// Committees searches committee records.
func (c *FECClient) Committees(ctx context.Context, search FECSearch) ([]byte, error) {
	return c.Get(ctx, "/committees/", search.query())
}

// Filings searches filing records, optionally scoped to a committee.
func (c *FECClient) Filings(ctx context.Context, committeeID string, search FECSearch) ([]byte, error) {
	if committeeID != "" {
		return c.Get(ctx, "/committee/"+url.PathEscape(committeeID)+"/filings/", search.query())
	}
	return c.Get(ctx, "/filings/", search.query())
}
