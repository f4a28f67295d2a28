package gov

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/insightsgpt/insightsgpt/internal/fetch"
)

const ldaBaseURL = "https://lda.senate.gov/api/v1"

// LDAClient talks to the Senate Lobbying Disclosure Act API. A token is
// optional; authenticated requests get a higher rate limit.
type LDAClient struct {
	BaseURL string
	client  *fetch.Client
	apiKey  string
}

// NewLDAClient creates a Senate LDA adapter.
func NewLDAClient(client *fetch.Client, apiKey string) *LDAClient {
	return &LDAClient{
		BaseURL: ldaBaseURL,
		client:  client,
		apiKey:  apiKey,
	}
}

func (c *LDAClient) header() http.Header {
	if c.apiKey == "" {
		return nil
	}
	h := http.Header{}
	h.Set("Authorization", "Token "+c.apiKey)
	return h
}

// Get fetches an arbitrary LDA endpoint path with params.
func (c *LDAClient) Get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	return c.client.GetJSON(ctx, fetch.BuildURL(c.BaseURL, path, params), c.header())
}

// LDASearch holds the common LDA list filters.
type LDASearch struct {
	RegistrantName string
	ClientName     string
	FilingYear     int
	FilingPeriod   string
	PageSize       int
	Page           int
}

func (s LDASearch) query() url.Values {
	params := url.Values{}
	if s.RegistrantName != "" {
		params.Set("registrant_name", s.RegistrantName)
	}
	if s.ClientName != "" {
		params.Set("client_name", s.ClientName)
	}
	if s.FilingYear != 0 {
		params.Set("filing_year", strconv.Itoa(s.FilingYear))
	}
	if s.FilingPeriod != "" {
		params.Set("filing_period", s.FilingPeriod)
	}
	size := s.PageSize
	if size < 1 || size > 25 {
		size = 25
	}
	params.Set("page_size", strconv.Itoa(size))
	if s.Page > 1 {
		params.Set("page", strconv.Itoa(s.Page))
	}
	return params
}

// Filings searches lobbying disclosure filings.
func (c *LDAClient) Filings(ctx context.Context, search LDASearch) ([]byte, error) {
	return c.Get(ctx, "/filings/", search.query())
}

// Registrants searches registered lobbying firms.
func (c *LDAClient) Registrants(ctx context.Context, search LDASearch) ([]byte, error) {
	return c.Get(ctx, "/registrants/", search.query())
}
