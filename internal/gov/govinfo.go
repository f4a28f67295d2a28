package gov

import (
	"context"
	"net/url"
	"strconv"

	"github.com/insightsgpt/insightsgpt/internal/fetch"
)

const govInfoBaseURL = "https://api.govinfo.gov"

// GovInfoClient talks to the GovInfo API. Auth is an api_key query
// parameter on every request.
type GovInfoClient struct {
	BaseURL string
	client  *fetch.Client
	apiKey  string
}

// NewGovInfoClient creates a GovInfo adapter.
func NewGovInfoClient(client *fetch.Client, apiKey string) *GovInfoClient {
	return &GovInfoClient{
		BaseURL: govInfoBaseURL,
		client:  client,
		apiKey:  apiKey,
	}
}

// Get fetches an arbitrary GovInfo endpoint path with params.
func (c *GovInfoClient) Get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, &MissingKeyError{EnvVar: "GOVINFO_API_KEY"}
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	return c.client.GetJSON(ctx, fetch.BuildURL(c.BaseURL, path, params), nil)
}

// Collections lists all available collections.
func (c *GovInfoClient) Collections(ctx context.Context) ([]byte, error) {
	return c.Get(ctx, "/collections", nil)
}

// PackageSearch holds the filters for listing packages in a collection.
type PackageSearch struct {
	Collection    string
	StartDate     string
	EndDate       string
	ModifiedSince string
	PageSize      int
	OffsetMark    string
}

// Packages lists packages in a collection modified since a timestamp.
// The API requires a lastModifiedStartDate path segment; offsetMark
// pagination defaults to the "*" sentinel on the first page.
func (c *GovInfoClient) Packages(ctx context.Context, search PackageSearch) ([]byte, error) {
	modified := search.ModifiedSince
	if modified == "" {
		modified = "2000-01-01T00:00:00Z"
	}

	params := url.Values{}
	if search.StartDate != "" {
		params.Set("dateIssuedStartDate", search.StartDate)
	}
	if search.EndDate != "" {
		params.Set("dateIssuedEndDate", search.EndDate)
	}
	size := search.PageSize
	if size < 1 || size > 1000 {
		size = 100
	}
	params.Set("pageSize", strconv.Itoa(size))
	mark := search.OffsetMark
	if mark == "" {
		mark = "*"
	}
	params.Set("offsetMark", mark)

	path := "/collections/" + url.PathEscape(search.Collection) + "/" + url.PathEscape(modified)
	return c.Get(ctx, path, params)
}

// PackageSummary fetches the summary record for one package.
func (c *GovInfoClient) PackageSummary(ctx context.Context, packageID string) ([]byte, error) {
	return c.Get(ctx, "/packages/"+url.PathEscape(packageID)+"/summary", nil)
}
