package gov

import (
	"context"
	"net/url"

	"github.com/insightsgpt/insightsgpt/internal/fetch"
)

const fedRegBaseURL = "https://www.federalregister.gov/api/v1"

// FedRegClient talks to the Federal Register v1 API. No authentication;
// search filters use the `conditions[...]` query grammar, with array
// conditions (agencies, types, sections) as repeated `[]` params.
type FedRegClient struct {
	BaseURL string
	client  *fetch.Client
}

// NewFedRegClient creates a Federal Register adapter.
func NewFedRegClient(client *fetch.Client) *FedRegClient {
	return &FedRegClient{BaseURL: fedRegBaseURL, client: client}
}

// Get fetches an arbitrary Federal Register endpoint path with params.
func (c *FedRegClient) Get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	return c.client.GetJSON(ctx, fetch.BuildURL(c.BaseURL, path, params), nil)
}

// DocumentSearch holds the supported /documents.json search filters.
type DocumentSearch struct {
	Term        string
	PerPage     string
	Page        string
	Order       string
	PubDateYear string
	PubDateGTE  string
	PubDateLTE  string
	PubDateIs   string
	AgencySlugs []string
	DocTypes    []string
}

// Query renders the search as Federal Register query parameters.
func (s DocumentSearch) Query() url.Values {
	params := url.Values{}

	set := func(key, val string) {
		if val != "" {
			params.Set(key, val)
		}
	}
	set("conditions[term]", s.Term)
	set("per_page", s.PerPage)
	set("page", s.Page)
	set("order", s.Order)
	set("conditions[publication_date][year]", s.PubDateYear)
	set("conditions[publication_date][gte]", s.PubDateGTE)
	set("conditions[publication_date][lte]", s.PubDateLTE)
	set("conditions[publication_date][is]", s.PubDateIs)

	for _, slug := range s.AgencySlugs {
		params.Add("conditions[agencies][]", slug)
	}
	for _, dt := range s.DocTypes {
		params.Add("conditions[type][]", dt)
	}

	return params
}

// SearchDocuments searches published documents.
func (c *FedRegClient) SearchDocuments(ctx context.Context, search DocumentSearch) ([]byte, error) {
	return c.Get(ctx, "/documents.json", search.Query())
}

// Document fetches one or more documents by comma-separated numbers.
func (c *FedRegClient) Document(ctx context.Context, docNumbers string) ([]byte, error) {
	return c.Get(ctx, "/documents/"+url.PathEscape(docNumbers)+".json", nil)
}

// DocumentFacets fetches facet counts (daily, agency, topic, ...) for a
// search term.
func (c *FedRegClient) DocumentFacets(ctx context.Context, facet, term string) ([]byte, error) {
	params := url.Values{}
	if term != "" {
		params.Set("conditions[term]", term)
	}
	return c.Get(ctx, "/documents/facets/"+url.PathEscape(facet)+".json", params)
}

// Issue fetches an issue's table of contents by publication date.
func (c *FedRegClient) Issue(ctx context.Context, publicationDate string) ([]byte, error) {
	return c.Get(ctx, "/issues/"+url.PathEscape(publicationDate)+".json", nil)
}

// SearchPublicInspection searches documents on public inspection.
func (c *FedRegClient) SearchPublicInspection(ctx context.Context, term, perPage, page string) ([]byte, error) {
	params := url.Values{}
	if term != "" {
		params.Set("conditions[term]", term)
	}
	if perPage != "" {
		params.Set("per_page", perPage)
	}
	if page != "" {
		params.Set("page", page)
	}
	return c.Get(ctx, "/public-inspection-documents.json", params)
}

// PublicInspection fetches public inspection documents by
// comma-separated numbers.
func (c *FedRegClient) PublicInspection(ctx context.Context, docNumbers string) ([]byte, error) {
	return c.Get(ctx, "/public-inspection-documents/"+url.PathEscape(docNumbers)+".json", nil)
}

// CurrentPublicInspection fetches everything currently on public
// inspection.
func (c *FedRegClient) CurrentPublicInspection(ctx context.Context) ([]byte, error) {
	return c.Get(ctx, "/public-inspection-documents/current.json", nil)
}

// Agencies fetches the full agency list.
func (c *FedRegClient) Agencies(ctx context.Context) ([]byte, error) {
	return c.Get(ctx, "/agencies", nil)
}

// Agency fetches one agency by slug.
func (c *FedRegClient) Agency(ctx context.Context, slug string) ([]byte, error) {
	return c.Get(ctx, "/agencies/"+url.PathEscape(slug), nil)
}

// Images fetches available image variants by identifier.
func (c *FedRegClient) Images(ctx context.Context, identifier string) ([]byte, error) {
	return c.Get(ctx, "/images/"+url.PathEscape(identifier), nil)
}

// SuggestedSearches lists suggested searches, optionally filtered by
// section.
func (c *FedRegClient) SuggestedSearches(ctx context.Context, sections []string) ([]byte, error) {
	params := url.Values{}
	for _, s := range sections {
		params.Add("conditions[sections]", s)
	}
	return c.Get(ctx, "/suggested_searches", params)
}

// SuggestedSearch fetches one suggested search by slug.
func (c *FedRegClient) SuggestedSearch(ctx context.Context, slug string) ([]byte, error) {
	return c.Get(ctx, "/suggested_searches/"+url.PathEscape(slug), nil)
}
