package gov

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/insightsgpt/insightsgpt/internal/fetch"
)

const congressBaseURL = "https://api.congress.gov/v3"

// CongressClient talks to the Congress.gov v3 API. Auth is an
// x-api-key header; list endpoints paginate via pagination.next links.
type CongressClient struct {
	BaseURL string
	client  *fetch.Client
	apiKey  string
}

// NewCongressClient creates a Congress.gov adapter.
func NewCongressClient(client *fetch.Client, apiKey string) *CongressClient {
	return &CongressClient{
		BaseURL: congressBaseURL,
		client:  client,
		apiKey:  apiKey,
	}
}

// Get fetches an arbitrary Congress.gov endpoint path with params.
func (c *CongressClient) Get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, &MissingKeyError{EnvVar: "CONGRESS_API_KEY"}
	}
	return c.client.GetJSON(ctx, fetch.BuildURL(c.BaseURL, path, params), c.header())
}

// getURL fetches a fully-built URL, used when following pagination.next
// links that already carry their own query string.
func (c *CongressClient) getURL(ctx context.Context, rawURL string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, &MissingKeyError{EnvVar: "CONGRESS_API_KEY"}
	}
	return c.client.GetJSON(ctx, rawURL, c.header())
}

func (c *CongressClient) header() http.Header {
	h := http.Header{}
	h.Set("x-api-key", c.apiKey)
	return h
}

// Bill fetches one bill by congress, type, and number.
func (c *CongressClient) Bill(ctx context.Context, congress int, billType string, number int) ([]byte, error) {
	return c.Get(ctx, fmt.Sprintf("/bill/%d/%s/%d", congress, billType, number), nil)
}

// billsPage is the slice of a bills list response the paginator needs.
// Bills stay raw so the archive preserves upstream fields verbatim.
type billsPage struct {
	Bills      []json.RawMessage `json:"bills"`
	Pagination struct {
		Count int    `json:"count"`
		Next  string `json:"next"`
	} `json:"pagination"`
}

// BillArchive aggregates every page of a bills list fetch.
type BillArchive struct {
	Congress  int               `json:"congress"`
	BillCount int               `json:"bill_count"`
	Bills     []json.RawMessage `json:"bills"`
}

// AllBills walks the bills list for a congress, following
// pagination.next until exhausted or maxBills is reached. The delay is
// applied between pages to stay under the hourly quota; progress, when
// non-nil, is called after each page with (fetched, total).
func (c *CongressClient) AllBills(ctx context.Context, congress, maxBills int, delay time.Duration, progress func(fetched, total int)) (*BillArchive, error) {
	params := url.Values{}
	params.Set("limit", "250")
	params.Set("offset", "0")

	archive := &BillArchive{Congress: congress}
	nextURL := fetch.BuildURL(c.BaseURL, fmt.Sprintf("/bill/%d", congress), params)

	for {
		body, err := c.getURL(ctx, nextURL)
		if err != nil {
			return nil, fmt.Errorf("fetch bills page: %w", err)
		}

		var page billsPage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("parse bills page: %w", err)
		}
		if len(page.Bills) == 0 {
			break
		}

		archive.Bills = append(archive.Bills, page.Bills...)
		if progress != nil {
			progress(len(archive.Bills), page.Pagination.Count)
		}

		if page.Pagination.Next == "" {
			break
		}
		if maxBills > 0 && len(archive.Bills) >= maxBills {
			break
		}

		nextURL = page.Pagination.Next
		if err := c.client.Limiter().WaitWithDelay(ctx, nextURL, delay); err != nil {
			return nil, err
		}
	}

	archive.BillCount = len(archive.Bills)
	return archive, nil
}

// BillDetails aggregates a bill's core record with its actions,
// sponsors, and committees sub-resources into one document. Missing
// sub-resources degrade to empty lists rather than failing the fetch.
type BillDetails struct {
	BillDetails json.RawMessage   `json:"bill_details"`
	Actions     []json.RawMessage `json:"actions"`
	Sponsors    []json.RawMessage `json:"sponsors"`
	Committees  []json.RawMessage `json:"committees"`
}

// FetchBillDetails builds a BillDetails document for one bill.
func (c *CongressClient) FetchBillDetails(ctx context.Context, congress int, billType string, number int, delay time.Duration) (*BillDetails, error) {
	base := fmt.Sprintf("/bill/%d/%s/%d", congress, billType, number)

	body, err := c.Get(ctx, base, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch bill: %w", err)
	}

	var envelope struct {
		Bill json.RawMessage `json:"bill"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("parse bill: %w", err)
	}
	if len(envelope.Bill) == 0 {
		return nil, fmt.Errorf("no bill record in response for %s", base)
	}

	details := &BillDetails{
		BillDetails: envelope.Bill,
		Actions:     []json.RawMessage{},
		Sponsors:    []json.RawMessage{},
		Committees:  []json.RawMessage{},
	}

	sub := []struct {
		path string
		key  string
		dst  *[]json.RawMessage
	}{
		{base + "/actions", "actions", &details.Actions},
		{base + "/sponsors", "sponsors", &details.Sponsors},
		{base + "/committees", "committees", &details.Committees},
	}

	for _, s := range sub {
		if err := c.client.Limiter().WaitWithDelay(ctx, c.BaseURL, delay); err != nil {
			return nil, err
		}

		body, err := c.Get(ctx, s.path, nil)
		if err != nil {
			// Sub-resource failures leave the list empty.
			continue
		}

		var m map[string]json.RawMessage
		if err := json.Unmarshal(body, &m); err != nil {
			continue
		}
		if raw, ok := m[s.key]; ok {
			var list []json.RawMessage
			if err := json.Unmarshal(raw, &list); err == nil {
				*s.dst = list
			}
		}
	}

	return details, nil
}
