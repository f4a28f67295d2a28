package gov

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/insightsgpt/insightsgpt/internal/fetch"
)

const regulationsBaseURL = "https://api.regulations.gov/v4"

// Page size bounds differ per resource type.
const (
	documentsMaxPageSize = 100
	docketsMaxPageSize   = 250
	commentsMaxPageSize  = 100
)

// RegulationsClient talks to the Regulations.gov v4 API (JSON:API).
// Auth is an X-Api-Key header.
type RegulationsClient struct {
	BaseURL string
	client  *fetch.Client
	apiKey  string
}

// NewRegulationsClient creates a Regulations.gov adapter.
func NewRegulationsClient(client *fetch.Client, apiKey string) *RegulationsClient {
	return &RegulationsClient{
		BaseURL: regulationsBaseURL,
		client:  client,
		apiKey:  apiKey,
	}
}

func (c *RegulationsClient) header() http.Header {
	h := http.Header{}
	h.Set("X-Api-Key", c.apiKey)
	h.Set("Accept", "application/vnd.api+json")
	return h
}

// Get fetches an arbitrary Regulations.gov endpoint path with params.
func (c *RegulationsClient) Get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, &MissingKeyError{EnvVar: "REGULATIONS_API_KEY"}
	}
	return c.client.GetJSON(ctx, fetch.BuildURL(c.BaseURL, path, params), c.header())
}

// ListFilter holds the common list-endpoint filters. Out-of-range page
// values are clamped to the upstream contract rather than rejected.
type ListFilter struct {
	SearchTerm string
	DocketID   string
	Title      string
	PageSize   int
	PageNumber int
	PageAfter  string
}

func (f ListFilter) query(maxPageSize, defaultPageSize int) url.Values {
	params := url.Values{}

	if f.SearchTerm != "" {
		params.Set("filter[searchTerm]", f.SearchTerm)
	}
	if f.DocketID != "" {
		params.Set("filter[docketId]", f.DocketID)
	}
	if f.Title != "" {
		params.Set("filter[title]", f.Title)
	}

	if f.PageSize != 0 {
		size := f.PageSize
		if size < 1 || size > maxPageSize {
			size = defaultPageSize
		}
		params.Set("page[size]", strconv.Itoa(size))
	}
	if f.PageNumber != 0 {
		page := f.PageNumber
		if page < 1 {
			page = 1
		}
		params.Set("page[number]", strconv.Itoa(page))
	}
	if f.PageAfter != "" {
		params.Set("page[after]", f.PageAfter)
	}

	return params
}

// Documents searches documents with the given filters.
func (c *RegulationsClient) Documents(ctx context.Context, f ListFilter) ([]byte, error) {
	return c.Get(ctx, "/documents", f.query(documentsMaxPageSize, 25))
}

// Document fetches one document by ID, optionally with attachments.
func (c *RegulationsClient) Document(ctx context.Context, documentID string, includeAttachments bool) ([]byte, error) {
	params := url.Values{}
	if includeAttachments {
		params.Set("include", "attachments")
	}
	return c.Get(ctx, "/documents/"+url.PathEscape(documentID), params)
}

// Dockets searches dockets with the given filters.
func (c *RegulationsClient) Dockets(ctx context.Context, f ListFilter) ([]byte, error) {
	return c.Get(ctx, "/dockets", f.query(docketsMaxPageSize, 25))
}

// Docket fetches one docket by ID.
func (c *RegulationsClient) Docket(ctx context.Context, docketID string) ([]byte, error) {
	return c.Get(ctx, "/dockets/"+url.PathEscape(docketID), nil)
}

// Comments searches comments with the given filters.
func (c *RegulationsClient) Comments(ctx context.Context, f ListFilter) ([]byte, error) {
	return c.Get(ctx, "/comments", f.query(commentsMaxPageSize, 10))
}

// Comment fetches one comment by ID, optionally with attachments.
func (c *RegulationsClient) Comment(ctx context.Context, commentID string, includeAttachments bool) ([]byte, error) {
	params := url.Values{}
	if includeAttachments {
		params.Set("include", "attachments")
	}
	return c.Get(ctx, "/comments/"+url.PathEscape(commentID), params)
}

// CommentSubmission is the JSON:API payload for submitting a public
// comment on a docket.
type CommentSubmission struct {
	Data struct {
		Type       string `json:"type"`
		Attributes struct {
			DocketID  string `json:"docketId"`
			CommentOn string `json:"commentOn"`
			Body      string `json:"body"`
		} `json:"attributes"`
	} `json:"data"`
}

// NewCommentSubmission builds the payload for a docket comment.
func NewCommentSubmission(docketID, body string) CommentSubmission {
	var s CommentSubmission
	s.Data.Type = "Comment"
	s.Data.Attributes.DocketID = docketID
	s.Data.Attributes.CommentOn = docketID
	s.Data.Attributes.Body = body
	return s
}

// SubmitComment POSTs a comment submission and returns the upstream
// response.
func (c *RegulationsClient) SubmitComment(ctx context.Context, submission CommentSubmission) ([]byte, error) {
	if c.apiKey == "" {
		return nil, &MissingKeyError{EnvVar: "REGULATIONS_API_KEY"}
	}

	payload, err := json.Marshal(submission)
	if err != nil {
		return nil, fmt.Errorf("marshal submission: %w", err)
	}

	h := c.header()
	h.Set("Content-Type", "application/vnd.api+json")

	return c.client.PostJSON(ctx, c.BaseURL+"/comments", payload, h)
}
