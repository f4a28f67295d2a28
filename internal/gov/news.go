package gov

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/insightsgpt/insightsgpt/internal/fetch"
)

const newsBaseURL = "https://newsapi.org/v2"

// NewsClient talks to NewsAPI, used for real-time policy signal
// monitoring. Auth is an apiKey query parameter.
type NewsClient struct {
	BaseURL string
	client  *fetch.Client
	apiKey  string
}

// NewNewsClient creates a NewsAPI adapter.
func NewNewsClient(client *fetch.Client, apiKey string) *NewsClient {
	return &NewsClient{
		BaseURL: newsBaseURL,
		client:  client,
		apiKey:  apiKey,
	}
}

// Article is the trimmed article record kept in signal archives.
type Article struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	SourceName     string `json:"source_name"`
	URL            string `json:"url"`
	PublishedAt    string `json:"published_at"`
	ContentPreview string `json:"content_preview"`
}

// SignalArchive aggregates every page of an article search.
type SignalArchive struct {
	Query        string    `json:"query"`
	FetchedAt    time.Time `json:"fetched_at"`
	ArticleCount int       `json:"article_count"`
	Articles     []Article `json:"articles"`
}

type articlesPage struct {
	Status       string `json:"status"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Content     string `json:"content"`
	} `json:"articles"`
}

// SearchArticles walks /everything pages for a query until maxArticles
// is reached or results are exhausted. The delay is applied between
// pages.
func (c *NewsClient) SearchArticles(ctx context.Context, query, from, to string, maxArticles int, delay time.Duration) (*SignalArchive, error) {
	if c.apiKey == "" {
		return nil, &MissingKeyError{EnvVar: "NEWS_API_KEY"}
	}
	if maxArticles <= 0 {
		maxArticles = 100
	}

	archive := &SignalArchive{
		Query:     query,
		FetchedAt: time.Now().UTC(),
		Articles:  []Article{},
	}

	pageSize := 100
	if maxArticles < pageSize {
		pageSize = maxArticles
	}

	for page := 1; len(archive.Articles) < maxArticles; page++ {
		params := url.Values{}
		params.Set("q", query)
		params.Set("language", "en")
		params.Set("sortBy", "relevancy")
		params.Set("pageSize", strconv.Itoa(pageSize))
		params.Set("page", strconv.Itoa(page))
		params.Set("apiKey", c.apiKey)
		if from != "" {
			params.Set("from", from)
		}
		if to != "" {
			params.Set("to", to)
		}

		rawURL := fetch.BuildURL(c.BaseURL, "/everything", params)
		body, err := c.client.GetJSON(ctx, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("fetch articles page %d: %w", page, err)
		}

		var pageData articlesPage
		if err := json.Unmarshal(body, &pageData); err != nil {
			return nil, fmt.Errorf("parse articles page %d: %w", page, err)
		}
		if pageData.Status != "ok" {
			return nil, fmt.Errorf("articles page %d: status %q", page, pageData.Status)
		}
		if len(pageData.Articles) == 0 {
			break
		}

		for _, a := range pageData.Articles {
			preview := a.Content
			if len(preview) > 200 {
				preview = preview[:200]
			}
			archive.Articles = append(archive.Articles, Article{
				Title:          a.Title,
				Description:    a.Description,
				SourceName:     a.Source.Name,
				URL:            a.URL,
				PublishedAt:    a.PublishedAt,
				ContentPreview: preview,
			})
			if len(archive.Articles) >= maxArticles {
				break
			}
		}

		if len(archive.Articles) >= pageData.TotalResults {
			break
		}
		if err := c.client.Limiter().WaitWithDelay(ctx, rawURL, delay); err != nil {
			return nil, err
		}
	}

	archive.ArticleCount = len(archive.Articles)
	return archive, nil
}
