package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/insightsgpt/insightsgpt/internal/cache"
	"github.com/insightsgpt/insightsgpt/internal/model"
	"github.com/insightsgpt/insightsgpt/internal/worker"
)

// sleepFunc is the pause between retries (injectable for tests).
var sleepFunc = time.Sleep

// StatusError is a non-2xx upstream response, surfaced after retries.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, body)
}

// Client is the HTTP client shared by every API adapter. It owns the
// retry policy, per-host rate limiting, and optional GET caching.
type Client struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	maxRetries int
	limiter    *worker.Limiter
	cache      cache.Cache
	cacheTTL   time.Duration
}

// NewClient builds a client from configuration. Pass a nil cache to
// force fresh fetches.
func NewClient(cfg model.HTTPConfig, rl model.RateLimitConfig, c cache.Cache, cacheTTL time.Duration) *Client {
	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: proxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent:  cfg.UserAgent,
		maxBytes:   cfg.MaxBodyBytes,
		maxRetries: maxRetries,
		limiter:    worker.NewLimiter(rl.RequestsPerSecond, rl.Burst),
		cache:      c,
		cacheTTL:   cacheTTL,
	}
}

// Limiter exposes the per-host limiter so paginated fetches can add
// extra delay between pages.
func (c *Client) Limiter() *worker.Limiter {
	return c.limiter
}

// GetJSON fetches rawURL and returns the response body. Cached bodies
// are returned without touching the network.
func (c *Client) GetJSON(ctx context.Context, rawURL string, header http.Header) ([]byte, error) {
	key := cache.Key(rawURL)
	if c.cache != nil {
		if body, ok := c.cache.Get(key); ok {
			return body, nil
		}
	}

	body, err := c.doWithRetry(ctx, http.MethodGet, rawURL, nil, header)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		_ = c.cache.Set(key, body, c.cacheTTL)
	}

	return body, nil
}

// PostJSON sends a JSON body and returns the response. Responses are
// never cached.
func (c *Client) PostJSON(ctx context.Context, rawURL string, payload []byte, header http.Header) ([]byte, error) {
	if header == nil {
		header = http.Header{}
	}
	if header.Get("Content-Type") == "" {
		header.Set("Content-Type", "application/json")
	}
	return c.doWithRetry(ctx, http.MethodPost, rawURL, payload, header)
}

func (c *Client) doWithRetry(ctx context.Context, method, rawURL string, payload []byte, header http.Header) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx, rawURL); err != nil {
			return nil, err
		}

		body, err := c.do(ctx, method, rawURL, payload, header)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !isRetryable(err) || attempt == c.maxRetries-1 {
			break
		}

		backoff := time.Duration(1<<uint(attempt)) * time.Second
		sleepFunc(backoff)
	}

	return nil, lastErr
}

func (c *Client) do(ctx context.Context, method, rawURL string, payload []byte, header http.Header) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// isRetryable reports whether an error is worth another attempt:
// 429, 5xx, and transient network failures.
func isRetryable(err error) bool {
	if se, ok := err.(*StatusError); ok {
		return se.Code == http.StatusTooManyRequests || (se.Code >= 500 && se.Code < 600)
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset")
}

// BuildURL joins a base URL, a path, and query parameters.
func BuildURL(base, path string, params url.Values) string {
	u := strings.TrimSuffix(base, "/") + path
	if len(params) == 0 {
		return u
	}
	return u + "?" + params.Encode()
}

// proxyFunc honors explicit proxy settings and falls back to the
// standard environment variables.
func proxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
