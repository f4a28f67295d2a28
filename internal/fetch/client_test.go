package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/insightsgpt/insightsgpt/internal/cache"
	"github.com/insightsgpt/insightsgpt/internal/model"
)

func testConfig() (model.HTTPConfig, model.RateLimitConfig) {
	return model.HTTPConfig{
			Timeout:      5 * time.Second,
			UserAgent:    "insightsgpt-test",
			MaxBodyBytes: 1_000_000,
			MaxRetries:   3,
		}, model.RateLimitConfig{
			RequestsPerSecond: 1000,
			Burst:             100,
		}
}

// silenceSleep disables retry backoff for the test and restores it after.
func silenceSleep(t *testing.T) *[]time.Duration {
	t.Helper()
	var slept []time.Duration
	orig := sleepFunc
	sleepFunc = func(d time.Duration) { slept = append(slept, d) }
	t.Cleanup(func() { sleepFunc = orig })
	return &slept
}

func TestGetJSON_RetriesServerErrors(t *testing.T) {
	slept := silenceSleep(t)

	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	httpCfg, rl := testConfig()
	client := NewClient(httpCfg, rl, nil, 0)

	body, err := client.GetJSON(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("body %q", body)
	}
	if attempts != 3 {
		t.Errorf("got %d attempts, want 3", attempts)
	}
	// Exponential backoff: 1s then 2s.
	if len(*slept) != 2 || (*slept)[0] != time.Second || (*slept)[1] != 2*time.Second {
		t.Errorf("backoff %v, want [1s 2s]", *slept)
	}
}

func TestGetJSON_NoRetryOnClientError(t *testing.T) {
	silenceSleep(t)

	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		http.Error(w, `{"error":"no such bill"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	httpCfg, rl := testConfig()
	client := NewClient(httpCfg, rl, nil, 0)

	_, err := client.GetJSON(context.Background(), srv.URL, nil)
	if err == nil {
		t.Fatal("expected an error")
	}

	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusNotFound {
		t.Fatalf("expected 404 StatusError, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("got %d attempts, want 1 (4xx is not retryable)", attempts)
	}
}

func TestGetJSON_RetriesTooManyRequests(t *testing.T) {
	silenceSleep(t)

	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	httpCfg, rl := testConfig()
	client := NewClient(httpCfg, rl, nil, 0)

	if _, err := client.GetJSON(context.Background(), srv.URL, nil); err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if attempts != 2 {
		t.Errorf("got %d attempts, want 2", attempts)
	}
}

func TestGetJSON_ZeroRetriesStillAttemptsOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	httpCfg, rl := testConfig()
	httpCfg.MaxRetries = 0
	client := NewClient(httpCfg, rl, nil, 0)

	body, err := client.GetJSON(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("body %q, want the response, not a silent nil", body)
	}
}

func TestGetJSON_ServesFromCache(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(`{"cached":false}`))
	}))
	defer srv.Close()

	httpCfg, rl := testConfig()
	client := NewClient(httpCfg, rl, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	for i := 0; i < 3; i++ {
		if _, err := client.GetJSON(context.Background(), srv.URL, nil); err != nil {
			t.Fatalf("GetJSON failed: %v", err)
		}
	}
	if hits != 1 {
		t.Errorf("server hit %d times, want 1", hits)
	}
}

func TestGetJSON_SendsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "insightsgpt-test" {
			t.Errorf("User-Agent %q", r.Header.Get("User-Agent"))
		}
		if r.Header.Get("x-api-key") != "secret" {
			t.Errorf("x-api-key %q", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Accept %q", r.Header.Get("Accept"))
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	httpCfg, rl := testConfig()
	client := NewClient(httpCfg, rl, nil, 0)

	h := http.Header{}
	h.Set("x-api-key", "secret")
	if _, err := client.GetJSON(context.Background(), srv.URL, h); err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
}

func TestPostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type %q", ct)
		}
		_, _ = w.Write([]byte(`{"accepted":true}`))
	}))
	defer srv.Close()

	httpCfg, rl := testConfig()
	client := NewClient(httpCfg, rl, nil, 0)

	body, err := client.PostJSON(context.Background(), srv.URL, []byte(`{"data":{}}`), nil)
	if err != nil {
		t.Fatalf("PostJSON failed: %v", err)
	}
	if string(body) != `{"accepted":true}` {
		t.Errorf("body %q", body)
	}
}

func TestStatusError_TruncatesBody(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}
	se := &StatusError{Code: 500, Body: string(long)}
	if len(se.Error()) > 250 {
		t.Errorf("error message too long: %d chars", len(se.Error()))
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		path   string
		params url.Values
		want   string
	}{
		{
			name: "no params",
			base: "https://api.congress.gov/v3",
			path: "/bill/117/hr/3076",
			want: "https://api.congress.gov/v3/bill/117/hr/3076",
		},
		{
			name:   "trailing slash trimmed",
			base:   "https://api.congress.gov/v3/",
			path:   "/bill",
			params: url.Values{"limit": {"250"}},
			want:   "https://api.congress.gov/v3/bill?limit=250",
		},
		{
			name:   "params encoded",
			base:   "https://www.federalregister.gov/api/v1",
			path:   "/documents.json",
			params: url.Values{"conditions[term]": {"clean energy"}},
			want:   "https://www.federalregister.gov/api/v1/documents.json?conditions%5Bterm%5D=clean+energy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildURL(tt.base, tt.path, tt.params)
			if got != tt.want {
				t.Errorf("BuildURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
