package gov

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGovInfoClient_Packages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/collections/BILLS/2023-01-01T00:00:00Z" {
			t.Errorf("path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("api_key") != "gi-key" {
			t.Errorf("api_key %q", q.Get("api_key"))
		}
		if q.Get("dateIssuedStartDate") != "2023-01-01" {
			t.Errorf("dateIssuedStartDate %q", q.Get("dateIssuedStartDate"))
		}
		if q.Get("offsetMark") != "*" {
			t.Errorf("offsetMark %q, want the first-page sentinel", q.Get("offsetMark"))
		}
		if q.Get("pageSize") != "100" {
			t.Errorf("pageSize %q", q.Get("pageSize"))
		}
		_, _ = w.Write([]byte(`{"packages":[]}`))
	}))
	defer srv.Close()

	client := NewGovInfoClient(testClient(), "gi-key")
	client.BaseURL = srv.URL

	_, err := client.Packages(context.Background(), PackageSearch{
		Collection:    "BILLS",
		StartDate:     "2023-01-01",
		ModifiedSince: "2023-01-01T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("Packages failed: %v", err)
	}
}

func TestGovInfoClient_MissingKey(t *testing.T) {
	client := NewGovInfoClient(testClient(), "")
	if _, err := client.Collections(context.Background()); err == nil {
		t.Fatal("expected an error without an API key")
	}
}

func TestFECSearch_Query(t *testing.T) {
	params := FECSearch{Query: "smith", Cycle: 2024, State: "CA", PerPage: 50, Page: 2}.query()

	if got := params.Get("q"); got != "smith" {
		t.Errorf("q %q", got)
	}
	if got := params.Get("cycle"); got != "2024" {
		t.Errorf("cycle %q", got)
	}
	if got := params.Get("per_page"); got != "50" {
		t.Errorf("per_page %q", got)
	}
	if got := params.Get("page"); got != "2" {
		t.Errorf("page %q", got)
	}

	// Out-of-range page sizes fall back to the default.
	clamped := FECSearch{PerPage: 5000}.query()
	if got := clamped.Get("per_page"); got != "20" {
		t.Errorf("clamped per_page %q, want 20", got)
	}
}

func TestLDASearch_Query(t *testing.T) {
	params := LDASearch{RegistrantName: "Acme", FilingYear: 2025, PageSize: 10}.query()

	if got := params.Get("registrant_name"); got != "Acme" {
		t.Errorf("registrant_name %q", got)
	}
	if got := params.Get("filing_year"); got != "2025" {
		t.Errorf("filing_year %q", got)
	}
	if got := params.Get("page_size"); got != "10" {
		t.Errorf("page_size %q", got)
	}
}

func TestLDAClient_OptionalAuth(t *testing.T) {
	gotAuth := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth <- r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	// With a token the Authorization header is set.
	client := NewLDAClient(testClient(), "tok123")
	client.BaseURL = srv.URL
	if _, err := client.Filings(context.Background(), LDASearch{}); err != nil {
		t.Fatalf("Filings failed: %v", err)
	}
	if auth := <-gotAuth; auth != "Token tok123" {
		t.Errorf("Authorization %q", auth)
	}

	// Without a token the request still goes through.
	anon := NewLDAClient(testClient(), "")
	anon.BaseURL = srv.URL
	if _, err := anon.Filings(context.Background(), LDASearch{}); err != nil {
		t.Fatalf("anonymous Filings failed: %v", err)
	}
	if auth := <-gotAuth; auth != "" {
		t.Errorf("anonymous Authorization %q, want empty", auth)
	}
}
