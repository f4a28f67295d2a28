package gov

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListFilter_Query(t *testing.T) {
	tests := []struct {
		name     string
		filter   ListFilter
		maxSize  int
		fallback int
		wantSize string
	}{
		{"size within range", ListFilter{PageSize: 50}, 100, 25, "50"},
		{"size above max clamps to default", ListFilter{PageSize: 500}, 100, 25, "25"},
		{"negative size clamps to default", ListFilter{PageSize: -1}, 100, 25, "25"},
		{"zero size omitted", ListFilter{}, 100, 25, ""},
		{"dockets allow larger pages", ListFilter{PageSize: 200}, 250, 25, "200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := tt.filter.query(tt.maxSize, tt.fallback)
			if got := params.Get("page[size]"); got != tt.wantSize {
				t.Errorf("page[size] = %q, want %q", got, tt.wantSize)
			}
		})
	}
}

func TestListFilter_QueryFilters(t *testing.T) {
	params := ListFilter{
		SearchTerm: "water",
		DocketID:   "EPA-HQ-OW-2021-0001",
		PageNumber: 2,
		PageAfter:  "abc",
	}.query(100, 25)

	if got := params.Get("filter[searchTerm]"); got != "water" {
		t.Errorf("searchTerm %q", got)
	}
	if got := params.Get("filter[docketId]"); got != "EPA-HQ-OW-2021-0001" {
		t.Errorf("docketId %q", got)
	}
	if got := params.Get("page[number]"); got != "2" {
		t.Errorf("page[number] %q", got)
	}
	if got := params.Get("page[after]"); got != "abc" {
		t.Errorf("page[after] %q", got)
	}
}

func TestRegulationsClient_Headers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Api-Key"); got != "demo-key" {
			t.Errorf("X-Api-Key %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/vnd.api+json" {
			t.Errorf("Accept %q", got)
		}
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	client := NewRegulationsClient(testClient(), "demo-key")
	client.BaseURL = srv.URL

	if _, err := client.Documents(context.Background(), ListFilter{}); err != nil {
		t.Fatalf("Documents failed: %v", err)
	}
}

func TestNewCommentSubmission_Payload(t *testing.T) {
	s := NewCommentSubmission("EPA-HQ-OAR-2021-0317", "I support this rule.")

	payload, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"data":{"type":"Comment","attributes":{"docketId":"EPA-HQ-OAR-2021-0317","commentOn":"EPA-HQ-OAR-2021-0317","body":"I support this rule."}}}`
	if string(payload) != want {
		t.Errorf("payload\n got %s\nwant %s", payload, want)
	}
}

func TestSubmitComment_MissingKey(t *testing.T) {
	client := NewRegulationsClient(testClient(), "")
	_, err := client.SubmitComment(context.Background(), NewCommentSubmission("D-1", "body"))
	if err == nil {
		t.Fatal("expected an error without an API key")
	}
}
