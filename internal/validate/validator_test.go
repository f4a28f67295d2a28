package validate

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	required := []string{"title", "publication_date", "agency"}

	tests := []struct {
		name        string
		content     string
		wantEntries int
		wantErrors  int
		wantFileErr bool
	}{
		{
			name:        "all fields present",
			content:     `{"results":[{"title":"t","publication_date":"2023-01-01","agency":"EPA"}]}`,
			wantEntries: 1,
			wantErrors:  0,
		},
		{
			name:        "missing field reported",
			content:     `{"results":[{"title":"t","agency":"EPA"}]}`,
			wantEntries: 1,
			wantErrors:  1,
		},
		{
			name:        "extra fields do not fail",
			content:     `{"results":[{"title":"t","publication_date":"d","agency":"a","html_url":"u"}]}`,
			wantEntries: 1,
			wantErrors:  0,
		},
		{
			name:        "bare top-level array accepted",
			content:     `[{"title":"t","publication_date":"d","agency":"a"},{"title":"t2"}]`,
			wantEntries: 2,
			wantErrors:  1,
		},
		{
			name:        "envelope without results is empty",
			content:     `{"count":0}`,
			wantEntries: 0,
			wantErrors:  0,
		},
		{
			name:        "decode error recorded not returned",
			content:     `{broken`,
			wantFileErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "data.json", tt.content)
			report := ValidateFile(path, required)

			if tt.wantFileErr {
				if report.Error == "" {
					t.Fatal("expected a file-level error")
				}
				return
			}
			if report.Error != "" {
				t.Fatalf("unexpected file error: %s", report.Error)
			}
			if report.TotalEntries != tt.wantEntries {
				t.Errorf("total entries %d, want %d", report.TotalEntries, tt.wantEntries)
			}
			if len(report.Errors) != tt.wantErrors {
				t.Errorf("entry errors %d, want %d", len(report.Errors), tt.wantErrors)
			}
		})
	}
}

func TestValidateFile_EntrySummary(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.json", `{"results":[{"title":"only title"}]}`)

	report := ValidateFile(path, []string{"title", "agency"})
	if len(report.Errors) != 1 {
		t.Fatalf("got %d errors, want 1", len(report.Errors))
	}

	e := report.Errors[0]
	if e.Index != 0 {
		t.Errorf("index %d, want 0", e.Index)
	}
	if len(e.MissingFields) != 1 || e.MissingFields[0] != "agency" {
		t.Errorf("missing fields %v, want [agency]", e.MissingFields)
	}
	// Summary holds only the required fields that are present.
	if e.EntrySummary["title"] != "only title" {
		t.Errorf("summary missing title: %v", e.EntrySummary)
	}
	if _, ok := e.EntrySummary["agency"]; ok {
		t.Errorf("summary should not contain the absent field")
	}
}

func TestValidateFolder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.json", `{"results":[{"title":"t","agency":"a"}]}`)
	writeFile(t, dir, "bad.json", `{not json`)
	writeFile(t, dir, "ignored.txt", `not a dataset`)

	reports, err := ValidateFolder(context.Background(), dir, []string{"title"}, 2)
	if err != nil {
		t.Fatalf("ValidateFolder failed: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}

	// Sorted by path: bad.json before good.json.
	if reports[0].Error == "" {
		t.Errorf("bad.json should carry a decode error")
	}
	if !reports[1].Valid() {
		t.Errorf("good.json should be valid: %+v", reports[1])
	}
}
