package monitor

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeDataset(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func TestFlagEntries(t *testing.T) {
	entries := []json.RawMessage{
		json.RawMessage(`{"title":"Clean Energy Standards","agency":"DOE"}`),
		json.RawMessage(`{"title":"Highway Funding","agency":"DOT"}`),
		json.RawMessage(`{"title":"notes","body":"discusses ENERGY markets"}`),
	}

	tests := []struct {
		name     string
		keywords []string
		want     int
	}{
		{"case insensitive match", []string{"energy"}, 2},
		{"matches any field", []string{"dot"}, 1},
		{"no match", []string{"aviation"}, 0},
		{"entry flagged once for multiple keywords", []string{"energy", "clean"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FlagEntries(entries, tt.keywords)
			if len(got) != tt.want {
				t.Errorf("got %d flagged, want %d", len(got), tt.want)
			}
		})
	}
}

func TestScanFile(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()

	path := writeDataset(t, inDir, "docs.json",
		`{"results":[{"title":"Privacy Rule"},{"title":"Tariff Notice"}]}`)

	summary := ScanFile(path, outDir, []string{"privacy"})
	if summary.Error != "" {
		t.Fatalf("unexpected error: %s", summary.Error)
	}
	if summary.TotalEntries != 2 || summary.FlaggedCount != 1 {
		t.Fatalf("got %d/%d flagged, want 1/2", summary.FlaggedCount, summary.TotalEntries)
	}

	want := filepath.Join(outDir, "flagged_docs.json")
	if summary.OutputFile != want {
		t.Errorf("output file %q, want %q", summary.OutputFile, want)
	}

	raw, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read flagged file: %v", err)
	}
	var envelope struct {
		Results []map[string]any `json:"results"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("parse flagged file: %v", err)
	}
	if len(envelope.Results) != 1 || envelope.Results[0]["title"] != "Privacy Rule" {
		t.Errorf("flagged content wrong: %v", envelope.Results)
	}
}

func TestScanFile_BareArray(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()

	// Some datasets are a top-level array rather than a results envelope.
	path := writeDataset(t, inDir, "list.json",
		`[{"title":"Privacy Rule"},{"title":"Tariff Notice"}]`)

	summary := ScanFile(path, outDir, []string{"privacy"})
	if summary.Error != "" {
		t.Fatalf("unexpected error: %s", summary.Error)
	}
	if summary.TotalEntries != 2 || summary.FlaggedCount != 1 {
		t.Fatalf("got %d/%d flagged, want 1/2", summary.FlaggedCount, summary.TotalEntries)
	}
	if summary.OutputFile == "" {
		t.Error("expected a flagged output file")
	}
}

func TestScanFile_NoMatchesWritesNothing(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()

	path := writeDataset(t, inDir, "docs.json", `{"results":[{"title":"Tariff Notice"}]}`)

	summary := ScanFile(path, outDir, []string{"privacy"})
	if summary.FlaggedCount != 0 || summary.OutputFile != "" {
		t.Fatalf("expected no output, got %+v", summary)
	}
	if _, err := os.Stat(filepath.Join(outDir, "flagged_docs.json")); !os.IsNotExist(err) {
		t.Errorf("flagged file should not exist")
	}
}

func TestScanFile_DecodeError(t *testing.T) {
	inDir := t.TempDir()
	path := writeDataset(t, inDir, "bad.json", `{not json`)

	summary := ScanFile(path, t.TempDir(), []string{"x"})
	if summary.Error == "" {
		t.Error("expected a decode error in the summary")
	}
}

func TestScanFolder(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()

	writeDataset(t, inDir, "a.json", `{"results":[{"title":"Energy Rule"}]}`)
	writeDataset(t, inDir, "b.json", `{"results":[{"title":"Water Rule"}]}`)
	writeDataset(t, inDir, "c.json", `{broken`)

	summaries, err := ScanFolder(context.Background(), inDir, outDir, []string{"energy"}, 2)
	if err != nil {
		t.Fatalf("ScanFolder failed: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("got %d summaries, want 3", len(summaries))
	}

	// Sorted by path: a, b, c.
	if summaries[0].FlaggedCount != 1 {
		t.Errorf("a.json: got %d flagged, want 1", summaries[0].FlaggedCount)
	}
	if summaries[1].FlaggedCount != 0 {
		t.Errorf("b.json: got %d flagged, want 0", summaries[1].FlaggedCount)
	}
	if summaries[2].Error == "" {
		t.Errorf("c.json: expected a decode error, batch should continue past it")
	}
}
