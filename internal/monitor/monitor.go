// Package monitor scans archived JSON datasets for keyword hits and
// writes the flagged entries to a sibling dataset.
package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/insightsgpt/insightsgpt/internal/worker"
)

// FileSummary reports the keyword scan of one input file.
type FileSummary struct {
	File         string `json:"file"`
	Error        string `json:"error,omitempty"`
	TotalEntries int    `json:"total_entries"`
	FlaggedCount int    `json:"flagged_count"`
	OutputFile   string `json:"output_file,omitempty"`
}

// FlagEntries returns the entries whose serialized JSON contains any
// keyword, case-insensitively. An entry is flagged at most once.
func FlagEntries(entries []json.RawMessage, keywords []string) []json.RawMessage {
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}

	flagged := []json.RawMessage{}
	for _, entry := range entries {
		haystack := strings.ToLower(string(entry))
		for _, k := range lowered {
			if strings.Contains(haystack, k) {
				flagged = append(flagged, entry)
				break
			}
		}
	}
	return flagged
}

// ScanFile flags keyword hits in one dataset file and, when any exist,
// writes flagged_<name>.json under outputDir.
func ScanFile(path, outputDir string, keywords []string) *FileSummary {
	summary := &FileSummary{File: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		summary.Error = fmt.Sprintf("read error: %v", err)
		return summary
	}

	entries, err := decodeEntries(raw)
	if err != nil {
		summary.Error = fmt.Sprintf("JSON decode error: %v", err)
		return summary
	}

	summary.TotalEntries = len(entries)
	flagged := FlagEntries(entries, keywords)
	summary.FlaggedCount = len(flagged)
	if len(flagged) == 0 {
		return summary
	}

	out, err := json.MarshalIndent(map[string]any{"results": flagged}, "", "  ")
	if err != nil {
		summary.Error = fmt.Sprintf("encode error: %v", err)
		return summary
	}

	outputPath := filepath.Join(outputDir, "flagged_"+filepath.Base(path))
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		summary.Error = fmt.Sprintf("create output dir: %v", err)
		return summary
	}
	if err := os.WriteFile(outputPath, append(out, '\n'), 0644); err != nil {
		summary.Error = fmt.Sprintf("write error: %v", err)
		return summary
	}

	summary.OutputFile = outputPath
	return summary
}

// decodeEntries accepts either a {"results": [...]} envelope or a bare
// top-level array, matching the shapes the fetch commands archive.
func decodeEntries(raw []byte) ([]json.RawMessage, error) {
	var envelope struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		return envelope.Results, nil
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ScanFolder scans every .json file in dir concurrently and returns
// the summaries sorted by file path.
func ScanFolder(ctx context.Context, dir, outputDir string, keywords []string, workers int) ([]*FileSummary, error) {
	var mu sync.Mutex
	summaries := []*FileSummary{}

	_, err := worker.ProcessFolder(ctx, dir, workers, func(ctx context.Context, path string) error {
		summary := ScanFile(path, outputDir, keywords)
		mu.Lock()
		summaries = append(summaries, summary)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].File < summaries[j].File })
	return summaries, nil
}
