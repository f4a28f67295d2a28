// Package validate checks archived JSON datasets against a list of
// required entry fields and produces per-file reports.
package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/insightsgpt/insightsgpt/internal/model"
	"github.com/insightsgpt/insightsgpt/internal/worker"
)

// ValidateFile checks every entry of one dataset file for the required
// fields. A file that cannot be read or parsed gets a report with the
// Error field set rather than an error return.
func ValidateFile(path string, requiredFields []string) *model.FileReport {
	report := &model.FileReport{File: path, Errors: []model.EntryError{}}

	raw, err := os.ReadFile(path)
	if err != nil {
		report.Error = fmt.Sprintf("read error: %v", err)
		return report
	}

	entries, err := decodeEntries(raw)
	if err != nil {
		report.Error = fmt.Sprintf("JSON decode error: %v", err)
		return report
	}

	report.TotalEntries = len(entries)
	for idx, entry := range entries {
		var missing []string
		summary := map[string]any{}
		for _, field := range requiredFields {
			if val, ok := entry[field]; ok {
				summary[field] = val
			} else {
				missing = append(missing, field)
			}
		}
		if len(missing) > 0 {
			report.Errors = append(report.Errors, model.EntryError{
				Index:         idx,
				MissingFields: missing,
				EntrySummary:  summary,
			})
		}
	}

	return report
}

// decodeEntries accepts either a {"results": [...]} envelope or a bare
// top-level array. An envelope without results validates as empty.
func decodeEntries(raw []byte) ([]map[string]any, error) {
	var envelope struct {
		Results []map[string]any `json:"results"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		return envelope.Results, nil
	}

	var list []map[string]any
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ValidateFolder validates every .json file in dir concurrently and
// returns the reports sorted by file path.
func ValidateFolder(ctx context.Context, dir string, requiredFields []string, workers int) ([]*model.FileReport, error) {
	var mu sync.Mutex
	reports := []*model.FileReport{}

	_, err := worker.ProcessFolder(ctx, dir, workers, func(ctx context.Context, path string) error {
		report := ValidateFile(path, requiredFields)
		mu.Lock()
		reports = append(reports, report)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].File < reports[j].File })
	return reports, nil
}
