package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileFunc processes one JSON data file and returns its per-file error,
// if any. A failing file never aborts the batch.
type FileFunc func(ctx context.Context, path string) error

// FileJob wraps a FileFunc invocation for the pool.
type FileJob struct {
	Path string
	Fn   FileFunc
}

// Execute runs the job.
func (j *FileJob) Execute(ctx context.Context) Result {
	return &FileResult{Path: j.Path, Err: j.Fn(ctx, j.Path)}
}

// FileResult is the outcome of processing one file.
type FileResult struct {
	Path string
	Err  error
}

// GetError returns the per-file error.
func (r *FileResult) GetError() error { return r.Err }

// ProcessFolder runs fn over every .json file in dir concurrently and
// returns one result per file, sorted by path.
func ProcessFolder(ctx context.Context, dir string, workers int, fn FileFunc) ([]*FileResult, error) {
	files, err := ListJSONFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("list folder: %w", err)
	}
	if len(files) == 0 {
		return []*FileResult{}, nil
	}

	pool := NewPool(workers)
	pool.Start()

	for _, path := range files {
		pool.Submit(&FileJob{Path: path, Fn: fn})
	}

	raw := pool.Wait()

	results := make([]*FileResult, 0, len(raw))
	for _, r := range raw {
		results = append(results, r.(*FileResult))
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	return results, nil
}

// ListJSONFiles returns the .json files directly inside dir.
func ListJSONFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)

	return files, nil
}
