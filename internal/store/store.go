package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// KV is one filename identifier. Identifiers are ordered so the same
// invocation always derives the same filename.
type KV struct {
	Key   string
	Value string
}

// Store writes fetched JSON under a base data directory, one
// subdirectory per source (congress, regulations, govinfo, ...).
type Store struct {
	baseDir string
}

// New creates a store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// WriteRaw persists an upstream response verbatim, re-indented for
// readability. The body must be valid JSON; nothing is added or removed.
func (s *Store) WriteRaw(raw []byte, subDir, prefix string, ids ...KV) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", fmt.Errorf("response is not valid JSON: %w", err)
	}
	buf.WriteByte('\n')

	return s.write(buf.Bytes(), subDir, prefix, ids)
}

// WriteValue persists a locally-built document (reports, aggregates).
func (s *Store) WriteValue(v interface{}, subDir, prefix string, ids ...KV) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	data = append(data, '\n')

	return s.write(data, subDir, prefix, ids)
}

func (s *Store) write(data []byte, subDir, prefix string, ids []KV) (string, error) {
	dir := s.baseDir
	if subDir != "" {
		dir = filepath.Join(dir, subDir)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, Filename(prefix, ids...))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write output file: %w", err)
	}

	return path, nil
}

// Filename derives `<prefix>_<k>_<v>_... .json` from the identifiers,
// skipping empty values.
func Filename(prefix string, ids ...KV) string {
	parts := []string{prefix}
	for _, id := range ids {
		if id.Value == "" {
			continue
		}
		parts = append(parts, id.Key+"_"+sanitize(id.Value))
	}
	return strings.Join(parts, "_") + ".json"
}

// sanitize makes an identifier value safe for use in a filename.
func sanitize(s string) string {
	replacer := strings.NewReplacer(
		" ", "_",
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	s = replacer.Replace(s)
	if len(s) > 100 {
		cut := 100
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	return s
}
