package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		ids    []KV
		want   string
	}{
		{
			name:   "no identifiers",
			prefix: "fr_agencies",
			want:   "fr_agencies.json",
		},
		{
			name:   "ordered identifiers",
			prefix: "bill_data",
			ids: []KV{
				{Key: "congress", Value: "117"},
				{Key: "type", Value: "hr"},
				{Key: "number", Value: "3076"},
			},
			want: "bill_data_congress_117_type_hr_number_3076.json",
		},
		{
			name:   "empty values skipped",
			prefix: "fr_documents",
			ids: []KV{
				{Key: "term", Value: "energy"},
				{Key: "year", Value: ""},
			},
			want: "fr_documents_term_energy.json",
		},
		{
			name:   "unsafe characters sanitized",
			prefix: "regs_docket",
			ids:    []KV{{Key: "id", Value: "EPA/HQ:2021?"}},
			want:   "regs_docket_id_EPA_HQ_2021_.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filename(tt.prefix, tt.ids...)
			if got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilename_LongValueTruncated(t *testing.T) {
	long := strings.Repeat("x", 300)
	got := Filename("p", KV{Key: "k", Value: long})
	if len(got) > len("p_k_")+100+len(".json") {
		t.Errorf("filename not truncated: %d chars", len(got))
	}
}

func TestFilename_TruncatesOnRuneBoundary(t *testing.T) {
	// 40 three-byte runes is 120 bytes; a byte-100 cut would split the
	// 34th rune and leave an invalid-UTF-8 filename.
	got := Filename("fr_agency", KV{Key: "name", Value: strings.Repeat("€", 40)})

	val := strings.TrimSuffix(strings.TrimPrefix(got, "fr_agency_name_"), ".json")
	if !utf8.ValidString(val) {
		t.Fatalf("truncated value is not valid UTF-8: %q", val)
	}
	if len(val) != 99 {
		t.Errorf("got %d bytes, want 99 (nearest rune boundary under 100)", len(val))
	}
}

func TestWriteRaw_PreservesContentVerbatim(t *testing.T) {
	st := New(t.TempDir())

	// Key order and values must survive; only indentation changes.
	raw := []byte(`{"zebra":1,"alpha":{"nested":true},"count":2}`)
	path, err := st.WriteRaw(raw, "congress", "bill_data", KV{Key: "congress", Value: "117"})
	if err != nil {
		t.Fatalf("WriteRaw failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	out := string(data)
	if strings.Index(out, `"zebra"`) > strings.Index(out, `"alpha"`) {
		t.Errorf("key order changed:\n%s", out)
	}
	if !strings.Contains(out, `"nested": true`) {
		t.Errorf("nested value lost:\n%s", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("output missing trailing newline")
	}
}

func TestWriteRaw_RejectsInvalidJSON(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.WriteRaw([]byte("not json"), "x", "p"); err == nil {
		t.Fatal("expected an error for invalid JSON")
	}
}

func TestWriteRaw_CreatesSourceSubdir(t *testing.T) {
	base := t.TempDir()
	st := New(base)

	path, err := st.WriteRaw([]byte(`{}`), "federal_register", "fr_agencies")
	if err != nil {
		t.Fatalf("WriteRaw failed: %v", err)
	}

	want := filepath.Join(base, "federal_register", "fr_agencies.json")
	if path != want {
		t.Errorf("path %q, want %q", path, want)
	}
}

func TestWriteValue(t *testing.T) {
	st := New(t.TempDir())

	doc := map[string]int{"bill_count": 3}
	path, err := st.WriteValue(doc, "congress", "bills_archive", KV{Key: "congress", Value: "117"})
	if err != nil {
		t.Fatalf("WriteValue failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), `"bill_count": 3`) {
		t.Errorf("document content wrong:\n%s", data)
	}
}
