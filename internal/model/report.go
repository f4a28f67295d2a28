package model

// FileReport is the validation result for a single JSON data file.
type FileReport struct {
	File         string       `json:"file"`
	Error        string       `json:"error,omitempty"`
	TotalEntries int          `json:"total_entries"`
	Errors       []EntryError `json:"errors"`
}

// EntryError records the required fields missing from one entry.
type EntryError struct {
	Index         int                    `json:"index"`
	MissingFields []string               `json:"missing_fields"`
	EntrySummary  map[string]interface{} `json:"entry_summary"`
}

// Valid reports whether the file parsed and every entry carried all
// required fields.
func (r FileReport) Valid() bool {
	return r.Error == "" && len(r.Errors) == 0
}

// SegmentMatch is one above-threshold pair from the similarity detector.
type SegmentMatch struct {
	Segment1Index int     `json:"segment1_index"`
	Segment2Index int     `json:"segment2_index"`
	Score         float64 `json:"score"`
	Text1         string  `json:"text1"`
	Text2         string  `json:"text2"`
}
