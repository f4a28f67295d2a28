package similarity

import "strings"

// Segment slices text into overlapping word windows of size words,
// overlapping by overlap words. A document no longer than one window
// yields a single segment; otherwise the final window is right-aligned
// against the end of the document so no trailing fragment shorter than
// the overlap is emitted.
func Segment(text string, words, overlap int) []string {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil
	}
	if words <= 0 {
		words = 100
	}
	if overlap < 0 || overlap >= words {
		overlap = 0
	}
	if len(tokens) <= words {
		return []string{strings.Join(tokens, " ")}
	}

	step := words - overlap
	var segments []string
	for start := 0; ; start += step {
		end := start + words
		if end >= len(tokens) {
			// Right-align the last window.
			segments = append(segments, strings.Join(tokens[len(tokens)-words:], " "))
			break
		}
		segments = append(segments, strings.Join(tokens[start:end], " "))
	}
	return segments
}
