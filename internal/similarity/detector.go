package similarity

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/insightsgpt/insightsgpt/internal/model"
)

// Result reports the segment-level similarity between two documents.
type Result struct {
	Segments1  int                  `json:"segments1"`
	Segments2  int                  `json:"segments2"`
	Threshold  float64              `json:"threshold"`
	MaxScore   float64              `json:"max_score"`
	MatchCount int                  `json:"match_count"`
	Matches    []model.SegmentMatch `json:"matches"`
}

// Detector finds near-duplicate segments between two documents.
type Detector struct {
	embedder    Embedder
	segmentSize int
	overlap     int
	threshold   float64
}

// NewDetector creates a detector. The threshold is applied as given;
// callers validate ranges.
func NewDetector(embedder Embedder, segmentSize, overlap int, threshold float64) *Detector {
	return &Detector{
		embedder:    embedder,
		segmentSize: segmentSize,
		overlap:     overlap,
		threshold:   threshold,
	}
}

// Compare preprocesses and segments both documents, embeds every
// segment, and returns all cross-document segment pairs whose cosine
// similarity meets the threshold, sorted by score descending.
func (d *Detector) Compare(ctx context.Context, text1, text2 string) (*Result, error) {
	segs1 := Segment(Preprocess(text1), d.segmentSize, d.overlap)
	segs2 := Segment(Preprocess(text2), d.segmentSize, d.overlap)

	result := &Result{
		Segments1: len(segs1),
		Segments2: len(segs2),
		Threshold: d.threshold,
		Matches:   []model.SegmentMatch{},
	}
	if len(segs1) == 0 || len(segs2) == 0 {
		return result, nil
	}

	// One embedding call for both documents' segments.
	vectors, err := d.embedder.Embed(ctx, append(append([]string{}, segs1...), segs2...))
	if err != nil {
		return nil, fmt.Errorf("embed segments: %w", err)
	}
	if len(vectors) != len(segs1)+len(segs2) {
		return nil, fmt.Errorf("embed segments: got %d vectors for %d segments", len(vectors), len(segs1)+len(segs2))
	}
	vecs1 := vectors[:len(segs1)]
	vecs2 := vectors[len(segs1):]

	for i, v1 := range vecs1 {
		for j, v2 := range vecs2 {
			score := Cosine(v1, v2)
			if score > result.MaxScore {
				result.MaxScore = score
			}
			if score >= d.threshold {
				result.Matches = append(result.Matches, model.SegmentMatch{
					Segment1Index: i,
					Segment2Index: j,
					Score:         score,
					Text1:         segs1[i],
					Text2:         segs2[j],
				})
			}
		}
	}

	sort.Slice(result.Matches, func(a, b int) bool {
		return result.Matches[a].Score > result.Matches[b].Score
	})
	result.MatchCount = len(result.Matches)
	return result, nil
}

// Cosine computes the cosine similarity of two vectors, accumulating
// in float64. Mismatched lengths or zero vectors score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
