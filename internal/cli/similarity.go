package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/insightsgpt/insightsgpt/internal/similarity"
)

var (
	simBill1       string
	simBill2       string
	simThreshold   float64
	simSegmentSize int
	simOverlap     int
	simOutput      string
	simProvider    string
	simModel       string
	simBaseURL     string
)

// similarityCmd represents the similarity command
var similarityCmd = &cobra.Command{
	Use:   "similarity",
	Short: "Detect near-duplicate text between two bills",
	Long: `Compare two bill text files for copied or templated language.

Both texts are stripped of legislative boilerplate, segmented into
overlapping word windows, embedded, and compared pairwise by cosine
similarity. Segment pairs scoring at or above the threshold are
reported with their texts.

Providers: openai (requires OPENAI_API_KEY) or ollama (local server).

Example:
  insightsgpt similarity --bill1 hr3076.txt --bill2 s1720.txt --threshold 0.85
  insightsgpt similarity --bill1 a.txt --bill2 b.txt --provider ollama --model nomic-embed-text`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if simBill1 == "" || simBill2 == "" {
			return fmt.Errorf("--bill1 and --bill2 are required")
		}
		if simThreshold < 0 || simThreshold > 1 {
			return fmt.Errorf("threshold must be between 0 and 1, got %g", simThreshold)
		}
		if simSegmentSize <= 0 {
			return fmt.Errorf("segment size must be positive, got %d", simSegmentSize)
		}
		if simOverlap < 0 || simOverlap >= simSegmentSize {
			return fmt.Errorf("overlap must be in [0, segment size), got %d", simOverlap)
		}

		text1, err := os.ReadFile(simBill1)
		if err != nil {
			return fmt.Errorf("read bill text: %w", err)
		}
		text2, err := os.ReadFile(simBill2)
		if err != nil {
			return fmt.Errorf("read bill text: %w", err)
		}

		cfg := loadConfig()
		provider := simProvider
		if provider == "" {
			provider = cfg.Similarity.Provider
		}
		embModel := simModel
		if embModel == "" {
			embModel = cfg.Similarity.Model
		}
		baseURL := simBaseURL
		if baseURL == "" {
			baseURL = cfg.Similarity.BaseURL
		}

		embedder, err := similarity.NewEmbedder(provider, embModel, baseURL, cfg.Keys.OpenAI)
		if err != nil {
			return fmt.Errorf("create embedder: %w", err)
		}

		if verbose {
			fmt.Fprintf(os.Stderr, "Provider: %s, model: %s\n", provider, embModel)
			fmt.Fprintf(os.Stderr, "Segment size: %d words, overlap: %d, threshold: %g\n",
				simSegmentSize, simOverlap, simThreshold)
		}

		detector := similarity.NewDetector(embedder, simSegmentSize, simOverlap, simThreshold)
		result, err := detector.Compare(context.Background(), string(text1), string(text2))
		if err != nil {
			return fmt.Errorf("compare bills: %w", err)
		}

		statusf("%d x %d segments, %d matches at threshold %g (max score %.4f)\n",
			result.Segments1, result.Segments2, result.MatchCount, result.Threshold, result.MaxScore)

		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		data = append(data, '\n')

		if simOutput != "" {
			if err := os.WriteFile(simOutput, data, 0644); err != nil {
				return fmt.Errorf("write result: %w", err)
			}
			statusf("Similarity report saved to %s\n", simOutput)
			return nil
		}

		fmt.Print(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(similarityCmd)

	similarityCmd.Flags().StringVar(&simBill1, "bill1", "", "first bill text file")
	similarityCmd.Flags().StringVar(&simBill2, "bill2", "", "second bill text file")
	similarityCmd.Flags().Float64Var(&simThreshold, "threshold", 0.8, "minimum cosine similarity to report (0-1)")
	similarityCmd.Flags().IntVar(&simSegmentSize, "segment-size", 100, "segment window size in words")
	similarityCmd.Flags().IntVar(&simOverlap, "overlap", 20, "overlap between consecutive segments in words")
	similarityCmd.Flags().StringVar(&simOutput, "output", "", "write the JSON report here instead of stdout")
	similarityCmd.Flags().StringVar(&simProvider, "provider", "", "embedding provider (openai, ollama)")
	similarityCmd.Flags().StringVar(&simModel, "model", "", "embedding model name")
	similarityCmd.Flags().StringVar(&simBaseURL, "base-url", "", "override the provider base URL")
}
