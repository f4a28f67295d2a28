package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/insightsgpt/insightsgpt/internal/gov"
	"github.com/insightsgpt/insightsgpt/internal/store"
)

var (
	sigKeywords    []string
	sigFrom        string
	sigTo          string
	sigMaxArticles int
	sigDelay       time.Duration
)

// signalsCmd represents the signals command group
var signalsCmd = &cobra.Command{
	Use:   "signals",
	Short: "Monitor real-time policy signals",
}

var signalsNewsCmd = &cobra.Command{
	Use:   "news",
	Short: "Fetch news articles mentioning policy keywords",
	Long: `Search NewsAPI for recent articles mentioning the given keywords and
archive a trimmed article list. Requires NEWS_API_KEY.

Example:
  insightsgpt signals news --keywords "carbon tax" --from 2026-08-01 --max-articles 200`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(sigKeywords) == 0 {
			return fmt.Errorf("--keywords is required")
		}

		cfg := loadConfig()
		client := gov.NewNewsClient(newFetchClient(cfg), cfg.Keys.News)
		st := newStore(cfg)

		query := strings.Join(sigKeywords, " OR ")
		archive, err := client.SearchArticles(context.Background(), query, sigFrom, sigTo, sigMaxArticles, sigDelay)
		if err != nil {
			return fmt.Errorf("fetch news signals: %w", err)
		}
		statusf("Fetched %d articles for %q\n", archive.ArticleCount, query)

		return saveValue(st, archive, "signals", "news_signals",
			store.KV{Key: "q", Value: strings.Join(sigKeywords, "-")},
			store.KV{Key: "from", Value: sigFrom},
			store.KV{Key: "to", Value: sigTo},
		)
	},
}

func init() {
	rootCmd.AddCommand(signalsCmd)

	signalsNewsCmd.Flags().StringSliceVar(&sigKeywords, "keywords", nil, "keywords to monitor (repeatable)")
	signalsNewsCmd.Flags().StringVar(&sigFrom, "from", "", "earliest article date (YYYY-MM-DD)")
	signalsNewsCmd.Flags().StringVar(&sigTo, "to", "", "latest article date (YYYY-MM-DD)")
	signalsNewsCmd.Flags().IntVar(&sigMaxArticles, "max-articles", 100, "stop after this many articles")
	signalsNewsCmd.Flags().DurationVar(&sigDelay, "delay", time.Second, "pause between pages")

	signalsCmd.AddCommand(signalsNewsCmd)
}
