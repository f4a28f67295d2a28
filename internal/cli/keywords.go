package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/insightsgpt/insightsgpt/internal/monitor"
)

var (
	kwInputDir  string
	kwOutputDir string
	kwKeywords  []string
	kwWorkers   int
)

// keywordsCmd represents the keywords command
var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Flag archived records that mention any of the given keywords",
	Long: `Scan every JSON file in a folder for entries whose serialized JSON
contains any keyword, case-insensitively, and write the flagged entries
to flagged_<name>.json under the output folder.

Example:
  insightsgpt keywords --input-dir data/federal_register --output-dir flagged --keywords privacy,biometric`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if kwInputDir == "" || kwOutputDir == "" {
			return fmt.Errorf("--input-dir and --output-dir are required")
		}
		if len(kwKeywords) == 0 {
			return fmt.Errorf("--keywords is required")
		}

		summaries, err := monitor.ScanFolder(context.Background(), kwInputDir, kwOutputDir, kwKeywords, kwWorkers)
		if err != nil {
			return fmt.Errorf("scan folder: %w", err)
		}

		for _, s := range summaries {
			switch {
			case s.Error != "":
				warnf("%s: %s\n", s.File, s.Error)
			case s.FlaggedCount > 0:
				statusf("Flagged %d of %d entries: %s\n", s.FlaggedCount, s.TotalEntries, s.OutputFile)
			case verbose:
				fmt.Fprintf(cmd.ErrOrStderr(), "No matches in %s\n", s.File)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keywordsCmd)

	keywordsCmd.Flags().StringVar(&kwInputDir, "input-dir", "", "folder of JSON files to scan")
	keywordsCmd.Flags().StringVar(&kwOutputDir, "output-dir", "", "folder to write flagged results")
	keywordsCmd.Flags().StringSliceVar(&kwKeywords, "keywords", nil, "keywords to monitor (repeatable)")
	keywordsCmd.Flags().IntVar(&kwWorkers, "workers", 4, "concurrent file workers")
}
