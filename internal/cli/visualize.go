package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/insightsgpt/insightsgpt/internal/viz"
)

var (
	vizInputDir  string
	vizOutputDir string
)

// visualizeCmd represents the visualize command
var visualizeCmd = &cobra.Command{
	Use:   "visualize",
	Short: "Generate summary charts from archived JSON datasets",
	Long: `Combine the entries of every JSON file in a folder and render a
publication-trends-by-year line chart and a top-10-agencies bar chart
as PNG files.

Example:
  insightsgpt visualize --input-dir data/federal_register --output-dir charts`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if vizInputDir == "" || vizOutputDir == "" {
			return fmt.Errorf("--input-dir and --output-dir are required")
		}

		entries, err := viz.LoadFolder(vizInputDir)
		if err != nil {
			return fmt.Errorf("load datasets: %w", err)
		}
		if len(entries) == 0 {
			return fmt.Errorf("no entries found in %s", vizInputDir)
		}

		if path, err := viz.PublicationTrends(entries, vizOutputDir); err != nil {
			warnf("publication trends: %v\n", err)
		} else {
			statusf("Chart saved to %s\n", path)
		}

		if path, err := viz.AgencyDistribution(entries, vizOutputDir); err != nil {
			warnf("agency distribution: %v\n", err)
		} else {
			statusf("Chart saved to %s\n", path)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(visualizeCmd)

	visualizeCmd.Flags().StringVar(&vizInputDir, "input-dir", "", "folder of JSON files to analyze")
	visualizeCmd.Flags().StringVar(&vizOutputDir, "output-dir", "", "folder to write PNG charts")
}
