package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/insightsgpt/insightsgpt/internal/validate"
)

var (
	valInputDir string
	valOutput   string
	valFields   []string
	valWorkers  int
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate archived JSON datasets against required fields",
	Long: `Check every entry of every JSON file in a folder for a set of
required fields and write a per-file validation report. Files that fail
to parse are reported and do not abort the run.

Example:
  insightsgpt validate --input-dir data/federal_register --output validation.json
  insightsgpt validate --input-dir data/regulations --output report.json --required-fields title,agency`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if valInputDir == "" || valOutput == "" {
			return fmt.Errorf("--input-dir and --output are required")
		}

		reports, err := validate.ValidateFolder(context.Background(), valInputDir, valFields, valWorkers)
		if err != nil {
			return fmt.Errorf("validate folder: %w", err)
		}

		data, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal validation report: %w", err)
		}
		if err := os.WriteFile(valOutput, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("write validation report: %w", err)
		}

		invalid := 0
		for _, r := range reports {
			if !r.Valid() {
				invalid++
			}
		}
		if invalid > 0 {
			warnf("%d of %d files have validation errors\n", invalid, len(reports))
		}
		statusf("Validation results saved to %s\n", valOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&valInputDir, "input-dir", "", "folder of JSON files to validate")
	validateCmd.Flags().StringVar(&valOutput, "output", "", "file to write the validation report")
	validateCmd.Flags().StringSliceVar(&valFields, "required-fields", []string{"title", "publication_date", "agency"}, "fields every entry must have")
	validateCmd.Flags().IntVar(&valWorkers, "workers", 4, "concurrent file workers")
}
