package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/insightsgpt/insightsgpt/internal/gov"
	"github.com/insightsgpt/insightsgpt/internal/store"
)

var (
	giCollection string
	giStartDate  string
	giEndDate    string
	giModified   string
	giPageSize   int
	giOffsetMark string
)

// govinfoCmd represents the govinfo command group
var govinfoCmd = &cobra.Command{
	Use:   "govinfo",
	Short: "Fetch data from the GovInfo API",
	Long: `Fetch collection listings, package lists, and package summaries from
the GovInfo API. Requires GOVINFO_API_KEY.`,
}

var govinfoCollectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List all available collections",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st := govinfoSetup()
		raw, err := client.Collections(context.Background())
		if err != nil {
			return fmt.Errorf("fetch collections: %w", err)
		}
		return saveRaw(st, raw, "govinfo", "govinfo_collections")
	},
}

var govinfoPackagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "List packages in a collection",
	Long: `List packages in a collection, filtered by issue date and modified
timestamp, with offsetMark pagination.

Example:
  insightsgpt govinfo packages --collection BILLS --start-date 2023-01-01 --end-date 2023-12-31`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if giCollection == "" {
			return fmt.Errorf("--collection is required")
		}

		client, st := govinfoSetup()
		raw, err := client.Packages(context.Background(), gov.PackageSearch{
			Collection:    giCollection,
			StartDate:     giStartDate,
			EndDate:       giEndDate,
			ModifiedSince: giModified,
			PageSize:      giPageSize,
			OffsetMark:    giOffsetMark,
		})
		if err != nil {
			return fmt.Errorf("fetch packages: %w", err)
		}

		ids := []store.KV{{Key: "collection", Value: giCollection}}
		if giStartDate != "" {
			ids = append(ids, store.KV{Key: "from", Value: giStartDate})
		}
		if giEndDate != "" {
			ids = append(ids, store.KV{Key: "to", Value: giEndDate})
		}
		return saveRaw(st, raw, "govinfo", "govinfo_packages", ids...)
	},
}

var govinfoSummaryCmd = &cobra.Command{
	Use:   "package-summary <package-id>",
	Short: "Fetch the summary record for one package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st := govinfoSetup()
		raw, err := client.PackageSummary(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("fetch package summary: %w", err)
		}
		return saveRaw(st, raw, "govinfo", "govinfo_package_summary",
			store.KV{Key: "package", Value: args[0]},
		)
	},
}

// govinfoSetup builds the API client and store from the configuration.
func govinfoSetup() (*gov.GovInfoClient, *store.Store) {
	cfg := loadConfig()
	return gov.NewGovInfoClient(newFetchClient(cfg), cfg.Keys.GovInfo), newStore(cfg)
}

func init() {
	rootCmd.AddCommand(govinfoCmd)

	govinfoPackagesCmd.Flags().StringVar(&giCollection, "collection", "", "collection code (BILLS, FR, CREC, ...)")
	govinfoPackagesCmd.Flags().StringVar(&giStartDate, "start-date", "", "issued on or after (YYYY-MM-DD)")
	govinfoPackagesCmd.Flags().StringVar(&giEndDate, "end-date", "", "issued on or before (YYYY-MM-DD)")
	govinfoPackagesCmd.Flags().StringVar(&giModified, "modified-since", "", "modified since (RFC 3339 timestamp)")
	govinfoPackagesCmd.Flags().IntVar(&giPageSize, "page-size", 0, "results per page")
	govinfoPackagesCmd.Flags().StringVar(&giOffsetMark, "offset-mark", "", "pagination cursor from a previous response")

	govinfoCmd.AddCommand(govinfoCollectionsCmd)
	govinfoCmd.AddCommand(govinfoPackagesCmd)
	govinfoCmd.AddCommand(govinfoSummaryCmd)
}
