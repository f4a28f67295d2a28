package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/insightsgpt/insightsgpt/internal/gov"
	"github.com/insightsgpt/insightsgpt/internal/store"
)

var (
	fecQuery       string
	fecCycle       int
	fecState       string
	fecParty       string
	fecOffice      string
	fecPerPage     int
	fecPage        int
	fecCommitteeID string
)

// fecCmd represents the fec command group
var fecCmd = &cobra.Command{
	Use:   "fec",
	Short: "Fetch data from the Federal Election Commission API",
	Long: `Fetch candidate, committee, and filing records from the FEC API.
Requires FEC_API_KEY.`,
}

var fecCandidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Search candidate records",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st := fecSetup()
		raw, err := client.Candidates(context.Background(), fecSearch())
		if err != nil {
			return fmt.Errorf("search candidates: %w", err)
		}
		return saveRaw(st, raw, "fec", "fec_candidates", fecIDs()...)
	},
}

var fecCommitteesCmd = &cobra.Command{
	Use:   "committees",
	Short: "Search committee records",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st := fecSetup()
		raw, err := client.Committees(context.Background(), fecSearch())
		if err != nil {
			return fmt.Errorf("search committees: %w", err)
		}
		return saveRaw(st, raw, "fec", "fec_committees", fecIDs()...)
	},
}

var fecFilingsCmd = &cobra.Command{
	Use:   "filings",
	Short: "Search filing records, optionally scoped to a committee",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st := fecSetup()
		raw, err := client.Filings(context.Background(), fecCommitteeID, fecSearch())
		if err != nil {
			return fmt.Errorf("search filings: %w", err)
		}
		ids := fecIDs()
		if fecCommitteeID != "" {
			ids = append(ids, store.KV{Key: "committee", Value: fecCommitteeID})
		}
		return saveRaw(st, raw, "fec", "fec_filings", ids...)
	},
}

// fecSetup builds the API client and store from the configuration.
func fecSetup() (*gov.FECClient, *store.Store) {
	cfg := loadConfig()
	return gov.NewFECClient(newFetchClient(cfg), cfg.Keys.FEC), newStore(cfg)
}

func fecSearch() gov.FECSearch {
	return gov.FECSearch{
		Query:   fecQuery,
		Cycle:   fecCycle,
		State:   fecState,
		Party:   fecParty,
		Office:  fecOffice,
		PerPage: fecPerPage,
		Page:    fecPage,
	}
}

func fecIDs() []store.KV {
	ids := []store.KV{}
	if fecQuery != "" {
		ids = append(ids, store.KV{Key: "q", Value: fecQuery})
	}
	if fecCycle != 0 {
		ids = append(ids, store.KV{Key: "cycle", Value: strconv.Itoa(fecCycle)})
	}
	if fecState != "" {
		ids = append(ids, store.KV{Key: "state", Value: fecState})
	}
	if len(ids) == 0 {
		ids = append(ids, store.KV{Key: "all", Value: "all"})
	}
	return ids
}

func init() {
	rootCmd.AddCommand(fecCmd)

	fecCmd.PersistentFlags().StringVar(&fecQuery, "query", "", "name search query")
	fecCmd.PersistentFlags().IntVar(&fecCycle, "cycle", 0, "election cycle (e.g. 2024)")
	fecCmd.PersistentFlags().StringVar(&fecState, "state", "", "two-letter state code")
	fecCmd.PersistentFlags().StringVar(&fecParty, "party", "", "party code (DEM, REP, ...)")
	fecCmd.PersistentFlags().StringVar(&fecOffice, "office", "", "office (H, S, P)")
	fecCmd.PersistentFlags().IntVar(&fecPerPage, "per-page", 0, "results per page")
	fecCmd.PersistentFlags().IntVar(&fecPage, "page", 0, "page number")

	fecFilingsCmd.Flags().StringVar(&fecCommitteeID, "committee-id", "", "scope filings to one committee")

	fecCmd.AddCommand(fecCandidatesCmd)
	fecCmd.AddCommand(fecCommitteesCmd)
	fecCmd.AddCommand(fecFilingsCmd)
}
