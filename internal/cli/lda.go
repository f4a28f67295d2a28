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
	ldaRegistrant string
	ldaClient     string
	ldaYear       int
	ldaPeriod     string
	ldaPageSize   int
	ldaPage       int
)

// ldaCmd represents the lda command group
var ldaCmd = &cobra.Command{
	Use:   "lda",
	Short: "Fetch data from the Senate lobbying disclosure API",
	Long: `Fetch lobbying disclosure filings and registrant records from the
Senate LDA API. LDA_API_KEY is optional; authenticated requests get a
higher rate limit.`,
}

var ldaFilingsCmd = &cobra.Command{
	Use:   "filings",
	Short: "Search lobbying disclosure filings",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st := ldaSetup()
		raw, err := client.Filings(context.Background(), ldaSearch())
		if err != nil {
			return fmt.Errorf("search filings: %w", err)
		}
		return saveRaw(st, raw, "lda", "lda_filings", ldaIDs()...)
	},
}

var ldaRegistrantsCmd = &cobra.Command{
	Use:   "registrants",
	Short: "Search registered lobbying firms",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st := ldaSetup()
		raw, err := client.Registrants(context.Background(), ldaSearch())
		if err != nil {
			return fmt.Errorf("search registrants: %w", err)
		}
		return saveRaw(st, raw, "lda", "lda_registrants", ldaIDs()...)
	},
}

// ldaSetup builds the API client and store from the configuration.
func ldaSetup() (*gov.LDAClient, *store.Store) {
	cfg := loadConfig()
	return gov.NewLDAClient(newFetchClient(cfg), cfg.Keys.LDA), newStore(cfg)
}

func ldaSearch() gov.LDASearch {
	return gov.LDASearch{
		RegistrantName: ldaRegistrant,
		ClientName:     ldaClient,
		FilingYear:     ldaYear,
		FilingPeriod:   ldaPeriod,
		PageSize:       ldaPageSize,
		Page:           ldaPage,
	}
}

func ldaIDs() []store.KV {
	ids := []store.KV{}
	if ldaRegistrant != "" {
		ids = append(ids, store.KV{Key: "registrant", Value: ldaRegistrant})
	}
	if ldaClient != "" {
		ids = append(ids, store.KV{Key: "client", Value: ldaClient})
	}
	if ldaYear != 0 {
		ids = append(ids, store.KV{Key: "year", Value: strconv.Itoa(ldaYear)})
	}
	if len(ids) == 0 {
		ids = append(ids, store.KV{Key: "all", Value: "all"})
	}
	return ids
}

func init() {
	rootCmd.AddCommand(ldaCmd)

	ldaCmd.PersistentFlags().StringVar(&ldaRegistrant, "registrant", "", "registrant name filter")
	ldaCmd.PersistentFlags().StringVar(&ldaClient, "client", "", "client name filter")
	ldaCmd.PersistentFlags().IntVar(&ldaYear, "year", 0, "filing year")
	ldaCmd.PersistentFlags().StringVar(&ldaPeriod, "period", "", "filing period (first_quarter, mid_year, ...)")
	ldaCmd.PersistentFlags().IntVar(&ldaPageSize, "page-size", 0, "results per page")
	ldaCmd.PersistentFlags().IntVar(&ldaPage, "page", 0, "page number")

	ldaCmd.AddCommand(ldaFilingsCmd)
	ldaCmd.AddCommand(ldaRegistrantsCmd)
}
