package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/insightsgpt/insightsgpt/internal/gov"
	"github.com/insightsgpt/insightsgpt/internal/store"
)

var (
	frTerm     string
	frPerPage  string
	frPage     string
	frOrder    string
	frYear     string
	frDateGTE  string
	frDateLTE  string
	frDateIs   string
	frAgencies []string
	frDocTypes []string
	frFacet    string
	frSections []string
)

// fedregCmd represents the fedreg command group
var fedregCmd = &cobra.Command{
	Use:   "fedreg",
	Short: "Fetch data from the Federal Register API",
	Long: `Fetch published documents, public inspection documents, issue tables
of contents, agencies, and suggested searches from the Federal Register
v1 API. No API key is required.`,
}

var fedregSearchCmd = &cobra.Command{
	Use:   "documents-search",
	Short: "Search published documents",
	Long: `Search published Federal Register documents by term, date, agency,
and document type.

Example:
  insightsgpt fedreg documents-search --term "clean energy" --year 2023
  insightsgpt fedreg documents-search --term privacy --agency federal-trade-commission --type RULE`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st := fedregSetup()

		search := gov.DocumentSearch{
			Term:        frTerm,
			PerPage:     frPerPage,
			Page:        frPage,
			Order:       frOrder,
			PubDateYear: frYear,
			PubDateGTE:  frDateGTE,
			PubDateLTE:  frDateLTE,
			PubDateIs:   frDateIs,
			AgencySlugs: frAgencies,
			DocTypes:    frDocTypes,
		}

		raw, err := client.SearchDocuments(context.Background(), search)
		if err != nil {
			return fmt.Errorf("search documents: %w", err)
		}

		ids := []store.KV{{Key: "term", Value: frTerm}}
		if frYear != "" {
			ids = append(ids, store.KV{Key: "year", Value: frYear})
		}
		if len(frAgencies) > 0 {
			ids = append(ids, store.KV{Key: "agencies", Value: strings.Join(frAgencies, "-")})
		}
		return saveRaw(st, raw, "federal_register", "fr_documents", ids...)
	},
}

var fedregDocumentCmd = &cobra.Command{
	Use:   "document <document-number>",
	Short: "Fetch one published document by number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st := fedregSetup()
		raw, err := client.Document(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("fetch document: %w", err)
		}
		return saveRaw(st, raw, "federal_register", "fr_document",
			store.KV{Key: "number", Value: args[0]},
		)
	},
}

var fedregDocumentsCmd = &cobra.Command{
	Use:   "documents <document-numbers>",
	Short: "Fetch multiple documents by comma-separated numbers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st := fedregSetup()
		raw, err := client.Document(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("fetch documents: %w", err)
		}
		return saveRaw(st, raw, "federal_register", "fr_documents_multi",
			store.KV{Key: "numbers", Value: args[0]},
		)
	},
}

var fedregFacetsCmd = &cobra.Command{
	Use:   "facets",
	Short: "Fetch facet counts for a search term",
	Long: `Fetch counts grouped by a facet (daily, weekly, monthly, quarterly,
yearly, agency, topic, section, type, subtype) for a search term.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if frFacet == "" {
			return fmt.Errorf("--facet is required")
		}

		client, st := fedregSetup()
		raw, err := client.DocumentFacets(context.Background(), frFacet, frTerm)
		if err != nil {
			return fmt.Errorf("fetch facets: %w", err)
		}
		return saveRaw(st, raw, "federal_register", "fr_facets",
			store.KV{Key: "facet", Value: frFacet},
			store.KV{Key: "term", Value: frTerm},
		)
	},
}

var fedregIssuesCmd = &cobra.Command{
	Use:   "issues <publication-date>",
	Short: "Fetch an issue's table of contents by date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st := fedregSetup()
		raw, err := client.Issue(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("fetch issue: %w", err)
		}
		return saveRaw(st, raw, "federal_register", "fr_issue",
			store.KV{Key: "date", Value: args[0]},
		)
	},
}

var fedregPISearchCmd = &cobra.Command{
	Use:   "public-inspection-search",
	Short: "Search documents on public inspection",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st := fedregSetup()
		raw, err := client.SearchPublicInspection(context.Background(), frTerm, frPerPage, frPage)
		if err != nil {
			return fmt.Errorf("search public inspection: %w", err)
		}
		return saveRaw(st, raw, "federal_register", "fr_public_inspection_search",
			store.KV{Key: "term", Value: frTerm},
		)
	},
}

var fedregPICmd = &cobra.Command{
	Use:   "public-inspection <document-numbers>",
	Short: "Fetch public inspection documents by comma-separated numbers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st := fedregSetup()
		raw, err := client.PublicInspection(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("fetch public inspection documents: %w", err)
		}
		return saveRaw(st, raw, "federal_register", "fr_public_inspection",
			store.KV{Key: "numbers", Value: args[0]},
		)
	},
}

var fedregPICurrentCmd = &cobra.Command{
	Use:   "public-inspection-current",
	Short: "Fetch everything currently on public inspection",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st := fedregSetup()
		raw, err := client.CurrentPublicInspection(context.Background())
		if err != nil {
			return fmt.Errorf("fetch current public inspection: %w", err)
		}
		return saveRaw(st, raw, "federal_register", "fr_public_inspection_current")
	},
}

var fedregAgenciesCmd = &cobra.Command{
	Use:   "agencies",
	Short: "Fetch the full agency list",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st := fedregSetup()
		raw, err := client.Agencies(context.Background())
		if err != nil {
			return fmt.Errorf("fetch agencies: %w", err)
		}
		return saveRaw(st, raw, "federal_register", "fr_agencies")
	},
}

var fedregAgencyCmd = &cobra.Command{
	Use:   "agency <slug>",
	Short: "Fetch one agency by slug",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st := fedregSetup()
		raw, err := client.Agency(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("fetch agency: %w", err)
		}
		return saveRaw(st, raw, "federal_register", "fr_agency",
			store.KV{Key: "slug", Value: args[0]},
		)
	},
}

var fedregSuggestedCmd = &cobra.Command{
	Use:   "suggested-searches",
	Short: "List suggested searches, optionally filtered by section",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st := fedregSetup()
		raw, err := client.SuggestedSearches(context.Background(), frSections)
		if err != nil {
			return fmt.Errorf("fetch suggested searches: %w", err)
		}
		ids := []store.KV{}
		if len(frSections) > 0 {
			ids = append(ids, store.KV{Key: "sections", Value: strings.Join(frSections, "-")})
		}
		return saveRaw(st, raw, "federal_register", "fr_suggested_searches", ids...)
	},
}

var fedregSuggestedOneCmd = &cobra.Command{
	Use:   "suggested-search <slug>",
	Short: "Fetch one suggested search by slug",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st := fedregSetup()
		raw, err := client.SuggestedSearch(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("fetch suggested search: %w", err)
		}
		return saveRaw(st, raw, "federal_register", "fr_suggested_search",
			store.KV{Key: "slug", Value: args[0]},
		)
	},
}

var fedregImagesCmd = &cobra.Command{
	Use:   "images <identifier>",
	Short: "Fetch available image variants by identifier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st := fedregSetup()
		raw, err := client.Images(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("fetch images: %w", err)
		}
		return saveRaw(st, raw, "federal_register", "fr_images",
			store.KV{Key: "id", Value: args[0]},
		)
	},
}

// fedregSetup builds the API client and store from the configuration.
func fedregSetup() (*gov.FedRegClient, *store.Store) {
	cfg := loadConfig()
	return gov.NewFedRegClient(newFetchClient(cfg)), newStore(cfg)
}

func init() {
	rootCmd.AddCommand(fedregCmd)

	for _, c := range []*cobra.Command{fedregSearchCmd, fedregFacetsCmd, fedregPISearchCmd} {
		c.Flags().StringVar(&frTerm, "term", "", "search term")
		c.Flags().StringVar(&frPerPage, "per-page", "", "results per page")
		c.Flags().StringVar(&frPage, "page", "", "page number")
	}

	fedregSearchCmd.Flags().StringVar(&frOrder, "order", "", "sort order (relevance, newest, oldest)")
	fedregSearchCmd.Flags().StringVar(&frYear, "year", "", "publication year filter")
	fedregSearchCmd.Flags().StringVar(&frDateGTE, "date-gte", "", "published on or after (YYYY-MM-DD)")
	fedregSearchCmd.Flags().StringVar(&frDateLTE, "date-lte", "", "published on or before (YYYY-MM-DD)")
	fedregSearchCmd.Flags().StringVar(&frDateIs, "date", "", "published exactly on (YYYY-MM-DD)")
	fedregSearchCmd.Flags().StringSliceVar(&frAgencies, "agency", nil, "agency slug filter (repeatable)")
	fedregSearchCmd.Flags().StringSliceVar(&frDocTypes, "type", nil, "document type filter (RULE, PRORULE, NOTICE, PRESDOCU)")

	fedregFacetsCmd.Flags().StringVar(&frFacet, "facet", "", "facet to group by (daily, agency, topic, ...)")

	fedregSuggestedCmd.Flags().StringSliceVar(&frSections, "section", nil, "section filter (repeatable)")

	fedregCmd.AddCommand(fedregSearchCmd)
	fedregCmd.AddCommand(fedregDocumentCmd)
	fedregCmd.AddCommand(fedregDocumentsCmd)
	fedregCmd.AddCommand(fedregFacetsCmd)
	fedregCmd.AddCommand(fedregIssuesCmd)
	fedregCmd.AddCommand(fedregPISearchCmd)
	fedregCmd.AddCommand(fedregPICmd)
	fedregCmd.AddCommand(fedregPICurrentCmd)
	fedregCmd.AddCommand(fedregAgenciesCmd)
	fedregCmd.AddCommand(fedregAgencyCmd)
	fedregCmd.AddCommand(fedregSuggestedCmd)
	fedregCmd.AddCommand(fedregSuggestedOneCmd)
	fedregCmd.AddCommand(fedregImagesCmd)
}
