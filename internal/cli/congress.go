package cli

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/insightsgpt/insightsgpt/internal/gov"
	"github.com/insightsgpt/insightsgpt/internal/store"
)

var (
	cgCongress    int
	cgBillType    string
	cgBillNumber  int
	cgIntroduced  string
	cgAll         bool
	cgMaxBills    int
	cgDelay       time.Duration
	cgBioguideID  string
	cgStateCode   string
	cgDistrict    string
	cgSponsorship bool
	cgCosponsor   bool
	cgChamber     string
	cgCommitteeID string
	cgAmendType   string
	cgRecordDate  string
	cgCommType    string
	cgFromDate    string
	cgToDate      string
)

// congressCmd represents the congress command group
var congressCmd = &cobra.Command{
	Use:   "congress",
	Short: "Fetch data from the Congress.gov API",
	Long: `Fetch bills, members, committees, amendments, reports, treaties,
nominations, congressional records, and senate communications from the
Congress.gov v3 API. Requires CONGRESS_API_KEY.

Every response is archived verbatim as indented JSON under the data
directory.`,
}

var congressBillCmd = &cobra.Command{
	Use:   "bill",
	Short: "Fetch one bill by congress, type, and number",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cgCongress == 0 || cgBillType == "" || cgBillNumber == 0 {
			return fmt.Errorf("--congress, --bill-type, and --number are required")
		}

		client, st := congressSetup()
		raw, err := client.Bill(context.Background(), cgCongress, cgBillType, cgBillNumber)
		if err != nil {
			return fmt.Errorf("fetch bill: %w", err)
		}

		return saveRaw(st, raw, "congress", "bill_data",
			store.KV{Key: "congress", Value: strconv.Itoa(cgCongress)},
			store.KV{Key: "type", Value: cgBillType},
			store.KV{Key: "number", Value: strconv.Itoa(cgBillNumber)},
		)
	},
}

var congressBillsCmd = &cobra.Command{
	Use:   "bills",
	Short: "Fetch a list of bills by filters, or a full archive with --all",
	Long: `Fetch a filtered bills list, or with --all walk every page of a
congress's bills following pagination links with a rate-limit delay
between pages.

Example:
  insightsgpt congress bills --congress 117 --bill-type hr
  insightsgpt congress bills --congress 117 --all --max-bills 1000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st := congressSetup()

		if cgAll {
			if cgCongress == 0 {
				return fmt.Errorf("--congress is required with --all")
			}

			var bar *progressbar.ProgressBar
			progress := func(fetched, total int) {
				if bar == nil {
					bar = progressbar.Default(int64(total), "bills")
				}
				_ = bar.Set(fetched)
			}

			archive, err := client.AllBills(context.Background(), cgCongress, cgMaxBills, cgDelay, progress)
			if err != nil {
				return fmt.Errorf("fetch bills archive: %w", err)
			}
			if bar != nil {
				_ = bar.Finish()
			}
			statusf("Fetched %d bills for congress %d\n", archive.BillCount, archive.Congress)

			return saveValue(st, archive, "congress", "bills_archive",
				store.KV{Key: "congress", Value: strconv.Itoa(cgCongress)},
			)
		}

		params := url.Values{}
		ids := []store.KV{}
		if cgCongress != 0 {
			params.Set("congress", strconv.Itoa(cgCongress))
			ids = append(ids, store.KV{Key: "congress", Value: strconv.Itoa(cgCongress)})
		}
		if cgBillType != "" {
			params.Set("billType", cgBillType)
			ids = append(ids, store.KV{Key: "bill_type", Value: cgBillType})
		}
		if cgIntroduced != "" {
			params.Set("introducedDate", cgIntroduced)
			ids = append(ids, store.KV{Key: "introduced_date", Value: cgIntroduced})
		}
		if len(params) == 0 {
			return fmt.Errorf("at least one filter (--congress, --bill-type, --introduced-date) is required")
		}

		raw, err := client.Get(context.Background(), "/bill", params)
		if err != nil {
			return fmt.Errorf("fetch bills: %w", err)
		}
		return saveRaw(st, raw, "congress", "bills_list", ids...)
	},
}

var congressBillDetailsCmd = &cobra.Command{
	Use:   "bill-details",
	Short: "Fetch a bill with its actions, sponsors, and committees",
	Long: `Aggregate a bill's core record with its actions, sponsors, and
committees sub-resources into one JSON document. Sub-resources that
fail to fetch degrade to empty lists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cgCongress == 0 || cgBillType == "" || cgBillNumber == 0 {
			return fmt.Errorf("--congress, --bill-type, and --number are required")
		}

		client, st := congressSetup()
		details, err := client.FetchBillDetails(context.Background(), cgCongress, cgBillType, cgBillNumber, cgDelay)
		if err != nil {
			return fmt.Errorf("fetch bill details: %w", err)
		}

		return saveValue(st, details, "congress", "bill_details",
			store.KV{Key: "congress", Value: strconv.Itoa(cgCongress)},
			store.KV{Key: "type", Value: cgBillType},
			store.KV{Key: "number", Value: strconv.Itoa(cgBillNumber)},
		)
	},
}

var congressMemberCmd = &cobra.Command{
	Use:   "member",
	Short: "Fetch member records by filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		ids := []store.KV{}
		if cgBioguideID != "" {
			params.Set("bioguideId", cgBioguideID)
			ids = append(ids, store.KV{Key: "bioguide_id", Value: cgBioguideID})
		}
		if cgCongress != 0 {
			params.Set("congress", strconv.Itoa(cgCongress))
			ids = append(ids, store.KV{Key: "congress", Value: strconv.Itoa(cgCongress)})
		}
		if cgStateCode != "" {
			params.Set("stateCode", cgStateCode)
			ids = append(ids, store.KV{Key: "state_code", Value: cgStateCode})
		}
		if cgDistrict != "" {
			params.Set("district", cgDistrict)
			ids = append(ids, store.KV{Key: "district", Value: cgDistrict})
		}
		if cgSponsorship {
			params.Set("sponsorship", "true")
			ids = append(ids, store.KV{Key: "sponsorship", Value: "true"})
		}
		if cgCosponsor {
			params.Set("cosponsorship", "true")
			ids = append(ids, store.KV{Key: "cosponsorship", Value: "true"})
		}
		if len(params) == 0 {
			return fmt.Errorf("at least one filter is required for the member command")
		}

		client, st := congressSetup()
		raw, err := client.Get(context.Background(), "/member", params)
		if err != nil {
			return fmt.Errorf("fetch members: %w", err)
		}
		return saveRaw(st, raw, "congress", "member_data", ids...)
	},
}

var congressCommitteeCmd = &cobra.Command{
	Use:   "committee",
	Short: "Fetch committee records by filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		ids := []store.KV{}
		if cgChamber != "" {
			params.Set("chamber", cgChamber)
			ids = append(ids, store.KV{Key: "chamber", Value: cgChamber})
		}
		if cgCongress != 0 {
			params.Set("congress", strconv.Itoa(cgCongress))
			ids = append(ids, store.KV{Key: "congress", Value: strconv.Itoa(cgCongress)})
		}
		if cgCommitteeID != "" {
			params.Set("committeeCode", cgCommitteeID)
			ids = append(ids, store.KV{Key: "committee_code", Value: cgCommitteeID})
		}

		client, st := congressSetup()
		raw, err := client.Get(context.Background(), "/committee", params)
		if err != nil {
			return fmt.Errorf("fetch committees: %w", err)
		}
		if len(ids) == 0 {
			ids = append(ids, store.KV{Key: "all", Value: "all"})
		}
		return saveRaw(st, raw, "congress", "committee_data", ids...)
	},
}

var congressAmendmentCmd = &cobra.Command{
	Use:   "amendment",
	Short: "Fetch amendment records by filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		ids := []store.KV{}
		if cgCongress != 0 {
			params.Set("congress", strconv.Itoa(cgCongress))
			ids = append(ids, store.KV{Key: "congress", Value: strconv.Itoa(cgCongress)})
		}
		if cgAmendType != "" {
			params.Set("amendmentType", cgAmendType)
			ids = append(ids, store.KV{Key: "type", Value: cgAmendType})
		}

		client, st := congressSetup()
		raw, err := client.Get(context.Background(), "/amendment", params)
		if err != nil {
			return fmt.Errorf("fetch amendments: %w", err)
		}
		if len(ids) == 0 {
			ids = append(ids, store.KV{Key: "all", Value: "all"})
		}
		return saveRaw(st, raw, "congress", "amendment_data", ids...)
	},
}

var congressReportCmd = &cobra.Command{
	Use:   "committee-report",
	Short: "Fetch committee reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		ids := []store.KV{}
		if cgCongress != 0 {
			params.Set("congress", strconv.Itoa(cgCongress))
			ids = append(ids, store.KV{Key: "congress", Value: strconv.Itoa(cgCongress)})
		} else {
			ids = append(ids, store.KV{Key: "all", Value: "all"})
		}

		client, st := congressSetup()
		raw, err := client.Get(context.Background(), "/committee-report", params)
		if err != nil {
			return fmt.Errorf("fetch committee reports: %w", err)
		}
		return saveRaw(st, raw, "congress", "committee_report_data", ids...)
	},
}

var congressTreatyCmd = &cobra.Command{
	Use:   "treaty",
	Short: "Fetch treaty records",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		ids := []store.KV{}
		if cgCongress != 0 {
			params.Set("congress", strconv.Itoa(cgCongress))
			ids = append(ids, store.KV{Key: "congress", Value: strconv.Itoa(cgCongress)})
		} else {
			ids = append(ids, store.KV{Key: "all", Value: "all"})
		}

		client, st := congressSetup()
		raw, err := client.Get(context.Background(), "/treaty", params)
		if err != nil {
			return fmt.Errorf("fetch treaties: %w", err)
		}
		return saveRaw(st, raw, "congress", "treaty_data", ids...)
	},
}

var congressNominationCmd = &cobra.Command{
	Use:   "nomination",
	Short: "Fetch nominations for a congress",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cgCongress == 0 {
			return fmt.Errorf("--congress is required")
		}

		client, st := congressSetup()
		raw, err := client.Get(context.Background(), fmt.Sprintf("/nomination/%d", cgCongress), nil)
		if err != nil {
			return fmt.Errorf("fetch nominations: %w", err)
		}
		return saveRaw(st, raw, "congress", "nomination_data",
			store.KV{Key: "congress", Value: strconv.Itoa(cgCongress)},
		)
	},
}

var congressRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Fetch congressional record issues",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		ids := []store.KV{}
		if cgCongress != 0 {
			params.Set("congress", strconv.Itoa(cgCongress))
			ids = append(ids, store.KV{Key: "congress", Value: strconv.Itoa(cgCongress)})
		}
		if cgRecordDate != "" {
			params.Set("date", cgRecordDate)
			ids = append(ids, store.KV{Key: "date", Value: cgRecordDate})
		}
		if len(ids) == 0 {
			ids = append(ids, store.KV{Key: "all", Value: "all"})
		}

		client, st := congressSetup()
		raw, err := client.Get(context.Background(), "/congressional-record", params)
		if err != nil {
			return fmt.Errorf("fetch congressional record: %w", err)
		}
		return saveRaw(st, raw, "congress", "congressional_record_data", ids...)
	},
}

var congressSenateCommCmd = &cobra.Command{
	Use:   "senate-communication",
	Short: "Fetch senate communications",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		ids := []store.KV{}
		if cgCongress != 0 {
			params.Set("congress", strconv.Itoa(cgCongress))
			ids = append(ids, store.KV{Key: "congress", Value: strconv.Itoa(cgCongress)})
		}
		if cgCommType != "" {
			params.Set("type", cgCommType)
			ids = append(ids, store.KV{Key: "type", Value: cgCommType})
		}
		if cgFromDate != "" {
			params.Set("fromDateTime", cgFromDate+"T00:00:00Z")
			ids = append(ids, store.KV{Key: "from_date", Value: cgFromDate})
		}
		if cgToDate != "" {
			params.Set("toDateTime", cgToDate+"T23:59:59Z")
			ids = append(ids, store.KV{Key: "to_date", Value: cgToDate})
		}
		if len(ids) == 0 {
			ids = append(ids, store.KV{Key: "all", Value: "all"})
		}

		client, st := congressSetup()
		raw, err := client.Get(context.Background(), "/senate-communication", params)
		if err != nil {
			return fmt.Errorf("fetch senate communications: %w", err)
		}
		return saveRaw(st, raw, "congress", "senate_communication_data", ids...)
	},
}

// congressSetup builds the API client and store from the configuration.
func congressSetup() (*gov.CongressClient, *store.Store) {
	cfg := loadConfig()
	return gov.NewCongressClient(newFetchClient(cfg), cfg.Keys.Congress), newStore(cfg)
}

// saveRaw archives an upstream response verbatim and reports the path.
func saveRaw(st *store.Store, raw []byte, subDir, prefix string, ids ...store.KV) error {
	path, err := st.WriteRaw(raw, subDir, prefix, ids...)
	if err != nil {
		return err
	}
	statusf("Saved %s\n", path)
	return nil
}

// saveValue archives a locally-built document and reports the path.
func saveValue(st *store.Store, v interface{}, subDir, prefix string, ids ...store.KV) error {
	path, err := st.WriteValue(v, subDir, prefix, ids...)
	if err != nil {
		return err
	}
	statusf("Saved %s\n", path)
	return nil
}

func init() {
	rootCmd.AddCommand(congressCmd)

	congressCmd.PersistentFlags().IntVar(&cgCongress, "congress", 0, "congress number (e.g. 117)")

	congressBillCmd.Flags().StringVar(&cgBillType, "bill-type", "", "bill type (hr, s, hjres, sjres, ...)")
	congressBillCmd.Flags().IntVar(&cgBillNumber, "number", 0, "bill number")

	congressBillsCmd.Flags().StringVar(&cgBillType, "bill-type", "", "bill type filter")
	congressBillsCmd.Flags().StringVar(&cgIntroduced, "introduced-date", "", "introduced date filter (YYYY-MM-DD)")
	congressBillsCmd.Flags().BoolVar(&cgAll, "all", false, "fetch every page of the congress's bills")
	congressBillsCmd.Flags().IntVar(&cgMaxBills, "max-bills", 0, "stop after this many bills (0 = no limit)")
	congressBillsCmd.Flags().DurationVar(&cgDelay, "delay", time.Second, "pause between pages")

	congressBillDetailsCmd.Flags().StringVar(&cgBillType, "bill-type", "", "bill type (hr, s, hjres, sjres, ...)")
	congressBillDetailsCmd.Flags().IntVar(&cgBillNumber, "number", 0, "bill number")
	congressBillDetailsCmd.Flags().DurationVar(&cgDelay, "delay", time.Second, "pause between sub-resource requests")

	congressMemberCmd.Flags().StringVar(&cgBioguideID, "bioguide-id", "", "member bioguide ID")
	congressMemberCmd.Flags().StringVar(&cgStateCode, "state", "", "two-letter state code")
	congressMemberCmd.Flags().StringVar(&cgDistrict, "district", "", "district number")
	congressMemberCmd.Flags().BoolVar(&cgSponsorship, "sponsorship", false, "include sponsorship data")
	congressMemberCmd.Flags().BoolVar(&cgCosponsor, "cosponsorship", false, "include cosponsorship data")

	congressCommitteeCmd.Flags().StringVar(&cgChamber, "chamber", "", "chamber (house, senate, joint)")
	congressCommitteeCmd.Flags().StringVar(&cgCommitteeID, "committee-code", "", "committee code filter")

	congressAmendmentCmd.Flags().StringVar(&cgAmendType, "amendment-type", "", "amendment type (hamdt, samdt)")

	congressRecordCmd.Flags().StringVar(&cgRecordDate, "date", "", "record date (YYYY-MM-DD)")

	congressSenateCommCmd.Flags().StringVar(&cgCommType, "type", "", "communication type (ec, pm, pom)")
	congressSenateCommCmd.Flags().StringVar(&cgFromDate, "from", "", "start date (YYYY-MM-DD)")
	congressSenateCommCmd.Flags().StringVar(&cgToDate, "to", "", "end date (YYYY-MM-DD)")

	congressCmd.AddCommand(congressBillCmd)
	congressCmd.AddCommand(congressBillsCmd)
	congressCmd.AddCommand(congressBillDetailsCmd)
	congressCmd.AddCommand(congressMemberCmd)
	congressCmd.AddCommand(congressCommitteeCmd)
	congressCmd.AddCommand(congressAmendmentCmd)
	congressCmd.AddCommand(congressReportCmd)
	congressCmd.AddCommand(congressTreatyCmd)
	congressCmd.AddCommand(congressNominationCmd)
	congressCmd.AddCommand(congressRecordCmd)
	congressCmd.AddCommand(congressSenateCommCmd)
}
