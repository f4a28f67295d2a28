package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/insightsgpt/insightsgpt/internal/gov"
	"github.com/insightsgpt/insightsgpt/internal/store"
)

var (
	rgSearchTerm  string
	rgDocketID    string
	rgTitle       string
	rgPageSize    int
	rgPageNumber  int
	rgPageAfter   string
	rgAttachments bool
	rgCommentText string
	rgCommentFile string
	rgDryRun      bool
)

// regsCmd represents the regs command group
var regsCmd = &cobra.Command{
	Use:   "regs",
	Short: "Fetch data from the Regulations.gov API",
	Long: `Fetch documents, dockets, and public comments from the
Regulations.gov v4 API, and submit comments on open dockets.
Requires REGULATIONS_API_KEY.`,
}

var regsDocumentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Search regulatory documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st := regsSetup()
		raw, err := client.Documents(context.Background(), regsFilter())
		if err != nil {
			return fmt.Errorf("search documents: %w", err)
		}
		return saveRaw(st, raw, "regulations", "regs_documents", regsIDs()...)
	},
}

var regsDocumentCmd = &cobra.Command{
	Use:   "document <document-id>",
	Short: "Fetch one document by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st := regsSetup()
		raw, err := client.Document(context.Background(), args[0], rgAttachments)
		if err != nil {
			return fmt.Errorf("fetch document: %w", err)
		}
		return saveRaw(st, raw, "regulations", "regs_document",
			store.KV{Key: "id", Value: args[0]},
		)
	},
}

var regsDocketsCmd = &cobra.Command{
	Use:   "dockets",
	Short: "Search dockets",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st := regsSetup()
		raw, err := client.Dockets(context.Background(), regsFilter())
		if err != nil {
			return fmt.Errorf("search dockets: %w", err)
		}
		return saveRaw(st, raw, "regulations", "regs_dockets", regsIDs()...)
	},
}

var regsDocketCmd = &cobra.Command{
	Use:   "docket <docket-id>",
	Short: "Fetch one docket by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st := regsSetup()
		raw, err := client.Docket(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("fetch docket: %w", err)
		}
		return saveRaw(st, raw, "regulations", "regs_docket",
			store.KV{Key: "id", Value: args[0]},
		)
	},
}

var regsCommentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Search public comments",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st := regsSetup()
		raw, err := client.Comments(context.Background(), regsFilter())
		if err != nil {
			return fmt.Errorf("search comments: %w", err)
		}
		return saveRaw(st, raw, "regulations", "regs_comments", regsIDs()...)
	},
}

var regsCommentCmd = &cobra.Command{
	Use:   "comment <comment-id>",
	Short: "Fetch one comment by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st := regsSetup()
		raw, err := client.Comment(context.Background(), args[0], rgAttachments)
		if err != nil {
			return fmt.Errorf("fetch comment: %w", err)
		}
		return saveRaw(st, raw, "regulations", "regs_comment",
			store.KV{Key: "id", Value: args[0]},
		)
	},
}

var regsSubmitCmd = &cobra.Command{
	Use:   "submit-comment",
	Short: "Submit a public comment on a docket",
	Long: `Submit a public comment on an open docket. The comment body comes
from --text or a file via --file. With --dry-run the payload is printed
instead of submitted.

Example:
  insightsgpt regs submit-comment --docket-id EPA-HQ-OAR-2021-0317 --text "..." --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if rgDocketID == "" {
			return fmt.Errorf("--docket-id is required")
		}

		body := rgCommentText
		if rgCommentFile != "" {
			data, err := os.ReadFile(rgCommentFile)
			if err != nil {
				return fmt.Errorf("read comment file: %w", err)
			}
			body = string(data)
		}
		if body == "" {
			return fmt.Errorf("comment body is required (--text or --file)")
		}

		submission := gov.NewCommentSubmission(rgDocketID, body)

		if rgDryRun {
			payload, err := json.MarshalIndent(submission, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal submission: %w", err)
			}
			warnf("Dry run: comment not submitted\n")
			fmt.Println(string(payload))
			return nil
		}

		client, st := regsSetup()
		raw, err := client.SubmitComment(context.Background(), submission)
		if err != nil {
			return fmt.Errorf("submit comment: %w", err)
		}
		statusf("Comment submitted to docket %s\n", rgDocketID)
		return saveRaw(st, raw, "regulations", "regs_comment_submission",
			store.KV{Key: "docket", Value: rgDocketID},
		)
	},
}

// regsSetup builds the API client and store from the configuration.
func regsSetup() (*gov.RegulationsClient, *store.Store) {
	cfg := loadConfig()
	return gov.NewRegulationsClient(newFetchClient(cfg), cfg.Keys.Regulations), newStore(cfg)
}

func regsFilter() gov.ListFilter {
	return gov.ListFilter{
		SearchTerm: rgSearchTerm,
		DocketID:   rgDocketID,
		Title:      rgTitle,
		PageSize:   rgPageSize,
		PageNumber: rgPageNumber,
		PageAfter:  rgPageAfter,
	}
}

func regsIDs() []store.KV {
	ids := []store.KV{}
	if rgSearchTerm != "" {
		ids = append(ids, store.KV{Key: "term", Value: rgSearchTerm})
	}
	if rgDocketID != "" {
		ids = append(ids, store.KV{Key: "docket", Value: rgDocketID})
	}
	if rgTitle != "" {
		ids = append(ids, store.KV{Key: "title", Value: rgTitle})
	}
	if len(ids) == 0 {
		ids = append(ids, store.KV{Key: "all", Value: "all"})
	}
	return ids
}

func init() {
	rootCmd.AddCommand(regsCmd)

	for _, c := range []*cobra.Command{regsDocumentsCmd, regsDocketsCmd, regsCommentsCmd} {
		c.Flags().StringVar(&rgSearchTerm, "term", "", "search term")
		c.Flags().StringVar(&rgDocketID, "docket-id", "", "docket ID filter")
		c.Flags().StringVar(&rgTitle, "title", "", "title filter")
		c.Flags().IntVar(&rgPageSize, "page-size", 0, "results per page")
		c.Flags().IntVar(&rgPageNumber, "page", 0, "page number")
		c.Flags().StringVar(&rgPageAfter, "page-after", "", "pagination cursor")
	}

	regsDocumentCmd.Flags().BoolVar(&rgAttachments, "attachments", false, "include attachments")
	regsCommentCmd.Flags().BoolVar(&rgAttachments, "attachments", false, "include attachments")

	regsSubmitCmd.Flags().StringVar(&rgDocketID, "docket-id", "", "docket to comment on")
	regsSubmitCmd.Flags().StringVar(&rgCommentText, "text", "", "comment body text")
	regsSubmitCmd.Flags().StringVar(&rgCommentFile, "file", "", "file containing the comment body")
	regsSubmitCmd.Flags().BoolVar(&rgDryRun, "dry-run", false, "print the payload instead of submitting")

	regsCmd.AddCommand(regsDocumentsCmd)
	regsCmd.AddCommand(regsDocumentCmd)
	regsCmd.AddCommand(regsDocketsCmd)
	regsCmd.AddCommand(regsDocketCmd)
	regsCmd.AddCommand(regsCommentsCmd)
	regsCmd.AddCommand(regsCommentCmd)
	regsCmd.AddCommand(regsSubmitCmd)
}
