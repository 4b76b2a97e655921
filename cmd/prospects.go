package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/lendstack/prospect-pipeline/internal/model"
	"github.com/lendstack/prospect-pipeline/internal/prospect"
)

var (
	prospectsStatus string
	prospectsLimit  int
	prospectsOffset int
)

var prospectsCmd = &cobra.Command{
	Use:   "prospects",
	Short: "Manage saved prospects",
}

var prospectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved prospects",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		status := prospect.Status(prospectsStatus)
		if prospectsStatus != "" && !prospect.ValidStatus(status) {
			return eris.Errorf("unknown status %q", prospectsStatus)
		}

		list, err := st.ListProspects(ctx, prospect.ListFilter{
			Status: status,
			Limit:  prospectsLimit,
			Offset: prospectsOffset,
		})
		if err != nil {
			return eris.Wrap(err, "list prospects")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	},
}

var prospectsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single prospect",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		p, err := st.GetProspect(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "get prospect")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	},
}

var (
	updateStatus      string
	updateCreditScore int
	updateNotes       string
)

var prospectsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a prospect's status, credit score, or notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		p, err := st.GetProspect(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "get prospect")
		}

		if cmd.Flags().Changed("status") {
			status := prospect.Status(updateStatus)
			if !prospect.ValidStatus(status) {
				return eris.Errorf("unknown status %q", updateStatus)
			}
			p.Status = status
		}
		if cmd.Flags().Changed("credit-score") {
			score := updateCreditScore
			p.CreditScore = &score
		}
		if cmd.Flags().Changed("notes") {
			p.Notes = updateNotes
		}

		// Edits re-score the prospect against the current criteria.
		criteria, err := st.Criteria(ctx)
		if err != nil {
			return eris.Wrap(err, "load criteria")
		}
		prospect.Requalify(p, criteria)

		if err := st.UpdateProspect(ctx, p); err != nil {
			return eris.Wrap(err, "update prospect")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	},
}

var prospectsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a prospect",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.DeleteProspect(ctx, args[0]); err != nil {
			return eris.Wrap(err, "delete prospect")
		}
		return nil
	},
}

// prospectFromRecord wraps a search result record as a new prospect.
func prospectFromRecord(rec *model.BusinessRecord) *prospect.Prospect {
	return &prospect.Prospect{
		Record: *rec,
		Status: prospect.StatusNew,
	}
}

func init() {
	prospectsListCmd.Flags().StringVar(&prospectsStatus, "status", "", "filter by status")
	prospectsListCmd.Flags().IntVar(&prospectsLimit, "limit", 100, "maximum prospects to return")
	prospectsListCmd.Flags().IntVar(&prospectsOffset, "offset", 0, "listing offset")
	prospectsUpdateCmd.Flags().StringVar(&updateStatus, "status", "", "new pipeline status")
	prospectsUpdateCmd.Flags().IntVar(&updateCreditScore, "credit-score", 0, "owner credit score")
	prospectsUpdateCmd.Flags().StringVar(&updateNotes, "notes", "", "free-form notes")
	prospectsCmd.AddCommand(prospectsListCmd, prospectsGetCmd, prospectsUpdateCmd, prospectsDeleteCmd)
	rootCmd.AddCommand(prospectsCmd)
}
