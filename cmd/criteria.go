package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/lendstack/prospect-pipeline/internal/prospect"
	"github.com/lendstack/prospect-pipeline/internal/qualify"
)

var criteriaFile string

var criteriaCmd = &cobra.Command{
	Use:   "criteria",
	Short: "Show or update the qualification criteria",
}

var criteriaShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current criteria",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		c, err := st.Criteria(ctx)
		if err != nil {
			return eris.Wrap(err, "load criteria")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	},
}

var criteriaSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace the criteria from a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(criteriaFile)
		if err != nil {
			return eris.Wrap(err, "read criteria file")
		}

		var c qualify.Criteria
		if err := json.Unmarshal(data, &c); err != nil {
			return eris.Wrap(err, "parse criteria file")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.SetCriteria(ctx, c); err != nil {
			return eris.Wrap(err, "set criteria")
		}

		// Criteria edits re-score every saved prospect.
		result, err := prospect.RequalifyAll(ctx, st)
		if err != nil {
			return eris.Wrap(err, "requalify prospects")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	criteriaSetCmd.Flags().StringVar(&criteriaFile, "file", "", "path to criteria JSON (required)")
	_ = criteriaSetCmd.MarkFlagRequired("file")
	criteriaCmd.AddCommand(criteriaShowCmd, criteriaSetCmd)
	rootCmd.AddCommand(criteriaCmd)
}
