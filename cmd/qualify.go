package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/lendstack/prospect-pipeline/internal/prospect"
)

var requalifyCmd = &cobra.Command{
	Use:   "requalify",
	Short: "Re-score all saved prospects against the current criteria",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		result, err := prospect.RequalifyAll(ctx, st)
		if err != nil {
			return eris.Wrap(err, "requalify")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	rootCmd.AddCommand(requalifyCmd)
}
