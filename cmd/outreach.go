package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/lendstack/prospect-pipeline/internal/outreach"
	"github.com/lendstack/prospect-pipeline/pkg/anthropic"
)

var outreachCmd = &cobra.Command{
	Use:   "outreach <prospect-id>",
	Short: "Draft an outreach email for a qualified prospect",
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

		gen := outreach.NewGenerator(
			anthropic.NewClient(cfg.Anthropic.Key),
			outreach.WithModel(cfg.Anthropic.Model),
		)

		email, err := gen.Generate(ctx, p)
		if err != nil {
			return eris.Wrap(err, "generate outreach")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(email)
	},
}

func init() {
	rootCmd.AddCommand(outreachCmd)
}
