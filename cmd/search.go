package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lendstack/prospect-pipeline/internal/search"
)

var (
	searchLocation string
	searchCategory string
	searchRadius   int
	searchSave     bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for businesses in a location and category",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		normalizer := initNormalizer(st)

		radius := searchRadius
		if radius == 0 {
			radius = cfg.Search.RadiusMiles
		}

		resp, err := normalizer.Search(ctx, search.Request{
			Location:    searchLocation,
			Category:    searchCategory,
			RadiusMiles: radius,
		})
		if err != nil {
			return eris.Wrap(err, "search")
		}

		zap.L().Info("search complete",
			zap.Int("results", resp.TotalResults),
			zap.String("data_source", string(resp.DataSource)),
		)

		if searchSave {
			saved := 0
			for i := range resp.Businesses {
				p := prospectFromRecord(&resp.Businesses[i])
				if err := st.SaveProspect(ctx, p); err != nil {
					zap.L().Warn("save prospect failed",
						zap.String("name", p.Record.Name), zap.Error(err))
					continue
				}
				saved++
			}
			zap.L().Info("prospects saved", zap.Int("saved", saved))
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchLocation, "location", "", "city, state, or ZIP to search (required)")
	searchCmd.Flags().StringVar(&searchCategory, "category", "all", "industry category or \"all\"")
	searchCmd.Flags().IntVar(&searchRadius, "radius", 0, "search radius in miles (default from config)")
	searchCmd.Flags().BoolVar(&searchSave, "save", false, "save results as prospects")
	_ = searchCmd.MarkFlagRequired("location")
	rootCmd.AddCommand(searchCmd)
}
