package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/staybook/internal/application/usecases"
	"github.com/example/staybook/internal/domain/unit"
	"github.com/example/staybook/internal/infrastructure/config"
	"github.com/example/staybook/internal/infrastructure/identity"
	"github.com/example/staybook/internal/infrastructure/postgres"
	"github.com/example/staybook/internal/ranking"
)

func newRankCmd() *cobra.Command {
	var (
		guests    int
		budget    float64
		lat, lng  float64
		hasOrigin bool
		amenities []string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Score and rank active units for a guest's search",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			pool, err := postgres.Open(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer pool.Close()

			candidates, err := postgres.NewUnitRepo(pool).ListActive(ctx)
			if err != nil {
				return fmt.Errorf("load candidates: %w", err)
			}

			model, err := ranking.NewModel(cfg.Weights())
			if err != nil {
				return err
			}
			ranker := usecases.CandidateRanker{Model: model, Clock: identity.SystemClock{}}

			prefs := ranking.Preferences{Amenities: amenities}
			if hasOrigin {
				prefs.Origin = &unit.Coordinate{Lat: lat, Lng: lng}
			}
			if limit <= 0 {
				limit = cfg.RankLimit
			}

			ranked := ranker.RankCandidates(candidates,
				ranking.SearchContext{Guests: guests, BudgetPerNight: budget}, prefs, limit)
			fmt.Print(ranking.FormatRecommendations(ranked))
			return nil
		},
	}

	cmd.Flags().IntVar(&guests, "guests", 1, "guest count")
	cmd.Flags().Float64Var(&budget, "budget", 0, "nightly budget ceiling (0 = none)")
	cmd.Flags().Float64Var(&lat, "lat", 0, "preferred area latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "preferred area longitude")
	cmd.Flags().StringSliceVar(&amenities, "amenity", nil, "desired amenity (repeatable)")
	cmd.Flags().IntVar(&limit, "limit", 0, "max results (default from config)")

	cmd.PreRun = func(c *cobra.Command, _ []string) {
		hasOrigin = c.Flags().Changed("lat") && c.Flags().Changed("lng")
	}
	return cmd
}
