package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/staybook/internal/domain/unit"
	"github.com/example/staybook/internal/infrastructure/config"
	"github.com/example/staybook/internal/infrastructure/postgres"
)

func newUnitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unit",
		Short: "Manage the unit catalog",
	}
	cmd.AddCommand(newUnitAddCmd())
	return cmd
}

func newUnitAddCmd() *cobra.Command {
	var (
		id        string
		hostID    string
		name      string
		city      string
		lat, lng  float64
		rate      float64
		sleeps    int
		amenities []string
		status    string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or update a unit in the catalog",
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

			u := unit.Unit{
				ID:           id,
				HostID:       hostID,
				Name:         name,
				City:         city,
				NightlyRate:  rate,
				MaxOccupancy: sleeps,
				Amenities:    amenities,
				Status:       unit.Status(status),
				ListedAt:     time.Now().UTC(),
			}
			if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
				u.Coordinate = &unit.Coordinate{Lat: lat, Lng: lng}
			}

			if err := postgres.NewUnitRepo(pool).Upsert(ctx, u); err != nil {
				return fmt.Errorf("upsert unit: %w", err)
			}
			fmt.Printf("unit %s saved\n", u.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "unit id")
	cmd.Flags().StringVar(&hostID, "host", "", "host id")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&city, "city", "", "city")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude")
	cmd.Flags().Float64Var(&rate, "rate", 0, "nightly rate")
	cmd.Flags().IntVar(&sleeps, "sleeps", 1, "max occupancy")
	cmd.Flags().StringSliceVar(&amenities, "amenity", nil, "amenity tag (repeatable)")
	cmd.Flags().StringVar(&status, "status", string(unit.StatusActive), "active, inactive or maintenance")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("rate")

	return cmd
}
