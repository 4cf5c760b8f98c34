package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/staybook/internal/infrastructure/config"
	"github.com/example/staybook/internal/infrastructure/postgres"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <reservation-id>",
		Short: "Print a reservation",
		Args:  cobra.ExactArgs(1),
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

			res, err := postgres.NewStore(pool).GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("reservation %s (%s)\n", res.ID, res.Status)
			fmt.Printf("  guest %s, unit %s, host %s\n", res.GuestID, res.UnitID, res.HostID)
			fmt.Printf("  %s to %s, %d guests, $%.2f\n",
				res.CheckIn.Format("2006-01-02"), res.CheckOut.Format("2006-01-02"),
				res.Guests, res.TotalPrice)
			if len(res.AddOns) > 0 {
				fmt.Printf("  add-ons: %s\n", strings.Join(res.AddOns, ", "))
			}
			return nil
		},
	}
}
