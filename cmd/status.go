package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/staybook/internal/domain/reservation"
	"github.com/example/staybook/internal/infrastructure/config"
	"github.com/example/staybook/internal/infrastructure/mq"
	"github.com/example/staybook/internal/infrastructure/postgres"
)

func newStatusCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "status <reservation-id> <confirmed|cancelled|completed>",
		Short: "Move a reservation through its lifecycle",
		Args:  cobra.ExactArgs(2),
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

			store := postgres.NewStore(pool)
			res, err := store.UpdateStatus(ctx, args[0], reservation.Status(args[1]), reason)
			if err != nil {
				return err
			}

			if cfg.AMQPURL != "" {
				pub, perr := mq.NewPublisher(cfg.AMQPURL, cfg.EventExchange)
				if perr == nil {
					defer pub.Close()
					_ = pub.PublishJSON(ctx, "reservation."+args[1], map[string]any{
						"reservation_id": res.ID,
						"unit_id":        res.UnitID,
					})
				}
			}

			fmt.Printf("reservation %s is now %s\n", res.ID, res.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "reason recorded in the audit trail")
	return cmd
}
