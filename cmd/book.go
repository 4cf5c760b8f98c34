package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/staybook/internal/application/usecases"
	"github.com/example/staybook/internal/domain/pricing"
	"github.com/example/staybook/internal/domain/reservation"
	"github.com/example/staybook/internal/infrastructure/config"
	"github.com/example/staybook/internal/infrastructure/identity"
	"github.com/example/staybook/internal/infrastructure/mq"
	"github.com/example/staybook/internal/infrastructure/postgres"
)

func newBookCmd() *cobra.Command {
	var (
		guestID  string
		unitID   string
		checkIn  string
		checkOut string
		guests   int
		addOns   []string
	)

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Create a reservation (or return the existing one for an identical retry)",
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

			in, err := time.Parse("2006-01-02", checkIn)
			if err != nil {
				return fmt.Errorf("parse --check-in: %w", err)
			}
			out, err := time.Parse("2006-01-02", checkOut)
			if err != nil {
				return fmt.Errorf("parse --check-out: %w", err)
			}

			units := postgres.NewUnitRepo(pool)
			u, err := units.Get(ctx, unitID)
			if err != nil {
				return fmt.Errorf("load unit %s: %w", unitID, err)
			}

			req := reservation.Request{
				GuestID:  guestID,
				UnitID:   u.ID,
				HostID:   u.HostID,
				CheckIn:  reservation.Date(in),
				CheckOut: reservation.Date(out),
				Guests:   guests,
				AddOns:   addOns,
			}
			quote := pricing.DefaultFeeSchedule().Compute(u.NightlyRate, req.Nights(), reservation.NormalizeAddOns(addOns))
			req.TotalPrice = quote.Total

			booker := &usecases.Booker{
				Store:  postgres.NewStore(pool),
				Clock:  identity.SystemClock{},
				IDs:    identity.UUIDSource{},
				Window: cfg.Window(),
				Retry:  usecases.DefaultRetryPolicy(),
				Log:    slog.Default(),
			}
			if cfg.AMQPURL != "" {
				pub, err := mq.NewPublisher(cfg.AMQPURL, cfg.EventExchange)
				if err != nil {
					return fmt.Errorf("connect event broker: %w", err)
				}
				defer pub.Close()
				booker.Events = pub
			}

			res, created, err := booker.CreateOrGet(ctx, req)
			switch {
			case errors.Is(err, reservation.ErrUnavailable):
				return fmt.Errorf("those dates are taken: %v", err)
			case errors.Is(err, reservation.ErrConflictingDuplicate):
				return fmt.Errorf("a different booking already holds these dates for this guest: %v", err)
			case err != nil:
				return err
			}

			if created {
				fmt.Printf("reservation %s created (%s, total $%.2f for %d nights)\n",
					res.ID, res.Status, res.TotalPrice, req.Nights())
			} else {
				fmt.Printf("reservation %s already exists (%s), returning it\n", res.ID, res.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&guestID, "guest", "", "guest id")
	cmd.Flags().StringVar(&unitID, "unit", "", "unit id")
	cmd.Flags().StringVar(&checkIn, "check-in", "", "check-in date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&checkOut, "check-out", "", "check-out date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&guests, "guests", 1, "guest count")
	cmd.Flags().StringSliceVar(&addOns, "add-on", nil, "add-on id (repeatable)")
	_ = cmd.MarkFlagRequired("guest")
	_ = cmd.MarkFlagRequired("unit")
	_ = cmd.MarkFlagRequired("check-in")
	_ = cmd.MarkFlagRequired("check-out")

	return cmd
}
