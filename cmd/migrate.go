package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/staybook/internal/infrastructure/config"
	"github.com/example/staybook/internal/infrastructure/postgres"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
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

			if err := postgres.Migrate(ctx, pool); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Println("schema up to date")
			return nil
		},
	}
}
