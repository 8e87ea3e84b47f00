package main

import (
	"fmt"

	"mini-storefront/internal/config"
	"mini-storefront/internal/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the postgres cart store migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()
			if err := applyFlags(cmd.Flags(), cfg); err != nil {
				return err
			}
			cfg.Store.Backend = config.StorePostgres
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}

			logger := config.NewLogger(cfg.Logger)
			if err := database.Migrate(cfg.Database.ConnectionString(), logger); err != nil {
				return fmt.Errorf("failed to apply migrations: %w", err)
			}

			logger.Info().Msg("migrations applied")
			return nil
		},
	}
}
