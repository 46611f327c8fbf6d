package main

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/amirhosseinghanipour/projectdb/internal/config"
	"github.com/amirhosseinghanipour/projectdb/internal/infrastructure/persistence/postgres"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the catalog tables in DATABASE_URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Database.URL == "" {
				return errors.New("migrate requires DATABASE_URL")
			}
			ctx := cmd.Context()
			pool, err := pgxpool.New(ctx, cfg.Database.URL)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer pool.Close()
			if err := postgres.Migrate(ctx, pool); err != nil {
				return err
			}
			log := newLogger()
			log.Info().Msg("migrations applied")
			return nil
		},
	}
}
