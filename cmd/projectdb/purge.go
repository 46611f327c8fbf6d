package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amirhosseinghanipour/projectdb/internal/application/retention"
	"github.com/amirhosseinghanipour/projectdb/internal/config"
)

func newPurgeCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Drop the tables of soft-deleted projects and remove the projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("days") {
				cfg.Retention.PurgeAfterDays = days
			}
			log := newLogger()
			a, err := openApp(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()
			n, err := retention.RunPurgeDeletedProjects(cmd.Context(), a.projects, a.tables, a.tasks, cfg.Retention.PurgeAfterDays)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d project(s)\n", n)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "purge projects deleted more than this many days ago (default RETENTION_PURGE_AFTER_DAYS)")
	return cmd
}
