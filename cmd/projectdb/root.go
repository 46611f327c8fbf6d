package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "projectdb",
		Short: "projectdb serves per-project tables addressed by opaque project ids",
		Long: `projectdb hands out project ids of the form p_XXXXXXXXXXXX, creates tables
scoped to those projects, and exposes the id helpers used to build schema keys.

Configuration is read from environment variables, optionally layered over the
file named by CONFIG_FILE.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newServeCmd(),
		newIDCmd(),
		newMigrateCmd(),
		newPurgeCmd(),
	)
	return root
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
