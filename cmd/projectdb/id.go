package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amirhosseinghanipour/projectdb/internal/domain/ident"
)

var errInvalidIDs = errors.New("one or more project ids are invalid")

func newIDCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "id",
		Short: "Generate and inspect project ids",
	}
	cmd.AddCommand(newIDNewCmd(), newIDValidateCmd(), newIDSchemaKeyCmd())
	return cmd
}

func newIDNewCmd() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Print freshly generated project ids, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("-n must be at least 1, got %d", count)
			}
			gen := ident.NewGenerator(nil)
			out := cmd.OutOrStdout()
			for i := 0; i < count; i++ {
				id, err := gen.Generate()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, id)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of ids to generate")
	return cmd
}

func newIDValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <id>...",
		Short: "Report whether each argument is a well-formed project id",
		Long:  "Prints one line per argument and exits non-zero when any argument is invalid.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			bad := 0
			for _, id := range args {
				status := "valid"
				if !ident.IsValidProjectID(id) {
					status = "invalid"
					bad++
				}
				fmt.Fprintf(out, "%s\t%s\n", id, status)
			}
			if bad > 0 {
				return errInvalidIDs
			}
			return nil
		},
	}
}

func newIDSchemaKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema-key <project-id> <table>",
		Short: "Print the schema key for a project and table",
		Long:  "Joins the two arguments with an underscore. Neither argument is validated.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), ident.SchemaKey(args[0], args[1]))
			return nil
		},
	}
}
