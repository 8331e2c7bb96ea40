package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pulpit/internal/config"
	"pulpit/internal/session"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [csv]",
		Short: "Export the catalog as CSV, to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd.Context(), func(sess *session.Session) error {
				text := sess.Export()
				if len(args) == 0 {
					fmt.Fprint(cmd.OutOrStdout(), text)
					return nil
				}
				path, err := config.ExpandPath(args[0])
				if err != nil {
					return fmt.Errorf("resolve export path: %w", err)
				}
				if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
					return fmt.Errorf("write export file: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d sermon(s) to %s\n", len(sess.Catalog().Sermons), path)
				return nil
			})
		},
	}
	return cmd
}
