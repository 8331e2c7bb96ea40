package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pulpit/internal/config"
	"pulpit/internal/session"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <csv>",
		Short: "Import sermons from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve import path: %w", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}

			return ctx.withSession(cmd.Context(), func(sess *session.Session) error {
				result, err := sess.Import(string(data))
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Imported %d sermon(s)", len(result.Sermons))
				if result.Skipped > 0 {
					fmt.Fprintf(out, ", skipped %d row(s)", result.Skipped)
				}
				fmt.Fprintln(out)
				for _, warning := range result.Warnings {
					if warning.Column != "" {
						fmt.Fprintf(out, "  line %d (%s): %s\n", warning.Line, warning.Column, warning.Message)
					} else {
						fmt.Fprintf(out, "  line %d: %s\n", warning.Line, warning.Message)
					}
				}
				return nil
			})
		},
	}
	return cmd
}
