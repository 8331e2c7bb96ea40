package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pulpit/internal/session"
)

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id|title>",
		Short: "Remove a sermon from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd.Context(), func(sess *session.Session) error {
				sermon := findSermonArg(sess, args[0])
				if sermon == nil {
					return fmt.Errorf("no sermon matches %q", args[0])
				}
				if !sess.DeleteSermon(sermon.ID) {
					return fmt.Errorf("no sermon matches %q", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", sermon.Title)
				return nil
			})
		},
	}
	return cmd
}
