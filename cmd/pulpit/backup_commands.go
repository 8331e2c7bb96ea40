package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pulpit/internal/config"
	"pulpit/internal/session"
)

func newBackupCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup [path]",
		Short: "Write a catalog snapshot to the backup directory or a path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var target string
			if len(args) == 1 {
				expanded, err := config.ExpandPath(args[0])
				if err != nil {
					return fmt.Errorf("resolve backup path: %w", err)
				}
				target = expanded
			}
			return ctx.withSession(cmd.Context(), func(sess *session.Session) error {
				written, err := sess.Backup(target)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote backup to %s\n", written)
				return nil
			})
		},
	}
	return cmd
}

func newRestoreCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "restore [path]",
		Short: "Replace the catalog with a snapshot; omit the path to use the best backup",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd.Context(), func(sess *session.Session) error {
				var path string
				if len(args) == 1 {
					expanded, err := config.ExpandPath(args[0])
					if err != nil {
						return fmt.Errorf("resolve snapshot path: %w", err)
					}
					path = expanded
				} else {
					best, err := sess.BestBackup()
					if err != nil {
						return err
					}
					if best == "" {
						return fmt.Errorf("no backups found")
					}
					path = best
				}

				if !yes && !confirm(cmd, fmt.Sprintf("Restoring %s replaces the entire catalog. Continue?", path)) {
					fmt.Fprintln(cmd.OutOrStdout(), "Restore cancelled.")
					return nil
				}
				if err := sess.Restore(path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Restored catalog from %s (%d sermons)\n", path, len(sess.Catalog().Sermons))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
