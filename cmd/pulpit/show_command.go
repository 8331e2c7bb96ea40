package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"pulpit/internal/catalog"
	"pulpit/internal/dateparse"
	"pulpit/internal/session"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id|title>",
		Short: "Display a sermon and its preaching history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd.Context(), func(sess *session.Session) error {
				sermon := findSermonArg(sess, args[0])
				if sermon == nil {
					return fmt.Errorf("no sermon matches %q", args[0])
				}
				printSermon(cmd.OutOrStdout(), sermon)
				return nil
			})
		},
	}
	return cmd
}

func findSermonArg(sess *session.Session, arg string) *catalog.Sermon {
	arg = strings.TrimSpace(arg)
	if sermon := sess.Catalog().FindSermon(arg); sermon != nil {
		return sermon
	}
	return sess.Catalog().FindSermonByTitle(arg)
}

func printSermon(out io.Writer, sermon *catalog.Sermon) {
	fmt.Fprintf(out, "Title:      %s\n", sermon.Title)
	fmt.Fprintf(out, "ID:         %s\n", sermon.ID)
	fmt.Fprintf(out, "Date:       %s\n", formatDate(sermon.Date))
	if sermon.Series != "" {
		fmt.Fprintf(out, "Series:     %s\n", sermon.Series)
	}
	if sermon.Type != "" {
		fmt.Fprintf(out, "Type:       %s\n", sermon.Type)
	}
	if sermon.Place != "" {
		fmt.Fprintf(out, "Place:      %s\n", sermon.Place)
	}
	if len(sermon.Tags) > 0 {
		fmt.Fprintf(out, "Tags:       %s\n", strings.Join(sermon.Tags, "; "))
	}
	if len(sermon.References) > 0 {
		fmt.Fprintf(out, "References: %s\n", strings.Join(sermon.References, "; "))
	}
	if sermon.Summary != "" {
		fmt.Fprintf(out, "Summary:    %s\n", sermon.Summary)
	}
	if sermon.Image != "" {
		fmt.Fprintf(out, "Image:      %s\n", sermon.Image)
	}
	if len(sermon.PreachingHistory) > 0 {
		fmt.Fprintln(out, "Preached:")
		for _, instance := range sermon.PreachingHistory {
			line := formatDate(instance.Date)
			if instance.Location != "" {
				line += " at " + instance.Location
			}
			if instance.Audience != "" {
				line += " (" + instance.Audience + ")"
			}
			fmt.Fprintf(out, "  - %s\n", line)
			if instance.Notes != "" {
				fmt.Fprintf(out, "    %s\n", instance.Notes)
			}
		}
	}
}

func formatDate(date catalog.Date) string {
	if date.IsZero() {
		return "-"
	}
	return dateparse.Format(date.Time)
}
