package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"pulpit/internal/projection"
	"pulpit/internal/session"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var modeFlag string
	var sortFlag string
	var searchFlag string
	var seriesFlag string
	var typeFlag string
	var placeFlag string
	var tagFlags []string
	var whereFlags []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sermons as a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, ok := projection.ParseMode(modeFlag)
			if !ok {
				return fmt.Errorf("unknown mode %q (expected occasion or sermon)", modeFlag)
			}
			sortState, err := parseSortFlag(sortFlag)
			if err != nil {
				return err
			}
			filter := projection.Filter{
				Search: strings.TrimSpace(searchFlag),
				Series: strings.TrimSpace(seriesFlag),
				Type:   strings.TrimSpace(typeFlag),
				Place:  strings.TrimSpace(placeFlag),
				Tags:   tagFlags,
			}
			filter.Columns, err = parseWhereFlags(whereFlags)
			if err != nil {
				return err
			}

			return ctx.withSession(cmd.Context(), func(sess *session.Session) error {
				rows := projection.Project(sess.Catalog(), mode)
				rows = filter.Apply(rows)
				sortState.Apply(rows)

				out := cmd.OutOrStdout()
				if len(rows) == 0 {
					fmt.Fprintln(out, "No sermons match.")
					return nil
				}
				fmt.Fprintln(out, renderListTable(out, rows))
				fmt.Fprintf(out, "%d row(s)\n", len(rows))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&modeFlag, "mode", "", "Projection mode: occasion or sermon")
	cmd.Flags().StringVar(&sortFlag, "sort", "", "Sort column, optionally column:desc")
	cmd.Flags().StringVar(&searchFlag, "search", "", "Match a substring across all columns")
	cmd.Flags().StringVar(&seriesFlag, "series", "", "Only sermons in this series")
	cmd.Flags().StringVar(&typeFlag, "type", "", "Only sermons of this type")
	cmd.Flags().StringVar(&placeFlag, "place", "", "Only sermons preached at this place")
	cmd.Flags().StringArrayVar(&tagFlags, "tag", nil, "Require a tag (repeatable)")
	cmd.Flags().StringArrayVar(&whereFlags, "where", nil, "Per-column substring filter, column=text (repeatable)")

	return cmd
}

var listColumns = []string{
	projection.ColumnTitle,
	projection.ColumnDate,
	projection.ColumnSeries,
	projection.ColumnType,
	projection.ColumnPlace,
	projection.ColumnTags,
	projection.ColumnReferences,
}

func renderListTable(out io.Writer, rows []projection.Row) string {
	headers := make([]string, 0, len(listColumns))
	for _, column := range listColumns {
		headers = append(headers, headerLabel(column))
	}
	body := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(listColumns))
		for _, column := range listColumns {
			cells = append(cells, projection.CellValue(row, column))
		}
		body = append(body, cells)
	}
	return renderTable(out, headers, body)
}

func headerLabel(column string) string {
	if column == "" {
		return ""
	}
	return strings.ToUpper(column[:1]) + column[1:]
}

func parseSortFlag(value string) (projection.SortState, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return projection.SortState{}, nil
	}
	direction := projection.DirectionAsc
	if column, suffix, found := strings.Cut(value, ":"); found {
		switch strings.ToLower(strings.TrimSpace(suffix)) {
		case "asc":
		case "desc":
			direction = projection.DirectionDesc
		default:
			return projection.SortState{}, fmt.Errorf("unknown sort direction %q", suffix)
		}
		value = column
	}
	column, ok := projection.ParseSortColumn(value)
	if !ok {
		return projection.SortState{}, fmt.Errorf("unknown sort column %q", value)
	}
	return projection.SortState{Column: column, Direction: direction}, nil
}

func parseWhereFlags(values []string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	columns := make(map[string]string, len(values))
	for _, value := range values {
		name, text, found := strings.Cut(value, "=")
		if !found {
			return nil, fmt.Errorf("invalid --where %q (expected column=text)", value)
		}
		column, ok := projection.ParseSortColumn(name)
		if !ok {
			return nil, fmt.Errorf("unknown column %q", name)
		}
		columns[column] = strings.TrimSpace(text)
	}
	return columns, nil
}
