package projection

import (
	"sort"
	"strings"

	"pulpit/internal/catalog"
)

// Column names shared by sorting, per-column filtering, and table rendering.
const (
	ColumnTitle      = "title"
	ColumnDate       = "date"
	ColumnSeries     = "series"
	ColumnSummary    = "summary"
	ColumnTags       = "tags"
	ColumnReferences = "references"
	ColumnType       = "type"
	ColumnPlace      = "place"
	// Derived sort-only columns.
	ColumnFirstPreached = "first"
	ColumnLastPreached  = "last"
)

// Direction is one leg of the tri-state column sort cycle.
type Direction string

const (
	DirectionNone Direction = "none"
	DirectionAsc  Direction = "asc"
	DirectionDesc Direction = "desc"
)

// Next advances the cycle: none -> asc -> desc -> none.
func (d Direction) Next() Direction {
	switch d {
	case DirectionAsc:
		return DirectionDesc
	case DirectionDesc:
		return DirectionNone
	default:
		return DirectionAsc
	}
}

// SortState is the active column sort. A none direction leaves row order
// untouched.
type SortState struct {
	Column    string
	Direction Direction
}

// Cycle returns the state after a click on the given column: clicking the
// active column advances its direction, clicking another column starts it
// ascending.
func (s SortState) Cycle(column string) SortState {
	if s.Column == column {
		return SortState{Column: column, Direction: s.Direction.Next()}
	}
	return SortState{Column: column, Direction: DirectionAsc}
}

// Apply sorts rows in place according to the state. Sorting is stable so ties
// keep projection order.
func (s SortState) Apply(rows []Row) {
	if s.Direction == DirectionNone || s.Direction == "" || s.Column == "" {
		return
	}
	less := lessFunc(s.Column)
	if less == nil {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if s.Direction == DirectionDesc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}

// ParseSortColumn validates a user-supplied sort column name.
func ParseSortColumn(value string) (string, bool) {
	column := strings.ToLower(strings.TrimSpace(value))
	switch column {
	case ColumnTitle, ColumnDate, ColumnSeries, ColumnSummary, ColumnTags,
		ColumnReferences, ColumnType, ColumnPlace,
		ColumnFirstPreached, ColumnLastPreached:
		return column, true
	default:
		return "", false
	}
}

func lessFunc(column string) func(a, b Row) bool {
	switch column {
	case ColumnDate:
		return func(a, b Row) bool { return a.Sermon.Date.Before(b.Sermon.Date) }
	case ColumnFirstPreached:
		return func(a, b Row) bool { return a.FirstPreached().Before(b.FirstPreached()) }
	case ColumnLastPreached:
		return func(a, b Row) bool { return a.LastPreached().Before(b.LastPreached()) }
	case ColumnTitle, ColumnSeries, ColumnSummary, ColumnTags, ColumnReferences, ColumnType, ColumnPlace:
		return func(a, b Row) bool {
			return catalog.FoldTitle(CellValue(a, column)) < catalog.FoldTitle(CellValue(b, column))
		}
	default:
		return nil
	}
}
