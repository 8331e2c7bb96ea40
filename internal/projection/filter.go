package projection

import (
	"strings"

	"pulpit/internal/catalog"
	"pulpit/internal/dateparse"
)

// Filter narrows projected rows. Zero-value fields are inactive. Columns maps
// a column name (see SortColumn values) to a substring the rendered cell must
// contain.
type Filter struct {
	Search  string
	Series  string
	Type    string
	Place   string
	Tags    []string
	Columns map[string]string
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return f.Search == "" && f.Series == "" && f.Type == "" && f.Place == "" &&
		len(f.Tags) == 0 && len(f.Columns) == 0
}

// Apply returns the rows matching the filter, preserving input order.
func (f Filter) Apply(rows []Row) []Row {
	if f.IsZero() {
		return rows
	}
	var out []Row
	for _, row := range rows {
		if f.matches(row) {
			out = append(out, row)
		}
	}
	return out
}

func (f Filter) matches(row Row) bool {
	if f.Search != "" && !matchesSearch(row, f.Search) {
		return false
	}
	if f.Series != "" && catalog.FoldTitle(row.Series) != catalog.FoldTitle(f.Series) {
		return false
	}
	if f.Type != "" && catalog.FoldTitle(row.Type) != catalog.FoldTitle(f.Type) {
		return false
	}
	if f.Place != "" && catalog.FoldTitle(row.Place) != catalog.FoldTitle(f.Place) {
		return false
	}
	for _, tag := range f.Tags {
		if !containsFolded(row.Tags, tag) {
			return false
		}
	}
	for column, substring := range f.Columns {
		if substring == "" {
			continue
		}
		cell := CellValue(row, column)
		if !strings.Contains(catalog.FoldTitle(cell), catalog.FoldTitle(substring)) {
			return false
		}
	}
	return true
}

func matchesSearch(row Row, term string) bool {
	folded := catalog.FoldTitle(term)
	haystacks := []string{row.Title, row.Summary, row.Series, row.Place, row.Type}
	haystacks = append(haystacks, row.Tags...)
	haystacks = append(haystacks, row.References...)
	for _, h := range haystacks {
		if strings.Contains(catalog.FoldTitle(h), folded) {
			return true
		}
	}
	return false
}

func containsFolded(values []string, needle string) bool {
	folded := catalog.FoldTitle(needle)
	for _, v := range values {
		if catalog.FoldTitle(v) == folded {
			return true
		}
	}
	return false
}

// CellValue renders the display value of a row for a named column. Unknown
// columns render empty.
func CellValue(row Row, column string) string {
	switch strings.ToLower(strings.TrimSpace(column)) {
	case ColumnTitle:
		return row.Title
	case ColumnDate:
		if row.Sermon.Date.IsZero() {
			return ""
		}
		return dateparse.Format(row.Sermon.Date.Time)
	case ColumnSeries:
		return row.Series
	case ColumnSummary:
		return row.Summary
	case ColumnTags:
		return strings.Join(row.Tags, ";")
	case ColumnReferences:
		return strings.Join(row.References, ";")
	case ColumnType:
		return row.Type
	case ColumnPlace:
		return row.Place
	default:
		return ""
	}
}
