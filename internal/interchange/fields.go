package interchange

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedRow marks a data row that cannot be field-split (unterminated
// quoting). The row is skipped; the batch continues.
var ErrMalformedRow = errors.New("malformed row")

// splitFields splits one line into fields. Double-quote-enclosed fields may
// contain commas; a doubled quote inside a quoted field is a literal quote.
func splitFields(line string) ([]string, error) {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"' && !inQuotes:
			inQuotes = true
		case ch == '"' && inQuotes:
			if i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
				continue
			}
			inQuotes = false
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("%w: unterminated quote", ErrMalformedRow)
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields, nil
}

// quoteField renders a field for export, doubling embedded quotes.
func quoteField(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// Logical fields located in the header row. Each carries the candidate
// substrings tried against headers, case-insensitively; the first header
// containing one of the substrings wins.
const (
	fieldTitle = iota
	fieldDate
	fieldSeries
	fieldSummary
	fieldTags
	fieldReferences
	fieldType
	fieldPlace
	fieldCount
)

var fieldCandidates = [fieldCount][]string{
	fieldTitle:      {"title", "sermon", "name", "subject"},
	fieldDate:       {"date", "preached", "delivered"},
	fieldSeries:     {"series", "collection"},
	fieldSummary:    {"summary", "description", "abstract", "notes"},
	fieldTags:       {"tags", "topics", "keywords", "themes"},
	fieldReferences: {"references", "scripture", "passage", "verses"},
	fieldType:       {"type", "category", "kind"},
	fieldPlace:      {"place", "location", "venue", "church"},
}

// matchHeader maps each logical field to a header index, or -1 when no header
// matches. Unmatched logical fields resolve to empty values on every row.
func matchHeader(headers []string) [fieldCount]int {
	var indices [fieldCount]int
	for field := range indices {
		indices[field] = -1
		for i, header := range headers {
			lowered := strings.ToLower(strings.TrimSpace(header))
			if lowered == "" {
				continue
			}
			if containsAny(lowered, fieldCandidates[field]) {
				indices[field] = i
				break
			}
		}
	}
	return indices
}

func containsAny(header string, candidates []string) bool {
	for _, candidate := range candidates {
		if strings.Contains(header, candidate) {
			return true
		}
	}
	return false
}

// fieldValue reads the resolved column from a row, tolerating short rows.
func fieldValue(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}

// splitList breaks a ;-joined cell into its non-empty entries.
func splitList(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	parts := strings.Split(cell, ";")
	var out []string
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
