package interchange

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pulpit/internal/catalog"
	"pulpit/internal/dateparse"
	"pulpit/internal/logging"
)

// Warning records a tolerated import problem tied to a 1-based line number.
type Warning struct {
	Line    int
	Column  string
	Message string
}

// Result is the outcome of one import batch.
type Result struct {
	Sermons  []*catalog.Sermon
	Warnings []Warning
	Skipped  int
}

// Importer parses interchange text into sermons. Now supplies the fallback
// date for unparseable cells and is injectable for tests.
type Importer struct {
	Now    func() time.Time
	logger *slog.Logger
}

// NewImporter builds an importer logging through the given base logger.
func NewImporter(logger *slog.Logger) *Importer {
	return &Importer{
		Now:    time.Now,
		logger: logging.WithComponent(logger, "import"),
	}
}

// Parse converts an interchange blob into sermons. Rows repeating an earlier
// title (case-insensitively) merge into that sermon as an additional
// preaching occasion instead of producing a duplicate, which makes repeated
// imports of repeat deliveries idempotent. The returned sermons carry no ids;
// ids are assigned when the sermons are saved into a catalog.
func (imp *Importer) Parse(text string) (*Result, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, errors.New("import: empty input")
	}

	headers, err := splitFields(lines[0].text)
	if err != nil {
		return nil, fmt.Errorf("import: header row: %w", err)
	}
	indices := matchHeader(headers)
	if indices[fieldTitle] == -1 {
		return nil, errors.New("import: no title column recognized in header")
	}

	result := &Result{}
	byTitle := make(map[string]*catalog.Sermon)

	for _, line := range lines[1:] {
		row, err := splitFields(line.text)
		if err != nil {
			result.Skipped++
			result.warn(imp.logger, line.number, "", "row skipped: "+err.Error())
			continue
		}

		title := fieldValue(row, indices[fieldTitle])
		if title == "" {
			result.Skipped++
			result.warn(imp.logger, line.number, "title", "row skipped: empty title")
			continue
		}

		date, warned := imp.resolveDate(fieldValue(row, indices[fieldDate]))
		if warned != "" {
			result.warn(imp.logger, line.number, "date", warned)
		}
		place := fieldValue(row, indices[fieldPlace])

		if existing, ok := byTitle[catalog.FoldTitle(title)]; ok {
			existing.PreachingHistory = append(existing.PreachingHistory, catalog.PreachingInstance{
				Date:     date,
				Location: place,
			})
			if earliest := existing.EarliestInstance(); earliest != nil {
				existing.Date = earliest.Date
				existing.Place = earliest.Location
			}
			continue
		}

		sermon := &catalog.Sermon{
			Title:      title,
			Date:       date,
			Series:     fieldValue(row, indices[fieldSeries]),
			Summary:    fieldValue(row, indices[fieldSummary]),
			Tags:       splitList(fieldValue(row, indices[fieldTags])),
			References: splitList(fieldValue(row, indices[fieldReferences])),
			Type:       fieldValue(row, indices[fieldType]),
			Place:      place,
			PreachingHistory: []catalog.PreachingInstance{{
				Date:     date,
				Location: place,
			}},
		}
		byTitle[catalog.FoldTitle(title)] = sermon
		result.Sermons = append(result.Sermons, sermon)
	}

	return result, nil
}

// resolveDate applies the fallback policy for unparseable date cells: the
// batch never aborts, the row gets the current date, and a warning is
// recorded.
func (imp *Importer) resolveDate(cell string) (catalog.Date, string) {
	if strings.TrimSpace(cell) == "" {
		return catalog.DateOf(imp.now()), "empty date, using current date"
	}
	parsed, err := dateparse.Parse(cell)
	if err != nil {
		return catalog.DateOf(imp.now()), fmt.Sprintf("unparseable date %q, using current date", cell)
	}
	return catalog.DateOf(parsed), ""
}

func (imp *Importer) now() time.Time {
	if imp.Now != nil {
		return imp.Now()
	}
	return time.Now()
}

func (r *Result) warn(logger *slog.Logger, line int, column, message string) {
	r.Warnings = append(r.Warnings, Warning{Line: line, Column: column, Message: message})
	if logger != nil {
		logger.Warn("import warning",
			slog.Int("line", line),
			slog.String("column", column),
			slog.String("reason", message))
	}
}

type numberedLine struct {
	number int
	text   string
}

func splitLines(text string) []numberedLine {
	var lines []numberedLine
	for i, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		lines = append(lines, numberedLine{number: i + 1, text: raw})
	}
	return lines
}
