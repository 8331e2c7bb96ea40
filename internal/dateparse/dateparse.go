// Package dateparse resolves free-text calendar dates under the ambiguous
// grammar used by the interchange format.
//
// Formats are tried in precedence order: DD-MM-YYYY, then DD/MM/YYYY, then
// YYYY-MM-DD as a last resort. Each candidate is bounds-checked and
// reconstructed through time.Date so impossible dates (31 April, 30 February)
// are rejected rather than normalized into the next month.
package dateparse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate marks input that matches none of the accepted formats.
var ErrInvalidDate = errors.New("invalid date")

// Layout is the canonical rendering used for export and snapshots.
const Layout = "2006-01-02"

var (
	dayFirstDash  = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
	dayFirstSlash = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	isoDate       = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
)

// Parse resolves text into a calendar date (UTC, midnight). It fails with
// ErrInvalidDate when no format yields a real calendar date; callers decide
// the fallback policy.
func Parse(text string) (time.Time, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("%w: empty input", ErrInvalidDate)
	}

	for _, candidate := range []struct {
		re       *regexp.Regexp
		fields   [3]int // indices of day, month, year submatches
	}{
		{dayFirstDash, [3]int{1, 2, 3}},
		{dayFirstSlash, [3]int{1, 2, 3}},
		{isoDate, [3]int{3, 2, 1}},
	} {
		match := candidate.re.FindStringSubmatch(trimmed)
		if match == nil {
			continue
		}
		day := mustInt(match[candidate.fields[0]])
		month := mustInt(match[candidate.fields[1]])
		year := mustInt(match[candidate.fields[2]])
		if date, ok := build(year, month, day); ok {
			return date, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
}

// Format renders a date in the canonical YYYY-MM-DD form.
func Format(t time.Time) string {
	return t.Format(Layout)
}

func build(year, month, day int) (time.Time, bool) {
	if day < 1 || day > 31 || month < 1 || month > 12 || year < 1900 || year > 2100 {
		return time.Time{}, false
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 30 -> Mar 2); require a round trip.
	if date.Year() != year || date.Month() != time.Month(month) || date.Day() != day {
		return time.Time{}, false
	}
	return date, true
}

func mustInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}
