package dateparse_test

import (
	"errors"
	"testing"
	"time"

	"pulpit/internal/dateparse"
)

func TestParseAcceptedFormats(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"day first dash", "05-01-2025", time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)},
		{"day first slash", "05/01/2025", time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)},
		{"iso fallback", "2025-01-05", time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)},
		{"single digit fields", "1-2-2024", time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)},
		{"surrounding whitespace", "  25/12/2023 ", time.Date(2023, time.December, 25, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := dateparse.Parse(tc.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tc.input, err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("Parse(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParsePrefersDayFirstOverISO(t *testing.T) {
	// 05-01-2025 is ambiguous; day-first wins over year-first interpretation.
	got, err := dateparse.Parse("05-01-2025")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got.Month() != time.January || got.Day() != 5 {
		t.Fatalf("expected 5 January, got %v", got)
	}
}

func TestParseRejectsImpossibleDates(t *testing.T) {
	inputs := []string{
		"30-02-2025", // February has no day 30
		"31-04-2025", // April has 30 days
		"32-01-2025",
		"01-13-2025",
		"01-01-1899",
		"01-01-2101",
		"2025-02-30",
		"not a date",
		"",
		"05.01.2025",
	}
	for _, input := range inputs {
		if _, err := dateparse.Parse(input); !errors.Is(err, dateparse.ErrInvalidDate) {
			t.Fatalf("Parse(%q): expected ErrInvalidDate, got %v", input, err)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	date := time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)
	rendered := dateparse.Format(date)
	if rendered != "2024-12-01" {
		t.Fatalf("Format = %q", rendered)
	}
	back, err := dateparse.Parse(rendered)
	if err != nil {
		t.Fatalf("Parse of formatted value failed: %v", err)
	}
	if !back.Equal(date) {
		t.Fatalf("round trip mismatch: %v != %v", back, date)
	}
}
