package interchange_test

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"pulpit/internal/catalog"
	"pulpit/internal/interchange"
)

func newImporter() *interchange.Importer {
	imp := interchange.NewImporter(nil)
	imp.Now = func() time.Time {
		return time.Date(2025, time.July, 1, 12, 0, 0, 0, time.UTC)
	}
	return imp
}

func TestParseBasicRows(t *testing.T) {
	input := strings.Join([]string{
		`Title,Date,Series,Summary,Tags,References,Type,Place`,
		`"Hope","05-01-2025","Faith Series","On hope","grace;faith","John 3:16;Rom 5:1","morning","Main Hall"`,
	}, "\n")

	result, err := newImporter().Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(result.Sermons) != 1 || len(result.Warnings) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	s := result.Sermons[0]
	if s.Title != "Hope" || s.Series != "Faith Series" || s.Type != "morning" || s.Place != "Main Hall" {
		t.Fatalf("unexpected sermon: %+v", s)
	}
	if !s.Date.Equal(catalog.NewDate(2025, time.January, 5).Time) {
		t.Fatalf("unexpected date: %v", s.Date)
	}
	if !reflect.DeepEqual(s.Tags, []string{"grace", "faith"}) {
		t.Fatalf("unexpected tags: %v", s.Tags)
	}
	if !reflect.DeepEqual(s.References, []string{"John 3:16", "Rom 5:1"}) {
		t.Fatalf("unexpected references: %v", s.References)
	}
	if len(s.PreachingHistory) != 1 || s.PreachingHistory[0].Location != "Main Hall" {
		t.Fatalf("unexpected history: %+v", s.PreachingHistory)
	}
}

func TestParseMergesRepeatedTitles(t *testing.T) {
	input := "Title,Date,Summary\n\"Hope\",\"05-01-2025\",\"x\"\n\"Hope\",\"01-12-2024\",\"y\"\n"

	result, err := newImporter().Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(result.Sermons) != 1 {
		t.Fatalf("expected one merged sermon, got %d", len(result.Sermons))
	}
	s := result.Sermons[0]
	if len(s.PreachingHistory) != 2 {
		t.Fatalf("expected two occasions, got %d", len(s.PreachingHistory))
	}
	// Canonical date is the earlier of the two; history stays in insertion order.
	if !s.Date.Equal(catalog.NewDate(2024, time.December, 1).Time) {
		t.Fatalf("unexpected canonical date: %v", s.Date)
	}
	if !s.PreachingHistory[0].Date.Equal(catalog.NewDate(2025, time.January, 5).Time) {
		t.Fatalf("history reordered: %+v", s.PreachingHistory)
	}
	// The first row's summary wins; the merge only adds an occasion.
	if s.Summary != "x" {
		t.Fatalf("unexpected summary: %q", s.Summary)
	}
}

func TestParseHeaderHeuristics(t *testing.T) {
	input := strings.Join([]string{
		`Sermon Name,Date Preached,Scripture Text,Church`,
		`"Hope","05/01/2025","John 3:16","Chapel"`,
	}, "\n")

	result, err := newImporter().Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	s := result.Sermons[0]
	if s.Title != "Hope" {
		t.Fatalf("title heuristic failed: %+v", s)
	}
	if !reflect.DeepEqual(s.References, []string{"John 3:16"}) {
		t.Fatalf("references heuristic failed: %v", s.References)
	}
	if s.Place != "Chapel" {
		t.Fatalf("place heuristic failed: %q", s.Place)
	}
}

func TestParseInvalidDateFallsBackWithWarning(t *testing.T) {
	input := "Title,Date\n\"Hope\",\"30-02-2025\"\n"

	result, err := newImporter().Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(result.Sermons) != 1 {
		t.Fatalf("expected row kept, got %d sermons", len(result.Sermons))
	}
	if !result.Sermons[0].Date.Equal(catalog.NewDate(2025, time.July, 1).Time) {
		t.Fatalf("expected current-date fallback, got %v", result.Sermons[0].Date)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Column != "date" {
		t.Fatalf("expected one date warning, got %+v", result.Warnings)
	}
}

func TestParseSkipsMalformedRows(t *testing.T) {
	input := strings.Join([]string{
		`Title,Date`,
		`"Unterminated,"05-01-2025"`,
		`"Kept","05-01-2025"`,
	}, "\n")

	result, err := newImporter().Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Skipped != 1 {
		t.Fatalf("expected one skipped row, got %d", result.Skipped)
	}
	if len(result.Sermons) != 1 || result.Sermons[0].Title != "Kept" {
		t.Fatalf("expected batch to continue, got %+v", result.Sermons)
	}
}

func TestParseQuotedCommasAndEscapedQuotes(t *testing.T) {
	input := "Title,Summary\n\"A \"\"Living\"\" Hope\",\"faith, hope, and love\"\n"

	result, err := newImporter().Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	s := result.Sermons[0]
	if s.Title != `A "Living" Hope` {
		t.Fatalf("unexpected title: %q", s.Title)
	}
	if s.Summary != "faith, hope, and love" {
		t.Fatalf("unexpected summary: %q", s.Summary)
	}
}

func TestParseRejectsHeaderWithoutTitle(t *testing.T) {
	if _, err := newImporter().Parse("Date,Place\n\"05-01-2025\",\"x\"\n"); err == nil {
		t.Fatal("expected error for unrecognizable header")
	}
}

func TestExportRoundTripPreservesFields(t *testing.T) {
	original := []*catalog.Sermon{
		{
			Title:      "Hope",
			Date:       catalog.NewDate(2024, time.December, 1),
			Series:     "Faith Series",
			Summary:    `quoted "text", with comma`,
			Tags:       []string{"grace", "faith"},
			References: []string{"John 3:16"},
			Type:       "morning",
			Place:      "Main Hall",
		},
		{Title: "Rest", Date: catalog.NewDate(2025, time.March, 2)},
	}

	text := interchange.Export(original)
	if !strings.HasPrefix(text, `"Title","Date","Series","Summary","Tags","References","Type","Place"`) {
		t.Fatalf("unexpected header: %q", strings.SplitN(text, "\n", 2)[0])
	}

	result, err := newImporter().Parse(text)
	if err != nil {
		t.Fatalf("re-import failed: %v", err)
	}
	if len(result.Sermons) != len(original) {
		t.Fatalf("expected %d sermons, got %d", len(original), len(result.Sermons))
	}
	for i, want := range original {
		got := result.Sermons[i]
		if got.Title != want.Title || got.Series != want.Series || got.Summary != want.Summary ||
			got.Type != want.Type || got.Place != want.Place {
			t.Fatalf("sermon %d mismatch:\ngot  %+v\nwant %+v", i, got, want)
		}
		if !got.Date.Equal(want.Date.Time) {
			t.Fatalf("sermon %d date mismatch: %v != %v", i, got.Date, want.Date)
		}
		if !reflect.DeepEqual(got.Tags, want.Tags) || !reflect.DeepEqual(got.References, want.References) {
			t.Fatalf("sermon %d set mismatch: %v %v", i, got.Tags, got.References)
		}
	}
}
