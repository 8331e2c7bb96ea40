package catalog

import (
	"encoding/json"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"pulpit/internal/dateparse"
)

// Date is a day-precision calendar date. It marshals as YYYY-MM-DD and
// tolerates the interchange grammar plus RFC 3339 timestamps on the way in;
// unreadable values decode to the zero date rather than failing the record.
type Date struct {
	time.Time
}

// NewDate builds a Date pinned to midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to day precision in UTC.
func DateOf(t time.Time) Date {
	t = t.UTC()
	return NewDate(t.Year(), t.Month(), t.Day())
}

// MarshalJSON renders the canonical YYYY-MM-DD form, or null when zero.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateparse.Layout))
}

// UnmarshalJSON accepts null, YYYY-MM-DD, RFC 3339, and the interchange
// date grammar. Anything else yields the zero date.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		d.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, *raw); err == nil {
		*d = DateOf(parsed)
		return nil
	}
	if parsed, err := dateparse.Parse(*raw); err == nil {
		*d = DateOf(parsed)
		return nil
	}
	d.Time = time.Time{}
	return nil
}

// Before reports day-ordering between two dates.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// PreachingInstance records one concrete occasion a sermon was delivered.
// The id is immutable once created; date and location may be edited.
type PreachingInstance struct {
	ID       string `json:"id"`
	Date     Date   `json:"date"`
	Location string `json:"location"`
	Audience string `json:"audience,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Version is a retained revision of a sermon manuscript.
type Version struct {
	ID       string `json:"id"`
	Label    string `json:"label,omitempty"`
	Date     Date   `json:"date,omitzero"`
	FilePath string `json:"filePath,omitempty"`
}

// Sermon is the primary catalog record. Date and Place always mirror the
// earliest entry in PreachingHistory whenever that list is non-empty.
type Sermon struct {
	ID               string              `json:"id"`
	Title            string              `json:"title"`
	Date             Date                `json:"date,omitzero"`
	Series           string              `json:"series,omitempty"`
	SeriesOrder      int                 `json:"seriesOrder,omitempty"`
	Tags             []string            `json:"tags,omitempty"`
	Summary          string              `json:"summary,omitempty"`
	References       []string            `json:"references,omitempty"`
	Image            string              `json:"image,omitempty"`
	Type             string              `json:"type,omitempty"`
	Place            string              `json:"place,omitempty"`
	PreachingHistory []PreachingInstance `json:"preachingHistory,omitempty"`
	Versions         []Version           `json:"versions,omitempty"`
	FilePath         string              `json:"filePath,omitempty"`
	FileSize         int64               `json:"fileSize,omitempty"`
	LastModified     time.Time           `json:"lastModified,omitzero"`
}

// Series groups sermons thematically. Title is the join key against
// Sermon.Series; the Sermons member list is rebuilt by the reconciler.
type Series struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	StartDate   Date     `json:"startDate,omitzero"`
	EndDate     Date     `json:"endDate,omitzero"`
	Sermons     []string `json:"sermons,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Image       string   `json:"image,omitempty"`
}

var titleCaser = cases.Fold()

// FoldTitle normalizes a title for case-insensitive matching.
func FoldTitle(title string) string {
	return titleCaser.String(strings.TrimSpace(title))
}

// EarliestInstance returns the earliest-dated preaching occasion, or nil when
// the history is empty. Ties resolve to the earlier list position.
func (s *Sermon) EarliestInstance() *PreachingInstance {
	var earliest *PreachingInstance
	for i := range s.PreachingHistory {
		inst := &s.PreachingHistory[i]
		if earliest == nil || inst.Date.Before(earliest.Date) {
			earliest = inst
		}
	}
	return earliest
}

// LatestInstance returns the most recent preaching occasion, or nil when the
// history is empty. Ties resolve to the earlier list position.
func (s *Sermon) LatestInstance() *PreachingInstance {
	var latest *PreachingInstance
	for i := range s.PreachingHistory {
		inst := &s.PreachingHistory[i]
		if latest == nil || latest.Date.Before(inst.Date) {
			latest = inst
		}
	}
	return latest
}

// Clone returns a deep copy safe to hand to projections and snapshots.
func (s *Sermon) Clone() *Sermon {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Tags = append([]string(nil), s.Tags...)
	cp.References = append([]string(nil), s.References...)
	cp.PreachingHistory = append([]PreachingInstance(nil), s.PreachingHistory...)
	cp.Versions = append([]Version(nil), s.Versions...)
	return &cp
}

// Clone returns a deep copy of the series record.
func (sr *Series) Clone() *Series {
	if sr == nil {
		return nil
	}
	cp := *sr
	cp.Sermons = append([]string(nil), sr.Sermons...)
	cp.Tags = append([]string(nil), sr.Tags...)
	return &cp
}

// dedupe removes duplicate entries while preserving first-seen order. Blank
// entries are dropped.
func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := FoldTitle(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
