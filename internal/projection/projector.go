package projection

import (
	"sort"
	"strings"

	"pulpit/internal/catalog"
)

// Mode selects the projection shape.
type Mode string

const (
	// ModeByOccasion emits one row per preaching occasion, ordered by date.
	ModeByOccasion Mode = "occasion"
	// ModeBySermon emits one row per sermon using its latest occasion.
	ModeBySermon Mode = "sermon"
)

// ParseMode converts a string into a known Mode.
func ParseMode(value string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeByOccasion:
		return ModeByOccasion, true
	case ModeBySermon, "":
		return ModeBySermon, true
	default:
		return "", false
	}
}

// Row is a read-only view of one sermon in one occasion context. Date and
// Place on the embedded sermon are overridden to the occasion's values;
// OriginalDate keeps the sermon's canonical earliest date for reference.
// Instance is nil when the sermon has no recorded history.
type Row struct {
	catalog.Sermon
	OriginalDate catalog.Date
	Instance     *catalog.PreachingInstance
}

// FirstPreached returns the sermon's canonical earliest date.
func (r Row) FirstPreached() catalog.Date {
	return r.OriginalDate
}

// LastPreached returns the latest occasion date, falling back to the row date.
func (r Row) LastPreached() catalog.Date {
	if latest := r.Sermon.LatestInstance(); latest != nil {
		return latest.Date
	}
	return r.Sermon.Date
}

// Project derives rows for the requested mode.
func Project(cat *catalog.Catalog, mode Mode) []Row {
	if cat == nil {
		return nil
	}
	switch mode {
	case ModeByOccasion:
		return projectByOccasion(cat.Sermons)
	default:
		return projectBySermon(cat.Sermons)
	}
}

func projectByOccasion(sermons []*catalog.Sermon) []Row {
	var rows []Row
	for _, sermon := range sermons {
		original := sermon.Date
		if len(sermon.PreachingHistory) == 0 {
			rows = append(rows, Row{Sermon: *sermon.Clone(), OriginalDate: original})
			continue
		}
		for i := range sermon.PreachingHistory {
			inst := sermon.PreachingHistory[i]
			row := Row{Sermon: *sermon.Clone(), OriginalDate: original, Instance: &inst}
			row.Sermon.Date = inst.Date
			row.Sermon.Place = inst.Location
			rows = append(rows, row)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Sermon.Date.Before(rows[j].Sermon.Date)
	})
	return rows
}

func projectBySermon(sermons []*catalog.Sermon) []Row {
	var rows []Row
	for _, sermon := range sermons {
		row := Row{Sermon: *sermon.Clone(), OriginalDate: sermon.Date}
		if latest := sermon.LatestInstance(); latest != nil {
			inst := *latest
			row.Instance = &inst
			row.Sermon.Date = inst.Date
			row.Sermon.Place = inst.Location
		}
		rows = append(rows, row)
	}
	return rows
}
