package testsupport

import (
	"testing"
	"time"

	"pulpit/internal/catalog"
	"pulpit/internal/config"
	"pulpit/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

// Sermon builds a saved-shape sermon with one preaching occasion.
func Sermon(title string, year int, month time.Month, day int, place string) *catalog.Sermon {
	date := catalog.NewDate(year, month, day)
	return &catalog.Sermon{
		Title: title,
		Date:  date,
		Place: place,
		PreachingHistory: []catalog.PreachingInstance{{
			Date:     date,
			Location: place,
		}},
	}
}
