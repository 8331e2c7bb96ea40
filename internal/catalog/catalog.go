package catalog

import (
	"github.com/google/uuid"
)

// Catalog is the explicit state object every operation works against. It is
// not safe for concurrent use; the engine is single-threaded by design and
// callers serialize access through one owner.
type Catalog struct {
	Sermons []*Sermon
	Series  []*Series
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{}
}

// FindSermon returns the sermon with the given id, or nil.
func (c *Catalog) FindSermon(id string) *Sermon {
	for _, s := range c.Sermons {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// FindSermonByTitle returns the first sermon whose title matches
// case-insensitively, or nil.
func (c *Catalog) FindSermonByTitle(title string) *Sermon {
	folded := FoldTitle(title)
	for _, s := range c.Sermons {
		if FoldTitle(s.Title) == folded {
			return s
		}
	}
	return nil
}

// FindSeriesByTitle returns the series whose title matches
// case-insensitively, or nil.
func (c *Catalog) FindSeriesByTitle(title string) *Series {
	folded := FoldTitle(title)
	for _, sr := range c.Series {
		if FoldTitle(sr.Title) == folded {
			return sr
		}
	}
	return nil
}

// SaveSermon upserts a sermon by id and restores every catalog invariant:
// missing ids are assigned, tag/reference sets are de-duplicated, history is
// synthesized when empty, canonical date/place are recomputed, series
// membership is grown when the sermon names a new series, and the series set
// is reconciled. This is the only mutation path that can create a series.
func (c *Catalog) SaveSermon(sermon *Sermon) *Sermon {
	if sermon == nil {
		return nil
	}
	if sermon.ID == "" {
		sermon.ID = uuid.NewString()
	}
	sermon.Tags = dedupe(sermon.Tags)
	sermon.References = dedupe(sermon.References)
	NormalizeHistory(sermon)

	replaced := false
	for i, existing := range c.Sermons {
		if existing.ID == sermon.ID {
			c.Sermons[i] = sermon
			replaced = true
			break
		}
	}
	if !replaced {
		c.Sermons = append(c.Sermons, sermon)
	}

	if sermon.Series != "" {
		series := c.FindSeriesByTitle(sermon.Series)
		if series == nil {
			c.Series = append(c.Series, &Series{
				ID:        uuid.NewString(),
				Title:     sermon.Series,
				StartDate: sermon.Date,
				Sermons:   []string{sermon.ID},
			})
		} else if !containsID(series.Sermons, sermon.ID) {
			series.Sermons = append(series.Sermons, sermon.ID)
		}
	}

	c.Reconcile()
	return sermon
}

// DeleteSermon removes a sermon by id and prunes any series orphaned by the
// removal. It reports whether a sermon was actually deleted.
func (c *Catalog) DeleteSermon(id string) bool {
	for i, s := range c.Sermons {
		if s.ID == id {
			c.Sermons = append(c.Sermons[:i], c.Sermons[i+1:]...)
			c.Reconcile()
			return true
		}
	}
	return false
}

// Reconcile commits ReconcileSeries over the catalog's own collections.
func (c *Catalog) Reconcile() {
	c.Series = ReconcileSeries(c.Sermons, c.Series)
}

// ReconcileSeries recomputes the series collection as a pure function of the
// series titles currently referenced by sermons. Series whose title no sermon
// references are dropped; surviving series have their member list rebuilt from
// the sermons that actually carry the title. New series are never created
// here.
func ReconcileSeries(sermons []*Sermon, series []*Series) []*Series {
	members := make(map[string][]string)
	for _, s := range sermons {
		if s.Series == "" {
			continue
		}
		key := FoldTitle(s.Series)
		members[key] = append(members[key], s.ID)
	}

	var out []*Series
	for _, sr := range series {
		ids, referenced := members[FoldTitle(sr.Title)]
		if !referenced {
			continue
		}
		kept := sr.Clone()
		kept.Sermons = append([]string(nil), ids...)
		out = append(out, kept)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// NormalizeHistory restores the history invariant on a single sermon: an
// empty history gains one instance synthesized from the sermon's own
// date/place, every instance gets an id, and the sermon's canonical date and
// place are set from the earliest instance.
func NormalizeHistory(sermon *Sermon) {
	if sermon == nil {
		return
	}
	if len(sermon.PreachingHistory) == 0 {
		sermon.PreachingHistory = []PreachingInstance{{
			ID:       uuid.NewString(),
			Date:     sermon.Date,
			Location: sermon.Place,
		}}
	}
	for i := range sermon.PreachingHistory {
		if sermon.PreachingHistory[i].ID == "" {
			sermon.PreachingHistory[i].ID = uuid.NewString()
		}
	}
	if earliest := sermon.EarliestInstance(); earliest != nil {
		sermon.Date = earliest.Date
		sermon.Place = earliest.Location
	}
}

// Replace swaps the catalog's entire contents, normalizing the incoming
// records so restored snapshots honor the same invariants as edits.
func (c *Catalog) Replace(sermons []*Sermon, series []*Series) {
	c.Sermons = sermons
	for _, s := range c.Sermons {
		s.Tags = dedupe(s.Tags)
		s.References = dedupe(s.References)
		NormalizeHistory(s)
	}
	c.Series = series
	c.Reconcile()
}

// Clone returns a deep copy of the catalog.
func (c *Catalog) Clone() *Catalog {
	cp := &Catalog{}
	for _, s := range c.Sermons {
		cp.Sermons = append(cp.Sermons, s.Clone())
	}
	for _, sr := range c.Series {
		cp.Series = append(cp.Series, sr.Clone())
	}
	return cp
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
