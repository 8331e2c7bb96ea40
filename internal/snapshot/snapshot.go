package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pulpit/internal/catalog"
	"pulpit/internal/images"
	"pulpit/internal/logging"
	"pulpit/internal/projection"
)

// Version is written into every snapshot; reserved for schema evolution.
const Version = "1.0"

// ErrSnapshotSchema marks input that is not a snapshot object at all.
// Absent optional fields are not schema errors.
var ErrSnapshotSchema = errors.New("snapshot schema mismatch")

// ViewSettings captures the presentation state persisted alongside the
// catalog.
type ViewSettings struct {
	Mode          projection.Mode      `json:"mode,omitempty"`
	Sort          projection.SortState `json:"sort,omitzero"`
	ActiveFilters projection.Filter    `json:"filters,omitzero"`
}

// ColumnSetting is per-column presentation state.
type ColumnSetting struct {
	Visible bool `json:"visible"`
	Width   int  `json:"width,omitempty"`
}

// Snapshot is the on-disk backup schema.
type Snapshot struct {
	Version      string                       `json:"version"`
	Timestamp    time.Time                    `json:"timestamp"`
	Sermons      []*catalog.Sermon            `json:"sermons"`
	Series       []*catalog.Series            `json:"series,omitempty"`
	ViewSettings *ViewSettings                `json:"viewSettings,omitempty"`
	ColumnConfig map[string]ColumnSetting     `json:"columnConfig,omitempty"`
	Filters      *projection.Filter           `json:"filters,omitempty"`
	Images       map[string]images.Embeddable `json:"images,omitempty"`
}

// Codec captures and restores snapshots against an image library.
type Codec struct {
	library images.Library
	logger  *slog.Logger
}

// NewCodec builds a codec. The library may be nil when image embedding is not
// wanted (images are then neither captured nor materialized).
func NewCodec(library images.Library, logger *slog.Logger) *Codec {
	return &Codec{
		library: library,
		logger:  logging.WithComponent(logger, "snapshot"),
	}
}

// Capture builds a snapshot of the catalog, inlining every referenced image.
// A per-image read failure is soft: the image is skipped with a warning and
// the backup proceeds.
func (c *Codec) Capture(cat *catalog.Catalog, settings *ViewSettings, columns map[string]ColumnSetting) *Snapshot {
	snap := &Snapshot{
		Version:      Version,
		Timestamp:    time.Now().UTC(),
		ViewSettings: settings,
		ColumnConfig: columns,
	}
	if cat != nil {
		clone := cat.Clone()
		snap.Sermons = clone.Sermons
		snap.Series = clone.Series
	}

	if c.library == nil {
		return snap
	}
	for _, sermon := range snap.Sermons {
		if sermon.Image == "" {
			continue
		}
		if _, done := snap.Images[sermon.Image]; done {
			continue
		}
		embedded, err := c.library.ToEmbeddable(sermon.Image)
		if err != nil {
			c.logger.Warn("image skipped during backup",
				slog.String("ref", sermon.Image),
				slog.Any("err", err))
			continue
		}
		if snap.Images == nil {
			snap.Images = make(map[string]images.Embeddable)
		}
		snap.Images[sermon.Image] = embedded
	}
	return snap
}

// Encode renders a snapshot as indented JSON.
func Encode(snap *Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses snapshot JSON tolerantly. Only a top-level shape that is not
// an object fails; every optional collection degrades to empty.
func Decode(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotSchema, err)
	}
	if snap.Version == "" {
		snap.Version = Version
	}
	return &snap, nil
}

// Restore replaces the catalog's contents with the snapshot. Image payloads
// are materialized first; only then is the catalog swapped, so a failed
// decode never leaves a half-restored catalog. Sermon image references that
// match a restored entry are rewritten to the new reference; the rest stay
// untouched.
func (c *Codec) Restore(snap *Snapshot, cat *catalog.Catalog) error {
	if snap == nil {
		return fmt.Errorf("%w: nil snapshot", ErrSnapshotSchema)
	}
	if cat == nil {
		return errors.New("restore: nil catalog")
	}

	rewrites := make(map[string]string, len(snap.Images))
	if c.library != nil {
		for oldRef, embedded := range snap.Images {
			newRef, err := c.library.FromEmbeddable(embedded)
			if err != nil {
				c.logger.Warn("image not materialized during restore",
					slog.String("ref", oldRef),
					slog.Any("err", err))
				continue
			}
			rewrites[oldRef] = newRef
		}
	}

	sermons := make([]*catalog.Sermon, 0, len(snap.Sermons))
	for _, sermon := range snap.Sermons {
		cp := sermon.Clone()
		if newRef, ok := rewrites[cp.Image]; ok {
			cp.Image = newRef
		}
		sermons = append(sermons, cp)
	}
	series := make([]*catalog.Series, 0, len(snap.Series))
	for _, sr := range snap.Series {
		series = append(series, sr.Clone())
	}

	cat.Replace(sermons, series)
	return nil
}
