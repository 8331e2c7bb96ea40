// Package session owns a live catalog: one store handle, one in-memory
// catalog, and the single mutation gateway everything above it commits
// through.
//
// Mutations are synchronous in-memory transitions; persistence happens behind
// them through the debounced autosave writer, so rapid edits coalesce into
// one write. Closing a session flushes pending state and, when configured,
// writes a best-effort automatic backup bounded by a hard timeout: a slow or
// failing backup is logged and abandoned, never allowed to block shutdown.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"pulpit/internal/autosave"
	"pulpit/internal/catalog"
	"pulpit/internal/config"
	"pulpit/internal/images"
	"pulpit/internal/interchange"
	"pulpit/internal/logging"
	"pulpit/internal/snapshot"
	"pulpit/internal/store"
)

// Persistence keys within the blob store.
const (
	KeySermons  = "sermons"
	KeySeries   = "series"
	KeySettings = "settings"
)

// Settings is the persisted presentation state.
type Settings struct {
	View    *snapshot.ViewSettings            `json:"viewSettings,omitempty"`
	Columns map[string]snapshot.ColumnSetting `json:"columnConfig,omitempty"`
}

// Session is a live catalog bound to its collaborators.
type Session struct {
	cfg      *config.Config
	kv       store.KV
	cat      *catalog.Catalog
	settings Settings
	library  images.Library
	codec    *snapshot.Codec
	writer   *autosave.Writer
	logger   *slog.Logger
}

// Open acquires the configured catalog store and loads current state.
func Open(cfg *config.Config, logger *slog.Logger) (*Session, error) {
	kv, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}
	return NewWith(cfg, kv, logger)
}

// NewWith builds a session over an already-open store. Tests use this with
// store.Memory.
func NewWith(cfg *config.Config, kv store.KV, logger *slog.Logger) (*Session, error) {
	library := images.NewDir(cfg.Paths.ImageDir, cfg.Catalog.MaxImageBytes)
	s := &Session{
		cfg:     cfg,
		kv:      kv,
		cat:     catalog.New(),
		library: library,
		codec:   snapshot.NewCodec(library, logger),
		writer:  autosave.NewWriter(kv, time.Duration(cfg.Catalog.AutosaveQuietMillis)*time.Millisecond, logger),
		logger:  logging.WithComponent(logger, "session"),
	}
	if err := s.load(context.Background()); err != nil {
		_ = kv.Close()
		return nil, err
	}
	return s, nil
}

func (s *Session) load(ctx context.Context) error {
	var sermons []*catalog.Sermon
	if err := s.loadKey(ctx, KeySermons, &sermons); err != nil {
		return err
	}
	var series []*catalog.Series
	if err := s.loadKey(ctx, KeySeries, &series); err != nil {
		return err
	}
	if err := s.loadKey(ctx, KeySettings, &s.settings); err != nil {
		return err
	}
	s.cat.Replace(sermons, series)
	return nil
}

// loadKey reads one persisted blob. Corrupt JSON degrades to the zero value
// with a warning rather than refusing to open the catalog.
func (s *Session) loadKey(ctx context.Context, key string, target any) error {
	value, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(value, target); err != nil {
		s.logger.Warn("persisted blob unreadable, starting empty",
			slog.String("key", key),
			slog.Any("err", err))
	}
	return nil
}

// Catalog exposes the live catalog. Mutate through Session methods only.
func (s *Session) Catalog() *catalog.Catalog {
	return s.cat
}

// Images exposes the image collaborator bound to this catalog.
func (s *Session) Images() images.Library {
	return s.library
}

// Settings returns the persisted presentation state.
func (s *Session) Settings() Settings {
	return s.settings
}

// SetSettings replaces presentation state and schedules persistence.
func (s *Session) SetSettings(settings Settings) {
	s.settings = settings
	s.commit()
}

// SaveSermon upserts through the catalog and schedules persistence.
func (s *Session) SaveSermon(sermon *catalog.Sermon) *catalog.Sermon {
	saved := s.cat.SaveSermon(sermon)
	s.commit()
	return saved
}

// DeleteSermon removes a sermon and schedules persistence.
func (s *Session) DeleteSermon(id string) bool {
	deleted := s.cat.DeleteSermon(id)
	if deleted {
		s.commit()
	}
	return deleted
}

// Import parses interchange text and saves every resulting sermon. Rows
// merging into an existing catalog title update that sermon in place.
func (s *Session) Import(text string) (*interchange.Result, error) {
	importer := interchange.NewImporter(s.logger)
	result, err := importer.Parse(text)
	if err != nil {
		return nil, err
	}
	for i, sermon := range result.Sermons {
		if existing := s.cat.FindSermonByTitle(sermon.Title); existing != nil {
			sermon.ID = existing.ID
			if sermon.Image == "" {
				sermon.Image = existing.Image
			}
		}
		result.Sermons[i] = s.cat.SaveSermon(sermon)
	}
	s.commit()
	return result, nil
}

// Export renders the catalog as interchange text.
func (s *Session) Export() string {
	return interchange.Export(s.cat.Sermons)
}

// Backup captures a snapshot to path; an empty path writes a timestamped
// auto-backup into the backup directory and prunes stale ones.
func (s *Session) Backup(path string) (string, error) {
	snap := s.codec.Capture(s.cat, s.settings.View, s.settings.Columns)
	auto := path == ""
	if auto {
		path = filepath.Join(s.cfg.Paths.BackupDir, snapshot.BackupFileName(snap.Timestamp))
	}
	if err := snapshot.Write(snap, path); err != nil {
		return "", err
	}
	if auto {
		if err := snapshot.Prune(s.cfg.Paths.BackupDir, s.cfg.Catalog.MaxAutoBackups); err != nil {
			s.logger.Warn("backup pruning failed", slog.Any("err", err))
		}
	}
	return path, nil
}

// Restore replaces current state from a snapshot file and schedules
// persistence. Callers are responsible for confirming with the user first.
func (s *Session) Restore(path string) error {
	snap, err := snapshot.Read(path)
	if err != nil {
		return err
	}
	if err := s.codec.Restore(snap, s.cat); err != nil {
		return err
	}
	if snap.ViewSettings != nil {
		s.settings.View = snap.ViewSettings
	}
	if snap.ColumnConfig != nil {
		s.settings.Columns = snap.ColumnConfig
	}
	s.commit()
	return nil
}

// BestBackup returns the strongest restore candidate in the backup
// directory, or "" when none exists.
func (s *Session) BestBackup() (string, error) {
	return snapshot.BestCandidate(s.cfg.Paths.BackupDir)
}

// Flush forces any pending autosave write.
func (s *Session) Flush(ctx context.Context) error {
	return s.writer.Flush(ctx)
}

// Close flushes state, runs the bounded close-time backup, and releases the
// store. Backup problems are soft failures; Close only reports errors that
// would lose catalog state.
func (s *Session) Close(ctx context.Context) error {
	flushErr := s.writer.Close(ctx)
	if flushErr != nil {
		s.logger.Error("final flush failed", slog.Any("err", flushErr))
	}

	if s.cfg.Catalog.AutoBackupOnClose {
		s.closeBackup()
	}

	if err := s.kv.Close(); err != nil && flushErr == nil {
		flushErr = err
	}
	return flushErr
}

// closeBackup writes the shutdown backup under a hard deadline. When the
// budget is exceeded the backup goroutine is abandoned and shutdown
// continues.
func (s *Session) closeBackup() {
	budget := time.Duration(s.cfg.Catalog.BackupTimeoutSeconds) * time.Second
	done := make(chan error, 1)
	go func() {
		_, err := s.Backup("")
		done <- err
	}()
	select {
	case err := <-done:
		if err != nil {
			s.logger.Warn("close-time backup failed", slog.Any("err", err))
		}
	case <-time.After(budget):
		s.logger.Warn("close-time backup exceeded budget, continuing shutdown",
			slog.Duration("budget", budget))
	}
}

func (s *Session) commit() {
	payload, err := s.serialize()
	if err != nil {
		s.logger.Error("state serialization failed", slog.Any("err", err))
		return
	}
	s.writer.Notify(payload)
}

func (s *Session) serialize() (autosave.Payload, error) {
	clone := s.cat.Clone()
	sermons, err := json.Marshal(clone.Sermons)
	if err != nil {
		return nil, fmt.Errorf("marshal sermons: %w", err)
	}
	series, err := json.Marshal(clone.Series)
	if err != nil {
		return nil, fmt.Errorf("marshal series: %w", err)
	}
	settings, err := json.Marshal(s.settings)
	if err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}
	return autosave.Payload{
		KeySermons:  sermons,
		KeySeries:   series,
		KeySettings: settings,
	}, nil
}
