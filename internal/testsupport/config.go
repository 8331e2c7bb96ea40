package testsupport

import (
	"path/filepath"
	"testing"

	"pulpit/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CatalogDir = filepath.Join(base, "catalog")
	cfg.Paths.ImageDir = filepath.Join(base, "images")
	cfg.Paths.BackupDir = filepath.Join(base, "backups")
	// Keep autosave snappy in tests.
	cfg.Catalog.AutosaveQuietMillis = 20
	cfg.Catalog.BackupTimeoutSeconds = 5

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithQuietMillis overrides the autosave debounce window.
func WithQuietMillis(millis int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Catalog.AutosaveQuietMillis = millis
	}
}

// WithMaxImageBytes overrides the accepted image size cap.
func WithMaxImageBytes(limit int64) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Catalog.MaxImageBytes = limit
	}
}
