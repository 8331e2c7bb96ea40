package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pulpit/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantCatalog := filepath.Join(tempHome, ".local", "share", "pulpit", "catalog")
	if cfg.Paths.CatalogDir != wantCatalog {
		t.Fatalf("unexpected catalog dir: got %q want %q", cfg.Paths.CatalogDir, wantCatalog)
	}
	if cfg.Paths.ImageDir != filepath.Join(tempHome, ".local", "share", "pulpit", "images") {
		t.Fatalf("unexpected image dir: %q", cfg.Paths.ImageDir)
	}
	if cfg.Catalog.AutosaveQuietMillis != 1000 {
		t.Fatalf("unexpected autosave quiet window: %d", cfg.Catalog.AutosaveQuietMillis)
	}
	if !cfg.Catalog.AutoBackupOnClose {
		t.Fatal("expected auto backup on close enabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.CatalogDir, cfg.Paths.ImageDir, cfg.Paths.BackupDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadReadsExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pulpit.toml")
	body := strings.Join([]string{
		"[paths]",
		`catalog_dir = "` + filepath.Join(dir, "cat") + `"`,
		"[catalog]",
		"autosave_quiet_millis = 250",
		"max_auto_backups = 3",
		"[logging]",
		`level = "debug"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config found at %q, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Paths.CatalogDir != filepath.Join(dir, "cat") {
		t.Fatalf("unexpected catalog dir: %q", cfg.Paths.CatalogDir)
	}
	if cfg.Catalog.AutosaveQuietMillis != 250 {
		t.Fatalf("unexpected autosave quiet window: %d", cfg.Catalog.AutosaveQuietMillis)
	}
	if cfg.Catalog.MaxAutoBackups != 3 {
		t.Fatalf("unexpected max auto backups: %d", cfg.Catalog.MaxAutoBackups)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected log level: %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsBadLogging(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pulpit.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("expected sample config to load, exists=%v err=%v", exists, err)
	}
}
