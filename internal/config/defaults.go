package config

const (
	defaultCatalogDir           = "~/.local/share/pulpit/catalog"
	defaultImageDir             = "~/.local/share/pulpit/images"
	defaultBackupDir            = "~/.local/share/pulpit/backups"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultAutosaveQuietMillis  = 1000
	defaultBackupTimeoutSeconds = 10
	defaultMaxAutoBackups       = 10
	defaultMaxImageBytes        = 5 << 20
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CatalogDir: defaultCatalogDir,
			ImageDir:   defaultImageDir,
			BackupDir:  defaultBackupDir,
		},
		Catalog: Catalog{
			AutosaveQuietMillis:  defaultAutosaveQuietMillis,
			BackupTimeoutSeconds: defaultBackupTimeoutSeconds,
			AutoBackupOnClose:    true,
			MaxAutoBackups:       defaultMaxAutoBackups,
			MaxImageBytes:        defaultMaxImageBytes,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
