package config

const (
	defaultDataDir          = "~/.local/share/splice"
	defaultLogDir           = "~/.local/share/splice/logs"
	defaultManifestDir      = "~/.local/share/splice/exports"
	defaultRecoveryInterval = 60
	defaultRecentMaxEntries = 10
	defaultExtension        = ".ove"
	defaultExportFormat     = "mpeg4"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Recovery: Recovery{
			Enabled:         true,
			IntervalSeconds: defaultRecoveryInterval,
		},
		Recent: Recent{
			MaxEntries: defaultRecentMaxEntries,
		},
		Project: Project{
			Extension: defaultExtension,
		},
		Export: Export{
			DefaultFormat: defaultExportFormat,
			ManifestDir:   defaultManifestDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
