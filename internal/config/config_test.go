package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"splice/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("SPLICE_DATA_DIR", "")

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

	wantData := filepath.Join(tempHome, ".local", "share", "splice")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.RecoverySlotPath() != filepath.Join(wantData, "autorecovery.ove") {
		t.Fatalf("unexpected recovery slot: %q", cfg.RecoverySlotPath())
	}
	if cfg.RecentDBPath() != filepath.Join(wantData, "recent.db") {
		t.Fatalf("unexpected recent db: %q", cfg.RecentDBPath())
	}
	if !cfg.Recovery.Enabled {
		t.Fatal("expected recovery enabled by default")
	}
	if cfg.Recovery.IntervalSeconds != config.Default().Recovery.IntervalSeconds {
		t.Fatalf("unexpected recovery interval: %d", cfg.Recovery.IntervalSeconds)
	}
	if cfg.ProjectFileFilter() != "Splice Project (*.ove)" {
		t.Fatalf("unexpected file filter: %q", cfg.ProjectFileFilter())
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "splice.toml")

	type payload struct {
		Paths struct {
			DataDir string `toml:"data_dir"`
		} `toml:"paths"`
		Recovery struct {
			Enabled         bool `toml:"enabled"`
			IntervalSeconds int  `toml:"interval_seconds"`
		} `toml:"recovery"`
		Project struct {
			Extension string `toml:"extension"`
		} `toml:"project"`
	}
	custom := payload{}
	custom.Paths.DataDir = filepath.Join(tempDir, "data")
	custom.Recovery.Enabled = false
	custom.Recovery.IntervalSeconds = 15
	custom.Project.Extension = "OVE2"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom config to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Paths.DataDir != filepath.Join(tempDir, "data") {
		t.Fatalf("unexpected data dir %q", cfg.Paths.DataDir)
	}
	if cfg.Recovery.Enabled {
		t.Fatal("expected recovery disabled")
	}
	if cfg.RecoveryInterval().Seconds() != 15 {
		t.Fatalf("unexpected interval %s", cfg.RecoveryInterval())
	}
	if cfg.Project.Extension != ".ove2" {
		t.Fatalf("expected normalized extension, got %q", cfg.Project.Extension)
	}
}

func TestEnvVarOverridesDataDir(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("SPLICE_DATA_DIR", filepath.Join(tempDir, "env-data"))

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.DataDir != filepath.Join(tempDir, "env-data") {
		t.Fatalf("expected data dir from env, got %q", cfg.Paths.DataDir)
	}
}

func TestCreateSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	contents, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("sample config is not valid TOML: %v", err)
	}
	if cfg.Recovery.IntervalSeconds != 60 {
		t.Fatalf("unexpected sample interval %d", cfg.Recovery.IntervalSeconds)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:    "non-positive interval",
			mutate:  func(c *config.Config) { c.Recovery.IntervalSeconds = 0 },
			wantErr: "recovery.interval_seconds",
		},
		{
			name:    "non-positive recent entries",
			mutate:  func(c *config.Config) { c.Recent.MaxEntries = -1 },
			wantErr: "recent.max_entries",
		},
		{
			name:    "unknown export format",
			mutate:  func(c *config.Config) { c.Export.DefaultFormat = "mkv" },
			wantErr: "export.default_format",
		},
		{
			name:    "unknown log format",
			mutate:  func(c *config.Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestEnsureDirectoriesCreatesDataAndLogDirs(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Export.ManifestDir = filepath.Join(base, "exports")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir, cfg.Export.ManifestDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s to exist: %v", dir, err)
		}
	}
}
