package testsupport

import (
	"path/filepath"
	"testing"

	"splice/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Export.ManifestDir = filepath.Join(base, "exports")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithRecovery overrides the recovery toggle and interval on the test config.
func WithRecovery(enabled bool, intervalSeconds int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Recovery.Enabled = enabled
		b.cfg.Recovery.IntervalSeconds = intervalSeconds
	}
}

// WithRecentLimit sets the recent projects limit on the test config.
func WithRecentLimit(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Recent.MaxEntries = n
	}
}

// BaseDir returns an option that reports the temp root used for the config.
func BaseDir(dst *string) ConfigOption {
	return func(b *configBuilder) {
		*dst = b.baseDir
	}
}
