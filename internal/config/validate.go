package config

import (
	"errors"
	"fmt"
	"strings"
)

var validExportFormats = map[string]struct{}{
	"avi":   {},
	"mpeg4": {},
	"png":   {},
	"tiff":  {},
	"mp3":   {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRecovery(); err != nil {
		return err
	}
	if err := c.validateRecent(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateRecovery() error {
	if c.Recovery.IntervalSeconds <= 0 {
		return errors.New("recovery.interval_seconds must be positive")
	}
	return nil
}

func (c *Config) validateRecent() error {
	if c.Recent.MaxEntries <= 0 {
		return errors.New("recent.max_entries must be positive")
	}
	return nil
}

func (c *Config) validateExport() error {
	if _, ok := validExportFormats[c.Export.DefaultFormat]; !ok {
		return fmt.Errorf("export.default_format: unsupported value %q", c.Export.DefaultFormat)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
