package config

import (
	"fmt"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/sitecfg/internal/manifest"
)

const (
	defaultDocsDir        = "docs"
	defaultDebounce       = 500 * time.Millisecond
	defaultMetricsAddress = ":9464"
	defaultMetricsPath    = "/metrics"
)

// applyDefaults fills omitted fields and normalizes enumerations in place.
func applyDefaults(cfg *Config) error {
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}
	if cfg.Manifest == "" {
		cfg.Manifest = manifest.DefaultFile
	}
	if cfg.DocsDir == "" {
		cfg.DocsDir = defaultDocsDir
	}

	if err := applyOutputDefaults(cfg); err != nil {
		return err
	}

	if cfg.Watch.Debounce == "" {
		cfg.Watch.debounce = defaultDebounce
		cfg.Watch.Debounce = defaultDebounce.String()
	} else {
		d, err := time.ParseDuration(cfg.Watch.Debounce)
		if err != nil {
			return fmt.Errorf("watch.debounce: %w", err)
		}
		cfg.Watch.debounce = d
	}

	logging := &cfg.Monitoring.Logging
	level, err := logLevelNormalizer.Parse(string(logging.Level))
	if err != nil {
		return fmt.Errorf("monitoring.logging.level: %w", err)
	}
	logging.Level = level
	format, err := logFormatNormalizer.Parse(string(logging.Format))
	if err != nil {
		return fmt.Errorf("monitoring.logging.format: %w", err)
	}
	logging.Format = format

	metrics := &cfg.Monitoring.Metrics
	if metrics.Address == "" {
		metrics.Address = defaultMetricsAddress
	}
	if metrics.Path == "" {
		metrics.Path = defaultMetricsPath
	}
	return nil
}

// applyOutputDefaults settles format and path: an explicit format wins, then
// the path's extension, then js. Without a path the file goes to
// <docs_dir>/.vuepress/config.<ext>.
func applyOutputDefaults(cfg *Config) error {
	out := &cfg.Output
	switch {
	case out.Format != "":
		f, err := ParseOutputFormat(string(out.Format))
		if err != nil {
			return fmt.Errorf("output.format: %w", err)
		}
		out.Format = f
	case out.Path != "":
		out.Format = FormatForPath(out.Path)
	default:
		out.Format = FormatJS
	}
	if out.Path == "" {
		out.Path = filepath.Join(cfg.DocsDir, ".vuepress", "config"+out.Format.Extension())
	}
	return nil
}
