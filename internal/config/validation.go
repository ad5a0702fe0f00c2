package config

import (
	"errors"
	"fmt"
	"strings"
)

// validate checks the file-level settings. The site definition itself is
// validated once the manifest has been merged in (see package loader).
func validate(cfg *Config) error {
	if cfg.Version != CurrentVersion {
		return fmt.Errorf("unsupported configuration version: %s (expected %s)", cfg.Version, CurrentVersion)
	}
	if cfg.Site.Description != "" {
		return errors.New("site.description must not be set: the description is read from the manifest")
	}
	if cfg.Watch.debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative: %s", cfg.Watch.Debounce)
	}
	if m := cfg.Monitoring.Metrics; m.Enabled && !strings.HasPrefix(m.Path, "/") {
		return fmt.Errorf("monitoring.metrics.path must start with /: %s", m.Path)
	}
	return nil
}
