// Package config loads the sitecfg configuration file: where the manifest and
// docs live, where the generated configuration is written, the site
// definition itself, and the logging/metrics/watch settings.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/site"
)

// CurrentVersion is the only configuration file version understood.
const CurrentVersion = "1"

// DefaultFile is the configuration path used when none is given.
const DefaultFile = "sitecfg.yaml"

// Config represents the sitecfg configuration file.
type Config struct {
	Version    string           `yaml:"version"`
	Manifest   string           `yaml:"manifest,omitempty"`    // project manifest supplying the description
	DocsDir    string           `yaml:"docs_dir,omitempty"`    // markdown sources, used for lint and the default output path
	RepoDetect bool             `yaml:"repo_detect,omitempty"` // fill an empty theme repo from the git origin remote
	Output     OutputConfig     `yaml:"output"`
	Site       site.Config      `yaml:"site"`
	Watch      WatchConfig      `yaml:"watch,omitempty"`
	Monitoring MonitoringConfig `yaml:"monitoring,omitempty"`

	baseDir string
}

// OutputConfig controls where and how the generated configuration is written.
type OutputConfig struct {
	Path   string       `yaml:"path,omitempty"`
	Format OutputFormat `yaml:"format,omitempty"`
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	Debounce string `yaml:"debounce,omitempty"`

	debounce time.Duration
}

// DebounceDuration returns the parsed debounce interval.
func (w WatchConfig) DebounceDuration() time.Duration { return w.debounce }

// MonitoringConfig groups logging and metrics settings.
type MonitoringConfig struct {
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Metrics MetricsConfig `yaml:"metrics,omitempty"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// MetricsConfig controls the Prometheus endpoint served in watch mode.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Address string `yaml:"address,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

// BaseDir is the directory relative paths are resolved against (the config file's directory).
func (c *Config) BaseDir() string { return c.baseDir }

// Resolve joins a relative path onto BaseDir.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.baseDir == "" {
		return p
	}
	return filepath.Join(c.baseDir, p)
}

func (c *Config) ManifestPath() string { return c.Resolve(c.Manifest) }
func (c *Config) DocsPath() string     { return c.Resolve(c.DocsDir) }
func (c *Config) OutputPath() string   { return c.Resolve(c.Output.Path) }

// Load loads, defaults and validates the configuration at configPath.
func Load(configPath string) (*Config, error) {
	baseDir := filepath.Dir(configPath)
	if err := loadEnvFiles(baseDir); err != nil {
		return nil, derrors.ConfigError("failed to load environment file").
			WithContext("path", baseDir).
			WithCause(err).
			Build()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, derrors.ConfigError("configuration file not found").
				WithContext("path", configPath).
				Build()
		}
		return nil, derrors.ConfigError("failed to read configuration file").
			WithContext("path", configPath).
			WithCause(err).
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, derrors.ConfigError("invalid configuration").
			WithContext("path", configPath).
			WithCause(err).
			Build()
	}
	cfg.baseDir = baseDir
	return cfg, nil
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv replaces ${VAR} references; a bare $ is left as written.
func expandEnv(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(ref string) string {
		return os.Getenv(ref[2 : len(ref)-1])
	})
}

// Parse decodes configuration bytes (after ${VAR} expansion), applies
// defaults and validates. Relative paths stay relative.
func Parse(data []byte) (*Config, error) {
	expanded := expandEnv(string(data))

	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("configuration file is empty")
		}
		return nil, err
	}
	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
