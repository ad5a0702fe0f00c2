package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/loader"
	"git.home.luguber.info/inful/sitecfg/internal/site"
)

// Global carries process-wide state shared by every command.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
	Stderr io.Writer
}

// NewGlobal returns a Global writing command output to stdout and logs to stderr.
func NewGlobal(stdout, stderr io.Writer) *Global {
	return &Global{
		Logger: newLogger(stderr, slog.LevelInfo, config.LogFormatText),
		Stdout: stdout,
		Stderr: stderr,
	}
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"sitecfg.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init     InitCmd     `cmd:"" help:"Write a starter configuration file"`
	Validate ValidateCmd `cmd:"" help:"Load and validate the site configuration"`
	Generate GenerateCmd `cmd:"" help:"Write the site configuration for the documentation generator"`
	Show     ShowCmd     `cmd:"" help:"Print the site configuration"`
	Lint     LintCmd     `cmd:"" help:"Check that every nav and sidebar page exists"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate the site configuration when inputs change"`
}

// AfterApply runs after flag parsing; --verbose switches the default logger to debug.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	if c.Verbose {
		g.setLogger(newLogger(g.Stderr, slog.LevelDebug, config.LogFormatText))
	}
	return nil
}

// loadConfig loads the configuration file and applies its logging settings
// unless --verbose already chose a logger.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if !c.Verbose {
		logging := cfg.Monitoring.Logging
		g.setLogger(newLogger(g.Stderr, logging.Level.SlogLevel(), logging.Format))
	}
	return cfg, nil
}

// buildSite loads the configuration and assembles the validated site.
func (c *CLI) buildSite(g *Global) (*config.Config, *site.Config, error) {
	cfg, err := c.loadConfig(g)
	if err != nil {
		return nil, nil, err
	}
	s, err := loader.New(loader.WithLogger(g.Logger)).Build(context.Background(), cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, s, nil
}

func (g *Global) setLogger(l *slog.Logger) {
	g.Logger = l
	slog.SetDefault(l)
}

func newLogger(w io.Writer, level slog.Level, format config.LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
