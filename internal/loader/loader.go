// Package loader assembles the site configuration from the sitecfg file, the
// project manifest and (optionally) the git origin remote.
package loader

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/gitinfo"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"git.home.luguber.info/inful/sitecfg/internal/manifest"
	"git.home.luguber.info/inful/sitecfg/internal/site"
)

// RepoDetector resolves the theme repository for a directory.
type RepoDetector func(dir string) (string, error)

// Loader builds site configurations. The zero value is not usable; use New.
type Loader struct {
	detectRepo RepoDetector
	logger     *slog.Logger
}

// Option customises a Loader.
type Option func(*Loader)

// WithRepoDetector replaces the git based repository detection.
func WithRepoDetector(d RepoDetector) Option {
	return func(l *Loader) { l.detectRepo = d }
}

// WithLogger sets the logger used for non-fatal notes.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// New returns a Loader using gitinfo.DetectRepo and slog.Default.
func New(opts ...Option) *Loader {
	l := &Loader{detectRepo: gitinfo.DetectRepo, logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Build returns the validated site configuration described by cfg. Either a
// complete configuration or an error is returned, never a partial value.
func (l *Loader) Build(ctx context.Context, cfg *config.Config) (*site.Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, err := manifest.Load(cfg.ManifestPath())
	if err != nil {
		return nil, err
	}

	out := cfg.Site.Clone()
	out.Description = m.Description
	if strings.TrimSpace(out.Title) == "" {
		out.Title = TitleFromName(m.Name)
		l.logger.Debug("Derived site title from manifest name", slog.String("title", out.Title))
	}

	if cfg.RepoDetect && out.Theme.Repo == "" {
		dir := cfg.BaseDir()
		if dir == "" {
			dir = "."
		}
		repo, err := l.detectRepo(dir)
		if err != nil {
			// Repo links are cosmetic; a missing remote must not block the build.
			l.logger.Warn("Repository detection failed, leaving theme repo empty", logfields.Path(dir), logfields.Error(err))
		} else {
			out.Theme.Repo = repo
			l.logger.Debug("Detected theme repository", logfields.Repo(repo))
		}
	}

	if err := site.Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

// TitleFromName turns a package name such as "@acme/react-notes" into "React Notes".
func TitleFromName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' '
	})
	return cases.Title(language.English).String(strings.Join(words, " "))
}
