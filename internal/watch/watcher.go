// Package watch regenerates the site configuration whenever the sitecfg file,
// the project manifest or the docs tree changes.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/sitecfg/internal/build"
	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"git.home.luguber.info/inful/sitecfg/internal/observability"
)

// ResultHook is called after every generation attempt.
type ResultHook func(*build.Result, error)

// Watcher monitors the inputs of one sitecfg project and triggers regeneration.
type Watcher struct {
	configPath string
	service    build.Service
	request    build.Request
	debounce   time.Duration
	logger     *slog.Logger
	onResult   ResultHook

	cfg     *config.Config
	fsw     *fsnotify.Watcher
	watched map[string]bool
}

// Option customises a Watcher.
type Option func(*Watcher)

// WithRequest sets the template request; its Config field is replaced on every run.
func WithRequest(req build.Request) Option {
	return func(w *Watcher) { w.request = req }
}

// WithDebounce overrides watch.debounce from the configuration file.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// WithResultHook registers fn to observe generation results.
func WithResultHook(fn ResultHook) Option {
	return func(w *Watcher) { w.onResult = fn }
}

// New creates a watcher for the configuration at configPath.
func New(configPath string, svc build.Service, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	w := &Watcher{
		configPath: absPath,
		service:    svc,
		logger:     slog.Default(),
		watched:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run loads the configuration, generates once, then regenerates after each
// debounced burst of relevant file events until ctx is canceled. A failed
// reload or generation is logged and the previous output stays in place.
func (w *Watcher) Run(ctx context.Context) error {
	cfg, err := config.Load(w.configPath)
	if err != nil {
		return err
	}
	w.cfg = cfg

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	w.fsw = fsw
	defer func() {
		if err := fsw.Close(); err != nil {
			w.logger.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	if err := w.sync(); err != nil {
		return err
	}
	w.logger.Info("Watching for changes", logfields.Path(w.configPath), logfields.Count(len(w.watched)))
	w.generate(ctx, "")

	var (
		timer  *time.Timer
		fire   <-chan time.Time
		reason string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopping watcher")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				w.addIfDocsDir(event.Name)
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("Change detected", logfields.Path(event.Name), logfields.Event(event.Op.String()))
			reason = event.Name
			if timer == nil {
				timer = time.NewTimer(w.debounceInterval())
			} else {
				timer.Reset(w.debounceInterval())
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.logger.Info("Regenerating", logfields.Path(reason))
			w.reload()
			w.generate(ctx, reason)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) debounceInterval() time.Duration {
	if w.debounce > 0 {
		return w.debounce
	}
	return w.cfg.Watch.DebounceDuration()
}

// reload re-reads the configuration file, keeping the previous one on failure.
func (w *Watcher) reload() {
	cfg, err := config.Load(w.configPath)
	if err != nil {
		w.logger.Error("Failed to reload configuration, keeping previous", logfields.Path(w.configPath), logfields.Error(err))
		return
	}
	w.cfg = cfg
	if err := w.sync(); err != nil {
		w.logger.Warn("Failed to update watched directories", logfields.Error(err))
	}
}

func (w *Watcher) generate(ctx context.Context, trigger string) {
	if trigger != "" {
		ctx = observability.WithTrigger(ctx, trigger)
	}
	req := w.request
	req.Config = w.cfg
	result, err := w.service.Run(ctx, req)
	if err != nil {
		observability.ErrorContext(ctx, w.logger, "Generation failed, previous output left in place", logfields.Error(err))
	}
	if w.onResult != nil {
		w.onResult(result, err)
	}
}

// sync makes the watched set match the current configuration: the config
// directory, the manifest directory and every non-hidden directory below docs_dir.
func (w *Watcher) sync() error {
	want := map[string]bool{
		filepath.Dir(w.configPath):                    true,
		filepath.Dir(absOrSelf(w.cfg.ManifestPath())): true,
	}
	docs := absOrSelf(w.cfg.DocsPath())
	if info, err := os.Stat(docs); err == nil && info.IsDir() {
		_ = filepath.WalkDir(docs, func(p string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return nil
			}
			if p != docs && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			want[p] = true
			return nil
		})
	}

	for dir := range w.watched {
		if !want[dir] {
			_ = w.fsw.Remove(dir)
			delete(w.watched, dir)
		}
	}
	dirs := make([]string, 0, len(want))
	for dir := range want {
		dirs = append(dirs, dir)
	}
	slices.Sort(dirs)
	for _, dir := range dirs {
		if w.watched[dir] {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.watched[dir] = true
	}
	return nil
}

func (w *Watcher) addIfDocsDir(p string) {
	if !w.underDocs(p) || skipDir(filepath.Base(p)) {
		return
	}
	info, err := os.Stat(p)
	if err != nil || !info.IsDir() || w.watched[p] {
		return
	}
	if err := w.fsw.Add(p); err != nil {
		w.logger.Warn("Failed to watch new directory", logfields.Path(p), logfields.Error(err))
		return
	}
	w.watched[p] = true
}

// relevant reports whether an event touches a generation input.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return false
	}
	name := event.Name
	switch name {
	case w.configPath, absOrSelf(w.cfg.ManifestPath()):
		return true
	}
	if filepath.Dir(name) == filepath.Dir(w.configPath) && slices.Contains(config.EnvFiles, filepath.Base(name)) {
		return true
	}
	if !w.underDocs(name) {
		return false
	}
	if strings.HasSuffix(name, ".md") {
		return true
	}
	// Removing or renaming a directory can orphan sidebar entries.
	return event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func (w *Watcher) underDocs(p string) bool {
	docs := absOrSelf(w.cfg.DocsPath())
	rel, err := filepath.Rel(docs, p)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if skipDir(part) {
			return false
		}
	}
	return true
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules"
}

func absOrSelf(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
