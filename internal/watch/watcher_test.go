package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitecfg/internal/build"
	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/emit"
	"git.home.luguber.info/inful/sitecfg/internal/loader"
	"git.home.luguber.info/inful/sitecfg/internal/testutil"
)

type outcome struct {
	result *build.Result
	err    error
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startWatcher(t *testing.T, configPath string) (<-chan outcome, context.CancelFunc, <-chan error) {
	t.Helper()
	results := make(chan outcome, 16)
	svc := build.NewService().
		WithLoader(loader.New(loader.WithLogger(quietLogger()))).
		WithLogger(quietLogger())
	w, err := New(configPath, svc,
		WithDebounce(50*time.Millisecond),
		WithLogger(quietLogger()),
		WithResultHook(func(r *build.Result, err error) { results <- outcome{r, err} }),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(cancel)
	return results, cancel, done
}

func next(t *testing.T, results <-chan outcome) outcome {
	t.Helper()
	select {
	case o := <-results:
		return o
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for generation")
		return outcome{}
	}
}

func writeProject(t *testing.T) *testutil.Project {
	t.Helper()
	return testutil.NewProject(t).Reference().WriteFile("src/css/README.md", "# CSS\n")
}

func TestWatcher_RegeneratesOnManifestChange(t *testing.T) {
	p := writeProject(t)
	results, cancel, done := startWatcher(t, p.ConfigPath())

	first := next(t, results)
	require.NoError(t, first.err)
	assert.Equal(t, build.StatusWritten, first.result.Status)
	out := first.result.OutputPath

	p.WriteManifest("docs", "Updated description")
	second := next(t, results)
	require.NoError(t, second.err)
	assert.Equal(t, build.StatusWritten, second.result.Status)

	got, err := emit.ReadFile(out, config.FormatJS)
	require.NoError(t, err)
	assert.Equal(t, "Updated description", got.Description)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_FailedReloadKeepsOutput(t *testing.T) {
	p := writeProject(t)
	results, _, _ := startWatcher(t, p.ConfigPath())

	first := next(t, results)
	require.NoError(t, first.err)
	before, err := os.ReadFile(first.result.OutputPath)
	require.NoError(t, err)

	p.WriteManifest("docs", "")
	failed := next(t, results)
	require.Error(t, failed.err)
	assert.Equal(t, build.StatusFailed, failed.result.Status)

	after, err := os.ReadFile(first.result.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	p.WriteManifest("docs", "Fixed")
	recovered := next(t, results)
	require.NoError(t, recovered.err)
	assert.Equal(t, "Fixed", recovered.result.Site.Description)
}

func TestWatcher_InvalidConfigKeepsPrevious(t *testing.T) {
	p := writeProject(t)
	configPath := p.ConfigPath()
	results, _, _ := startWatcher(t, configPath)
	require.NoError(t, next(t, results).err)

	require.NoError(t, os.WriteFile(configPath, []byte("version: \"1\"\nunknown_field: true\n"), 0o600))
	o := next(t, results)
	require.NoError(t, o.err)
	assert.Equal(t, build.StatusUnchanged, o.result.Status)
	assert.Equal(t, "My docs", o.result.Site.Title)
}

func TestWatcher_RegeneratesOnEnvFileChange(t *testing.T) {
	t.Setenv("SITECFG_WATCH_TITLE", "")
	require.NoError(t, os.Unsetenv("SITECFG_WATCH_TITLE"))

	p := writeProject(t)
	raw, err := os.ReadFile(p.ConfigPath())
	require.NoError(t, err)
	require.Contains(t, string(raw), "title: My docs")
	p.WriteFile(filepath.Base(p.ConfigPath()), strings.Replace(string(raw), "title: My docs", "title: ${SITECFG_WATCH_TITLE}", 1))
	p.WriteFile(".env", "SITECFG_WATCH_TITLE=First\n")

	results, _, _ := startWatcher(t, p.ConfigPath())
	first := next(t, results)
	require.NoError(t, first.err)
	assert.Equal(t, "First", first.result.Site.Title)

	p.WriteFile(".env", "SITECFG_WATCH_TITLE=Second\n")
	second := next(t, results)
	require.NoError(t, second.err)
	assert.Equal(t, build.StatusWritten, second.result.Status)
	testutil.NewFileAssertions(t, filepath.Dir(second.result.OutputPath)).
		AssertFileContains(filepath.Base(second.result.OutputPath), `"title": "Second"`)
}

func TestWatcher_MissingConfig(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "missing.yaml"), build.NewService())
	require.NoError(t, err)
	require.Error(t, w.Run(context.Background()))
}

func TestRelevant(t *testing.T) {
	p := writeProject(t)
	configPath := p.ConfigPath()
	dir := p.Dir
	w := &Watcher{configPath: configPath, cfg: p.LoadConfig()}

	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"config write", fsnotify.Event{Name: configPath, Op: fsnotify.Write}, true},
		{"manifest create", fsnotify.Event{Name: filepath.Join(dir, "package.json"), Op: fsnotify.Create}, true},
		{"env file", fsnotify.Event{Name: filepath.Join(dir, ".env"), Op: fsnotify.Write}, true},
		{"chmod only", fsnotify.Event{Name: configPath, Op: fsnotify.Chmod}, false},
		{"docs page", fsnotify.Event{Name: filepath.Join(dir, "src", "css", "README.md"), Op: fsnotify.Create}, true},
		{"docs image", fsnotify.Event{Name: filepath.Join(dir, "src", "logo.png"), Op: fsnotify.Write}, false},
		{"docs dir removed", fsnotify.Event{Name: filepath.Join(dir, "src", "css"), Op: fsnotify.Remove}, true},
		{"generated output", fsnotify.Event{Name: filepath.Join(dir, "src", ".vuepress", "config.js"), Op: fsnotify.Write}, false},
		{"unrelated file", fsnotify.Event{Name: filepath.Join(dir, "README.md"), Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.relevant(tt.ev))
		})
	}
}
