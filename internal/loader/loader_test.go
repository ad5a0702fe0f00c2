package loader

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	derrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/site"
	"git.home.luguber.info/inful/sitecfg/internal/testutil"
)

func quiet() Option {
	return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setup(t *testing.T, manifestJSON, configYAML string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(manifestJSON), 0o600))
	path := filepath.Join(dir, config.DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o600))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	return cfg
}

func exampleYAML(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.DefaultFile)
	require.NoError(t, config.Init(path, false))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestBuild_DescriptionAndPluginsFromReference(t *testing.T) {
	cfg := setup(t, `{"name": "docs", "description": "A docs site"}`, exampleYAML(t))

	got, err := New(quiet()).Build(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, "A docs site", got.Description)
	require.Equal(t, "My docs", got.Title)
	require.Equal(t, []string{"@vuepress/plugin-back-to-top", "@vuepress/plugin-medium-zoom"}, got.PluginNames())

	css, ok := got.Theme.Sidebar.Lookup("/css/")
	require.True(t, ok)
	require.Equal(t, []site.SidebarGroup{site.GroupWithSinglePath{Title: "CSS", Collapsible: false, Path: ""}}, css)

	require.Empty(t, cfg.Site.Description, "loaded config must not be mutated")
}

func TestBuild_MissingDescriptionFailsFast(t *testing.T) {
	cfg := setup(t, `{"name": "docs"}`, exampleYAML(t))

	got, err := New(quiet()).Build(context.Background(), cfg)
	require.Nil(t, got)
	require.True(t, derrors.HasCategory(err, derrors.CategoryManifest))
}

func TestBuild_InvalidSiteFails(t *testing.T) {
	cfg := setup(t, `{"name": "docs", "description": "d"}`, `site:
  title: T
  theme:
    nav:
      - {text: A, link: a/}
`)
	got, err := New(quiet()).Build(context.Background(), cfg)
	require.Nil(t, got)
	require.True(t, derrors.HasCategory(err, derrors.CategoryValidation))
}

func TestBuild_TitleFallsBackToManifestName(t *testing.T) {
	cfg := setup(t, `{"name": "@acme/react-native-notes", "description": "d"}`, "site:\n  plugins: [a]\n")

	got, err := New(quiet()).Build(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, "React Native Notes", got.Title)
}

func TestBuild_RepoDetection(t *testing.T) {
	t.Run("fills empty repo", func(t *testing.T) {
		cfg := setup(t, `{"name": "x", "description": "d"}`, "repo_detect: true\nsite:\n  title: T\n")
		var called string
		l := New(quiet(), WithRepoDetector(func(dir string) (string, error) {
			called = dir
			return "example/docs", nil
		}))
		got, err := l.Build(context.Background(), cfg)
		require.NoError(t, err)
		require.Equal(t, "example/docs", got.Theme.Repo)
		require.Equal(t, cfg.BaseDir(), called)
	})

	t.Run("detects origin from git repository", func(t *testing.T) {
		p := testutil.NewProject(t).
			WriteManifest("x", "d").
			WriteFile(config.DefaultFile, "repo_detect: true\nsite:\n  title: T\n")
		p.InitGitRepo("git@github.com:example/docs.git")

		got, err := New(quiet()).Build(context.Background(), p.LoadConfig())
		require.NoError(t, err)
		require.Equal(t, "example/docs", got.Theme.Repo)
	})

	t.Run("explicit repo is kept", func(t *testing.T) {
		cfg := setup(t, `{"name": "x", "description": "d"}`, "repo_detect: true\nsite:\n  title: T\n  theme:\n    repo: mine/repo\n")
		l := New(quiet(), WithRepoDetector(func(string) (string, error) {
			t.Fatal("detector must not be called")
			return "", nil
		}))
		got, err := l.Build(context.Background(), cfg)
		require.NoError(t, err)
		require.Equal(t, "mine/repo", got.Theme.Repo)
	})

	t.Run("detection failure is not fatal", func(t *testing.T) {
		cfg := setup(t, `{"name": "x", "description": "d"}`, "repo_detect: true\nsite:\n  title: T\n")
		l := New(quiet(), WithRepoDetector(func(string) (string, error) {
			return "", errors.New("no origin")
		}))
		got, err := l.Build(context.Background(), cfg)
		require.NoError(t, err)
		require.Empty(t, got.Theme.Repo)
	})
}

func TestBuild_CanceledContext(t *testing.T) {
	cfg := setup(t, `{"name": "x", "description": "d"}`, "site:\n  title: T\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(quiet()).Build(ctx, cfg)
	require.ErrorIs(t, err, context.Canceled)
}

func TestTitleFromName(t *testing.T) {
	require.Equal(t, "My Docs", TitleFromName("my-docs"))
	require.Equal(t, "Css Notes", TitleFromName("css_notes"))
	require.Equal(t, "Notes", TitleFromName("@scope/notes"))
	require.Equal(t, "", TitleFromName(""))
}
