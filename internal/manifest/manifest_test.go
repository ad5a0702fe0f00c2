package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeManifest(t, `{
  "name": "my-docs",
  "version": "0.0.1",
  "description": "A docs site",
  "repository": {"type": "git", "url": "git+https://github.com/example/docs.git"}
}`)

	m, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "my-docs", m.Name)
	require.Equal(t, "A docs site", m.Description)
	require.Equal(t, "0.0.1", m.Version)
	require.Equal(t, "git+https://github.com/example/docs.git", m.Repository.URL)
}

func TestLoad_RepositoryStringForm(t *testing.T) {
	path := writeManifest(t, `{"name": "x", "description": "d", "repository": "github:example/docs"}`)
	m, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "github:example/docs", m.Repository.URL)
}

func TestLoad_Failures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{"missing description", `{"name": "x"}`, "manifest is missing a description field"},
		{"blank description", `{"name": "x", "description": "   "}`, "manifest is missing a description field"},
		{"malformed json", `{"name": `, "malformed manifest"},
		{"wrong type", `{"description": 42}`, "malformed manifest"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, tt.content)
			m, err := Load(path)
			require.Nil(t, m)
			classified, ok := derrors.AsClassified(err)
			require.True(t, ok)
			require.Equal(t, derrors.CategoryManifest, classified.Category())
			require.Equal(t, tt.message, classified.Message())
			p, _ := classified.Context().GetString("path")
			require.Equal(t, path, p)
		})
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorContains(t, err, "manifest not found")
	require.ErrorIs(t, err, os.ErrNotExist)
}
