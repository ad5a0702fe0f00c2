package gitinfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	ggitcfg "github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
)

func initRepo(t *testing.T, remoteURL string) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	if remoteURL != "" {
		_, err = repo.CreateRemote(&ggitcfg.RemoteConfig{Name: RemoteName, URLs: []string{remoteURL}})
		require.NoError(t, err)
	}
	return dir
}

func TestOriginURL_FromSubdirectory(t *testing.T) {
	dir := initRepo(t, "git@github.com:example/docs.git")
	sub := filepath.Join(dir, "docs", "src")
	require.NoError(t, os.MkdirAll(sub, 0o750))

	got, err := OriginURL(sub)
	require.NoError(t, err)
	require.Equal(t, "git@github.com:example/docs.git", got)

	repo, err := DetectRepo(sub)
	require.NoError(t, err)
	require.Equal(t, "example/docs", repo)
}

func TestOriginURL_NoRemote(t *testing.T) {
	dir := initRepo(t, "")
	_, err := OriginURL(dir)
	require.ErrorContains(t, err, "repository has no origin remote")
	require.True(t, derrors.HasCategory(err, derrors.CategoryGit))
}

func TestOriginURL_NotARepository(t *testing.T) {
	_, err := OriginURL(t.TempDir())
	require.ErrorContains(t, err, "not inside a git repository")
}

func TestRepoLink(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"git@github.com:example/docs.git", "example/docs"},
		{"https://github.com/example/docs.git", "example/docs"},
		{"https://github.com/example/docs", "example/docs"},
		{"git+https://github.com/example/docs.git", "example/docs"},
		{"ssh://git@github.com/example/docs.git", "example/docs"},
		{"github:example/docs", "example/docs"},
		{"git@gitlab.example.com:group/sub/docs.git", "https://gitlab.example.com/group/sub/docs"},
		{"https://git.home.luguber.info/inful/docs.git", "https://git.home.luguber.info/inful/docs"},
		{"ssh://git@codeberg.org:22/team/docs.git", "https://codeberg.org/team/docs"},
		{"not a remote", "not a remote"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, RepoLink(tt.in))
		})
	}
}
