// Package gitinfo inspects the project's git repository to fill in the theme
// repository link when the site definition leaves it empty.
package gitinfo

import (
	"errors"
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5"

	derrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
)

// RemoteName is the remote consulted for the repository URL.
const RemoteName = "origin"

// OriginURL returns the first URL of the origin remote of the repository
// containing dir. Parent directories are searched for the .git directory.
func OriginURL(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", derrors.GitError("not inside a git repository").
				WithContext("path", dir).
				Build()
		}
		return "", derrors.GitError("failed to open git repository").
			WithContext("path", dir).
			WithCause(err).
			Build()
	}

	remote, err := repo.Remote(RemoteName)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return "", derrors.GitError("repository has no origin remote").
				WithContext("path", dir).
				Build()
		}
		return "", derrors.GitError("failed to read origin remote").
			WithContext("path", dir).
			WithCause(err).
			Build()
	}
	urls := remote.Config().URLs
	if len(urls) == 0 || urls[0] == "" {
		return "", derrors.GitError("origin remote has no URL").
			WithContext("path", dir).
			Build()
	}
	return urls[0], nil
}

// DetectRepo returns the theme repository value for the repository containing dir.
func DetectRepo(dir string) (string, error) {
	raw, err := OriginURL(dir)
	if err != nil {
		return "", err
	}
	return RepoLink(raw), nil
}

// RepoLink turns a clone URL into the value the theme expects: "owner/repo"
// for GitHub, a browsable https URL for every other host. Unrecognised input
// is returned unchanged.
func RepoLink(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "git+")

	if rest, ok := strings.CutPrefix(s, "github:"); ok {
		return strings.TrimSuffix(rest, ".git")
	}

	host, path, ok := splitRemote(s)
	if !ok {
		return raw
	}
	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	if strings.EqualFold(host, "github.com") {
		return path
	}
	return "https://" + host + "/" + path
}

// splitRemote extracts host and path from URL-style and scp-style remotes.
func splitRemote(s string) (host, path string, ok bool) {
	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil || u.Hostname() == "" {
			return "", "", false
		}
		return u.Hostname(), u.Path, true
	}
	// scp-like: [user@]host:path
	at := strings.LastIndex(s, "@")
	colon := strings.Index(s, ":")
	if colon <= at+1 || colon == len(s)-1 {
		return "", "", false
	}
	return s[at+1 : colon], s[colon+1:], true
}
