// Package lint checks that every page the navigation and sidebar reference
// exists in the docs directory, and extracts page titles for display.
package lint

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/frontmatter"
	"git.home.luguber.info/inful/sitecfg/internal/markdown"
	"git.home.luguber.info/inful/sitecfg/internal/site"
)

// Check resolves every nav link and sidebar page of cfg against docsDir.
// A missing docs directory is an error; missing pages are reported as issues.
func Check(cfg *site.Config, docsDir string) (*Result, error) {
	info, err := os.Stat(docsDir)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "docs directory is not accessible").
			WithContext("path", docsDir).
			Build()
	}
	if !info.IsDir() {
		return nil, ferrors.FileSystemError("docs path is not a directory").
			WithContext("path", docsDir).
			Build()
	}
	return CheckFS(os.DirFS(docsDir), cfg)
}

// CheckFS is Check over an arbitrary file system rooted at the docs dir.
func CheckFS(fsys fs.FS, cfg *site.Config) (*Result, error) {
	if cfg == nil {
		return nil, ferrors.InternalError("lint called without a site configuration").Build()
	}

	l := &linter{fsys: fsys, seen: make(map[string]bool), result: &Result{}}
	for _, item := range cfg.Theme.Nav {
		if isExternal(item.Link) {
			continue
		}
		if err := l.visit(item.Link); err != nil {
			return nil, err
		}
	}
	for _, section := range cfg.Theme.Sidebar {
		for _, group := range section.Groups {
			for _, page := range group.Pages() {
				if err := l.visit(PageRoute(section.Prefix, page)); err != nil {
					return nil, err
				}
			}
		}
	}
	return l.result, nil
}

type linter struct {
	fsys   fs.FS
	seen   map[string]bool
	result *Result
}

func (l *linter) visit(route string) error {
	if l.seen[route] {
		return nil
	}
	l.seen[route] = true

	file, err := l.resolve(route)
	if err != nil {
		return err
	}
	if file == "" {
		l.result.Issues = append(l.result.Issues, Issue{
			Route:    route,
			Severity: SeverityError,
			Rule:     RuleMissingPage,
			Message:  fmt.Sprintf("no page found (looked for %s)", strings.Join(Candidates(route), ", ")),
		})
		return nil
	}

	content, err := fs.ReadFile(l.fsys, file)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read page").
			WithContext("path", file).
			Build()
	}

	page := Page{Route: route, File: file}
	meta, body, err := frontmatter.Read(content)
	if err != nil {
		l.result.Issues = append(l.result.Issues, Issue{
			Route:    route,
			File:     file,
			Severity: SeverityError,
			Rule:     RuleInvalidFrontmatter,
			Message:  err.Error(),
		})
		body = content
	}
	page.Title = meta.Title
	if page.Title == "" {
		page.Title, _ = markdown.Title(body)
	}
	if page.Title == "" {
		l.result.Issues = append(l.result.Issues, Issue{
			Route:    route,
			File:     file,
			Severity: SeverityWarning,
			Rule:     RuleMissingTitle,
			Message:  "page has neither a frontmatter title nor a level-1 heading",
		})
	}
	l.result.Pages = append(l.result.Pages, page)
	return nil
}

// resolve returns the first candidate file that exists, or "".
func (l *linter) resolve(route string) (string, error) {
	for _, candidate := range Candidates(route) {
		info, err := fs.Stat(l.fsys, candidate)
		switch {
		case err == nil && !info.IsDir():
			return candidate, nil
		case err == nil, errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrInvalid):
			continue
		default:
			return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to stat page").
				WithContext("path", candidate).
				Build()
		}
	}
	return "", nil
}

func isExternal(link string) bool {
	return strings.Contains(link, "://") || strings.HasPrefix(link, "mailto:")
}
