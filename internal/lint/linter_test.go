package lint

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/site"
)

func referenceSite() *site.Config {
	return config.Example().Site.Clone()
}

func page(content string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(content)}
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		route string
		want  []string
	}{
		{"/", []string{"README.md", "index.md"}},
		{"/css/", []string{"css/README.md", "css/index.md"}},
		{"/reactnative/function", []string{"reactnative/function.md", "reactnative/function/README.md"}},
		{"/guide/setup.md", []string{"guide/setup.md"}},
		{"/guide/setup.html", []string{"guide/setup.md"}},
		{"/guide/setup#install", []string{"guide/setup.md", "guide/setup/README.md"}},
	}
	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			assert.Equal(t, tt.want, Candidates(tt.route))
		})
	}
}

func TestPageRoute(t *testing.T) {
	assert.Equal(t, "/css/", PageRoute("/css/", ""))
	assert.Equal(t, "/reactnative/class", PageRoute("/reactnative/", "class"))
	assert.Equal(t, "/guide/intro", PageRoute("/guide", "intro"))
}

func TestCheckFS_AllPagesPresent(t *testing.T) {
	fsys := fstest.MapFS{
		"reactnative/README.md":          page("# React Native\n"),
		"reactnative/function.md":        page("---\ntitle: Function components\n---\n# ignored\n"),
		"reactnative/class.md":           page("# Class components\n"),
		"reactnative/reactnavigation.md": page("# React Navigation\n"),
		"reactnative/debugging.md":       page("Debugging\n=========\n"),
		"css/index.md":                   page("# CSS\n"),
		"vuejs/README.md":                page("# VueJS\n"),
	}

	result, err := CheckFS(fsys, referenceSite())
	require.NoError(t, err)
	assert.Empty(t, result.Issues)
	assert.False(t, result.HasErrors())
	assert.Equal(t, []Page{
		{Route: "/reactnative/", File: "reactnative/README.md", Title: "React Native"},
		{Route: "/css/", File: "css/index.md", Title: "CSS"},
		{Route: "/vuejs/", File: "vuejs/README.md", Title: "VueJS"},
		{Route: "/reactnative/function", File: "reactnative/function.md", Title: "Function components"},
		{Route: "/reactnative/class", File: "reactnative/class.md", Title: "Class components"},
		{Route: "/reactnative/reactnavigation", File: "reactnative/reactnavigation.md", Title: "React Navigation"},
		{Route: "/reactnative/debugging", File: "reactnative/debugging.md", Title: "Debugging"},
	}, result.Pages)
}

func TestCheckFS_ReportsProblems(t *testing.T) {
	fsys := fstest.MapFS{
		"reactnative/README.md":   page("# React Native\n"),
		"reactnative/function.md": page("no heading here\n"),
		"reactnative/class.md":    page("---\ntitle: [unclosed\n"),
		"css/README.md":           page("# CSS\n"),
		"vuejs/README":            page("# wrong extension\n"),
	}

	result, err := CheckFS(fsys, referenceSite())
	require.NoError(t, err)

	type finding struct {
		route string
		rule  string
		sev   Severity
	}
	var got []finding
	for _, issue := range result.Issues {
		got = append(got, finding{issue.Route, issue.Rule, issue.Severity})
	}
	assert.Equal(t, []finding{
		{"/vuejs/", RuleMissingPage, SeverityError},
		{"/reactnative/function", RuleMissingTitle, SeverityWarning},
		{"/reactnative/class", RuleInvalidFrontmatter, SeverityError},
		{"/reactnative/class", RuleMissingTitle, SeverityWarning},
		{"/reactnative/reactnavigation", RuleMissingPage, SeverityError},
		{"/reactnative/debugging", RuleMissingPage, SeverityError},
	}, got)
	assert.Equal(t, 3, result.MissingPages())
	assert.Equal(t, 4, result.ErrorCount())
	assert.Equal(t, 2, result.WarningCount())
	assert.Contains(t, result.Issues[0].Message, "vuejs/README.md, vuejs/index.md")
}

func TestCheckFS_SkipsExternalAndDuplicateLinks(t *testing.T) {
	cfg := &site.Config{
		Title: "Docs",
		Theme: site.ThemeConfig{
			Nav: []site.NavItem{
				{Text: "Guide", Link: "/guide/"},
				{Text: "GitHub", Link: "https://github.com/example/docs"},
			},
			Sidebar: site.Sidebar{
				{Prefix: "/guide/", Groups: []site.SidebarGroup{
					site.GroupWithChildren{Title: "Guide", Children: []string{"", "intro"}},
					site.GroupWithSinglePath{Title: "Again", Path: ""},
				}},
			},
		},
	}
	fsys := fstest.MapFS{
		"guide/README.md": page("# Guide\n"),
		"guide/intro.md":  page("# Intro\n"),
	}

	result, err := CheckFS(fsys, cfg)
	require.NoError(t, err)
	assert.Empty(t, result.Issues)
	require.Len(t, result.Pages, 2)
	assert.Equal(t, "/guide/", result.Pages[0].Route)
	assert.Equal(t, "/guide/intro", result.Pages[1].Route)
}

func TestCheck_DocsDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "README.md"), []byte("# CSS\n"), 0o644))

	cfg := &site.Config{Theme: site.ThemeConfig{
		Nav: []site.NavItem{{Text: "CSS", Link: "/css/"}},
	}}
	result, err := Check(cfg, dir)
	require.NoError(t, err)
	assert.Equal(t, []Page{{Route: "/css/", File: "css/README.md", Title: "CSS"}}, result.Pages)

	_, err = Check(cfg, filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))

	_, err = Check(cfg, filepath.Join(dir, "css", "README.md"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
}

func TestFormatters(t *testing.T) {
	result := &Result{
		Pages: []Page{{Route: "/css/", File: "css/README.md", Title: "CSS"}},
		Issues: []Issue{{
			Route:    "/vuejs/",
			Severity: SeverityError,
			Rule:     RuleMissingPage,
			Message:  "no page found",
		}},
	}

	var text bytes.Buffer
	require.NoError(t, NewFormatter("text").Format(&text, result, "docs"))
	assert.Contains(t, text.String(), "Checking pages in: docs")
	assert.Contains(t, text.String(), "✗ /vuejs/\n  ERROR [missing-page]: no page found")
	assert.Contains(t, text.String(), "1 page resolved, 1 error, 0 warnings")

	var out bytes.Buffer
	require.NoError(t, NewFormatter("json").Format(&out, result, "docs"))
	var decoded JSONOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, 1, decoded.ErrorCount)
	assert.Equal(t, result.Pages, decoded.Pages)
	require.Len(t, decoded.Issues, 1)
	assert.Equal(t, "ERROR", decoded.Issues[0].Severity)
}
