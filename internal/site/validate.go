package site

import (
	"fmt"
	"strings"

	"golang.org/x/net/html/atom"

	derrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
)

// Issue is a single structural problem found in a Config.
type Issue struct {
	Field   string
	Message string
}

func (i Issue) String() string {
	return i.Field + ": " + i.Message
}

// headElements are the elements the generator may inject into <head>.
var headElements = map[atom.Atom]bool{
	atom.Meta:     true,
	atom.Link:     true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Base:     true,
	atom.Title:    true,
	atom.Noscript: true,
}

// Check returns every structural issue in cfg, in field order.
func Check(cfg *Config) []Issue {
	v := &validator{}
	v.checkMetadata(cfg)
	v.checkHead(cfg.Head)
	v.checkTheme(&cfg.Theme)
	v.checkPlugins(cfg.Plugins)
	return v.issues
}

// Validate returns a validation error carrying every issue, or nil.
func Validate(cfg *Config) error {
	issues := Check(cfg)
	if len(issues) == 0 {
		return nil
	}
	details := make([]string, len(issues))
	for i, is := range issues {
		details[i] = is.String()
	}
	return derrors.ValidationError("site definition is invalid").
		WithContext("issues", len(issues)).
		WithDetails(details...).
		Build()
}

type validator struct {
	issues []Issue
}

func (v *validator) add(field, format string, args ...any) {
	v.issues = append(v.issues, Issue{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) checkMetadata(cfg *Config) {
	if strings.TrimSpace(cfg.Title) == "" {
		v.add("title", "must not be empty")
	}
	if strings.TrimSpace(cfg.Description) == "" {
		v.add("description", "must not be empty")
	}
}

func (v *validator) checkHead(head []HeadTag) {
	for i, h := range head {
		field := fmt.Sprintf("head[%d]", i)
		name := strings.ToLower(h.Name)
		if name == "" {
			v.add(field, "tag name must not be empty")
			continue
		}
		if a := atom.Lookup([]byte(name)); a == 0 || !headElements[a] {
			v.add(field, "%q is not an element allowed in <head>", h.Name)
		}
		for _, k := range h.SortedAttributeKeys() {
			if strings.TrimSpace(k) == "" {
				v.add(field, "attribute name must not be empty")
			}
		}
	}
}

func (v *validator) checkTheme(theme *ThemeConfig) {
	if theme.EditLinks && theme.Repo == "" {
		v.add("theme.edit_links", "requires theme.repo to be set")
	}
	if strings.HasPrefix(theme.DocsDir, "/") {
		v.add("theme.docs_dir", "must be relative to the repository root")
	}

	seen := make(map[string]bool, len(theme.Nav))
	for i, n := range theme.Nav {
		field := fmt.Sprintf("theme.nav[%d]", i)
		if strings.TrimSpace(n.Text) == "" {
			v.add(field, "text must not be empty")
		}
		switch {
		case n.Link == "":
			v.add(field, "link must not be empty")
		case !strings.HasPrefix(n.Link, "/"):
			v.add(field, "link %q must be a site-relative path starting with /", n.Link)
		case seen[n.Link]:
			v.add(field, "duplicate link %q", n.Link)
		}
		seen[n.Link] = true
	}

	links := theme.NavLinks()

	for _, sec := range theme.Sidebar {
		field := fmt.Sprintf("theme.sidebar[%s]", sec.Prefix)
		if !links[sec.Prefix] {
			v.add(field, "no nav item links to this prefix")
		}
		if len(sec.Groups) == 0 {
			v.add(field, "must contain at least one group")
		}
		for gi, g := range sec.Groups {
			v.checkGroup(fmt.Sprintf("%s[%d]", field, gi), g)
		}
	}
}

func (v *validator) checkGroup(field string, g SidebarGroup) {
	if strings.TrimSpace(g.Heading()) == "" {
		v.add(field, "title must not be empty")
	}
	switch g := g.(type) {
	case GroupWithChildren:
		seen := make(map[string]bool, len(g.Children))
		for _, c := range g.Children {
			if msg := pagePathProblem(c); msg != "" {
				v.add(field, "child %q %s", c, msg)
			}
			if seen[c] {
				v.add(field, "duplicate child %q", c)
			}
			seen[c] = true
		}
	case GroupWithSinglePath:
		if msg := pagePathProblem(g.Path); msg != "" {
			v.add(field, "path %q %s", g.Path, msg)
		}
	}
}

// pagePathProblem describes why p is not a relative page path, or returns "".
func pagePathProblem(p string) string {
	if p == "" {
		return ""
	}
	switch {
	case strings.HasPrefix(p, "/"):
		return "must be relative to the sidebar prefix"
	case strings.Contains(p, "://"):
		return "must be a page path, not a URL"
	case strings.ContainsRune(p, '\\'):
		return "must use forward slashes"
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "must not leave the section"
		}
	}
	return ""
}

func (v *validator) checkPlugins(plugins []PluginRef) {
	seen := make(map[PluginRef]bool, len(plugins))
	for i, p := range plugins {
		field := fmt.Sprintf("plugins[%d]", i)
		if strings.TrimSpace(string(p)) == "" {
			v.add(field, "identifier must not be empty")
			continue
		}
		if seen[p] {
			v.add(field, "duplicate plugin %q", p)
		}
		seen[p] = true
	}
}
