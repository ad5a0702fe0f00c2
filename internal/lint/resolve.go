package lint

import (
	"path"
	"strings"
)

// PageRoute joins a sidebar prefix and one of its page entries into a route.
// The empty entry is the prefix's index page.
func PageRoute(prefix, page string) string {
	if page == "" {
		return prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix + page
}

// Candidates lists the files, relative to the docs dir and in lookup order,
// that may back a route. Directory routes map to README.md (or index.md),
// bare names map to name.md, and .html routes map to their Markdown source.
func Candidates(route string) []string {
	r := strings.TrimPrefix(route, "/")
	if i := strings.IndexAny(r, "#?"); i >= 0 {
		r = r[:i]
	}
	switch {
	case r == "" || strings.HasSuffix(r, "/"):
		return []string{path.Join(r, "README.md"), path.Join(r, "index.md")}
	case strings.HasSuffix(r, ".md"):
		return []string{r}
	case strings.HasSuffix(r, ".html"):
		return []string{strings.TrimSuffix(r, ".html") + ".md"}
	default:
		return []string{r + ".md", path.Join(r, "README.md")}
	}
}
