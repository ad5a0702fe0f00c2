package site

import (
	"maps"
	"slices"
)

// Config is the complete site configuration consumed by the generator.
type Config struct {
	Title       string      `yaml:"title"`
	Description string      `yaml:"description,omitempty"`
	Head        []HeadTag   `yaml:"head,omitempty"`
	Theme       ThemeConfig `yaml:"theme"`
	Plugins     []PluginRef `yaml:"plugins,omitempty"`
}

// HeadTag is an extra element injected into every page's <head>.
type HeadTag struct {
	Name       string            `yaml:"tag"`
	Attributes map[string]string `yaml:"attrs,omitempty"`
}

// SortedAttributeKeys returns attribute names in lexical order.
func (h HeadTag) SortedAttributeKeys() []string {
	return slices.Sorted(maps.Keys(h.Attributes))
}

// ThemeConfig controls repository links, navigation and the sidebar.
type ThemeConfig struct {
	Repo         string    `yaml:"repo,omitempty"`
	EditLinks    bool      `yaml:"edit_links,omitempty"`
	DocsDir      string    `yaml:"docs_dir,omitempty"`
	EditLinkText string    `yaml:"edit_link_text,omitempty"`
	LastUpdated  bool      `yaml:"last_updated,omitempty"`
	Nav          []NavItem `yaml:"nav,omitempty"`
	Sidebar      Sidebar   `yaml:"sidebar,omitempty"`
}

// NavItem is one entry of the top navigation bar.
type NavItem struct {
	Text string `yaml:"text"`
	Link string `yaml:"link"`
}

// PluginRef names a generator plugin. Slice order is activation order.
type PluginRef string

// PluginNames returns the plugin identifiers as plain strings.
func (c *Config) PluginNames() []string {
	out := make([]string, len(c.Plugins))
	for i, p := range c.Plugins {
		out[i] = string(p)
	}
	return out
}

// NavLinks returns the set of navigation links.
func (t *ThemeConfig) NavLinks() map[string]bool {
	links := make(map[string]bool, len(t.Nav))
	for _, n := range t.Nav {
		links[n.Link] = true
	}
	return links
}

// Clone returns a deep copy so callers can derive a variant without touching the loaded value.
func (c *Config) Clone() *Config {
	out := *c
	if c.Head != nil {
		out.Head = make([]HeadTag, len(c.Head))
		for i, h := range c.Head {
			out.Head[i] = HeadTag{Name: h.Name, Attributes: maps.Clone(h.Attributes)}
		}
	}
	out.Plugins = slices.Clone(c.Plugins)
	out.Theme.Nav = slices.Clone(c.Theme.Nav)
	out.Theme.Sidebar = c.Theme.Sidebar.clone()
	return &out
}
