package site

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// Sidebar maps route prefixes to their groups. It is a slice rather than a map
// so the declaration order of the prefixes survives loading and emitting.
type Sidebar []SidebarSection

// SidebarSection is the sidebar shown for every page below Prefix.
type SidebarSection struct {
	Prefix string
	Groups []SidebarGroup
}

// Lookup returns the groups registered for prefix.
func (s Sidebar) Lookup(prefix string) ([]SidebarGroup, bool) {
	for _, sec := range s {
		if sec.Prefix == prefix {
			return sec.Groups, true
		}
	}
	return nil, false
}

func (s Sidebar) clone() Sidebar {
	if s == nil {
		return nil
	}
	out := make(Sidebar, len(s))
	for i, sec := range s {
		groups := make([]SidebarGroup, len(sec.Groups))
		for j, g := range sec.Groups {
			switch g := g.(type) {
			case GroupWithChildren:
				g.Children = slices.Clone(g.Children)
				groups[j] = g
			default:
				groups[j] = g
			}
		}
		out[i] = SidebarSection{Prefix: sec.Prefix, Groups: groups}
	}
	return out
}

// SidebarGroup is a titled cluster of page links. The two implementations are
// GroupWithChildren and GroupWithSinglePath.
type SidebarGroup interface {
	Heading() string
	IsCollapsible() bool
	// Pages lists the page paths the group links to; "" is the section index.
	Pages() []string
	sidebarGroup()
}

// GroupWithChildren links an ordered list of pages.
type GroupWithChildren struct {
	Title       string
	Collapsible bool
	Children    []string
}

func (g GroupWithChildren) Heading() string     { return g.Title }
func (g GroupWithChildren) IsCollapsible() bool { return g.Collapsible }
func (g GroupWithChildren) Pages() []string     { return slices.Clone(g.Children) }
func (GroupWithChildren) sidebarGroup()         {}

// GroupWithSinglePath makes the group heading itself a link to one page.
type GroupWithSinglePath struct {
	Title       string
	Collapsible bool
	Path        string
}

func (g GroupWithSinglePath) Heading() string     { return g.Title }
func (g GroupWithSinglePath) IsCollapsible() bool { return g.Collapsible }
func (g GroupWithSinglePath) Pages() []string     { return []string{g.Path} }
func (GroupWithSinglePath) sidebarGroup()         {}

// groupFields is the union of both group shapes as written in YAML or JSON.
// Pointers distinguish an absent key from an empty value.
type groupFields struct {
	Title       string    `yaml:"title"`
	Collapsible *bool     `yaml:"collapsible"`
	Collapsable *bool     `yaml:"collapsable"`
	Children    *[]string `yaml:"children"`
	Path        *string   `yaml:"path"`
}

var groupKeys = map[string]bool{
	"title":       true,
	"collapsible": true,
	"collapsable": true,
	"children":    true,
	"path":        true,
}

// DecodeGroup decodes one sidebar group node. Both the "collapsible" and the
// generator's "collapsable" spelling are accepted; an omitted value means
// collapsible. Exactly one of "children" and "path" must be present and
// any other key is rejected.
func DecodeGroup(node *yaml.Node) (SidebarGroup, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: sidebar group must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if !groupKeys[key.Value] {
			return nil, fmt.Errorf("line %d: field %s not found in sidebar group", key.Line, key.Value)
		}
	}
	var f groupFields
	if err := node.Decode(&f); err != nil {
		return nil, fmt.Errorf("line %d: %w", node.Line, err)
	}

	collapsible := true
	switch {
	case f.Collapsible != nil && f.Collapsable != nil && *f.Collapsible != *f.Collapsable:
		return nil, fmt.Errorf("line %d: group %q sets collapsible and collapsable to different values", node.Line, f.Title)
	case f.Collapsible != nil:
		collapsible = *f.Collapsible
	case f.Collapsable != nil:
		collapsible = *f.Collapsable
	}

	switch {
	case f.Children != nil && f.Path != nil:
		return nil, fmt.Errorf("line %d: group %q sets both children and path", node.Line, f.Title)
	case f.Children != nil:
		return GroupWithChildren{Title: f.Title, Collapsible: collapsible, Children: *f.Children}, nil
	case f.Path != nil:
		return GroupWithSinglePath{Title: f.Title, Collapsible: collapsible, Path: *f.Path}, nil
	default:
		return nil, fmt.Errorf("line %d: group %q needs either children or path", node.Line, f.Title)
	}
}

// UnmarshalYAML decodes a prefix-to-groups mapping, keeping key order.
func (s *Sidebar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: sidebar must be a mapping of route prefix to groups", node.Line)
	}
	out := make(Sidebar, 0, len(node.Content)/2)
	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		prefix := key.Value
		if seen[prefix] {
			return fmt.Errorf("line %d: duplicate sidebar prefix %q", key.Line, prefix)
		}
		seen[prefix] = true

		if value.Kind != yaml.SequenceNode {
			return fmt.Errorf("line %d: sidebar %q must be a list of groups", value.Line, prefix)
		}
		groups := make([]SidebarGroup, 0, len(value.Content))
		for _, gn := range value.Content {
			g, err := DecodeGroup(gn)
			if err != nil {
				return fmt.Errorf("sidebar %q: %w", prefix, err)
			}
			groups = append(groups, g)
		}
		out = append(out, SidebarSection{Prefix: prefix, Groups: groups})
	}
	*s = out
	return nil
}

// MarshalYAML encodes the sidebar back into the definition form.
func (s Sidebar) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, sec := range s {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, g := range sec.Groups {
			n := &yaml.Node{}
			if err := n.Encode(definitionGroup(g)); err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, n)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: sec.Prefix},
			seq)
	}
	return root, nil
}

type definitionChildren struct {
	Title       string   `yaml:"title"`
	Collapsible bool     `yaml:"collapsible"`
	Children    []string `yaml:"children"`
}

type definitionPath struct {
	Title       string `yaml:"title"`
	Collapsible bool   `yaml:"collapsible"`
	Path        string `yaml:"path"`
}

func definitionGroup(g SidebarGroup) any {
	switch g := g.(type) {
	case GroupWithChildren:
		children := g.Children
		if children == nil {
			children = []string{}
		}
		return definitionChildren{Title: g.Title, Collapsible: g.Collapsible, Children: children}
	case GroupWithSinglePath:
		return definitionPath(g)
	default:
		panic(fmt.Sprintf("site: unknown sidebar group %T", g))
	}
}
