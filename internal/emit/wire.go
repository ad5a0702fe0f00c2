package emit

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitecfg/internal/site"
)

// wireConfig uses the generator's own field names.
type wireConfig struct {
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Head        []wireHead `json:"head" yaml:"head"`
	ThemeConfig wireTheme  `json:"themeConfig" yaml:"themeConfig"`
	Plugins     []string   `json:"plugins" yaml:"plugins"`
}

type wireTheme struct {
	Repo         string      `json:"repo" yaml:"repo"`
	EditLinks    bool        `json:"editLinks" yaml:"editLinks"`
	DocsDir      string      `json:"docsDir" yaml:"docsDir"`
	EditLinkText string      `json:"editLinkText" yaml:"editLinkText"`
	LastUpdated  bool        `json:"lastUpdated" yaml:"lastUpdated"`
	Nav          []wireNav   `json:"nav" yaml:"nav"`
	Sidebar      wireSidebar `json:"sidebar" yaml:"sidebar"`
}

type wireNav struct {
	Text string `json:"text" yaml:"text"`
	Link string `json:"link" yaml:"link"`
}

// wireHead is written as the generator's [tagName, {attributes}] pair.
type wireHead struct {
	Name  string
	Attrs map[string]string
}

func (h wireHead) pair() []any {
	attrs := h.Attrs
	if attrs == nil {
		attrs = map[string]string{}
	}
	return []any{h.Name, attrs}
}

func (h wireHead) MarshalJSON() ([]byte, error) { return json.Marshal(h.pair()) }
func (h wireHead) MarshalYAML() (any, error)    { return h.pair(), nil }

func (h *wireHead) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode || len(node.Content) == 0 || len(node.Content) > 2 {
		return fmt.Errorf("line %d: head entry must be [tagName, {attributes}]", node.Line)
	}
	if err := node.Content[0].Decode(&h.Name); err != nil {
		return err
	}
	h.Attrs = nil
	if len(node.Content) == 2 {
		return node.Content[1].Decode(&h.Attrs)
	}
	return nil
}

type wireChildren struct {
	Title       string   `json:"title" yaml:"title"`
	Collapsable bool     `json:"collapsable" yaml:"collapsable"`
	Children    []string `json:"children" yaml:"children"`
}

type wirePath struct {
	Title       string `json:"title" yaml:"title"`
	Collapsable bool   `json:"collapsable" yaml:"collapsable"`
	Path        string `json:"path" yaml:"path"`
}

func wireGroup(g site.SidebarGroup) any {
	switch g := g.(type) {
	case site.GroupWithChildren:
		children := g.Children
		if children == nil {
			children = []string{}
		}
		return wireChildren{Title: g.Title, Collapsable: g.Collapsible, Children: children}
	case site.GroupWithSinglePath:
		return wirePath{Title: g.Title, Collapsable: g.Collapsible, Path: g.Path}
	default:
		panic(fmt.Sprintf("emit: unknown sidebar group %T", g))
	}
}

// wireSidebar keeps prefix order, which a Go map would lose.
type wireSidebar site.Sidebar

func (s wireSidebar) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sec := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(sec.Prefix)
		if err != nil {
			return nil, err
		}
		groups := make([]any, len(sec.Groups))
		for j, g := range sec.Groups {
			groups[j] = wireGroup(g)
		}
		val, err := json.Marshal(groups)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s wireSidebar) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, sec := range s {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, g := range sec.Groups {
			n := &yaml.Node{}
			if err := n.Encode(wireGroup(g)); err != nil {
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

func (s *wireSidebar) UnmarshalYAML(node *yaml.Node) error {
	var sb site.Sidebar
	if err := sb.UnmarshalYAML(node); err != nil {
		return err
	}
	*s = wireSidebar(sb)
	return nil
}

func toWire(cfg *site.Config) wireConfig {
	w := wireConfig{
		Title:       cfg.Title,
		Description: cfg.Description,
		Head:        make([]wireHead, len(cfg.Head)),
		Plugins:     cfg.PluginNames(),
		ThemeConfig: wireTheme{
			Repo:         cfg.Theme.Repo,
			EditLinks:    cfg.Theme.EditLinks,
			DocsDir:      cfg.Theme.DocsDir,
			EditLinkText: cfg.Theme.EditLinkText,
			LastUpdated:  cfg.Theme.LastUpdated,
			Nav:          make([]wireNav, len(cfg.Theme.Nav)),
			Sidebar:      wireSidebar(cfg.Theme.Sidebar),
		},
	}
	for i, h := range cfg.Head {
		w.Head[i] = wireHead{Name: h.Name, Attrs: h.Attributes}
	}
	for i, n := range cfg.Theme.Nav {
		w.ThemeConfig.Nav[i] = wireNav(n)
	}
	return w
}

func fromWire(w *wireConfig) *site.Config {
	cfg := &site.Config{
		Title:       w.Title,
		Description: w.Description,
		Theme: site.ThemeConfig{
			Repo:         w.ThemeConfig.Repo,
			EditLinks:    w.ThemeConfig.EditLinks,
			DocsDir:      w.ThemeConfig.DocsDir,
			EditLinkText: w.ThemeConfig.EditLinkText,
			LastUpdated:  w.ThemeConfig.LastUpdated,
		},
	}
	if len(w.Head) > 0 {
		cfg.Head = make([]site.HeadTag, len(w.Head))
		for i, h := range w.Head {
			cfg.Head[i] = site.HeadTag{Name: h.Name, Attributes: h.Attrs}
		}
	}
	if len(w.ThemeConfig.Nav) > 0 {
		cfg.Theme.Nav = make([]site.NavItem, len(w.ThemeConfig.Nav))
		for i, n := range w.ThemeConfig.Nav {
			cfg.Theme.Nav[i] = site.NavItem(n)
		}
	}
	if len(w.ThemeConfig.Sidebar) > 0 {
		cfg.Theme.Sidebar = site.Sidebar(w.ThemeConfig.Sidebar)
	}
	if len(w.Plugins) > 0 {
		cfg.Plugins = make([]site.PluginRef, len(w.Plugins))
		for i, p := range w.Plugins {
			cfg.Plugins[i] = site.PluginRef(p)
		}
	}
	return cfg
}
