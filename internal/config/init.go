package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitecfg/internal/site"
)

const initHeader = `# sitecfg configuration.
# The site description is read from the manifest's "description" field.
# ${VAR} references are expanded from the environment and .env files; a bare $ is kept.
`

// Example returns the starter configuration written by Init.
func Example() *Config {
	return &Config{
		Version:  CurrentVersion,
		Manifest: "package.json",
		DocsDir:  "src",
		Output:   OutputConfig{Format: FormatJS},
		Site: site.Config{
			Title: "My docs",
			Head: []site.HeadTag{
				{Name: "meta", Attributes: map[string]string{"name": "theme-color", "content": "#3eaf7c"}},
				{Name: "meta", Attributes: map[string]string{"name": "apple-mobile-web-app-capable", "content": "yes"}},
				{Name: "meta", Attributes: map[string]string{"name": "apple-mobile-web-app-status-bar-style", "content": "black"}},
			},
			Theme: site.ThemeConfig{
				Nav: []site.NavItem{
					{Text: "React Native", Link: "/reactnative/"},
					{Text: "CSS", Link: "/css/"},
					{Text: "VueJS", Link: "/vuejs/"},
				},
				Sidebar: site.Sidebar{
					{Prefix: "/reactnative/", Groups: []site.SidebarGroup{site.GroupWithChildren{
						Title:    "React Native",
						Children: []string{"", "function", "class", "reactnavigation", "debugging"},
					}}},
					{Prefix: "/css/", Groups: []site.SidebarGroup{site.GroupWithSinglePath{Title: "CSS"}}},
					{Prefix: "/vuejs/", Groups: []site.SidebarGroup{site.GroupWithSinglePath{Title: "VueJS"}}},
				},
			},
			Plugins: []site.PluginRef{
				"@vuepress/plugin-back-to-top",
				"@vuepress/plugin-medium-zoom",
			},
		},
	}
}

// Init writes the example configuration to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	data, err := yaml.Marshal(Example())
	if err != nil {
		return fmt.Errorf("failed to marshal example configuration: %w", err)
	}
	content := append([]byte(initHeader), data...)
	if err := os.WriteFile(configPath, content, 0o644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return nil
}
