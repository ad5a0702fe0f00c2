// Package testutil provides on-disk project fixtures for tests: a manifest,
// a sitecfg file, docs pages and optionally a git repository.
package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/go-git/go-git/v5"
	ggitcfg "github.com/go-git/go-git/v5/config"

	"git.home.luguber.info/inful/sitecfg/internal/config"
)

// Project is a temporary sitecfg project directory.
type Project struct {
	t   *testing.T
	Dir string
}

// NewProject creates an empty project in a temp dir.
func NewProject(t *testing.T) *Project {
	t.Helper()
	return &Project{t: t, Dir: t.TempDir()}
}

// Path joins rel onto the project directory.
func (p *Project) Path(rel string) string {
	return filepath.Join(p.Dir, filepath.FromSlash(rel))
}

// ConfigPath is the default sitecfg file location.
func (p *Project) ConfigPath() string {
	return p.Path(config.DefaultFile)
}

// WriteFile writes content to rel, creating parent directories.
func (p *Project) WriteFile(rel, content string) *Project {
	p.t.Helper()
	full := p.Path(rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		p.t.Fatalf("failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o600); err != nil {
		p.t.Fatalf("failed to write %s: %v", rel, err)
	}
	return p
}

// WriteManifest writes package.json with the given description. An empty
// description omits the field.
func (p *Project) WriteManifest(name, description string) *Project {
	p.t.Helper()
	data := `{"name": ` + strconv.Quote(name)
	if description != "" {
		data += `, "description": ` + strconv.Quote(description)
	}
	return p.WriteFile("package.json", data+"}\n")
}

// InitConfig writes the starter configuration.
func (p *Project) InitConfig() *Project {
	p.t.Helper()
	if err := config.Init(p.ConfigPath(), true); err != nil {
		p.t.Fatalf("failed to write configuration: %v", err)
	}
	return p
}

// Reference writes the manifest ("A docs site") and the starter configuration.
func (p *Project) Reference() *Project {
	p.t.Helper()
	return p.WriteManifest("docs", "A docs site").InitConfig()
}

// LoadConfig loads the project's configuration, failing the test on error.
func (p *Project) LoadConfig() *config.Config {
	p.t.Helper()
	cfg, err := config.Load(p.ConfigPath())
	if err != nil {
		p.t.Fatalf("failed to load configuration: %v", err)
	}
	return cfg
}

// InitGitRepo turns the project into a git repository, adding an origin
// remote when remoteURL is non-empty.
func (p *Project) InitGitRepo(remoteURL string) *git.Repository {
	p.t.Helper()
	repo, err := git.PlainInit(p.Dir, false)
	if err != nil {
		p.t.Fatalf("failed to initialize git repo: %v", err)
	}
	if remoteURL != "" {
		if _, err := repo.CreateRemote(&ggitcfg.RemoteConfig{Name: "origin", URLs: []string{remoteURL}}); err != nil {
			p.t.Fatalf("failed to add origin remote: %v", err)
		}
	}
	return repo
}
