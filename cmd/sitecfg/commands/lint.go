package commands

import (
	"fmt"

	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/lint"
)

// LintCmd implements the 'lint' command.
type LintCmd struct {
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
}

func (l *LintCmd) Run(g *Global, root *CLI) error {
	cfg, site, err := root.buildSite(g)
	if err != nil {
		return err
	}

	result, err := lint.Check(site, cfg.DocsPath())
	if err != nil {
		return err
	}
	if err := lint.NewFormatter(l.Format).Format(g.Stdout, result, cfg.DocsPath()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if result.HasErrors() {
		return ferrors.ValidationError("documentation pages have errors").
			WithContext("path", cfg.DocsPath()).
			WithContext("errors", result.ErrorCount()).
			Build()
	}
	return nil
}
