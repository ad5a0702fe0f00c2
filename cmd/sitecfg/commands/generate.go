package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/sitecfg/internal/build"
	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/loader"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Output     string `short:"o" help:"Output file (overrides output.path)" type:"path"`
	Format     string `short:"f" help:"Output format (js, json or yaml; overrides output.format)" enum:",js,json,yaml" default:""`
	DryRun     bool   `name:"dry-run" help:"Build and validate without writing"`
	CheckPages bool   `name:"check-pages" help:"Warn about nav and sidebar pages missing from docs_dir"`
}

func (c *GenerateCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}

	svc := build.NewService().
		WithLoader(loader.New(loader.WithLogger(g.Logger))).
		WithLogger(g.Logger)
	result, err := svc.Run(context.Background(), build.Request{
		Config:     cfg,
		OutputPath: c.Output,
		Format:     config.OutputFormat(c.Format),
		DryRun:     c.DryRun,
		CheckPages: c.CheckPages,
	})
	if err != nil {
		return err
	}

	switch result.Status {
	case build.StatusUnchanged:
		_, err = fmt.Fprintf(g.Stdout, "%s is up to date\n", result.OutputPath)
	case build.StatusDryRun:
		_, err = fmt.Fprintf(g.Stdout, "Configuration is valid; would write %s (%s)\n", result.OutputPath, result.Format)
	default:
		_, err = fmt.Fprintf(g.Stdout, "Wrote %s (%s)\n", result.OutputPath, result.Format)
	}
	return err
}
