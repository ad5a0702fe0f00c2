package commands

import (
	"fmt"
	"text/tabwriter"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/emit"
	"git.home.luguber.info/inful/sitecfg/internal/lint"
)

// ShowCmd implements the 'show' command.
type ShowCmd struct {
	Format string `short:"f" help:"Output format (js, json or yaml)" enum:"js,json,yaml" default:"yaml"`
	Pages  bool   `help:"List the pages the nav and sidebar resolve to, with their titles"`
}

func (s *ShowCmd) Run(g *Global, root *CLI) error {
	cfg, site, err := root.buildSite(g)
	if err != nil {
		return err
	}

	if s.Pages {
		result, err := lint.Check(site, cfg.DocsPath())
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(g.Stdout, 0, 4, 2, ' ', 0)
		if _, err := fmt.Fprintln(tw, "ROUTE\tFILE\tTITLE"); err != nil {
			return err
		}
		for _, p := range result.Pages {
			if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Route, p.File, p.Title); err != nil {
				return err
			}
		}
		for _, issue := range result.Issues {
			if issue.Rule != lint.RuleMissingPage {
				continue
			}
			if _, err := fmt.Fprintf(tw, "%s\t(missing)\t\n", issue.Route); err != nil {
				return err
			}
		}
		return tw.Flush()
	}

	data, err := emit.Marshal(site, config.OutputFormat(s.Format))
	if err != nil {
		return err
	}
	_, err = g.Stdout.Write(data)
	return err
}
