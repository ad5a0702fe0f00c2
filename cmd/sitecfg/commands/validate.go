package commands

import (
	"fmt"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct{}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	_, s, err := root.buildSite(g)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(g.Stdout, "Configuration is valid: %d nav items, %d sidebar sections, %d plugins\n",
		len(s.Theme.Nav), len(s.Theme.Sidebar), len(s.Plugins))
	return err
}
