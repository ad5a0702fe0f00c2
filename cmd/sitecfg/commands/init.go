package commands

import (
	"fmt"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	if err := config.Init(root.Config, i.Force); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "initialization failed").
			WithContext("path", root.Config).
			Build()
	}
	_, err := fmt.Fprintf(g.Stdout, "Wrote %s\n", root.Config)
	return err
}
