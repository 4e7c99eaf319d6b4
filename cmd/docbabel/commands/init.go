package commands

import (
	"fmt"
	"io"
	"os"

	"git.home.luguber.info/inful/docbabel/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	return RunInit(root.Config, i.Force, os.Stdout)
}

// RunInit writes an example configuration with the i18n plugin enabled.
func RunInit(configPath string, force bool, out io.Writer) error {
	_, _ = fmt.Fprintf(out, "Writing configuration to %s\n", configPath)
	if err := config.Init(configPath, force); err != nil {
		_, _ = fmt.Fprintln(out, "Initialization failed")
		return err
	}
	_, _ = fmt.Fprintln(out, "Initialized successfully")
	return nil
}
