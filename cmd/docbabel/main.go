package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docbabel/cmd/docbabel/commands"
	derrors "git.home.luguber.info/inful/docbabel/internal/errors"
	"git.home.luguber.info/inful/docbabel/internal/version"

	// Built-in plugins register themselves with the default registry.
	_ "git.home.luguber.info/inful/docbabel/internal/plugins/i18n"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("docbabel"),
		kong.Description("Build multi-language documentation sites from Markdown."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	err := parser.Run(&commands.Global{}, cli)
	derrors.NewCLIErrorAdapter(cli.Verbose, nil).HandleError(err)
}
