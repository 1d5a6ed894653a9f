package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docpub/cmd/docpub/commands"
	"git.home.luguber.info/inful/docpub/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := &commands.Global{}

	ctx := kong.Parse(cli,
		kong.Name("docpub"),
		kong.Description("Publish generated documentation trees into per-locale site content directories"),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("docpub %s (%s, built %s)", version.Version, version.GitCommit, version.BuildTime)},
	)

	if err := ctx.Run(global, cli); err != nil {
		fmt.Fprintf(os.Stderr, "docpub: %v\n", err)
		os.Exit(1)
	}
}
