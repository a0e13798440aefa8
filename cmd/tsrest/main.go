package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/broady/tsrest/cmd/tsrest/internal/check"
	"github.com/broady/tsrest/cmd/tsrest/internal/dump"
	"github.com/broady/tsrest/internal/logging"
)

type CLI struct {
	Verbose bool `help:"Enable debug logging." short:"v"`

	Dump    dump.Cmd   `cmd:"" help:"Generate the TypeScript REST client."`
	Check   check.Cmd  `cmd:"" help:"Compile the client without writing it and report warnings."`
	Version VersionCmd `cmd:"" help:"Print version information."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	parser := kong.Must(cli,
		kong.Name("tsrest"),
		kong.Description("Generate a typed TypeScript REST client from application metadata."),
		kong.UsageOnError(),
	)
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	logger := logging.New(cli.Verbose)
	err = ctx.Run(logger)
	// FatalIfErrorf exits without running deferred calls.
	_ = logger.Sync()
	ctx.FatalIfErrorf(err)
}
