package check

import (
	"context"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/broady/tsrest/cmd/tsrest/internal/project"
	"github.com/broady/tsrest/tsrestgen"
)

type Cmd struct {
	Config string `help:"Configuration file." short:"c" type:"path"`
	Strict bool   `help:"Fail when the compile produces warnings."`
}

func (c *Cmd) Run(logger *zap.Logger) error {
	ctx := context.Background()

	p, err := project.Load(ctx, c.Config, logger)
	if err != nil {
		return err
	}
	fmt.Printf("%s Loaded %d classes from %s\n", color.GreenString("✓"), len(p.Model.Classes()), p.Config.Snapshot)

	cfg, err := p.GeneratorConfig("", true, logger)
	if err != nil {
		return err
	}
	// Compile only
	cfg.Sink = nil

	result, err := tsrestgen.Generate(ctx, p.Model, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("%s Compiled %d definitions and %d controllers\n",
		color.GreenString("✓"), len(result.Definitions), len(result.Controllers))

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "%s [%s] %s\n", color.YellowString("!"), w.Code, w.Message)
	}
	if c.Strict && len(result.Warnings) > 0 {
		return errors.Newf("%d warning(s)", len(result.Warnings))
	}
	return nil
}
