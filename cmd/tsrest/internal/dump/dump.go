package dump

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/broady/tsrest/cmd/tsrest/internal/project"
	"github.com/broady/tsrest/internal/watch"
	"github.com/broady/tsrest/tsrestgen"
	"github.com/broady/tsrest/tsrestgen/sink"
)

type Cmd struct {
	Path     string `arg:"" optional:"" help:"Output file (default: the configured output)."`
	Config   string `help:"Configuration file." short:"c" type:"path"`
	NoFormat bool   `help:"Do not run the formatter on the output." name:"no-format"`
	Watch    bool   `help:"Regenerate when the snapshot or configuration changes." short:"w"`
}

func (c *Cmd) Run(logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p, err := c.dump(ctx, os.Stdout, logger)
	if err != nil {
		if errors.Is(err, tsrestgen.ErrMissingRegistrar) {
			color.New(color.FgRed).Fprintln(os.Stderr, "There is no types registrar configured")
			return err
		}
		if !c.Watch || p == nil {
			return err
		}
		printError(os.Stderr, err)
	}
	if !c.Watch {
		return nil
	}

	w, err := watch.New(watch.Options{
		Files:  p.WatchedFiles(c.Config),
		Logger: logger,
		OnChange: func(ctx context.Context, changed []string) error {
			fmt.Fprintf(os.Stdout, "%s %d file(s) changed\n", color.CyanString("↻"), len(changed))
			if _, err := c.dump(ctx, os.Stdout, logger); err != nil {
				printError(os.Stderr, err)
			}
			return nil
		},
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, color.New(color.FgHiBlack).Sprint("Watching for changes, press Ctrl+C to stop"))
	return w.Run(ctx)
}

// dump loads the project and generates once. The project is returned
// whenever it loaded, so watch mode can start after a failed compile.
func (c *Cmd) dump(ctx context.Context, out io.Writer, logger *zap.Logger) (*project.Project, error) {
	p, err := project.Load(ctx, c.Config, logger)
	if err != nil {
		return nil, err
	}
	cfg, err := p.GeneratorConfig(c.Path, c.NoFormat, logger)
	if err != nil {
		return p, err
	}
	result, err := tsrestgen.Generate(ctx, p.Model, cfg)
	if err != nil {
		return p, err
	}

	target := result.Path
	if loc, ok := cfg.Sink.(sink.Locator); ok {
		target = loc.Locate(result.Path)
	}
	fmt.Fprintf(out, "%s Wrote %s (%d definitions, %d controllers)\n",
		color.GreenString("✓"), target, len(result.Definitions), len(result.Controllers))
	if n := len(result.Warnings); n > 0 {
		fmt.Fprintf(out, "%s %d warning(s), run with --verbose or use check for details\n", color.YellowString("!"), n)
	}
	return p, nil
}

func printError(w io.Writer, err error) {
	color.New(color.FgRed).Fprintf(w, "✗ %v\n", err)
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "  hint: %s\n", hint)
	}
}
