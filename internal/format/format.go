// Package format runs an external code formatter over a written file.
package format

import (
	"context"
	"os/exec"

	"github.com/cockroachdb/errors"
	"github.com/kballard/go-shellquote"
)

// Formatter rewrites a file in place.
type Formatter interface {
	Format(ctx context.Context, path string) error
}

// DefaultCommand is the formatter invocation used when none is configured.
const DefaultCommand = "prettier -w"

// Command formats files by running a shell-style command line with the
// file path appended as the last argument.
type Command struct {
	// Line is the command line, e.g. "npx prettier -w".
	Line string
}

// Prettier returns the default prettier formatter.
func Prettier() *Command {
	return &Command{Line: DefaultCommand}
}

// Format runs the command on path. Output is included in the error.
func (c *Command) Format(ctx context.Context, path string) error {
	line := c.Line
	if line == "" {
		line = DefaultCommand
	}
	args, err := shellquote.Split(line)
	if err != nil {
		return errors.Wrapf(err, "parse formatter command %q", line)
	}
	if len(args) == 0 {
		return errors.New("formatter command is empty")
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return errors.WithDetail(errors.Wrapf(err, "run %s", args[0]), string(out))
	}
	return nil
}

// Func adapts a function to the Formatter interface.
type Func func(ctx context.Context, path string) error

// Format calls f.
func (f Func) Format(ctx context.Context, path string) error {
	return f(ctx, path)
}
