// Package tsrestgen generates a typed TypeScript REST client from a
// metadata model.
//
// A Registrar decides which classes and ad hoc types become declarations;
// every controller in the model becomes a client class reachable from the
// RestAPI aggregator of the embedded prelude.
package tsrestgen

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/broady/tsrest/tsrestgen/ir"
	"github.com/broady/tsrest/tsrestgen/sink"
	"github.com/broady/tsrest/tsrestgen/template"
	"github.com/broady/tsrest/tsrestgen/typescript"
)

// ErrMissingRegistrar is returned when no registrar is configured.
var ErrMissingRegistrar = errors.WithHint(
	errors.New("there is no types registrar configured"),
	"configure a registrar that registers the interfaces and types to emit",
)

// Registrar populates the compiler with type declarations before the
// field-group enum and routes are compiled.
type Registrar interface {
	RegisterTypes(c *typescript.Compiler) error
}

// PostProcessor rewrites the assembled client before it is written.
// A Registrar that also implements PostProcessor is used as one.
type PostProcessor interface {
	PostProcess(code string) string
}

// RegistrarFunc adapts a function to the Registrar interface.
type RegistrarFunc func(c *typescript.Compiler) error

// RegisterTypes calls f.
func (f RegistrarFunc) RegisterTypes(c *typescript.Compiler) error { return f(c) }

// PostProcessFunc adapts a function to the PostProcessor interface.
type PostProcessFunc func(code string) string

// PostProcess calls f.
func (f PostProcessFunc) PostProcess(code string) string { return f(code) }

// Formatter rewrites a written file in place.
type Formatter interface {
	Format(ctx context.Context, path string) error
}

// GenerateResult contains the generated client and its metadata.
type GenerateResult struct {
	// Code is the final client source after post-processing.
	Code string

	// Definitions lists the registered declarations in emission order.
	Definitions []typescript.TypeDefinition

	// Controllers lists the compiled controller clients.
	Controllers []typescript.Controller

	// Path is the sink-relative path written, empty for in-memory runs.
	Path string

	// Warnings contains non-fatal issues encountered.
	Warnings []ir.Warning
}

// Generate compiles the model and, when cfg.Sink is set, writes the
// client to cfg.OutFile. Fatal errors abort before anything is written.
func Generate(ctx context.Context, model *ir.Model, cfg *Config) (*GenerateResult, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Registrar == nil {
		return nil, ErrMissingRegistrar
	}
	cfg = applyConfigDefaults(cfg)
	logger := cfg.Logger

	compiler := typescript.NewCompiler(model, typescript.CompilerConfig{
		Logger:              logger,
		ControllerNamespace: cfg.ControllerNamespace,
	})

	// 1. Registrar-driven declarations
	if err := cfg.Registrar.RegisterTypes(compiler); err != nil {
		return nil, errors.Wrap(err, "register types")
	}

	// 2. Field-group enum
	if err := compiler.RegisterGroups(); err != nil {
		return nil, errors.Wrap(err, "register field groups")
	}

	// 3. Controller clients
	routes := compiler.CompileRoutes()

	code := Assemble(cfg.Template, compiler.Code(), routes)

	if pp := postProcessor(cfg); pp != nil {
		code = pp.PostProcess(code)
	}

	result := &GenerateResult{
		Code:        code,
		Definitions: compiler.Registry().Definitions(),
		Controllers: routes.Controllers,
		Warnings:    compiler.Warnings(),
	}

	logger.Info("compiled client",
		zap.Int("definitions", len(result.Definitions)),
		zap.Int("controllers", len(result.Controllers)),
		zap.Int("warnings", len(result.Warnings)),
	)

	if cfg.Sink == nil {
		return result, nil
	}

	// 4. Emission
	if err := cfg.Sink.WriteFile(ctx, cfg.OutFile, []byte(code)); err != nil {
		return nil, errors.Wrapf(err, "write %s", cfg.OutFile)
	}
	result.Path = cfg.OutFile

	// 5. Best-effort formatting
	if cfg.Formatter != nil {
		target := cfg.OutFile
		if loc, ok := cfg.Sink.(sink.Locator); ok {
			target = loc.Locate(cfg.OutFile)
		}
		if err := cfg.Formatter.Format(ctx, target); err != nil {
			logger.Warn("formatting failed", zap.String("path", target), zap.Error(err))
		}
	}

	return result, nil
}

// Assemble concatenates the prelude, the serialized definitions and the
// controller classes, then replaces every accessor marker with the
// aggregator accessors.
func Assemble(prelude, definitions string, routes *typescript.Routes) string {
	var b strings.Builder
	b.WriteString(prelude)
	b.WriteString(definitions)
	b.WriteString("\n\n")
	b.WriteString(routes.Stubs)
	return strings.ReplaceAll(b.String(), template.Marker, routes.Accessors)
}

func postProcessor(cfg *Config) PostProcessor {
	if cfg.PostProcessor != nil {
		return cfg.PostProcessor
	}
	if pp, ok := cfg.Registrar.(PostProcessor); ok {
		return pp
	}
	return nil
}
