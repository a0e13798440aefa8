package tsrestgen

import (
	"context"

	"go.uber.org/zap"

	"github.com/broady/tsrest/tsrestgen/ir"
	"github.com/broady/tsrest/tsrestgen/sink"
	"github.com/broady/tsrest/tsrestgen/template"
	"github.com/broady/tsrest/tsrestgen/typescript"
)

// DefaultOutFile is the sink-relative file name of the generated client.
const DefaultOutFile = "rest.ts"

// Config holds the configuration for client generation.
type Config struct {
	// Registrar registers the declarations to emit. Required.
	Registrar Registrar

	// PostProcessor rewrites the assembled client. When nil, a Registrar
	// implementing PostProcessor is used instead.
	PostProcessor PostProcessor

	// Template is the prelude the client starts with.
	// Default: the embedded RestAPI template.
	Template string

	// ControllerNamespace is stripped from controller class names.
	// Default: `App\Controller\`
	ControllerNamespace string

	// Sink receives the generated file. When nil nothing is written.
	Sink sink.OutputSink

	// OutFile is the sink-relative path of the client. Default: "rest.ts".
	OutFile string

	// Formatter runs on the written file. Failures are logged only.
	Formatter Formatter

	// Logger receives progress and warnings. Default: no-op.
	Logger *zap.Logger
}

// applyConfigDefaults applies default values to Config.
func applyConfigDefaults(cfg *Config) *Config {
	// Make a copy to avoid mutating the input
	result := *cfg

	if result.Template == "" {
		result.Template = template.Default()
	}
	if result.ControllerNamespace == "" {
		result.ControllerNamespace = typescript.DefaultControllerNamespace
	}
	if result.OutFile == "" {
		result.OutFile = DefaultOutFile
	}
	if result.Logger == nil {
		result.Logger = zap.NewNop()
	}

	return &result
}

// Generator provides a fluent API for client generation.
//
// Example:
//
//	tsrestgen.FromModel(model).
//	    WithRegistrar(types).
//	    ToFile(ctx, "./public/rest.ts")
type Generator struct {
	model *ir.Model
	cfg   Config
}

// FromModel creates a Generator for the given metadata model.
func FromModel(model *ir.Model) *Generator {
	return &Generator{model: model}
}

// WithRegistrar sets the registrar.
func (g *Generator) WithRegistrar(r Registrar) *Generator {
	g.cfg.Registrar = r
	return g
}

// WithPostProcessor sets the post-processor.
func (g *Generator) WithPostProcessor(p PostProcessor) *Generator {
	g.cfg.PostProcessor = p
	return g
}

// Template replaces the embedded prelude.
func (g *Generator) Template(prelude string) *Generator {
	g.cfg.Template = prelude
	return g
}

// ControllerNamespace sets the namespace stripped from controller names.
func (g *Generator) ControllerNamespace(ns string) *Generator {
	g.cfg.ControllerNamespace = ns
	return g
}

// Formatter sets the formatter run after writing.
func (g *Generator) Formatter(f Formatter) *Generator {
	g.cfg.Formatter = f
	return g
}

// Logger sets the logger.
func (g *Generator) Logger(l *zap.Logger) *Generator {
	g.cfg.Logger = l
	return g
}

// ToFile generates the client and writes it to path.
// This is a terminal operation that writes to disk.
func (g *Generator) ToFile(ctx context.Context, path string) (*GenerateResult, error) {
	cfg := g.cfg
	cfg.Sink, cfg.OutFile = sink.ForFile(path)
	return Generate(ctx, g.model, &cfg)
}

// Generate returns the client in memory without writing it.
func (g *Generator) Generate(ctx context.Context) (*GenerateResult, error) {
	cfg := g.cfg
	cfg.Sink = nil
	return Generate(ctx, g.model, &cfg)
}
