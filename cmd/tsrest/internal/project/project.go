// Package project wires a loaded configuration file into a generator run.
package project

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/broady/tsrest/internal/config"
	"github.com/broady/tsrest/internal/format"
	"github.com/broady/tsrest/tsrestgen"
	"github.com/broady/tsrest/tsrestgen/ir"
	"github.com/broady/tsrest/tsrestgen/provider"
	"github.com/broady/tsrest/tsrestgen/sink"
)

// Project is a configuration plus the model read from its snapshot.
type Project struct {
	Config *config.Config
	Model  *ir.Model
}

// Load reads the configuration at configPath (empty for the default) and
// the snapshot it names.
func Load(ctx context.Context, configPath string, logger *zap.Logger) (*Project, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if !cfg.HasRegistrar() {
		return nil, tsrestgen.ErrMissingRegistrar
	}

	p := &provider.SnapshotProvider{}
	model, err := p.BuildModel(ctx, provider.SnapshotInputOptions{
		Path:   cfg.Snapshot,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}
	return &Project{Config: cfg, Model: model}, nil
}

// GeneratorConfig converts the project configuration. out overrides the
// configured output path; an empty out keeps it.
func (p *Project) GeneratorConfig(out string, noFormat bool, logger *zap.Logger) (*tsrestgen.Config, error) {
	cfg := &tsrestgen.Config{
		Registrar:           p.Config.Registrar(),
		ControllerNamespace: p.Config.ControllerNamespace,
		Logger:              logger,
	}

	if p.Config.Template != "" {
		data, err := os.ReadFile(p.Config.Template)
		if err != nil {
			return nil, errors.Wrapf(err, "read template %s", p.Config.Template)
		}
		cfg.Template = string(data)
	}

	if out == "" {
		out = p.Config.Output
	}
	cfg.Sink, cfg.OutFile = sink.ForFile(out)

	if !noFormat && !p.Config.Format.Disabled {
		cfg.Formatter = &format.Command{Line: p.Config.Format.Command}
	}
	return cfg, nil
}

// WatchedFiles lists the files whose changes require regeneration.
func (p *Project) WatchedFiles(configPath string) []string {
	if configPath == "" {
		configPath = config.DefaultPath
	}
	files := []string{p.Config.Snapshot}
	if _, err := os.Stat(configPath); err == nil {
		files = append(files, configPath)
	}
	if p.Config.Template != "" {
		files = append(files, p.Config.Template)
	}
	return files
}
