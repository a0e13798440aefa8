// Package config loads the tsrest YAML configuration file.
package config

import (
	"bytes"
	"io"
	"io/fs"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/broady/tsrest/internal/format"
	"github.com/broady/tsrest/tsrestgen/typescript"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "tsrest.yaml"

// Defaults for unset fields.
const (
	DefaultSnapshot = "var/tsrest/metadata.json"
	DefaultOutput   = "public/rest.ts"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the on-disk configuration.
type Config struct {
	// Snapshot is the metadata snapshot written by the reflection adapter.
	Snapshot string `yaml:"snapshot" validate:"required"`

	// Output is the generated client file.
	Output string `yaml:"output" validate:"required"`

	// Template optionally replaces the embedded prelude with a file.
	Template string `yaml:"template"`

	// ControllerNamespace is stripped from controller class names.
	ControllerNamespace string `yaml:"controllerNamespace"`

	Format FormatConfig `yaml:"format"`

	// Register lists the declarations to emit, in order. A nil list means
	// no registrar is configured.
	Register []Registration `yaml:"register" validate:"dive"`

	// PostProcess lists literal replacements applied to the final client.
	PostProcess []Replacement `yaml:"postProcess" validate:"dive"`
}

// FormatConfig controls the formatter run after writing.
type FormatConfig struct {
	// Disabled skips formatting.
	Disabled bool `yaml:"disabled"`

	// Command is the formatter command line; the file path is appended.
	Command string `yaml:"command"`
}

// Replacement is one literal post-processing substitution.
type Replacement struct {
	Old string `yaml:"old" validate:"required"`
	New string `yaml:"new"`
}

// Load reads the configuration at path. A missing file at DefaultPath
// yields the defaults; a missing explicit file is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return applyDefaults(&Config{}), nil
		}
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates configuration YAML.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "decode config")
	}

	result := applyDefaults(&cfg)
	if err := validate.Struct(result); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	for i, r := range result.Register {
		if err := r.check(); err != nil {
			return nil, errors.Wrapf(err, "register[%d]", i)
		}
	}
	return result, nil
}

// applyDefaults applies default values to Config.
func applyDefaults(cfg *Config) *Config {
	result := *cfg
	if result.Snapshot == "" {
		result.Snapshot = DefaultSnapshot
	}
	if result.Output == "" {
		result.Output = DefaultOutput
	}
	if result.ControllerNamespace == "" {
		result.ControllerNamespace = typescript.DefaultControllerNamespace
	}
	if result.Format.Command == "" {
		result.Format.Command = format.DefaultCommand
	}
	return &result
}

// HasRegistrar reports whether a register section is present.
func (c *Config) HasRegistrar() bool {
	return c.Register != nil
}

// Registrar returns the declarative registrar, or nil when none is
// configured.
func (c *Config) Registrar() *Registrar {
	if !c.HasRegistrar() {
		return nil
	}
	return &Registrar{Steps: c.Register, Replacements: c.PostProcess}
}
