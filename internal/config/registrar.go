package config

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/broady/tsrest/tsrestgen"
	"github.com/broady/tsrest/tsrestgen/typescript"
)

// Registration is one step of the register list. Exactly one field is set.
type Registration struct {
	// Type registers `export type Name = Type;`.
	Type *TypeAlias `yaml:"type"`

	// TypeOf registers a union of JSON literals.
	TypeOf *TypeOf `yaml:"typeOf"`

	// Enum registers an enum from keys and values.
	Enum *Enum `yaml:"enum"`

	// Object registers a typed const object.
	Object *Object `yaml:"object"`

	// Raw registers verbatim TypeScript.
	Raw *Raw `yaml:"raw"`

	// Interface registers one class of the snapshot.
	Interface string `yaml:"interface"`

	// Namespace registers every class of the snapshot under a namespace.
	Namespace string `yaml:"namespace"`
}

// TypeAlias is a named type alias.
type TypeAlias struct {
	Name string `yaml:"name" validate:"required"`
	Type string `yaml:"type" validate:"required"`
}

// TypeOf is a named union of literal values.
type TypeOf struct {
	Name   string `yaml:"name" validate:"required"`
	Values []any  `yaml:"values" validate:"required,min=1"`
}

// Enum is a named enum. Members without a key are positional.
type Enum struct {
	Name    string       `yaml:"name" validate:"required"`
	Members []EnumMember `yaml:"members" validate:"dive"`
}

// EnumMember is one enum member.
type EnumMember struct {
	Key   string `yaml:"key"`
	Value any    `yaml:"value"`
}

// Object is a named const object.
type Object struct {
	Name    string        `yaml:"name" validate:"required"`
	Type    string        `yaml:"type" validate:"required"`
	Entries []ObjectEntry `yaml:"entries" validate:"dive"`
}

// ObjectEntry is one key/value pair of an Object.
type ObjectEntry struct {
	Key   string `yaml:"key" validate:"required"`
	Value string `yaml:"value"`
}

// Raw is verbatim TypeScript registered under a name.
type Raw struct {
	Name       string `yaml:"name" validate:"required"`
	Definition string `yaml:"definition" validate:"required"`
}

func (r Registration) check() error {
	set := 0
	for _, present := range []bool{
		r.Type != nil, r.TypeOf != nil, r.Enum != nil, r.Object != nil, r.Raw != nil,
		r.Interface != "", r.Namespace != "",
	} {
		if present {
			set++
		}
	}
	if set != 1 {
		return errors.Newf("expected exactly one registration kind, got %d", set)
	}
	return nil
}

// Registrar registers the configured steps in order and applies the
// configured replacements as post-processing.
type Registrar struct {
	Steps        []Registration
	Replacements []Replacement
}

// RegisterTypes runs every step against the compiler. A nil Registrar
// reports tsrestgen.ErrMissingRegistrar.
func (r *Registrar) RegisterTypes(c *typescript.Compiler) error {
	if r == nil {
		return tsrestgen.ErrMissingRegistrar
	}
	for i, s := range r.Steps {
		if err := s.apply(c); err != nil {
			return errors.Wrapf(err, "register[%d]", i)
		}
	}
	return nil
}

// PostProcess applies the replacements in order.
func (r *Registrar) PostProcess(code string) string {
	if r == nil {
		return code
	}
	for _, rep := range r.Replacements {
		code = strings.ReplaceAll(code, rep.Old, rep.New)
	}
	return code
}

func (r Registration) apply(c *typescript.Compiler) error {
	switch {
	case r.Type != nil:
		return c.RegisterType(r.Type.Name, r.Type.Type)
	case r.TypeOf != nil:
		return c.RegisterTypeOf(r.TypeOf.Name, r.TypeOf.Values...)
	case r.Enum != nil:
		members := make([]typescript.EnumMember, len(r.Enum.Members))
		for i, m := range r.Enum.Members {
			key := m.Key
			if key == "" {
				key = strconv.Itoa(i)
			}
			members[i] = typescript.EnumMember{Key: key, Value: m.Value}
		}
		return c.RegisterArrayEnum(r.Enum.Name, members)
	case r.Object != nil:
		entries := make([]typescript.ObjectEntry, len(r.Object.Entries))
		for i, e := range r.Object.Entries {
			entries[i] = typescript.ObjectEntry{Key: e.Key, Value: e.Value}
		}
		return c.RegisterObject(r.Object.Name, r.Object.Type, entries)
	case r.Raw != nil:
		return c.RegisterRaw(r.Raw.Name, r.Raw.Definition)
	case r.Interface != "":
		return c.RegisterInterface(r.Interface)
	case r.Namespace != "":
		return c.RegisterInterfaces(r.Namespace)
	}
	return errors.New("empty registration")
}
