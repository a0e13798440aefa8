package typescript

import (
	"strings"

	"github.com/broady/tsrest/tsrestgen/ir"
)

// builtinTypes maps host builtin type names to TypeScript equivalents.
// The date aliases are pre-registered by NewCompiler.
var builtinTypes = map[string]string{
	"mixed":             "any",
	"int":               "number",
	"float":             "number",
	"bool":              "boolean",
	"array":             "[]",
	"DateTimeInterface": "TDateTime",
	"DateTimeImmutable": "TDateTime",
	"DateTime":          "TDateTime",
	"DateTimeZone":      "TDateTimeZone",
}

// slugAliases are the extra scalar spellings accepted by Slug.
var slugAliases = map[string]string{
	"integer": "number",
	"double":  "number",
}

// Slug prefixes for generated declarations.
const (
	InterfacePrefix = "I"
	EnumPrefix      = "E"
)

// Mapper resolves declared type descriptors to TypeScript type text.
// It looks classes up in the model to choose slug prefixes but never
// checks that the slug was registered.
type Mapper struct {
	model *ir.Model
}

// NewMapper returns a Mapper backed by the given model.
func NewMapper(model *ir.Model) *Mapper {
	return &Mapper{model: model}
}

// Slug returns the generated symbol name for a class. Builtin scalar names
// map to their TypeScript type whatever the prefix. Names unknown to the
// model pass through with their namespace stripped.
func (m *Mapper) Slug(name, prefix string) string {
	if mapped, ok := builtinTypes[name]; ok {
		return mapped
	}
	if mapped, ok := slugAliases[name]; ok {
		return mapped
	}
	if name == "" {
		return "null"
	}
	if !m.model.Exists(name) {
		return ir.ShortName(name)
	}
	return prefix + ir.ShortName(name)
}

// ClassSlug returns the slug of a class using the prefix matching its kind.
func (m *Mapper) ClassSlug(name string) string {
	if c := m.model.FindClass(name); c != nil && c.IsEnum() {
		return m.Slug(name, EnumPrefix)
	}
	return m.Slug(name, InterfacePrefix)
}

// Resolve returns the TypeScript text for a declared type. A non-nil
// override value wins over the inferred type; when it names an enum
// class it becomes that enum's slug. Nullable descriptors get "| null".
// Unions resolve each branch independently and join them.
func (m *Mapper) Resolve(t ir.TypeDescriptor, override *ir.TypeOverrideTag) string {
	if u, ok := t.(*ir.UnionDescriptor); ok {
		parts := make([]string, 0, len(u.Types))
		for _, branch := range u.Types {
			parts = append(parts, m.Resolve(branch, override))
		}
		return strings.Join(parts, " | ")
	}

	typeName := m.inferred(t)
	if override.HasValue() {
		typeName = m.overrideValue(*override.Value)
	}
	if t != nil && t.AllowsNull() {
		typeName += " | null"
	}
	return typeName
}

// ResolveField returns the TypeScript text for a property or getter,
// applying choice and enum-choice constraints when no override is set.
// Union types never receive the outer "| null" suffix.
func (m *Mapper) ResolveField(t ir.TypeDescriptor, tags []ir.Tag) string {
	override, hasOverride := ir.FindTag[*ir.TypeOverrideTag](tags)
	typeName := m.Resolve(t, override)

	nullable := t != nil && t.AllowsNull()
	suffix := ""
	if nullable {
		suffix = " | null"
	}

	if choice, ok := ir.FindTag[*ir.ChoiceTag](tags); ok && !hasOverride {
		literals := make([]string, len(choice.Choices))
		for i, v := range choice.Choices {
			literals[i] = "'" + choiceEscaper.Replace(v) + "'"
		}
		typeName = strings.Join(literals, " | ") + suffix
	}
	if enumChoice, ok := ir.FindTag[*ir.EnumChoiceTag](tags); ok && !hasOverride {
		typeName = m.Slug(enumChoice.Enum, EnumPrefix) + suffix
	}
	return typeName
}

// choiceEscaper escapes a value for a single-quoted string literal.
var choiceEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`)

func (m *Mapper) inferred(t ir.TypeDescriptor) string {
	switch d := t.(type) {
	case nil:
		return "any"
	case *ir.PrimitiveDescriptor:
		if mapped, ok := builtinTypes[d.Name]; ok {
			return mapped
		}
		if m.model.Exists(d.Name) {
			return m.ClassSlug(d.Name)
		}
		return d.Name
	case *ir.ClassRefDescriptor:
		return m.ClassSlug(d.Class)
	case *ir.EnumRefDescriptor:
		return m.ClassSlug(d.Class)
	default:
		return "any"
	}
}

func (m *Mapper) overrideValue(value string) string {
	if c := m.model.FindClass(value); c != nil && c.IsEnum() {
		return m.Slug(value, EnumPrefix)
	}
	return value
}
