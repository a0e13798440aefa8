package typescript

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/broady/tsrest/tsrestgen/ir"
)

// getterPrefix identifies accessor methods that contribute fields.
const getterPrefix = "get"

// FieldOrigin records where an interface field came from.
type FieldOrigin int

const (
	OriginProperty FieldOrigin = iota
	OriginGetter
)

// Field is one interface member derived from a property or getter.
type Field struct {
	// Name is the display name emitted in the interface.
	Name string

	Type       ir.TypeDescriptor
	HasDefault bool
	Origin     FieldOrigin
	Tags       []ir.Tag
}

// Optional reports whether the field is emitted with "?". A declared
// default or a missing required marker makes a field optional; the main
// group always makes it required.
func (f Field) Optional() bool {
	optional := false
	if f.HasDefault {
		optional = true
	}
	if !f.HasDefault && !ir.HasTag[*ir.RequiredTag](f.Tags) {
		optional = true
	}
	if !f.HasDefault && ir.HasTag[*ir.RequiredTag](f.Tags) {
		optional = false
	}
	if groups, ok := ir.FindTag[*ir.GroupsTag](f.Tags); ok && groups.Has(MainGroup) {
		optional = false
	}
	return optional
}

// Fields returns the emitted fields of a class: visible properties, then
// public getters, deduplicated by display name with the first occurrence
// winning. Hidden members are dropped but still claim their name.
func Fields(rc *ir.ClassDescriptor) []Field {
	defaults := make(map[string]bool)
	for _, p := range rc.Properties {
		if p.HasDefault {
			defaults[p.Name] = true
		}
	}

	var fields []Field
	names := make(map[string]bool)
	add := func(f Field) {
		if names[f.Name] {
			return
		}
		names[f.Name] = true
		if ir.HasTag[*ir.HiddenTag](f.Tags) {
			return
		}
		fields = append(fields, f)
	}

	for _, p := range rc.Properties {
		if !rc.HasMethod(getterPrefix+p.Name) && !p.IsPublic() {
			continue
		}
		add(Field{
			Name:       p.Name,
			Type:       p.Type,
			HasDefault: defaults[p.Name],
			Origin:     OriginProperty,
			Tags:       p.Tags,
		})
	}

	for _, m := range rc.Methods {
		if !strings.HasPrefix(m.Name, getterPrefix) || !m.IsPublic() {
			continue
		}
		name := getterFieldName(m.Name)
		add(Field{
			Name:       name,
			Type:       m.ReturnType,
			HasDefault: defaults[name],
			Origin:     OriginGetter,
			Tags:       m.Tags,
		})
	}
	return fields
}

// getterFieldName strips the accessor prefix and lower-cases the first
// remaining character: "getCreatedAt" becomes "createdAt".
func getterFieldName(method string) string {
	name := strings.TrimPrefix(method, getterPrefix)
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return name
	}
	return string(unicode.ToLower(r)) + name[size:]
}

// InterfaceDefinition renders the interface declaration of a class.
func (c *Compiler) InterfaceDefinition(rc *ir.ClassDescriptor) string {
	var b strings.Builder
	b.WriteString("export interface ")
	b.WriteString(c.mapper.Slug(rc.Name, InterfacePrefix))
	if override, ok := ir.FindTag[*ir.TypeOverrideTag](rc.Tags); ok && override.HasValue() {
		b.WriteString("<T>")
	}
	b.WriteString(" {\n")

	for _, f := range Fields(rc) {
		c.checkField(rc, f)
		b.WriteString("  ")
		b.WriteString(f.Name)
		if f.Optional() {
			b.WriteString("?")
		}
		b.WriteString(": ")
		b.WriteString(c.mapper.ResolveField(f.Type, f.Tags))
		b.WriteString(";\n")
	}

	b.WriteString("}\n\n")
	return b.String()
}

// checkField records references to classes missing from the model.
func (c *Compiler) checkField(rc *ir.ClassDescriptor, f Field) {
	var check func(t ir.TypeDescriptor)
	check = func(t ir.TypeDescriptor) {
		switch d := t.(type) {
		case *ir.ClassRefDescriptor:
			if !c.model.Exists(d.Class) {
				c.warn(WarnUnresolvedType, rc.Name, "field "+f.Name+" references unknown class "+d.Class)
			}
		case *ir.EnumRefDescriptor:
			if !c.model.Exists(d.Class) {
				c.warn(WarnUnresolvedType, rc.Name, "field "+f.Name+" references unknown enum "+d.Class)
			}
		case *ir.UnionDescriptor:
			for _, branch := range d.Types {
				check(branch)
			}
		}
	}
	check(f.Type)
}
