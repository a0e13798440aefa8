package ir

import (
	"strings"
)

// ClassKind distinguishes ordinary classes from enums.
type ClassKind int

const (
	ClassKindClass ClassKind = iota
	ClassKindEnum
)

// String returns the string representation of the class kind.
func (k ClassKind) String() string {
	switch k {
	case ClassKindClass:
		return "class"
	case ClassKindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Visibility is the declared visibility of a property or method.
type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityProtected
	VisibilityPrivate
)

// String returns the string representation of the visibility.
func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityProtected:
		return "protected"
	case VisibilityPrivate:
		return "private"
	default:
		return "unknown"
	}
}

// ClassDescriptor is a reflected class or enum.
type ClassDescriptor struct {
	// Name is the qualified class name with `\` namespace separators.
	Name string

	ClassKind ClassKind

	// Properties in declaration order.
	Properties []PropertyDescriptor

	// Methods in declaration order.
	Methods []MethodDescriptor

	// Cases holds enum cases in declaration order. Empty for classes.
	Cases []EnumCase

	// Tags attached to the class itself.
	Tags []Tag
}

// IsEnum reports whether the class is an enum.
func (c *ClassDescriptor) IsEnum() bool { return c.ClassKind == ClassKindEnum }

// ShortName returns the class name without its namespace.
func (c *ClassDescriptor) ShortName() string { return ShortName(c.Name) }

// HasMethod reports whether the class declares a method with the given
// name. Method names compare case-insensitively.
func (c *ClassDescriptor) HasMethod(name string) bool {
	for _, m := range c.Methods {
		if strings.EqualFold(m.Name, name) {
			return true
		}
	}
	return false
}

// PropertyDescriptor is a declared class property.
type PropertyDescriptor struct {
	Name       string
	Visibility Visibility

	// Type is the declared type; nil for untyped properties.
	Type TypeDescriptor

	// HasDefault is true when a non-null default value is declared.
	HasDefault bool

	Tags []Tag
}

// IsPublic reports whether the property is public.
func (p *PropertyDescriptor) IsPublic() bool { return p.Visibility == VisibilityPublic }

// MethodDescriptor is a declared class method.
type MethodDescriptor struct {
	Name       string
	Visibility Visibility

	// ReturnType is the declared return type; nil when undeclared.
	ReturnType TypeDescriptor

	Tags []Tag
}

// IsPublic reports whether the method is public.
func (m *MethodDescriptor) IsPublic() bool { return m.Visibility == VisibilityPublic }

// EnumCase is a single backed enum case.
type EnumCase struct {
	Name string

	// Value is one of string, int64 or float64.
	Value any
}

// ShortName strips the namespace from a qualified class name.
func ShortName(name string) string {
	if i := strings.LastIndex(name, `\`); i >= 0 {
		return name[i+1:]
	}
	return name
}
