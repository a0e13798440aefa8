// Package ir defines the metadata model consumed by the TypeScript compiler.
// A Model is a read-only snapshot of reflected classes, enums and
// controllers produced by an external adapter; the compiler never mutates it.
package ir

import "strings"

// Model is an ordered set of class descriptors indexed by qualified name.
type Model struct {
	classes []*ClassDescriptor
	index   map[string]*ClassDescriptor
}

// NewModel returns a Model holding the given classes in order.
// A later class with an already-present name replaces the index entry but
// keeps both in iteration order.
func NewModel(classes ...*ClassDescriptor) *Model {
	m := &Model{index: make(map[string]*ClassDescriptor, len(classes))}
	for _, c := range classes {
		m.AddClass(c)
	}
	return m
}

// AddClass appends a class descriptor to the model.
func (m *Model) AddClass(c *ClassDescriptor) {
	if m.index == nil {
		m.index = make(map[string]*ClassDescriptor)
	}
	m.classes = append(m.classes, c)
	m.index[normalizeName(c.Name)] = c
}

// Classes returns the class descriptors in insertion order.
func (m *Model) Classes() []*ClassDescriptor {
	return m.classes
}

// FindClass looks up a class by qualified name. Returns nil if not found.
// A leading namespace separator is ignored.
func (m *Model) FindClass(name string) *ClassDescriptor {
	if m == nil || name == "" {
		return nil
	}
	return m.index[normalizeName(name)]
}

// Exists reports whether the model knows the named class.
func (m *Model) Exists(name string) bool {
	return m.FindClass(name) != nil
}

// InNamespace returns the classes whose qualified name starts with the
// given namespace prefix, in insertion order.
func (m *Model) InNamespace(namespace string) []*ClassDescriptor {
	if namespace == "" {
		return m.classes
	}
	prefix := strings.TrimSuffix(normalizeName(namespace), `\`) + `\`
	var result []*ClassDescriptor
	for _, c := range m.classes {
		if strings.HasPrefix(normalizeName(c.Name), prefix) {
			result = append(result, c)
		}
	}
	return result
}

func normalizeName(name string) string {
	return strings.TrimPrefix(name, `\`)
}

// Warning represents a non-fatal issue encountered during generation.
type Warning struct {
	// Code is a machine-readable warning identifier.
	Code string

	// Message is a human-readable description.
	Message string

	// TypeName is the class that triggered the warning, if applicable.
	TypeName string
}
