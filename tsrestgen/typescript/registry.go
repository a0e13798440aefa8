package typescript

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// TypeDefinition is one emitted top-level declaration.
type TypeDefinition struct {
	// Name is the declared symbol (slug).
	Name string

	// Text is the complete TypeScript source of the declaration.
	Text string

	// Index is the insertion position within the registry.
	Index int
}

// DuplicateDefinitionError is returned when a name is registered twice.
type DuplicateDefinitionError struct {
	Name string
}

func (e *DuplicateDefinitionError) Error() string {
	return "duplicate definition: " + e.Name
}

// Registry is an ordered, name-keyed store of emitted definitions.
// It is owned by a single generation run and is not safe for concurrent use.
type Registry struct {
	defs  []TypeDefinition
	names map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]int)}
}

// Register stores a definition under name. Registering an existing name
// fails with *DuplicateDefinitionError and leaves the registry unchanged.
func (r *Registry) Register(name, text string) error {
	if _, exists := r.names[name]; exists {
		return errors.WithStack(&DuplicateDefinitionError{Name: name})
	}
	r.names[name] = len(r.defs)
	r.defs = append(r.defs, TypeDefinition{Name: name, Text: text, Index: len(r.defs)})
	return nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.names[name]
	return ok
}

// Get returns the definition registered under name.
func (r *Registry) Get(name string) (TypeDefinition, bool) {
	i, ok := r.names[name]
	if !ok {
		return TypeDefinition{}, false
	}
	return r.defs[i], true
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int { return len(r.defs) }

// Definitions returns all definitions in insertion order.
func (r *Registry) Definitions() []TypeDefinition {
	result := make([]TypeDefinition, len(r.defs))
	copy(result, r.defs)
	return result
}

// Code serializes all definitions in insertion order, separated by blank
// lines, with surrounding whitespace trimmed.
func (r *Registry) Code() string {
	texts := make([]string, len(r.defs))
	for i, d := range r.defs {
		texts[i] = d.Text
	}
	return strings.TrimSpace(strings.Join(texts, "\n\n") + "\n\n")
}
