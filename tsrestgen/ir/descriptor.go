package ir

// DescriptorKind identifies the category of a type descriptor.
type DescriptorKind int

const (
	KindPrimitive DescriptorKind = iota // Builtin scalar or pseudo type (int, string, mixed, DateTime, ...)
	KindClassRef                        // Reference to an ordinary class
	KindEnumRef                         // Reference to an enum class
	KindUnion                           // Union of descriptors (A|B|...)
)

// String returns the string representation of the descriptor kind.
func (k DescriptorKind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindClassRef:
		return "ClassRef"
	case KindEnumRef:
		return "EnumRef"
	case KindUnion:
		return "Union"
	default:
		return "Unknown"
	}
}

// TypeDescriptor is the base interface for all declared type descriptors.
type TypeDescriptor interface {
	// Kind returns the descriptor kind for type switching.
	Kind() DescriptorKind

	// AllowsNull reports whether the declared type admits null.
	// Unions always report false; their branches carry their own flags.
	AllowsNull() bool

	// Ensure only types in this package can implement TypeDescriptor.
	sealed()
}

// PrimitiveDescriptor is a builtin type identified by its host name.
type PrimitiveDescriptor struct {
	// Name is the host type name, e.g. "int", "string", "DateTimeImmutable".
	Name string

	Nullable bool
}

// Kind returns KindPrimitive.
func (d *PrimitiveDescriptor) Kind() DescriptorKind { return KindPrimitive }

// AllowsNull reports the nullability flag.
func (d *PrimitiveDescriptor) AllowsNull() bool { return d.Nullable }

func (*PrimitiveDescriptor) sealed() {}

// ClassRefDescriptor references an ordinary class by qualified name.
type ClassRefDescriptor struct {
	// Class is the qualified class name, e.g. `App\Entity\User`.
	Class string

	Nullable bool
}

// Kind returns KindClassRef.
func (d *ClassRefDescriptor) Kind() DescriptorKind { return KindClassRef }

// AllowsNull reports the nullability flag.
func (d *ClassRefDescriptor) AllowsNull() bool { return d.Nullable }

func (*ClassRefDescriptor) sealed() {}

// EnumRefDescriptor references an enum class by qualified name.
type EnumRefDescriptor struct {
	Class string

	Nullable bool
}

// Kind returns KindEnumRef.
func (d *EnumRefDescriptor) Kind() DescriptorKind { return KindEnumRef }

// AllowsNull reports the nullability flag.
func (d *EnumRefDescriptor) AllowsNull() bool { return d.Nullable }

func (*EnumRefDescriptor) sealed() {}

// UnionDescriptor represents a union of types (A|B|...).
type UnionDescriptor struct {
	// Types contains the union members in declaration order.
	Types []TypeDescriptor
}

// Kind returns KindUnion.
func (d *UnionDescriptor) Kind() DescriptorKind { return KindUnion }

// AllowsNull always returns false for unions.
func (d *UnionDescriptor) AllowsNull() bool { return false }

func (*UnionDescriptor) sealed() {}

// Primitive returns a non-nullable PrimitiveDescriptor.
func Primitive(name string) *PrimitiveDescriptor {
	return &PrimitiveDescriptor{Name: name}
}

// ClassRef returns a non-nullable ClassRefDescriptor.
func ClassRef(class string) *ClassRefDescriptor {
	return &ClassRefDescriptor{Class: class}
}

// EnumRef returns a non-nullable EnumRefDescriptor.
func EnumRef(class string) *EnumRefDescriptor {
	return &EnumRefDescriptor{Class: class}
}

// Union returns a UnionDescriptor for the given branches.
func Union(types ...TypeDescriptor) *UnionDescriptor {
	return &UnionDescriptor{Types: types}
}

// Nullable returns a copy of t that admits null. Unions are returned as is.
func Nullable(t TypeDescriptor) TypeDescriptor {
	switch d := t.(type) {
	case *PrimitiveDescriptor:
		c := *d
		c.Nullable = true
		return &c
	case *ClassRefDescriptor:
		c := *d
		c.Nullable = true
		return &c
	case *EnumRefDescriptor:
		c := *d
		c.Nullable = true
		return &c
	default:
		return t
	}
}
