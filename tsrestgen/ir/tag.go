package ir

// Tag is a metadata annotation attached to a class, property or method.
// The compiler queries tags by their concrete type, never by host
// attribute class name.
type Tag interface {
	// TagName returns the canonical tag name used in snapshots.
	TagName() string

	tag()
}

// Canonical tag names as they appear in snapshots.
const (
	TagTypeOverride = "Definition"
	TagHidden       = "Hidden"
	TagRequired     = "NotBlank"
	TagChoice       = "Choice"
	TagEnumChoice   = "EnumChoice"
	TagGroups       = "Groups"
	TagRoute        = "Route"
	TagShape        = "Method"
	TagController   = "Controller"
)

// TypeOverrideTag forces an explicit target type. On a class, a non-nil
// value marks the generated interface as generic.
type TypeOverrideTag struct {
	Value *string `schema:"value"`
}

func (*TypeOverrideTag) TagName() string { return TagTypeOverride }
func (*TypeOverrideTag) tag()            {}

// HasValue reports whether an explicit type is set.
func (t *TypeOverrideTag) HasValue() bool { return t != nil && t.Value != nil }

// HiddenTag excludes a field from generated interfaces.
type HiddenTag struct{}

func (*HiddenTag) TagName() string { return TagHidden }
func (*HiddenTag) tag()            {}

// RequiredTag marks a field as required when it has no default.
type RequiredTag struct{}

func (*RequiredTag) TagName() string { return TagRequired }
func (*RequiredTag) tag()            {}

// ChoiceTag restricts a field to a static literal set.
type ChoiceTag struct {
	Choices []string `schema:"choices"`
}

func (*ChoiceTag) TagName() string { return TagChoice }
func (*ChoiceTag) tag()            {}

// EnumChoiceTag restricts a field to the cases of an enum class.
type EnumChoiceTag struct {
	Enum string `schema:"enum" validate:"required"`
}

func (*EnumChoiceTag) TagName() string { return TagEnumChoice }
func (*EnumChoiceTag) tag()            {}

// GroupsTag lists the field groups a field belongs to.
type GroupsTag struct {
	Groups []string `schema:"groups"`
}

func (*GroupsTag) TagName() string { return TagGroups }
func (*GroupsTag) tag()            {}

// Has reports whether the tag lists the given group.
func (t *GroupsTag) Has(group string) bool {
	if t == nil {
		return false
	}
	for _, g := range t.Groups {
		if g == group {
			return true
		}
	}
	return false
}

// RouteTag carries the HTTP route of a controller class or method.
type RouteTag struct {
	Path    string   `schema:"path"`
	Methods []string `schema:"methods"`
}

func (*RouteTag) TagName() string { return TagRoute }
func (*RouteTag) tag()            {}

// ShapeTag describes the request and response classes of an endpoint.
type ShapeTag struct {
	Title    string `schema:"title"`
	Request  string `schema:"request"`
	Response string `schema:"response"`
}

func (*ShapeTag) TagName() string { return TagShape }
func (*ShapeTag) tag()            {}

// ControllerTag marks a class whose routes become client stubs.
type ControllerTag struct {
	Title string `schema:"title"`
}

func (*ControllerTag) TagName() string { return TagController }
func (*ControllerTag) tag()            {}

// FindTag returns the first tag of type T, or the zero value if none.
func FindTag[T Tag](tags []Tag) (T, bool) {
	for _, t := range tags {
		if v, ok := t.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// HasTag reports whether tags contain a tag of type T.
func HasTag[T Tag](tags []Tag) bool {
	_, ok := FindTag[T](tags)
	return ok
}
