package typescript

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/broady/tsrest/tsrestgen/ir"
)

// Group labels with special meaning.
const (
	// MainGroup makes a field required and is never part of the enum.
	MainGroup = "main"

	// RoleGroupPrefix marks access-control labels excluded from the enum.
	RoleGroupPrefix = "ROLE_"
)

// GroupCollector accumulates field-group labels in first-seen order.
type GroupCollector struct {
	labels []string
	seen   map[string]bool
}

// NewGroupCollector returns an empty collector.
func NewGroupCollector() *GroupCollector {
	return &GroupCollector{seen: make(map[string]bool)}
}

// Add records labels that have not been seen yet.
func (g *GroupCollector) Add(labels ...string) {
	for _, l := range labels {
		if g.seen[l] {
			continue
		}
		g.seen[l] = true
		g.labels = append(g.labels, l)
	}
}

// CollectClass records the groups used by a class: methods first, then
// properties, in declaration order.
func (g *GroupCollector) CollectClass(rc *ir.ClassDescriptor) {
	for _, m := range rc.Methods {
		if t, ok := ir.FindTag[*ir.GroupsTag](m.Tags); ok {
			g.Add(t.Groups...)
		}
	}
	for _, p := range rc.Properties {
		if t, ok := ir.FindTag[*ir.GroupsTag](p.Tags); ok {
			g.Add(t.Groups...)
		}
	}
}

// Labels returns the collected labels.
func (g *GroupCollector) Labels() []string {
	result := make([]string, len(g.labels))
	copy(result, g.labels)
	return result
}

// Members returns the enum members for the collected labels, excluding
// role labels and the main group. Labels that collapse to the same member
// name keep the first position and take the last label.
func (g *GroupCollector) Members() []EnumMember {
	var members []EnumMember
	index := make(map[string]int)
	for _, label := range g.labels {
		if strings.HasPrefix(label, RoleGroupPrefix) || label == MainGroup {
			continue
		}
		key := GroupMemberName(label)
		if i, ok := index[key]; ok {
			members[i].Value = label
			continue
		}
		index[key] = len(members)
		members = append(members, EnumMember{Key: key, Value: label})
	}
	return members
}

var nonAlnumRe = regexp.MustCompile(`(?i)[^a-z0-9]`)

// GroupMemberName converts a label to a PascalCase member name:
// non-alphanumerics become word breaks, each word is title-cased and the
// breaks are removed. "user:read" becomes "UserRead".
func GroupMemberName(label string) string {
	words := strings.Fields(nonAlnumRe.ReplaceAllString(label, " "))
	var b strings.Builder
	for _, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(strings.ToLower(w[size:]))
	}
	return b.String()
}

// RegisterGroups registers the field-group enum from every label seen on
// registered interfaces and on the request/response classes of controller
// routes.
func (c *Compiler) RegisterGroups() error {
	for _, rc := range c.model.Classes() {
		if !ir.HasTag[*ir.ControllerTag](rc.Tags) {
			continue
		}
		for _, m := range rc.Methods {
			shape, ok := ir.FindTag[*ir.ShapeTag](m.Tags)
			if !ok {
				continue
			}
			for _, name := range []string{shape.Request, shape.Response} {
				if shapeClass := c.model.FindClass(name); shapeClass != nil && !shapeClass.IsEnum() {
					c.groups.CollectClass(shapeClass)
				}
			}
		}
	}
	return c.RegisterArrayEnum(FieldGroupEnum, c.groups.Members())
}
