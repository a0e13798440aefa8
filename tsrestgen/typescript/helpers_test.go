package typescript

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/broady/tsrest/tsrestgen/ir"
)

const (
	userClass   = `App\Entity\User`
	itemClass   = `App\Entity\Item`
	statusEnum  = `App\Enum\Status`
	queryClass  = `App\Dto\ChildQuery`
	itemsCtrl   = `App\Controller\ItemController`
	missingType = `App\Missing\Thing`
)

func strptr(s string) *string { return &s }

func override(value string) *ir.TypeOverrideTag {
	return &ir.TypeOverrideTag{Value: strptr(value)}
}

func statusClass() *ir.ClassDescriptor {
	return &ir.ClassDescriptor{
		Name:      statusEnum,
		ClassKind: ir.ClassKindEnum,
		Cases: []ir.EnumCase{
			{Name: "Active", Value: "active"},
			{Name: "Archived", Value: "archived"},
		},
	}
}

// fixtureModel is a small application: an entity, an enum, a request
// shape and one controller.
func fixtureModel() *ir.Model {
	return ir.NewModel(
		&ir.ClassDescriptor{
			Name: userClass,
			Properties: []ir.PropertyDescriptor{
				{Name: "id", Type: ir.Primitive("int"), Tags: []ir.Tag{&ir.RequiredTag{}}},
				{Name: "name", Visibility: ir.VisibilityPrivate, Type: ir.Primitive("string"),
					Tags: []ir.Tag{&ir.GroupsTag{Groups: []string{"user:read", "ROLE_ADMIN"}}}},
				{Name: "secret", Visibility: ir.VisibilityPrivate, Type: ir.Primitive("string")},
				{Name: "hidden", Type: ir.Primitive("string"), Tags: []ir.Tag{&ir.HiddenTag{}}},
				{Name: "status", Type: ir.Nullable(ir.EnumRef(statusEnum)), HasDefault: true},
			},
			Methods: []ir.MethodDescriptor{
				{Name: "getName", ReturnType: ir.Primitive("string")},
				{Name: "getHidden", ReturnType: ir.Primitive("string")},
				{Name: "getCreatedAt", ReturnType: ir.Primitive("DateTimeImmutable"),
					Tags: []ir.Tag{&ir.GroupsTag{Groups: []string{"main", "detail"}}}},
				{Name: "getInternal", Visibility: ir.VisibilityProtected, ReturnType: ir.Primitive("int")},
				{Name: "fetchAll", ReturnType: ir.Primitive("array")},
			},
		},
		statusClass(),
		&ir.ClassDescriptor{
			Name: itemClass,
			Properties: []ir.PropertyDescriptor{
				{Name: "title", Type: ir.Primitive("string"), Tags: []ir.Tag{&ir.RequiredTag{}}},
			},
		},
		&ir.ClassDescriptor{
			Name: queryClass,
			Properties: []ir.PropertyDescriptor{
				{Name: "search", Type: ir.Nullable(ir.Primitive("string")),
					Tags: []ir.Tag{&ir.GroupsTag{Groups: []string{"filter"}}}},
			},
		},
		&ir.ClassDescriptor{
			Name: itemsCtrl,
			Tags: []ir.Tag{&ir.ControllerTag{}, &ir.RouteTag{Path: "/items"}},
			Methods: []ir.MethodDescriptor{
				{Name: "children", Tags: []ir.Tag{
					&ir.RouteTag{Path: "/{id}/children/{childId}"},
					&ir.ShapeTag{Title: "List children", Request: queryClass, Response: itemClass},
				}},
				{Name: "remove", Tags: []ir.Tag{
					&ir.RouteTag{Path: "/{id}", Methods: []string{"DELETE", "POST"}},
					&ir.ShapeTag{Response: "bool"},
				}},
				{Name: "helper", Tags: []ir.Tag{&ir.RouteTag{Path: "/helper"}}},
				{Name: "internal", Visibility: ir.VisibilityPrivate, Tags: []ir.Tag{
					&ir.RouteTag{Path: "/internal"},
					&ir.ShapeTag{Response: itemClass},
				}},
				{Name: "orphan", Tags: []ir.Tag{
					&ir.RouteTag{Path: "/orphan"},
					&ir.ShapeTag{Response: missingType},
				}},
			},
		},
	)
}

func newTestCompiler(t *testing.T, model *ir.Model) *Compiler {
	t.Helper()
	return NewCompiler(model, CompilerConfig{Logger: zaptest.NewLogger(t)})
}

func hasWarning(warnings []ir.Warning, code string) bool {
	for _, w := range warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}
