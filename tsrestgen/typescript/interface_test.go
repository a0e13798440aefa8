package typescript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/tsrest/tsrestgen/ir"
)

func TestInterfaceDefinition(t *testing.T) {
	model := fixtureModel()
	c := newTestCompiler(t, model)

	got := c.InterfaceDefinition(model.FindClass(userClass))
	want := "export interface IUser {\n" +
		"  id: number;\n" +
		"  name?: string;\n" +
		"  status?: EStatus | null;\n" +
		"  createdAt: TDateTime;\n" +
		"}\n\n"
	assert.Equal(t, want, got)
	assert.Empty(t, c.Warnings())
}

func TestInterfaceDefinition_Generic(t *testing.T) {
	page := &ir.ClassDescriptor{
		Name: `App\Dto\Page`,
		Tags: []ir.Tag{override("T")},
		Properties: []ir.PropertyDescriptor{
			{Name: "items", Type: ir.Primitive("array"), Tags: []ir.Tag{override("T[]"), &ir.RequiredTag{}}},
			{Name: "total", Type: ir.Primitive("int"), HasDefault: true},
		},
	}
	c := newTestCompiler(t, ir.NewModel(page))

	assert.Equal(t,
		"export interface IPage<T> {\n  items: T[];\n  total?: number;\n}\n\n",
		c.InterfaceDefinition(page))
}

func TestInterfaceDefinition_UnresolvedReference(t *testing.T) {
	rc := &ir.ClassDescriptor{
		Name: `App\Entity\Post`,
		Properties: []ir.PropertyDescriptor{
			{Name: "author", Type: ir.Union(ir.ClassRef(missingType), ir.Primitive("string"))},
		},
	}
	c := newTestCompiler(t, ir.NewModel(rc))

	assert.Contains(t, c.InterfaceDefinition(rc), "  author?: Thing | string;\n")
	assert.True(t, hasWarning(c.Warnings(), WarnUnresolvedType))
}

func TestFields(t *testing.T) {
	tests := []struct {
		name string
		rc   *ir.ClassDescriptor
		want []string
	}{
		{
			name: "property before getter",
			rc: &ir.ClassDescriptor{
				Properties: []ir.PropertyDescriptor{{Name: "title", Type: ir.Primitive("string")}},
				Methods:    []ir.MethodDescriptor{{Name: "getTitle", ReturnType: ir.Primitive("int")}},
			},
			want: []string{"title"},
		},
		{
			name: "private property without getter",
			rc: &ir.ClassDescriptor{
				Properties: []ir.PropertyDescriptor{{Name: "token", Visibility: ir.VisibilityPrivate}},
			},
			want: nil,
		},
		{
			name: "private property with getter comes from the property",
			rc: &ir.ClassDescriptor{
				Properties: []ir.PropertyDescriptor{{Name: "email", Visibility: ir.VisibilityPrivate}},
				Methods:    []ir.MethodDescriptor{{Name: "getEmail"}},
			},
			want: []string{"email"},
		},
		{
			name: "hidden property still claims its name",
			rc: &ir.ClassDescriptor{
				Properties: []ir.PropertyDescriptor{{Name: "password", Tags: []ir.Tag{&ir.HiddenTag{}}}},
				Methods:    []ir.MethodDescriptor{{Name: "getPassword"}},
			},
			want: nil,
		},
		{
			name: "getter prefix is case sensitive",
			rc: &ir.ClassDescriptor{
				Methods: []ir.MethodDescriptor{{Name: "GetFoo"}, {Name: "getBar"}},
			},
			want: []string{"bar"},
		},
		{
			name: "non-public getter",
			rc: &ir.ClassDescriptor{
				Methods: []ir.MethodDescriptor{{Name: "getFoo", Visibility: ir.VisibilityPrivate}},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, f := range Fields(tt.rc) {
				got = append(got, f.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFields_GetterOrigin(t *testing.T) {
	rc := &ir.ClassDescriptor{
		Properties: []ir.PropertyDescriptor{{Name: "title", Type: ir.Primitive("string")}},
		Methods:    []ir.MethodDescriptor{{Name: "getTitle", ReturnType: ir.Primitive("int")}},
	}
	fields := Fields(rc)
	require.Len(t, fields, 1)
	assert.Equal(t, OriginProperty, fields[0].Origin)
	assert.Equal(t, ir.Primitive("string"), fields[0].Type)
}

func TestField_Optional(t *testing.T) {
	required := &ir.RequiredTag{}
	mainGroup := &ir.GroupsTag{Groups: []string{MainGroup}}
	otherGroup := &ir.GroupsTag{Groups: []string{"detail"}}

	tests := []struct {
		name  string
		field Field
		want  bool
	}{
		{"no default, not required", Field{}, true},
		{"no default, required", Field{Tags: []ir.Tag{required}}, false},
		{"default", Field{HasDefault: true}, true},
		{"default and required", Field{HasDefault: true, Tags: []ir.Tag{required}}, true},
		{"main group", Field{Tags: []ir.Tag{mainGroup}}, false},
		{"main group with default", Field{HasDefault: true, Tags: []ir.Tag{mainGroup}}, false},
		{"other group", Field{Tags: []ir.Tag{otherGroup}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.field.Optional())
		})
	}
}

func TestGetterFieldName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"getName", "name"},
		{"getCreatedAt", "createdAt"},
		{"getURL", "uRL"},
		{"get", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, getterFieldName(tt.input))
		})
	}
}
