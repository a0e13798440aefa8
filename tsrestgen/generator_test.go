package tsrestgen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/broady/tsrest/internal/format"
	"github.com/broady/tsrest/tsrestgen/ir"
	"github.com/broady/tsrest/tsrestgen/sink"
	"github.com/broady/tsrest/tsrestgen/template"
	"github.com/broady/tsrest/tsrestgen/typescript"
)

func testModel() *ir.Model {
	return ir.NewModel(
		&ir.ClassDescriptor{
			Name: `App\Entity\Note`,
			Properties: []ir.PropertyDescriptor{
				{Name: "body", Type: ir.Primitive("string"), Tags: []ir.Tag{
					&ir.RequiredTag{},
					&ir.GroupsTag{Groups: []string{"note:read"}},
				}},
			},
		},
		&ir.ClassDescriptor{
			Name: `App\Controller\NoteController`,
			Tags: []ir.Tag{&ir.ControllerTag{}, &ir.RouteTag{Path: "/notes"}},
			Methods: []ir.MethodDescriptor{{
				Name: "show",
				Tags: []ir.Tag{
					&ir.RouteTag{Path: "/{id}", Methods: []string{"GET"}},
					&ir.ShapeTag{Title: "Show note", Response: `App\Entity\Note`},
				},
			}},
		},
	)
}

func noteRegistrar() RegistrarFunc {
	return func(c *typescript.Compiler) error {
		if err := c.RegisterType("TNoteId", "number"); err != nil {
			return err
		}
		return c.RegisterInterfaces(`App\Entity`)
	}
}

func TestGenerate_InMemory(t *testing.T) {
	result, err := Generate(context.Background(), testModel(), &Config{
		Registrar: noteRegistrar(),
		Template:  "class RestAPI {\n//INCLUDE\n}\n",
		Logger:    zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	want := "class RestAPI {\n" +
		"\n\t/** Get NoteController API */\n" +
		"\tget NoteController(): NoteController {\n" +
		"\treturn (this.instances['NoteController'] as NoteController) ?? (this.instances['NoteController'] = new NoteController(this));\n" +
		"\t}\n" +
		"\n}\n" +
		"export type TDateTime = string;\n\n" +
		"export type TDateTimeZone = string;\n\n" +
		"export type TIdentifier = string | number;\n\n" +
		"export type TNoteId = number;\n\n" +
		"export interface INote {\n  body: string;\n}\n\n\n\n" +
		`export enum EFieldGroup { NoteRead = "note:read" };` + "\n\n" +
		"class NoteController {\n" +
		"\tprivate api: RestAPI;\n" +
		"\tconstructor(api: RestAPI) {\n" +
		"\t\tthis.api = api;\n" +
		"\t}\n" +
		"\n\t/** Show note */\n" +
		"\tshow = (id: TIdentifier, fields?: EFieldGroup[]): Promise<INote> => this.api.get(`/notes/${id}`, {}, fields);\n" +
		"}\n\n"
	assert.Equal(t, want, result.Code)
	assert.Empty(t, result.Path)
	assert.Len(t, result.Definitions, 6)
	require.Len(t, result.Controllers, 1)
	assert.Equal(t, "NoteController", result.Controllers[0].Alias)
	assert.Empty(t, result.Warnings)
}

func TestGenerate_EmbeddedTemplate(t *testing.T) {
	result, err := FromModel(testModel()).
		WithRegistrar(noteRegistrar()).
		Logger(zaptest.NewLogger(t)).
		Generate(context.Background())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.Code, strings.Split(template.Default(), template.Marker)[0]))
	assert.NotContains(t, result.Code, template.Marker)
	assert.Contains(t, result.Code, "get NoteController(): NoteController {")
	assert.Contains(t, result.Code, "export { RestAPI };")
}

func TestGenerate_MissingRegistrar(t *testing.T) {
	s := sink.NewMemorySink()
	_, err := Generate(context.Background(), testModel(), &Config{Sink: s})

	require.ErrorIs(t, err, ErrMissingRegistrar)
	assert.NotEmpty(t, errors.GetAllHints(err))
	assert.Equal(t, 0, s.Len())

	_, err = Generate(context.Background(), testModel(), nil)
	assert.ErrorIs(t, err, ErrMissingRegistrar)
}

func TestGenerate_RegistrarErrorWritesNothing(t *testing.T) {
	s := sink.NewMemorySink()
	_, err := Generate(context.Background(), testModel(), &Config{
		Sink: s,
		Registrar: RegistrarFunc(func(c *typescript.Compiler) error {
			return c.RegisterType(typescript.DateTimeType, "Date")
		}),
	})

	var dup *typescript.DuplicateDefinitionError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, 0, s.Len())
}

func TestGenerate_DuplicateFieldGroupEnum(t *testing.T) {
	_, err := Generate(context.Background(), testModel(), &Config{
		Registrar: RegistrarFunc(func(c *typescript.Compiler) error {
			return c.RegisterType(typescript.FieldGroupEnum, "string")
		}),
	})
	var dup *typescript.DuplicateDefinitionError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, typescript.FieldGroupEnum, dup.Name)
}

type replacingRegistrar struct{}

func (replacingRegistrar) RegisterTypes(c *typescript.Compiler) error { return nil }

func (replacingRegistrar) PostProcess(code string) string {
	return strings.ReplaceAll(code, "RestAPI", "Api")
}

func TestGenerate_PostProcessor(t *testing.T) {
	ctx := context.Background()
	cfg := &Config{Registrar: replacingRegistrar{}, Template: "class RestAPI {}\n"}

	result, err := Generate(ctx, testModel(), cfg)
	require.NoError(t, err)
	assert.NotContains(t, result.Code, "RestAPI")
	assert.Contains(t, result.Code, "private api: Api;")

	// An explicit post-processor takes precedence.
	cfg.PostProcessor = PostProcessFunc(func(code string) string { return "// header\n" + code })
	result, err = Generate(ctx, testModel(), cfg)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Code, "// header\nclass RestAPI {}"))
}

func TestGenerate_ToSink(t *testing.T) {
	s := sink.NewMemorySink()
	var formatted []string

	result, err := Generate(context.Background(), testModel(), &Config{
		Registrar: noteRegistrar(),
		Sink:      s,
		OutFile:   "js/rest.ts",
		Formatter: format.Func(func(ctx context.Context, path string) error {
			formatted = append(formatted, path)
			return errors.New("prettier: command not found")
		}),
		Logger: zaptest.NewLogger(t),
	})
	require.NoError(t, err, "formatter failures are not fatal")

	assert.Equal(t, "js/rest.ts", result.Path)
	assert.Equal(t, result.Code, string(s.Get("js/rest.ts")))
	assert.Equal(t, []string{"js/rest.ts"}, formatted)
}

func TestGenerator_ToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "public", "rest.ts")
	var formatted string

	result, err := FromModel(testModel()).
		WithRegistrar(noteRegistrar()).
		Formatter(format.Func(func(ctx context.Context, path string) error {
			formatted = path
			return nil
		})).
		ToFile(context.Background(), out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, result.Code, string(data))
	assert.Equal(t, out, formatted)
	assert.Equal(t, "rest.ts", result.Path)
}

func TestAssemble(t *testing.T) {
	routes := &typescript.Routes{Stubs: "class A {}\n\n", Accessors: "\tget A() {}\n"}

	got := Assemble("//INCLUDE\n//INCLUDE\n", "export type X = 1;", routes)
	assert.Equal(t, "\tget A() {}\n\n\tget A() {}\n\nexport type X = 1;\n\nclass A {}\n\n", got)
}

func TestApplyConfigDefaults(t *testing.T) {
	in := &Config{}
	cfg := applyConfigDefaults(in)

	assert.Equal(t, template.Default(), cfg.Template)
	assert.Equal(t, typescript.DefaultControllerNamespace, cfg.ControllerNamespace)
	assert.Equal(t, DefaultOutFile, cfg.OutFile)
	assert.NotNil(t, cfg.Logger)
	assert.Empty(t, in.OutFile, "input must not be modified")
}
