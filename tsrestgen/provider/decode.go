package provider

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/schema"
	"go.uber.org/zap"

	"github.com/broady/tsrest/tsrestgen/ir"
)

// Wire format of a snapshot. Tag arguments are name -> values lists, the
// shape host attributes are written in by the adapter.

type snapshot struct {
	Classes []classJSON `json:"classes" validate:"dive"`
}

type classJSON struct {
	Name       string         `json:"name" validate:"required"`
	Kind       string         `json:"kind" validate:"omitempty,oneof=class enum"`
	Tags       []tagJSON      `json:"tags" validate:"dive"`
	Properties []propertyJSON `json:"properties" validate:"dive"`
	Methods    []methodJSON   `json:"methods" validate:"dive"`
	Cases      []caseJSON     `json:"cases" validate:"dive"`
}

type propertyJSON struct {
	Name       string    `json:"name" validate:"required"`
	Visibility string    `json:"visibility" validate:"omitempty,oneof=public protected private"`
	Type       *typeJSON `json:"type"`
	HasDefault bool      `json:"hasDefault"`
	Tags       []tagJSON `json:"tags" validate:"dive"`
}

type methodJSON struct {
	Name       string    `json:"name" validate:"required"`
	Visibility string    `json:"visibility" validate:"omitempty,oneof=public protected private"`
	ReturnType *typeJSON `json:"returnType"`
	Tags       []tagJSON `json:"tags" validate:"dive"`
}

type caseJSON struct {
	Name  string      `json:"name" validate:"required"`
	Value json.Number `json:"value"`
	Text  *string     `json:"-"`
}

// UnmarshalJSON accepts string and numeric case values.
func (c *caseJSON) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name  string          `json:"name"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Name = raw.Name
	if len(raw.Value) == 0 || string(raw.Value) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw.Value, &s); err == nil {
		c.Text = &s
		return nil
	}
	return json.Unmarshal(raw.Value, &c.Value)
}

type typeJSON struct {
	Kind     string     `json:"kind" validate:"required,oneof=primitive class enum union"`
	Name     string     `json:"name" validate:"required_unless=Kind union"`
	Nullable bool       `json:"nullable"`
	Types    []typeJSON `json:"types" validate:"required_if=Kind union,dive"`
}

type tagJSON struct {
	Name string              `json:"name" validate:"required"`
	Args map[string][]string `json:"args"`
}

type converter struct {
	logger *zap.Logger
}

var tagDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.ZeroEmpty(true)
	return d
}()

// tagFactories maps snapshot tag names to their typed representation.
// Host attribute names are matched by their short name.
var tagFactories = map[string]func() ir.Tag{
	ir.TagTypeOverride: func() ir.Tag { return &ir.TypeOverrideTag{} },
	ir.TagHidden:       func() ir.Tag { return &ir.HiddenTag{} },
	ir.TagRequired:     func() ir.Tag { return &ir.RequiredTag{} },
	ir.TagChoice:       func() ir.Tag { return &ir.ChoiceTag{} },
	ir.TagEnumChoice:   func() ir.Tag { return &ir.EnumChoiceTag{} },
	ir.TagGroups:       func() ir.Tag { return &ir.GroupsTag{} },
	ir.TagRoute:        func() ir.Tag { return &ir.RouteTag{} },
	ir.TagShape:        func() ir.Tag { return &ir.ShapeTag{} },
	ir.TagController:   func() ir.Tag { return &ir.ControllerTag{} },
}

func (cv *converter) class(c *classJSON) (*ir.ClassDescriptor, error) {
	rc := &ir.ClassDescriptor{Name: c.Name}
	if c.Kind == "enum" {
		rc.ClassKind = ir.ClassKindEnum
	}

	var err error
	if rc.Tags, err = cv.tags(c.Name, c.Tags); err != nil {
		return nil, err
	}

	for _, p := range c.Properties {
		prop := ir.PropertyDescriptor{
			Name:       p.Name,
			Visibility: visibility(p.Visibility),
			Type:       descriptor(p.Type),
			HasDefault: p.HasDefault,
		}
		if prop.Tags, err = cv.tags(c.Name+"::$"+p.Name, p.Tags); err != nil {
			return nil, err
		}
		rc.Properties = append(rc.Properties, prop)
	}

	for _, m := range c.Methods {
		method := ir.MethodDescriptor{
			Name:       m.Name,
			Visibility: visibility(m.Visibility),
			ReturnType: descriptor(m.ReturnType),
		}
		if method.Tags, err = cv.tags(c.Name+"::"+m.Name+"()", m.Tags); err != nil {
			return nil, err
		}
		rc.Methods = append(rc.Methods, method)
	}

	for _, ec := range c.Cases {
		value, err := caseValue(ec)
		if err != nil {
			return nil, errors.Wrapf(err, "case %s::%s", c.Name, ec.Name)
		}
		rc.Cases = append(rc.Cases, ir.EnumCase{Name: ec.Name, Value: value})
	}
	return rc, nil
}

func (cv *converter) tags(owner string, raw []tagJSON) ([]ir.Tag, error) {
	var tags []ir.Tag
	for _, t := range raw {
		name := ir.ShortName(t.Name)
		factory, ok := tagFactories[name]
		if !ok {
			cv.logger.Debug("ignoring tag", zap.String("owner", owner), zap.String("tag", t.Name))
			continue
		}
		tag := factory()
		if err := tagDecoder.Decode(tag, t.Args); err != nil {
			return nil, errors.Wrapf(err, "decode %s tag on %s", name, owner)
		}
		if err := validate.Struct(tag); err != nil {
			return nil, errors.Wrapf(err, "invalid %s tag on %s", name, owner)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func descriptor(t *typeJSON) ir.TypeDescriptor {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case "class":
		return &ir.ClassRefDescriptor{Class: t.Name, Nullable: t.Nullable}
	case "enum":
		return &ir.EnumRefDescriptor{Class: t.Name, Nullable: t.Nullable}
	case "union":
		branches := make([]ir.TypeDescriptor, len(t.Types))
		for i := range t.Types {
			branches[i] = descriptor(&t.Types[i])
		}
		return ir.Union(branches...)
	default:
		return &ir.PrimitiveDescriptor{Name: t.Name, Nullable: t.Nullable}
	}
}

func visibility(v string) ir.Visibility {
	switch strings.ToLower(v) {
	case "protected":
		return ir.VisibilityProtected
	case "private":
		return ir.VisibilityPrivate
	default:
		return ir.VisibilityPublic
	}
}

// caseValue converts a case value to string, int64 or float64. Cases of
// enums without backing values use their name.
func caseValue(c caseJSON) (any, error) {
	if c.Text != nil {
		return *c.Text, nil
	}
	if c.Value == "" {
		return c.Name, nil
	}
	if i, err := c.Value.Int64(); err == nil {
		return i, nil
	}
	return c.Value.Float64()
}
