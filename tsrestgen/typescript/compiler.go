// Package typescript compiles a metadata model into TypeScript declarations
// and REST client stubs.
//
// A Compiler owns one Registry for the duration of a generation run.
// Registrars call the Register* methods in the order definitions should
// appear; RegisterGroups and CompileRoutes run last.
package typescript

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/broady/tsrest/tsrestgen/ir"
)

// Names of the declarations every run pre-registers or synthesizes.
const (
	DateTimeType     = "TDateTime"
	DateTimeZoneType = "TDateTimeZone"
	IdentifierType   = "TIdentifier"
	FieldGroupEnum   = "EFieldGroup"

	// DefaultControllerNamespace is stripped from controller class names.
	DefaultControllerNamespace = `App\Controller\`
)

// Warning codes reported by the compiler.
const (
	WarnUnresolvedType   = "unresolved_type"
	WarnSkippedEndpoint  = "skipped_endpoint"
	WarnNoPathParameters = "no_path_parameters"
	WarnUnknownShape     = "unknown_shape_class"
)

// CompilerConfig configures a Compiler.
type CompilerConfig struct {
	// Logger receives debug output. Defaults to a no-op logger.
	Logger *zap.Logger

	// ControllerNamespace is stripped from controller class names to
	// form their aliases. Defaults to DefaultControllerNamespace.
	ControllerNamespace string
}

// Compiler is the registration surface handed to registrars.
type Compiler struct {
	model    *ir.Model
	registry *Registry
	mapper   *Mapper
	groups   *GroupCollector
	logger   *zap.Logger
	cfg      CompilerConfig
	warnings []ir.Warning
}

// NewCompiler returns a Compiler with the date and identifier aliases
// already registered.
func NewCompiler(model *ir.Model, cfg CompilerConfig) *Compiler {
	if model == nil {
		model = ir.NewModel()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.ControllerNamespace == "" {
		cfg.ControllerNamespace = DefaultControllerNamespace
	}

	c := &Compiler{
		model:    model,
		registry: NewRegistry(),
		mapper:   NewMapper(model),
		groups:   NewGroupCollector(),
		logger:   cfg.Logger,
		cfg:      cfg,
	}

	// A fresh registry cannot hold duplicates.
	_ = c.RegisterType(DateTimeType, "string")
	_ = c.RegisterType(DateTimeZoneType, "string")
	_ = c.RegisterType(IdentifierType, "string | number")
	return c
}

// Model returns the metadata model.
func (c *Compiler) Model() *ir.Model { return c.model }

// Registry returns the definition registry.
func (c *Compiler) Registry() *Registry { return c.registry }

// Mapper returns the type mapper.
func (c *Compiler) Mapper() *Mapper { return c.mapper }

// Groups returns the group labels seen so far, in first-seen order.
func (c *Compiler) Groups() []string { return c.groups.Labels() }

// Warnings returns the non-fatal issues recorded so far.
func (c *Compiler) Warnings() []ir.Warning { return c.warnings }

// Code serializes the registered definitions.
func (c *Compiler) Code() string { return c.registry.Code() }

// RegisterRaw registers a verbatim definition.
func (c *Compiler) RegisterRaw(name, definition string) error {
	if err := c.registry.Register(name, definition); err != nil {
		return err
	}
	c.logger.Debug("registered definition", zap.String("name", name))
	return nil
}

// RegisterInterface registers the interface of an ordinary class, or the
// enum of an enum class, and records the group labels the class uses.
func (c *Compiler) RegisterInterface(class string) error {
	rc := c.model.FindClass(class)
	if rc == nil {
		return errors.WithHint(
			errors.Newf("invalid class: %s", class),
			"the class must be present in the metadata snapshot",
		)
	}

	if rc.IsEnum() {
		return c.RegisterArrayEnum(c.mapper.Slug(rc.Name, EnumPrefix), enumCaseMembers(rc))
	}

	if err := c.RegisterRaw(c.mapper.Slug(rc.Name, InterfacePrefix), c.InterfaceDefinition(rc)); err != nil {
		return err
	}
	c.groups.CollectClass(rc)
	return nil
}

// RegisterInterfaces registers every class under the given namespace in
// model order.
func (c *Compiler) RegisterInterfaces(namespace string) error {
	for _, rc := range c.model.InNamespace(namespace) {
		if err := c.RegisterInterface(rc.Name); err != nil {
			return errors.Wrapf(err, "register namespace %s", namespace)
		}
	}
	return nil
}

func (c *Compiler) warn(code, typeName, message string) {
	c.warnings = append(c.warnings, ir.Warning{Code: code, Message: message, TypeName: typeName})
	c.logger.Debug(message, zap.String("code", code), zap.String("type", typeName))
}
