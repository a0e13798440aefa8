package typescript

import (
	"regexp"
	"strings"

	"github.com/broady/tsrest/tsrestgen/ir"
)

// DefaultVerb is used when a route declares no HTTP method.
const DefaultVerb = "post"

// UnknownResponse is the response type of endpoints without a resolvable
// response class.
const UnknownResponse = "unknown"

var placeholderRe = regexp.MustCompile(`(?i)\{([a-z0-9_]+)\}`)

// Param is one parameter of a generated call stub.
type Param struct {
	Name     string
	Type     string
	Optional bool
}

// String renders the parameter as it appears in a signature.
func (p Param) String() string {
	if p.Optional {
		return p.Name + "?: " + p.Type
	}
	return p.Name + ": " + p.Type
}

// Endpoint is the client signature derived from one controller method.
type Endpoint struct {
	// Method is the controller method name, reused as the stub name.
	Method string

	// Title is the doc comment: the shape title or the method name.
	Title string

	// Verb is the lower-cased request primitive to call.
	Verb string

	// Path is the template literal body with ${name} interpolations.
	Path string

	// Params in emission order: placeholders, request, fields.
	Params []Param

	HasRequest bool

	// Response is the resolved response type.
	Response string
}

// Controller is the client class generated for one controller.
type Controller struct {
	// Alias is the generated class and accessor name.
	Alias string

	// Class is the qualified controller class name.
	Class string

	Endpoints []Endpoint
}

// Routes is the compiled client surface.
type Routes struct {
	Controllers []Controller

	// Stubs holds the controller class declarations.
	Stubs string

	// Accessors holds the aggregator getters, one per controller.
	Accessors string
}

// CompileRoutes builds one client class per controller in model order.
// Methods without both a route and a shape tag are skipped.
func (c *Compiler) CompileRoutes() *Routes {
	routes := &Routes{}
	var stubs, accessors strings.Builder

	for _, rc := range c.model.Classes() {
		if !ir.HasTag[*ir.ControllerTag](rc.Tags) {
			continue
		}
		ctrl := c.compileController(rc)
		routes.Controllers = append(routes.Controllers, ctrl)
		writeController(&stubs, ctrl)
		writeAccessor(&accessors, ctrl.Alias)
	}

	routes.Stubs = stubs.String()
	routes.Accessors = accessors.String()
	return routes
}

func (c *Compiler) compileController(rc *ir.ClassDescriptor) Controller {
	ctrl := Controller{
		Alias: controllerAlias(rc.Name, c.cfg.ControllerNamespace),
		Class: rc.Name,
	}

	prefix := ""
	if classRoute, ok := ir.FindTag[*ir.RouteTag](rc.Tags); ok {
		prefix = classRoute.Path
	}

	for _, m := range rc.Methods {
		if !m.IsPublic() {
			continue
		}
		route, hasRoute := ir.FindTag[*ir.RouteTag](m.Tags)
		shape, hasShape := ir.FindTag[*ir.ShapeTag](m.Tags)
		if !hasRoute || !hasShape {
			if hasRoute != hasShape {
				c.warn(WarnSkippedEndpoint, rc.Name, "method "+m.Name+" needs both route and shape tags")
			}
			continue
		}
		ctrl.Endpoints = append(ctrl.Endpoints, c.compileEndpoint(rc, m.Name, prefix, route, shape))
	}
	return ctrl
}

func (c *Compiler) compileEndpoint(rc *ir.ClassDescriptor, method, prefix string, route *ir.RouteTag, shape *ir.ShapeTag) Endpoint {
	fullPath := prefix + route.Path
	ep := Endpoint{
		Method:   method,
		Title:    shape.Title,
		Verb:     DefaultVerb,
		Path:     strings.ReplaceAll(fullPath, "{", "${"),
		Response: c.responseType(rc, shape.Response),
	}
	if ep.Title == "" {
		ep.Title = method
	}
	if len(route.Methods) > 0 {
		ep.Verb = strings.ToLower(route.Methods[0])
	}

	matches := placeholderRe.FindAllStringSubmatch(fullPath, -1)
	if len(matches) == 0 && strings.Contains(fullPath, "{") {
		c.warn(WarnNoPathParameters, rc.Name, "path "+fullPath+" of "+method+" has no recognizable placeholders")
	}
	for _, match := range matches {
		ep.Params = append(ep.Params, Param{Name: match[1], Type: IdentifierType})
	}

	if shape.Request != "" {
		if c.model.Exists(shape.Request) {
			ep.HasRequest = true
			ep.Params = append(ep.Params, Param{Name: "request", Type: c.mapper.Slug(shape.Request, InterfacePrefix)})
		} else {
			c.warn(WarnUnknownShape, rc.Name, "request class "+shape.Request+" of "+method+" is not in the model")
		}
	}

	ep.Params = append(ep.Params, Param{Name: "fields", Type: FieldGroupEnum + "[]", Optional: true})
	return ep
}

// responseType resolves the response of an endpoint: builtin names map
// through the builtin table, known classes to their slug, anything else
// to UnknownResponse.
func (c *Compiler) responseType(rc *ir.ClassDescriptor, response string) string {
	if response == "" {
		return UnknownResponse
	}
	if mapped, ok := builtinTypes[response]; ok {
		return mapped
	}
	if mapped, ok := slugAliases[response]; ok {
		return mapped
	}
	if !c.model.Exists(response) {
		c.warn(WarnUnknownShape, rc.Name, "response class "+response+" is not in the model")
		return UnknownResponse
	}
	return c.mapper.Slug(response, InterfacePrefix)
}

func writeController(b *strings.Builder, ctrl Controller) {
	b.WriteString("class " + ctrl.Alias + " {\n")
	b.WriteString("\tprivate api: RestAPI;\n")
	b.WriteString("\tconstructor(api: RestAPI) {\n")
	b.WriteString("\t\tthis.api = api;\n")
	b.WriteString("\t}\n")
	for _, ep := range ctrl.Endpoints {
		writeEndpoint(b, ep)
	}
	b.WriteString("}\n\n")
}

func writeEndpoint(b *strings.Builder, ep Endpoint) {
	params := make([]string, len(ep.Params))
	for i, p := range ep.Params {
		params[i] = p.String()
	}
	payload := "{}"
	if ep.HasRequest {
		payload = "request"
	}

	b.WriteString("\n\t/** " + ep.Title + " */\n\t")
	b.WriteString(ep.Method + " = (" + strings.Join(params, ", ") + "): Promise<" + ep.Response + "> => ")
	b.WriteString("this.api." + ep.Verb + "(`" + ep.Path + "`, " + payload + ", fields);\n")
}

// writeAccessor emits the memoized aggregator getter: the first access
// constructs the controller client and caches it under its alias.
func writeAccessor(b *strings.Builder, alias string) {
	b.WriteString("\n\t/** Get " + alias + " API */\n")
	b.WriteString("\tget " + alias + "(): " + alias + " {\n")
	b.WriteString("\treturn (this.instances['" + alias + "'] as " + alias + ") ?? (this.instances['" + alias + "'] = new " + alias + "(this));\n")
	b.WriteString("\t}\n")
}
