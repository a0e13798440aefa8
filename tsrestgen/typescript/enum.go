package typescript

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/broady/tsrest/tsrestgen/ir"
)

// EnumMember is one key/value pair of an enum definition.
// A numeric Key emits the bare Value as a positional member.
type EnumMember struct {
	Key   string
	Value any
}

// ObjectEntry is one key/value pair of a const object definition.
type ObjectEntry struct {
	Key   string
	Value string
}

// RegisterType registers `export type name = typ;`.
func (c *Compiler) RegisterType(name, typ string) error {
	return c.RegisterRaw(name, "export type "+name+" = "+typ+";")
}

// RegisterTypeOf registers a union type of JSON literals.
func (c *Compiler) RegisterTypeOf(name string, values ...any) error {
	literals := make([]string, len(values))
	for i, v := range values {
		literals[i] = jsonLiteral(v)
	}
	return c.RegisterRaw(name, "export type "+name+" = "+strings.Join(literals, " | ")+";")
}

// RegisterArrayEnum registers an enum from an ordered member list.
func (c *Compiler) RegisterArrayEnum(name string, members []EnumMember) error {
	return c.RegisterRaw(name, EnumDefinition(name, members))
}

// RegisterObject registers a typed const object. Keys are JSON-quoted and
// values single-quoted.
func (c *Compiler) RegisterObject(name, typ string, entries []ObjectEntry) error {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = jsonLiteral(e.Key) + ": '" + e.Value + "'"
	}
	return c.RegisterRaw(name, "export const "+name+": "+typ+" = { "+strings.Join(parts, ", ")+" };")
}

// EnumDefinition renders `export enum name { ... };`.
func EnumDefinition(name string, members []EnumMember) string {
	parts := make([]string, 0, len(members))
	for _, m := range members {
		if isNumeric(m.Key) {
			parts = append(parts, fmt.Sprint(m.Value))
			continue
		}
		key := m.Key
		if needsQuoting(key) {
			key = strconv.Quote(key)
		}
		parts = append(parts, key+" = "+enumValue(m.Value))
	}
	return "export enum " + name + " { " + strings.Join(parts, ", ") + " };"
}

// enumCaseMembers lists the cases of an enum class as members.
func enumCaseMembers(rc *ir.ClassDescriptor) []EnumMember {
	members := make([]EnumMember, len(rc.Cases))
	for i, ec := range rc.Cases {
		members[i] = EnumMember{Key: ec.Name, Value: ec.Value}
	}
	return members
}

// enumValue prints numeric values bare and everything else as JSON.
func enumValue(v any) string {
	switch val := v.(type) {
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		if isNumeric(val) {
			return val
		}
	}
	return jsonLiteral(v)
}

var numericRe = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// isNumeric reports whether s is a decimal number literal.
func isNumeric(s string) bool {
	return numericRe.MatchString(s)
}

func jsonLiteral(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "null"
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
