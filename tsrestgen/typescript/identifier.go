package typescript

import (
	"strings"
	"unicode"
)

// Words that cannot name a TypeScript class but are still legal PHP
// class names. Keywords PHP itself reserves never reach the alias.
var reservedWords = map[string]bool{
	"any":      true,
	"boolean":  true,
	"debugger": true,
	"delete":   true,
	"export":   true,
	"import":   true,
	"in":       true,
	"let":      true,
	"never":    true,
	"number":   true,
	"package":  true,
	"super":    true,
	"symbol":   true,
	"this":     true,
	"typeof":   true,
	"unknown":  true,
	"with":     true,
}

// escapeReservedWord escapes a reserved word by appending an underscore.
func escapeReservedWord(name string) string {
	if reservedWords[name] {
		return name + "_"
	}
	return name
}

// needsQuoting reports whether an enum member name must be written as a
// string literal. Enum member names may be reserved words.
func needsQuoting(name string) bool {
	if name == "" {
		return true
	}
	if unicode.IsDigit(rune(name[0])) {
		return true
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '$' {
			return true
		}
	}
	return false
}

// controllerAlias derives the client class name of a controller: the
// namespace prefix is stripped and remaining separators are dropped.
func controllerAlias(class, namespace string) string {
	alias := strings.TrimPrefix(strings.TrimPrefix(class, `\`), strings.TrimPrefix(namespace, `\`))
	alias = strings.ReplaceAll(alias, `\`, "")
	return escapeReservedWord(alias)
}
