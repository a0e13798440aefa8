// Package template holds the TypeScript prelude every generated client
// starts with: the RestAPI request primitive and its shared types.
package template

import (
	_ "embed"
	"strings"
)

// Marker is replaced with the aggregator accessors of all controllers.
const Marker = "//INCLUDE"

//go:embed rest-template.ts
var restTemplate string

// Default returns the embedded prelude.
func Default() string {
	return restTemplate
}

// HasMarker reports whether a prelude contains the accessor marker.
func HasMarker(prelude string) bool {
	return strings.Contains(prelude, Marker)
}
