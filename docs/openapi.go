// Package docs carries the OpenAPI document served at /api-docs.json.
package docs

import _ "embed"

//go:embed openapi.json
var OpenAPISpec []byte

// Spec returns the raw OpenAPI JSON document.
func Spec() []byte {
	return OpenAPISpec
}
