// Package openapi loads OpenAPI 3 documents with kin-openapi and exposes them
// as a jsonschema.Root so request body schemas and their
// #/components/schemas references can drive array editors.
package openapi
