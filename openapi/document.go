package openapi

import "strings"

// Schema type names per the OpenAPI 3.0 data type vocabulary.
//
// See: https://spec.openapis.org/oas/v3.0.3#data-types
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeObject  = "object"
	TypeArray   = "array"
)

// Parameter locations.
//
// See: https://spec.openapis.org/oas/v3.0.3#parameter-object
const (
	InPath   = "path"
	InQuery  = "query"
	InHeader = "header"
)

// Schema is the recursive structural description of a value's shape,
// following the OpenAPI 3.0 Schema Object subset the analyzer produces.
//
// Invariants: Required, when present, is a sorted set drawn from the names
// in Properties; Items is present exactly for array schemas; Enum is present
// exactly for enumerated string schemas. Title and Default are derived,
// informational values and are not compared by Match.
//
// See: https://spec.openapis.org/oas/v3.0.3#schema-object
type Schema struct {
	Title                string
	Type                 string
	Format               string
	Deprecated           bool
	Nullable             bool
	Default              any
	UniqueItems          bool
	Required             []string
	Properties           []*Property
	AdditionalProperties *Schema
	Items                *Schema
	Enum                 []string
}

// Property is one named member of an object schema. Properties are ordered
// by name for determinism.
type Property struct {
	Name   string
	Schema *Schema
}

// Parameter describes a single operation parameter. Parameters are unique
// by (Name, In) within an operation.
//
// See: https://spec.openapis.org/oas/v3.0.3#parameter-object
type Parameter struct {
	Name        string  `json:"name"`
	In          string  `json:"in"`
	Description string  `json:"description,omitempty"`
	Required    bool    `json:"required,omitempty"`
	Deprecated  bool    `json:"deprecated,omitempty"`
	Schema      *Schema `json:"schema,omitempty"`
}

// Header describes a single response header. On the wire the name is the
// key of the containing headers map.
//
// See: https://spec.openapis.org/oas/v3.0.3#header-object
type Header struct {
	Name       string
	Required   bool
	Deprecated bool
	Schema     *Schema
}

// MediaType pairs a content type with the schema of its payload. On the
// wire the content type is the key of the containing content map.
//
// See: https://spec.openapis.org/oas/v3.0.3#media-type-object
type MediaType struct {
	ContentType string
	Schema      *Schema
}

// RequestBody describes a single request body.
//
// See: https://spec.openapis.org/oas/v3.0.3#request-body-object
type RequestBody struct {
	Content  []*MediaType
	Required bool
}

// Response describes one response of an operation, keyed by status code on
// the wire. Content and Headers are nil, not empty, when absent.
//
// See: https://spec.openapis.org/oas/v3.0.3#response-object
type Response struct {
	Status      string
	Description string
	Content     []*MediaType
	Headers     []*Header
}

// Operation describes a single API operation on a path.
//
// See: https://spec.openapis.org/oas/v3.0.3#operation-object
type Operation struct {
	Method      string
	Deprecated  bool
	Parameters  []*Parameter
	RequestBody *RequestBody
	Responses   []*Response
}

// Path holds the operations declared on one route pattern, one Operation
// per HTTP method.
type Path struct {
	Pattern    string
	Operations []*Operation
}

// Document is the full collection of paths an API exposes. It serves both
// for the hand-authored specification (via ParseDocument) and for the
// code-derived description (via Analyzer.Analyze).
//
// See: https://spec.openapis.org/oas/v3.0.3#openapi-object
type Document struct {
	Paths []*Path
}

// Operation returns the operation with the given method (case-insensitive),
// or nil.
func (p *Path) Operation(method string) *Operation {
	for _, op := range p.Operations {
		if strings.EqualFold(op.Method, method) {
			return op
		}
	}
	return nil
}

// Path returns the path with the given pattern, or nil.
func (d *Document) Path(pattern string) *Path {
	for _, p := range d.Paths {
		if p.Pattern == pattern {
			return p
		}
	}
	return nil
}
