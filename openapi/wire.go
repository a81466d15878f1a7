package openapi

import (
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

// The in-memory model keeps ordered slices for determinism while the wire
// form uses the maps OpenAPI consumers expect (paths.<pattern>.<method>,
// properties and content keyed by name). The codec below converts between
// the two: maps are produced with sorted keys on marshal and converted back
// to name-sorted slices on unmarshal.

type schemaWire struct {
	Title                string             `json:"title,omitempty"`
	Type                 string             `json:"type,omitempty"`
	Format               string             `json:"format,omitempty"`
	Deprecated           bool               `json:"deprecated,omitempty"`
	Nullable             bool               `json:"nullable,omitempty"`
	Default              any                `json:"default,omitempty"`
	UniqueItems          bool               `json:"uniqueItems,omitempty"`
	Required             []string           `json:"required,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	Enum                 []string           `json:"enum,omitempty"`
}

// MarshalJSON encodes the schema in OpenAPI 3.0 wire form, with properties
// as a name-keyed map.
func (s *Schema) MarshalJSON() ([]byte, error) {
	w := schemaWire{
		Title:                s.Title,
		Type:                 s.Type,
		Format:               s.Format,
		Deprecated:           s.Deprecated,
		Nullable:             s.Nullable,
		Default:              s.Default,
		UniqueItems:          s.UniqueItems,
		Required:             s.Required,
		AdditionalProperties: s.AdditionalProperties,
		Items:                s.Items,
		Enum:                 s.Enum,
	}
	if len(s.Properties) > 0 {
		w.Properties = make(map[string]*Schema, len(s.Properties))
		for _, p := range s.Properties {
			w.Properties[p.Name] = p.Schema
		}
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the OpenAPI wire form, restoring name-sorted
// property and required lists.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var w schemaWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = Schema{
		Title:                w.Title,
		Type:                 w.Type,
		Format:               w.Format,
		Deprecated:           w.Deprecated,
		Nullable:             w.Nullable,
		Default:              w.Default,
		UniqueItems:          w.UniqueItems,
		Required:             w.Required,
		AdditionalProperties: w.AdditionalProperties,
		Items:                w.Items,
		Enum:                 w.Enum,
	}
	sort.Strings(s.Required)
	if len(w.Properties) > 0 {
		s.Properties = make([]*Property, 0, len(w.Properties))
		for _, name := range sortedKeys(w.Properties) {
			s.Properties = append(s.Properties, &Property{Name: name, Schema: w.Properties[name]})
		}
	}
	return nil
}

type mediaTypeWire struct {
	Schema *Schema `json:"schema,omitempty"`
}

type requestBodyWire struct {
	Required bool                     `json:"required,omitempty"`
	Content  map[string]mediaTypeWire `json:"content,omitempty"`
}

func (rb *RequestBody) MarshalJSON() ([]byte, error) {
	w := requestBodyWire{Required: rb.Required}
	if len(rb.Content) > 0 {
		w.Content = contentToWire(rb.Content)
	}
	return json.Marshal(w)
}

func (rb *RequestBody) UnmarshalJSON(data []byte) error {
	var w requestBodyWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*rb = RequestBody{
		Required: w.Required,
		Content:  contentFromWire(w.Content),
	}
	return nil
}

type headerWire struct {
	Required   bool    `json:"required,omitempty"`
	Deprecated bool    `json:"deprecated,omitempty"`
	Schema     *Schema `json:"schema,omitempty"`
}

type responseWire struct {
	Description string                   `json:"description"`
	Headers     map[string]headerWire    `json:"headers,omitempty"`
	Content     map[string]mediaTypeWire `json:"content,omitempty"`
}

// MarshalJSON encodes the response body; the status code is the key of the
// containing responses map and is written by the Operation codec.
func (r *Response) MarshalJSON() ([]byte, error) {
	w := responseWire{Description: r.Description}
	if len(r.Content) > 0 {
		w.Content = contentToWire(r.Content)
	}
	if len(r.Headers) > 0 {
		w.Headers = make(map[string]headerWire, len(r.Headers))
		for _, h := range r.Headers {
			w.Headers[h.Name] = headerWire{
				Required:   h.Required,
				Deprecated: h.Deprecated,
				Schema:     h.Schema,
			}
		}
	}
	return json.Marshal(w)
}

func (r *Response) UnmarshalJSON(data []byte) error {
	var w responseWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = Response{
		Description: w.Description,
		Content:     contentFromWire(w.Content),
	}
	if len(w.Headers) > 0 {
		r.Headers = make([]*Header, 0, len(w.Headers))
		for _, name := range sortedKeys(w.Headers) {
			h := w.Headers[name]
			r.Headers = append(r.Headers, &Header{
				Name:       name,
				Required:   h.Required,
				Deprecated: h.Deprecated,
				Schema:     h.Schema,
			})
		}
	}
	return nil
}

type operationWire struct {
	Deprecated  bool                 `json:"deprecated,omitempty"`
	Parameters  []*Parameter         `json:"parameters,omitempty"`
	RequestBody *RequestBody         `json:"requestBody,omitempty"`
	Responses   map[string]*Response `json:"responses,omitempty"`
}

// MarshalJSON encodes the operation body; the method is the key of the
// containing path item and is written by the Path codec.
func (op *Operation) MarshalJSON() ([]byte, error) {
	w := operationWire{
		Deprecated:  op.Deprecated,
		Parameters:  op.Parameters,
		RequestBody: op.RequestBody,
	}
	if len(op.Responses) > 0 {
		w.Responses = make(map[string]*Response, len(op.Responses))
		for _, r := range op.Responses {
			w.Responses[r.Status] = r
		}
	}
	return json.Marshal(w)
}

func (op *Operation) UnmarshalJSON(data []byte) error {
	var w operationWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*op = Operation{
		Deprecated:  w.Deprecated,
		Parameters:  w.Parameters,
		RequestBody: w.RequestBody,
	}
	if len(w.Responses) > 0 {
		op.Responses = make([]*Response, 0, len(w.Responses))
		for _, status := range sortedKeys(w.Responses) {
			r := w.Responses[status]
			r.Status = status
			op.Responses = append(op.Responses, r)
		}
	}
	return nil
}

// MarshalJSON encodes the path item as a method-keyed map of operations.
func (p *Path) MarshalJSON() ([]byte, error) {
	m := make(map[string]*Operation, len(p.Operations))
	for _, op := range p.Operations {
		m[strings.ToLower(op.Method)] = op
	}
	return json.Marshal(m)
}

func (p *Path) UnmarshalJSON(data []byte) error {
	var m map[string]*Operation
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*p = Path{}
	for _, method := range sortedKeys(m) {
		op := m[method]
		op.Method = strings.ToLower(method)
		p.Operations = append(p.Operations, op)
	}
	return nil
}

type documentWire struct {
	OpenAPI string           `json:"openapi,omitempty"`
	Paths   map[string]*Path `json:"paths,omitempty"`
}

// MarshalJSON encodes the document with its paths as a pattern-keyed map.
func (d *Document) MarshalJSON() ([]byte, error) {
	w := documentWire{OpenAPI: "3.0.3"}
	if len(d.Paths) > 0 {
		w.Paths = make(map[string]*Path, len(d.Paths))
		for _, p := range d.Paths {
			w.Paths[p.Pattern] = p
		}
	}
	return json.Marshal(w)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var w documentWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*d = Document{}
	for _, pattern := range sortedKeys(w.Paths) {
		p := w.Paths[pattern]
		p.Pattern = pattern
		d.Paths = append(d.Paths, p)
	}
	return nil
}

// MarshalYAML renders the document through the JSON codec so both
// serializations share one wire definition.
func (d *Document) MarshalYAML() (any, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func contentToWire(content []*MediaType) map[string]mediaTypeWire {
	m := make(map[string]mediaTypeWire, len(content))
	for _, mt := range content {
		m[mt.ContentType] = mediaTypeWire{Schema: mt.Schema}
	}
	return m
}

func contentFromWire(m map[string]mediaTypeWire) []*MediaType {
	if len(m) == 0 {
		return nil
	}
	content := make([]*MediaType, 0, len(m))
	for _, ct := range sortedKeys(m) {
		content = append(content, &MediaType{ContentType: ct, Schema: m[ct].Schema})
	}
	return content
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
