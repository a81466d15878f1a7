package openapi

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ParseDocument reads an API specification document from YAML or JSON text.
// Only the structural subset the analyzer produces is parsed; unknown
// top-level sections (info, servers, components metadata) are ignored and
// $ref indirections are not resolved.
func ParseDocument(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("openapi: empty specification document")
	}

	doc := &Document{}
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, doc); err != nil {
			return nil, fmt.Errorf("openapi: parse specification: %w", err)
		}
		return doc, nil
	}

	// YAML is bridged through the JSON codec so both formats share one
	// wire definition.
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("openapi: parse specification: %w", err)
	}
	bridged, err := json.Marshal(normalizeYAML(raw))
	if err != nil {
		return nil, fmt.Errorf("openapi: parse specification: %w", err)
	}
	if err := json.Unmarshal(bridged, doc); err != nil {
		return nil, fmt.Errorf("openapi: parse specification: %w", err)
	}
	return doc, nil
}

// normalizeYAML converts yaml.v3 decoding artifacts into JSON-compatible
// values, stringifying non-string map keys.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeYAML(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeYAML(val)
		}
		return out
	default:
		return v
	}
}

// templateVarRegexp matches placeholders in the form {{name}}, with
// optional surrounding whitespace inside the braces.
var templateVarRegexp = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.-]+)\s*\}\}`)

// ExpandTemplate substitutes {{name}} placeholders in a raw specification
// template. Placeholders without a matching variable are left untouched so
// a missing substitution shows up verbatim in the parsed document rather
// than vanishing.
func ExpandTemplate(raw string, vars map[string]string) string {
	return templateVarRegexp.ReplaceAllStringFunc(raw, func(match string) string {
		name := strings.TrimSpace(match[2 : len(match)-2])
		if v, ok := vars[name]; ok {
			return v
		}
		return match
	})
}
