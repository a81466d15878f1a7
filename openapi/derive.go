package openapi

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/specdrift/specdrift/typedesc"
)

// DeriveContext carries the request context a schema is derived under. The
// HTTP method selects the required-field policy for partial-update objects;
// Deprecated and Default annotate the resulting top-level schema only and do
// not propagate into nested schemas.
type DeriveContext struct {
	Method     string
	Deprecated bool
	Default    any
}

// primitiveTypeMap maps primitive descriptor kinds to OpenAPI type and
// format.
var primitiveTypeMap = map[typedesc.Kind][2]string{
	typedesc.KindBool:     {TypeBoolean, ""},
	typedesc.KindInt32:    {TypeInteger, "int32"},
	typedesc.KindInt64:    {TypeInteger, "int64"},
	typedesc.KindFloat32:  {TypeNumber, "float"},
	typedesc.KindFloat64:  {TypeNumber, "double"},
	typedesc.KindChar:     {TypeString, ""},
	typedesc.KindString:   {TypeString, ""},
	typedesc.KindBytes:    {TypeString, "binary"},
	typedesc.KindDate:     {TypeString, "date"},
	typedesc.KindDateTime: {TypeString, "date-time"},
	typedesc.KindTime:     {TypeString, "time"},
}

// DeriveSchema maps a type descriptor to its Schema under the given
// context. It is a pure function: deriving the same descriptor twice yields
// structurally equal schemas.
//
// Descriptors with no mapping rule, including the unconstrained any type,
// fail with ErrUnsupportedType.
func DeriveSchema(t *typedesc.Type, ctx DeriveContext) (*Schema, error) {
	s, err := deriveType(t, ctx.Method)
	if err != nil {
		return nil, err
	}
	if ctx.Deprecated {
		s.Deprecated = true
	}
	if ctx.Default != nil {
		s.Default = ctx.Default
	}
	return s, nil
}

// DeriveBodySchema derives the schema of a payload, branching on the
// declared content type first: plain text forces a bare string schema,
// octet-stream a binary string schema, and JSON-like content defers to the
// full derivation. Any other content type fails with
// ErrUnsupportedContentType.
func DeriveBodySchema(contentType string, t *typedesc.Type, ctx DeriveContext) (*Schema, error) {
	switch {
	case strings.HasPrefix(contentType, "text/plain"):
		return &Schema{Type: TypeString, Deprecated: ctx.Deprecated}, nil
	case contentType == "application/octet-stream":
		return &Schema{Type: TypeString, Format: "binary", Deprecated: ctx.Deprecated}, nil
	case isJSONContent(contentType):
		return DeriveSchema(t, ctx)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedContentType, contentType)
	}
}

func isJSONContent(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	mediaType = strings.TrimSpace(mediaType)
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func deriveType(t *typedesc.Type, method string) (*Schema, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type descriptor", ErrUnsupportedType)
	}

	if primitive, ok := primitiveTypeMap[t.Kind]; ok {
		return &Schema{Type: primitive[0], Format: primitive[1], Nullable: t.Nullable}, nil
	}

	switch t.Kind {
	case typedesc.KindList, typedesc.KindArray, typedesc.KindSet:
		items, err := deriveType(t.Elem, method)
		if err != nil {
			return nil, err
		}
		return &Schema{
			Title:       t.Title(),
			Type:        TypeArray,
			Items:       items,
			UniqueItems: t.Kind == typedesc.KindSet,
			Nullable:    t.Nullable,
		}, nil

	case typedesc.KindMap:
		s := &Schema{Title: t.Title(), Type: TypeObject, Nullable: t.Nullable}
		// An unconstrained value type yields a free-form object: the map
		// itself is a known shape even though its values are not.
		if t.Elem != nil && t.Elem.Kind != typedesc.KindAny {
			value, err := deriveType(t.Elem, method)
			if err != nil {
				return nil, err
			}
			s.AdditionalProperties = value
		}
		return s, nil

	case typedesc.KindEnum:
		return &Schema{
			Title:    t.Title(),
			Type:     TypeString,
			Enum:     append([]string(nil), t.EnumMembers...),
			Nullable: t.Nullable,
		}, nil

	case typedesc.KindObject:
		return deriveObject(t, method)
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
}

func deriveObject(t *typedesc.Type, method string) (*Schema, error) {
	if t.Fields == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingFields, t.Name)
	}

	fields := append([]typedesc.Field(nil), t.Fields...)
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })

	s := &Schema{Title: t.Name, Type: TypeObject, Nullable: t.Nullable}
	for _, f := range fields {
		fs, err := deriveType(f.Type, method)
		if err != nil {
			return nil, err
		}
		if f.Deprecated {
			fs.Deprecated = true
		}
		if f.Default != nil {
			fs.Default = f.Default
		}
		s.Properties = append(s.Properties, &Property{Name: f.Name, Schema: fs})
		if fieldRequired(t, f, method) {
			s.Required = append(s.Required, f.Name)
		}
	}
	// Fields are walked in sorted order, so Required is already sorted.
	return s, nil
}

// fieldRequired applies the required-field policy. Plain objects require
// every field without a default that must always be supplied. Partial-update
// objects switch on the method in force: a PATCH payload requires only
// fields explicitly marked required-in-patch, while any other method treats
// the shape as a full replacement and requires every patch-capable field.
func fieldRequired(t *typedesc.Type, f typedesc.Field, method string) bool {
	if t.Partial {
		if strings.EqualFold(method, http.MethodPatch) {
			return f.PatchRequired
		}
		return true
	}
	return !f.Optional && f.Default == nil
}
