package typedesc

import "fmt"

// Kind discriminates the Type tagged union.
type Kind int

const (
	KindInvalid Kind = iota

	// KindAny is the fully unconstrained type. It is deliberately not
	// derivable into a schema; see the openapi package.
	KindAny

	KindBool
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindChar
	KindString
	KindBytes
	KindDate
	KindDateTime
	KindTime

	KindList
	KindArray
	KindSet
	KindMap
	KindEnum
	KindObject

	// KindNoContent marks a response or body slot that intentionally
	// carries no payload.
	KindNoContent
)

var kindNames = map[Kind]string{
	KindInvalid:   "invalid",
	KindAny:       "any",
	KindBool:      "bool",
	KindInt32:     "int32",
	KindInt64:     "int64",
	KindFloat32:   "float32",
	KindFloat64:   "float64",
	KindChar:      "char",
	KindString:    "string",
	KindBytes:     "bytes",
	KindDate:      "date",
	KindDateTime:  "date-time",
	KindTime:      "time",
	KindList:      "list",
	KindArray:     "array",
	KindSet:       "set",
	KindMap:       "map",
	KindEnum:      "enum",
	KindObject:    "object",
	KindNoContent: "no-content",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Type describes the shape of a single API value.
//
// The populated fields depend on Kind: Elem is set for lists, arrays, sets
// and maps (the map value type); EnumMembers for enums; Fields and Partial
// for objects; Name for objects, enums and maps. Nullable applies to any
// kind.
type Type struct {
	Kind        Kind
	Name        string
	Elem        *Type
	EnumMembers []string
	Fields      []Field
	Partial     bool
	Nullable    bool
}

// Field is one publicly visible member of an object type.
//
// A field is required when it is neither Optional nor defaulted. For
// partial-update objects (Partial on the owning Type), PatchRequired marks
// fields that stay required even in a sparse PATCH payload.
type Field struct {
	Name          string
	Type          *Type
	Optional      bool
	Default       any
	PatchRequired bool
	Deprecated    bool
}

// NoContent is the shared marker for "this slot intentionally has no body".
var NoContent = &Type{Kind: KindNoContent}

// --- primitive constructors ---

func Any() *Type      { return &Type{Kind: KindAny} }
func Bool() *Type     { return &Type{Kind: KindBool} }
func Int32() *Type    { return &Type{Kind: KindInt32} }
func Int64() *Type    { return &Type{Kind: KindInt64} }
func Float32() *Type  { return &Type{Kind: KindFloat32} }
func Float64() *Type  { return &Type{Kind: KindFloat64} }
func Char() *Type     { return &Type{Kind: KindChar} }
func String() *Type   { return &Type{Kind: KindString} }
func Bytes() *Type    { return &Type{Kind: KindBytes} }
func Date() *Type     { return &Type{Kind: KindDate} }
func DateTime() *Type { return &Type{Kind: KindDateTime} }
func Time() *Type     { return &Type{Kind: KindTime} }

// --- composite constructors ---

// ListOf describes an ordered sequence of elem values.
func ListOf(elem *Type) *Type {
	return &Type{Kind: KindList, Elem: elem}
}

// ArrayOf describes a native fixed-layout array of elem values. It derives
// the same schema shape as ListOf but a distinct title.
func ArrayOf(elem *Type) *Type {
	return &Type{Kind: KindArray, Elem: elem}
}

// SetOf describes an unordered collection of unique elem values.
func SetOf(elem *Type) *Type {
	return &Type{Kind: KindSet, Elem: elem}
}

// MapOf describes a string-keyed map with the given value type. The name is
// only surfaced when the value type is unconstrained (Any), in which case
// the map has no better derived title of its own.
func MapOf(name string, value *Type) *Type {
	return &Type{Kind: KindMap, Name: name, Elem: value}
}

// EnumOf describes an enumerated string type with the given member names,
// in declaration order.
func EnumOf(name string, members ...string) *Type {
	return &Type{Kind: KindEnum, Name: name, EnumMembers: members}
}

// ObjectOf describes a composite object with the given fields. The field
// list may be empty but is always present; an object descriptor built
// without ObjectOf (nil Fields) carries no structural information and is
// rejected during derivation.
func ObjectOf(name string, fields ...Field) *Type {
	if fields == nil {
		fields = []Field{}
	}
	return &Type{Kind: KindObject, Name: name, Fields: fields}
}

// PartialOf describes a partial-update variant of an object: a sparse patch
// shape whose required-field semantics depend on the HTTP method in force.
// Every field of a partial object is patch-capable.
func PartialOf(name string, fields ...Field) *Type {
	t := ObjectOf(name, fields...)
	t.Partial = true
	return t
}

// Optional returns a nullable copy of t.
func Optional(t *Type) *Type {
	c := *t
	c.Nullable = true
	return &c
}

// --- field constructors ---

// NewField declares a required field: no default, always supplied.
func NewField(name string, t *Type) Field {
	return Field{Name: name, Type: t}
}

// WithDefault returns a copy of f carrying a default value. Defaulted
// fields are never required.
func (f Field) WithDefault(v any) Field {
	f.Default = v
	f.Optional = true
	return f
}

// AsOptional returns a copy of f that may be omitted.
func (f Field) AsOptional() Field {
	f.Optional = true
	return f
}

// RequiredInPatch returns a copy of f that stays required even in a sparse
// PATCH payload of a partial-update object.
func (f Field) RequiredInPatch() Field {
	f.PatchRequired = true
	return f
}

// AsDeprecated returns a copy of f marked deprecated.
func (f Field) AsDeprecated() Field {
	f.Deprecated = true
	return f
}

var primitiveTitles = map[Kind]string{
	KindBool:     "Boolean",
	KindInt32:    "Int32",
	KindInt64:    "Int64",
	KindFloat32:  "Float32",
	KindFloat64:  "Float64",
	KindChar:     "Char",
	KindString:   "String",
	KindBytes:    "Bytes",
	KindDate:     "Date",
	KindDateTime: "DateTime",
	KindTime:     "Time",
}

// Title returns the deterministic derived name for t: the simple name for
// objects, "<Name>Enum" for enums, "<Elem>List"/"<Elem>Array"/"<Elem>Set"
// for sequences, and "<Value>Map" for maps (or the map's own name when the
// value type is unconstrained). Titles are informational, not contractual.
func (t *Type) Title() string {
	switch t.Kind {
	case KindList:
		return t.elemTitle() + "List"
	case KindArray:
		return t.elemTitle() + "Array"
	case KindSet:
		return t.elemTitle() + "Set"
	case KindMap:
		if t.Elem == nil || t.Elem.Kind == KindAny {
			return t.Name
		}
		return t.Elem.Title() + "Map"
	case KindEnum:
		return t.Name + "Enum"
	case KindObject:
		return t.Name
	default:
		return primitiveTitles[t.Kind]
	}
}

func (t *Type) elemTitle() string {
	if t.Elem == nil {
		return ""
	}
	return t.Elem.Title()
}

// String renders a compact human-readable form of the descriptor, used in
// error messages.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindList, KindArray, KindSet:
		return fmt.Sprintf("%s<%s>", t.Kind, t.Elem)
	case KindMap:
		return fmt.Sprintf("map<string, %s>", t.Elem)
	case KindEnum:
		return "enum " + t.Name
	case KindObject:
		if t.Partial {
			return "partial " + t.Name
		}
		return "object " + t.Name
	default:
		return t.Kind.String()
	}
}
