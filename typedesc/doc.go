// Package typedesc provides an explicit, reflection-free description of the
// value types an API exchanges. A Type is a tagged union over primitives,
// sequences, sets, maps, enumerations and composite objects; objects carry an
// explicit field list with required/optional/defaulted markers.
//
// Descriptors are built with the constructor helpers (String, Int64, ListOf,
// ObjectOf, ...) rather than by inspecting live Go values, so the shape of a
// payload is always stated, never inferred. The openapi package consumes
// descriptors to derive JSON Schema structures.
//
// Descriptors are treated as immutable once built. Helpers that change a
// descriptor (Optional, field markers) return copies.
package typedesc
