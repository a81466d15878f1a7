package openapi

import (
	"errors"
	"fmt"
)

// Derivation errors.
var (
	// ErrUnsupportedType is returned when a type descriptor has no schema
	// mapping rule. The unconstrained "any" type is rejected on purpose:
	// the analyzer never emits an open-ended schema silently.
	ErrUnsupportedType = errors.New("openapi: unsupported type")

	// ErrUnsupportedContentType is returned when a declared content type
	// has no schema derivation rule.
	ErrUnsupportedContentType = errors.New("openapi: unsupported content type")

	// ErrMissingFields is returned when an object descriptor carries no
	// field list and required fields cannot be determined.
	ErrMissingFields = errors.New("openapi: object type carries no field information")
)

// Analysis errors.
var (
	// ErrMissingResponses is returned when a route leaf declares no
	// response descriptors.
	ErrMissingResponses = errors.New("openapi: route declares no responses")

	// ErrUnknownParamSource is returned when an input property carries an
	// unrecognized parameter delegate kind.
	ErrUnknownParamSource = errors.New("openapi: unknown parameter source")
)

// AnalysisError is the umbrella error for a failed analysis run, carrying
// the path of the offending route and the originating cause. Any failure
// aborts the whole run; partial documents are never returned.
type AnalysisError struct {
	Path string
	Err  error
}

func (e *AnalysisError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("openapi: analysis failed: %v", e.Err)
	}
	return fmt.Sprintf("openapi: analysis of %s failed: %v", e.Path, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// wrapAnalysis wraps err into an AnalysisError unless it already is one, in
// which case it propagates unchanged.
func wrapAnalysis(path string, err error) error {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return err
	}
	return &AnalysisError{Path: path, Err: err}
}
