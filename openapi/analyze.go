package openapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/specdrift/specdrift/routes"
	"github.com/specdrift/specdrift/typedesc"
)

// Well-known route attribute keys the analyzer reads.
const (
	// AttrInput stores an InputProvider describing the operation's
	// parameters and request body.
	AttrInput = "openapi.input"

	// AttrResponses stores the []ResponseSpec declared for the operation.
	// Every analyzed leaf must carry a non-empty list.
	AttrResponses = "openapi.responses"
)

// ParamSource is the delegate kind backing an input property.
type ParamSource int

const (
	// ParamNone marks a property with no parameter delegate; the analyzer
	// skips it.
	ParamNone ParamSource = iota
	ParamPath
	ParamQuery
	ParamHeader
)

func (s ParamSource) String() string {
	switch s {
	case ParamPath:
		return InPath
	case ParamQuery:
		return InQuery
	case ParamHeader:
		return InHeader
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// InputParam is one publicly visible property of an input shape, backed by
// a path, query or header parameter delegate. Name is the wire name, which
// may differ from the originating property's name.
type InputParam struct {
	Name        string
	Source      ParamSource
	Required    bool
	Deprecated  bool
	Description string
	Default     any
	Type        *typedesc.Type
}

// Input is one instance of a route's declared input shape.
type Input struct {
	// Deprecated marks the whole operation deprecated.
	Deprecated bool

	// ContentType overrides the analyzer's default request content type.
	ContentType string

	// Body is the request body descriptor. Nil or typedesc.NoContent
	// means the operation has no request body.
	Body *typedesc.Type

	// BodyRequired is the explicit body-required flag.
	BodyRequired bool

	Params []InputParam
}

// InputProvider is invoked during analysis to obtain one instance of the
// declared input shape.
type InputProvider func() *Input

// ResponseHeader declares one header of a response descriptor. A nil Type
// derives as a plain string.
type ResponseHeader struct {
	Name       string
	Required   bool
	Deprecated bool
	Type       *typedesc.Type
}

// ResponseSpec is one declared response descriptor of a route.
type ResponseSpec struct {
	Status      int
	Description string

	// ContentType overrides the analyzer's default response content type.
	ContentType string

	// Body is the response body descriptor. typedesc.NoContent forces an
	// empty response on any status. Nil leaves the body unspecified: 4xx
	// and 5xx statuses then fall back to the analyzer's default error
	// type, success statuses produce no content.
	Body *typedesc.Type

	Headers []ResponseHeader
}

// Config configures an Analyzer.
type Config struct {
	// BasePaths lists the API mount points to analyze. A leaf is included
	// only when its full path equals one of these or is a strict
	// "/"-separated sub-path, which keeps unrelated routes (static
	// assets, health checks) out of the produced Document.
	BasePaths []string

	// DefaultContentType applies to bodies without an explicit content
	// type (default "application/json").
	DefaultContentType string

	// DefaultResponseHeaders are prepended to every response's declared
	// headers.
	DefaultResponseHeaders []ResponseHeader

	// DefaultErrorType derives the body of 4xx/5xx responses that declare
	// none.
	DefaultErrorType *typedesc.Type
}

// Analyzer derives a Document from a route tree. An analyzer accumulates
// per-run state and must not be used from concurrent Analyze calls; use one
// instance per call or synchronize externally.
type Analyzer struct {
	cfg   Config
	paths map[string]*Path
	order []string
}

// NewAnalyzer returns an analyzer for the given configuration.
func NewAnalyzer(cfg Config) *Analyzer {
	if cfg.DefaultContentType == "" {
		cfg.DefaultContentType = "application/json"
	}
	return &Analyzer{cfg: cfg}
}

// Analyze walks the route tree depth-first and builds a Document with one
// Path per distinct pattern and one Operation per declared method, in
// first-seen order. Internal tree nodes are purely structural and skipped.
//
// Any failure aborts the run with an *AnalysisError naming the offending
// path; an already-typed *AnalysisError propagates unchanged. A partial
// Document is never returned.
func (a *Analyzer) Analyze(r *routes.Router) (*Document, error) {
	a.paths = make(map[string]*Path)
	a.order = a.order[:0]

	err := r.Walk(func(rt *routes.Route, _ []*routes.Route) error {
		if len(rt.Children()) > 0 {
			return nil
		}
		full := rt.FullPath()
		if !a.included(full) {
			return nil
		}

		op, err := a.analyzeLeaf(rt, full)
		if err != nil {
			return wrapAnalysis(full, err)
		}

		p, ok := a.paths[full]
		if !ok {
			p = &Path{Pattern: full}
			a.paths[full] = p
			a.order = append(a.order, full)
		}
		p.Operations = append(p.Operations, op)
		return nil
	})
	if err != nil {
		return nil, wrapAnalysis("", err)
	}

	doc := &Document{Paths: make([]*Path, 0, len(a.order))}
	for _, pattern := range a.order {
		doc.Paths = append(doc.Paths, a.paths[pattern])
	}
	return doc, nil
}

func (a *Analyzer) included(full string) bool {
	for _, base := range a.cfg.BasePaths {
		if full == base || strings.HasPrefix(full, base+"/") {
			return true
		}
	}
	return false
}

func (a *Analyzer) analyzeLeaf(rt *routes.Route, full string) (*Operation, error) {
	op := &Operation{Method: strings.ToLower(rt.Method())}

	if v, ok := rt.Attr(AttrInput); ok {
		provider, ok := v.(InputProvider)
		if !ok {
			return nil, fmt.Errorf("openapi: attribute %q is not an InputProvider", AttrInput)
		}
		in := provider()
		op.Deprecated = in.Deprecated

		params, err := a.analyzeParams(in, op.Method)
		if err != nil {
			return nil, err
		}
		op.Parameters = params

		body, err := a.analyzeRequestBody(in, op.Method)
		if err != nil {
			return nil, err
		}
		op.RequestBody = body
	}

	specs, _ := attrResponses(rt)
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingResponses, full)
	}
	for _, spec := range specs {
		resp, err := a.analyzeResponse(spec, op.Method)
		if err != nil {
			return nil, err
		}
		op.Responses = append(op.Responses, resp)
	}

	return op, nil
}

func attrResponses(rt *routes.Route) ([]ResponseSpec, bool) {
	v, ok := rt.Attr(AttrResponses)
	if !ok {
		return nil, false
	}
	specs, ok := v.([]ResponseSpec)
	return specs, ok
}

func (a *Analyzer) analyzeParams(in *Input, method string) ([]*Parameter, error) {
	var params []*Parameter
	for _, p := range in.Params {
		switch p.Source {
		case ParamNone:
			// Property without a recognized delegate.
			continue
		case ParamPath, ParamQuery, ParamHeader:
		default:
			return nil, fmt.Errorf("%w: %s on property %q", ErrUnknownParamSource, p.Source, p.Name)
		}

		pt := p.Type
		if pt == nil {
			pt = typedesc.String()
		}
		ctx := DeriveContext{Method: method}
		// Defaults are only meaningful on parameters the caller may omit.
		if !p.Required {
			ctx.Default = p.Default
		}
		schema, err := DeriveSchema(pt, ctx)
		if err != nil {
			return nil, err
		}
		params = append(params, &Parameter{
			Name:        p.Name,
			In:          p.Source.String(),
			Description: p.Description,
			Required:    p.Required,
			Deprecated:  p.Deprecated || in.Deprecated,
			Schema:      schema,
		})
	}
	return params, nil
}

func (a *Analyzer) analyzeRequestBody(in *Input, method string) (*RequestBody, error) {
	if in.Body == nil || in.Body == typedesc.NoContent {
		return nil, nil
	}
	contentType := in.ContentType
	if contentType == "" {
		contentType = a.cfg.DefaultContentType
	}
	schema, err := DeriveBodySchema(contentType, in.Body, DeriveContext{
		Method:     method,
		Deprecated: in.Deprecated,
	})
	if err != nil {
		return nil, err
	}
	return &RequestBody{
		Required: in.BodyRequired,
		Content:  []*MediaType{{ContentType: contentType, Schema: schema}},
	}, nil
}

func (a *Analyzer) analyzeResponse(spec ResponseSpec, method string) (*Response, error) {
	description := spec.Description
	if description == "" {
		description = http.StatusText(spec.Status)
	}
	resp := &Response{
		Status:      strconv.Itoa(spec.Status),
		Description: description,
	}

	body := spec.Body
	if body == nil && spec.Status >= http.StatusBadRequest {
		body = a.cfg.DefaultErrorType
	}
	if body != nil && body != typedesc.NoContent {
		contentType := spec.ContentType
		if contentType == "" {
			contentType = a.cfg.DefaultContentType
		}
		schema, err := DeriveBodySchema(contentType, body, DeriveContext{Method: method})
		if err != nil {
			return nil, err
		}
		resp.Content = []*MediaType{{ContentType: contentType, Schema: schema}}
	}

	// Configured defaults come first; an empty combined list stays nil to
	// distinguish "no headers" from "not yet computed".
	combined := append(append([]ResponseHeader(nil), a.cfg.DefaultResponseHeaders...), spec.Headers...)
	for _, h := range combined {
		ht := h.Type
		if ht == nil {
			ht = typedesc.String()
		}
		schema, err := DeriveSchema(ht, DeriveContext{Method: method})
		if err != nil {
			return nil, err
		}
		resp.Headers = append(resp.Headers, &Header{
			Name:       h.Name,
			Required:   h.Required,
			Deprecated: h.Deprecated,
			Schema:     schema,
		})
	}

	return resp, nil
}
