package openapi

import (
	"github.com/specdrift/specdrift/routes"
	"github.com/specdrift/specdrift/typedesc"
)

// EndpointBuilder provides a fluent API for attaching the analyzer's
// well-known attributes to a route leaf.
//
//	openapi.Describe(api.Handle("/entities", http.MethodPost)).
//	    Input(func() *openapi.Input {
//	        return &openapi.Input{Body: entity, BodyRequired: true}
//	    }).
//	    Response(http.StatusCreated, entity).
//	    Response(http.StatusConflict, nil)
type EndpointBuilder struct {
	route     *routes.Route
	responses []ResponseSpec
}

// Describe starts describing the given route.
func Describe(rt *routes.Route) *EndpointBuilder {
	return &EndpointBuilder{route: rt}
}

// Input attaches the operation's input-shape provider.
func (b *EndpointBuilder) Input(p InputProvider) *EndpointBuilder {
	b.route.SetAttr(AttrInput, p)
	return b
}

// InputShape attaches a fixed input shape, for operations whose input does
// not depend on analysis-time state.
func (b *EndpointBuilder) InputShape(in *Input) *EndpointBuilder {
	return b.Input(func() *Input { return in })
}

// Response declares a response with the given status and body descriptor.
// See ResponseSpec.Body for nil and no-content semantics.
func (b *EndpointBuilder) Response(status int, body *typedesc.Type) *EndpointBuilder {
	return b.Respond(ResponseSpec{Status: status, Body: body})
}

// Respond declares a fully specified response descriptor.
func (b *EndpointBuilder) Respond(spec ResponseSpec) *EndpointBuilder {
	b.responses = append(b.responses, spec)
	b.route.SetAttr(AttrResponses, b.responses)
	return b
}
