package openapi

import (
	"fmt"
	"sort"
	"strings"
)

// MatchOptions configures Match.
type MatchOptions struct {
	// Strict reports parameters and response headers present in the
	// actual document but absent from the expected one. Off by default:
	// code may expose parameters the specification omits.
	Strict bool
}

// Match performs a structural, order-independent diff between an expected
// Document (the authored specification) and an actual one (derived from
// code), returning one human-readable discrepancy per mismatch. It never
// fails: structurally impossible comparisons are reported as discrepancies.
// An empty result means the documents agree; matching a document against
// itself always yields an empty result.
func Match(expected, actual *Document, opts MatchOptions) []string {
	var d []string
	for _, ep := range expected.Paths {
		ap := actual.Path(ep.Pattern)
		if ap == nil {
			d = append(d, fmt.Sprintf("missing path %q", ep.Pattern))
			continue
		}
		d = append(d, matchPath(ep, ap, opts)...)
	}
	return d
}

func matchPath(expected, actual *Path, opts MatchOptions) []string {
	var d []string
	for _, eop := range expected.Operations {
		aop := actual.Operation(eop.Method)
		if aop == nil {
			d = append(d, fmt.Sprintf("path %q: missing operation %q", expected.Pattern, strings.ToLower(eop.Method)))
			continue
		}
		ctx := fmt.Sprintf("path %q %s", expected.Pattern, strings.ToLower(eop.Method))
		d = append(d, matchOperation(ctx, eop, aop, opts)...)
	}
	return d
}

func matchOperation(ctx string, expected, actual *Operation, opts MatchOptions) []string {
	var d []string

	if expected.Deprecated != actual.Deprecated {
		d = append(d, boolMismatch(ctx, "deprecated", expected.Deprecated, actual.Deprecated))
	}

	d = append(d, matchParameters(ctx, expected.Parameters, actual.Parameters, opts)...)
	d = append(d, matchRequestBody(ctx, expected.RequestBody, actual.RequestBody)...)
	d = append(d, matchResponses(ctx, expected.Responses, actual.Responses, opts)...)

	return d
}

// Parameters are compared by (name, location), ignoring declaration order.
func matchParameters(ctx string, expected, actual []*Parameter, opts MatchOptions) []string {
	var d []string

	actualByKey := make(map[[2]string]*Parameter, len(actual))
	for _, p := range actual {
		actualByKey[[2]string{p.Name, p.In}] = p
	}
	expectedKeys := make(map[[2]string]bool, len(expected))

	for _, ep := range expected {
		key := [2]string{ep.Name, ep.In}
		expectedKeys[key] = true
		ap, ok := actualByKey[key]
		if !ok {
			d = append(d, fmt.Sprintf("%s: missing parameter %q in %s", ctx, ep.Name, ep.In))
			continue
		}
		pctx := fmt.Sprintf("%s: parameter %q in %s", ctx, ep.Name, ep.In)
		if ep.Required != ap.Required {
			d = append(d, boolMismatch(pctx, "required", ep.Required, ap.Required))
		}
		if ep.Deprecated != ap.Deprecated {
			d = append(d, boolMismatch(pctx, "deprecated", ep.Deprecated, ap.Deprecated))
		}
		d = append(d, matchSchema(pctx+": schema", ep.Schema, ap.Schema)...)
	}

	if opts.Strict {
		for _, ap := range actual {
			if !expectedKeys[[2]string{ap.Name, ap.In}] {
				d = append(d, fmt.Sprintf("%s: unexpected parameter %q in %s", ctx, ap.Name, ap.In))
			}
		}
	}

	return d
}

func matchRequestBody(ctx string, expected, actual *RequestBody) []string {
	switch {
	case expected == nil && actual == nil:
		return nil
	case actual == nil:
		return []string{ctx + ": missing request body"}
	case expected == nil:
		return []string{ctx + ": unexpected request body"}
	}

	var d []string
	if expected.Required != actual.Required {
		d = append(d, boolMismatch(ctx+": request body", "required", expected.Required, actual.Required))
	}
	d = append(d, matchContent(ctx+": request body", expected.Content, actual.Content)...)
	return d
}

// Media types are compared by content-type key.
func matchContent(ctx string, expected, actual []*MediaType) []string {
	var d []string

	actualByType := make(map[string]*MediaType, len(actual))
	for _, mt := range actual {
		actualByType[mt.ContentType] = mt
	}
	expectedTypes := make(map[string]bool, len(expected))

	for _, emt := range expected {
		expectedTypes[emt.ContentType] = true
		amt, ok := actualByType[emt.ContentType]
		if !ok {
			d = append(d, fmt.Sprintf("%s: missing content type %q", ctx, emt.ContentType))
			continue
		}
		cctx := fmt.Sprintf("%s: content %q", ctx, emt.ContentType)
		d = append(d, matchSchema(cctx+": schema", emt.Schema, amt.Schema)...)
	}
	for _, amt := range actual {
		if !expectedTypes[amt.ContentType] {
			d = append(d, fmt.Sprintf("%s: unexpected content type %q", ctx, amt.ContentType))
		}
	}

	return d
}

// Responses are compared by status code; both missing and extra statuses
// are discrepancies.
func matchResponses(ctx string, expected, actual []*Response, opts MatchOptions) []string {
	var d []string

	actualByStatus := make(map[string]*Response, len(actual))
	for _, r := range actual {
		actualByStatus[r.Status] = r
	}
	expectedStatuses := make(map[string]bool, len(expected))

	for _, er := range expected {
		expectedStatuses[er.Status] = true
		ar, ok := actualByStatus[er.Status]
		if !ok {
			d = append(d, fmt.Sprintf("%s: missing response %s", ctx, er.Status))
			continue
		}
		rctx := fmt.Sprintf("%s: response %s", ctx, er.Status)
		if er.Description != ar.Description {
			d = append(d, fmt.Sprintf("%s: description mismatch: expected %q, actual %q", rctx, er.Description, ar.Description))
		}
		d = append(d, matchContent(rctx, er.Content, ar.Content)...)
		d = append(d, matchHeaders(rctx, er.Headers, ar.Headers, opts)...)
	}
	for _, ar := range actual {
		if !expectedStatuses[ar.Status] {
			d = append(d, fmt.Sprintf("%s: unexpected response %s", ctx, ar.Status))
		}
	}

	return d
}

func matchHeaders(ctx string, expected, actual []*Header, opts MatchOptions) []string {
	var d []string

	actualByName := make(map[string]*Header, len(actual))
	for _, h := range actual {
		actualByName[h.Name] = h
	}
	expectedNames := make(map[string]bool, len(expected))

	for _, eh := range expected {
		expectedNames[eh.Name] = true
		ah, ok := actualByName[eh.Name]
		if !ok {
			d = append(d, fmt.Sprintf("%s: missing header %q", ctx, eh.Name))
			continue
		}
		hctx := fmt.Sprintf("%s: header %q", ctx, eh.Name)
		if eh.Required != ah.Required {
			d = append(d, boolMismatch(hctx, "required", eh.Required, ah.Required))
		}
		if eh.Deprecated != ah.Deprecated {
			d = append(d, boolMismatch(hctx, "deprecated", eh.Deprecated, ah.Deprecated))
		}
		d = append(d, matchSchema(hctx+": schema", eh.Schema, ah.Schema)...)
	}

	if opts.Strict {
		for _, ah := range actual {
			if !expectedNames[ah.Name] {
				d = append(d, fmt.Sprintf("%s: unexpected header %q", ctx, ah.Name))
			}
		}
	}

	return d
}

// matchSchema recurses field by field. Title, default and description are
// derived, informational values and are not compared.
func matchSchema(ctx string, expected, actual *Schema) []string {
	switch {
	case expected == nil && actual == nil:
		return nil
	case actual == nil:
		return []string{ctx + ": missing schema"}
	case expected == nil:
		return []string{ctx + ": unexpected schema"}
	}

	if expected.Type != actual.Type {
		// A kind mismatch (e.g. object vs array) makes the nested shapes
		// incomparable; report the one mismatch and stop descending.
		return []string{fmt.Sprintf("%s: type mismatch: expected %q, actual %q", ctx, expected.Type, actual.Type)}
	}

	var d []string
	if expected.Format != actual.Format {
		d = append(d, fmt.Sprintf("%s: format mismatch: expected %q, actual %q", ctx, expected.Format, actual.Format))
	}
	if expected.Nullable != actual.Nullable {
		d = append(d, boolMismatch(ctx, "nullable", expected.Nullable, actual.Nullable))
	}
	if expected.Deprecated != actual.Deprecated {
		d = append(d, boolMismatch(ctx, "deprecated", expected.Deprecated, actual.Deprecated))
	}
	if expected.UniqueItems != actual.UniqueItems {
		d = append(d, boolMismatch(ctx, "uniqueItems", expected.UniqueItems, actual.UniqueItems))
	}

	d = append(d, matchRequiredSets(ctx, expected.Required, actual.Required)...)
	d = append(d, matchProperties(ctx, expected.Properties, actual.Properties)...)

	switch {
	case expected.Items != nil && actual.Items == nil:
		d = append(d, ctx+": missing items schema")
	case expected.Items == nil && actual.Items != nil:
		d = append(d, ctx+": unexpected items schema")
	case expected.Items != nil:
		d = append(d, matchSchema(ctx+": items", expected.Items, actual.Items)...)
	}

	switch {
	case expected.AdditionalProperties != nil && actual.AdditionalProperties == nil:
		d = append(d, ctx+": missing additionalProperties schema")
	case expected.AdditionalProperties == nil && actual.AdditionalProperties != nil:
		d = append(d, ctx+": unexpected additionalProperties schema")
	case expected.AdditionalProperties != nil:
		d = append(d, matchSchema(ctx+": additionalProperties", expected.AdditionalProperties, actual.AdditionalProperties)...)
	}

	if !equalStringSets(expected.Enum, actual.Enum) {
		d = append(d, fmt.Sprintf("%s: enum mismatch: expected %v, actual %v", ctx, sortedSet(expected.Enum), sortedSet(actual.Enum)))
	}

	return d
}

// Required lists are compared as sets.
func matchRequiredSets(ctx string, expected, actual []string) []string {
	var d []string
	actualSet := toSet(actual)
	expectedSet := toSet(expected)
	for _, name := range expected {
		if !actualSet[name] {
			d = append(d, fmt.Sprintf("%s: property %q expected to be required", ctx, name))
		}
	}
	for _, name := range actual {
		if !expectedSet[name] {
			d = append(d, fmt.Sprintf("%s: property %q not expected to be required", ctx, name))
		}
	}
	return d
}

// Properties are compared by name, order-independent; both missing and
// extra properties are discrepancies.
func matchProperties(ctx string, expected, actual []*Property) []string {
	var d []string

	actualByName := make(map[string]*Property, len(actual))
	for _, p := range actual {
		actualByName[p.Name] = p
	}
	expectedNames := make(map[string]bool, len(expected))

	for _, ep := range expected {
		expectedNames[ep.Name] = true
		ap, ok := actualByName[ep.Name]
		if !ok {
			d = append(d, fmt.Sprintf("%s: missing property %q", ctx, ep.Name))
			continue
		}
		d = append(d, matchSchema(fmt.Sprintf("%s: property %q", ctx, ep.Name), ep.Schema, ap.Schema)...)
	}
	for _, ap := range actual {
		if !expectedNames[ap.Name] {
			d = append(d, fmt.Sprintf("%s: unexpected property %q", ctx, ap.Name))
		}
	}

	return d
}

func boolMismatch(ctx, field string, expected, actual bool) string {
	return fmt.Sprintf("%s: %s mismatch: expected %t, actual %t", ctx, field, expected, actual)
}

func equalStringSets(a, b []string) bool {
	if len(toSet(a)) != len(toSet(b)) {
		return false
	}
	bs := toSet(b)
	for _, v := range a {
		if !bs[v] {
			return false
		}
	}
	return true
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// sortedSet is kept for deterministic rendering of set-valued mismatches.
func sortedSet(values []string) []string {
	out := append([]string(nil), values...)
	sort.Strings(out)
	return out
}
