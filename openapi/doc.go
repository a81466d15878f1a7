// Package openapi validates a hand-authored API specification against the
// API a service actually exposes.
//
// Two documents are built independently and reconciled: the Analyzer derives
// a Document from the service's route tree (package routes) and type
// descriptors (package typedesc), while ParseDocument reads the authored
// specification from YAML or JSON text. Match performs a structural diff
// between the two and returns every discrepancy as a human-readable string.
//
//	r := routes.NewRouter()
//	api := r.PathPrefix("/api/v1")
//	openapi.Describe(api.Handle("/entities", http.MethodGet)).
//	    Input(listInput).
//	    Response(http.StatusOK, entityPage)
//
//	analyzer := openapi.NewAnalyzer(openapi.Config{BasePaths: []string{"/api/v1"}})
//	actual, err := analyzer.Analyze(r)
//	expected, err := openapi.ParseDocument(specText)
//	for _, d := range openapi.Match(expected, actual, openapi.MatchOptions{}) {
//	    log.Println(d)
//	}
//
// The document model covers the OpenAPI 3.0 structural subset the analyzer
// produces: paths, operations, parameters, request bodies, responses and
// schemas following the type/format/items/properties/required/enum/
// additionalProperties vocabulary. Callbacks, oneOf/anyOf composition,
// links and security schemes are not modeled.
//
// See: https://spec.openapis.org/oas/v3.0.3
package openapi
