// Package routes models a service's routing configuration as a tree of
// route nodes. Internal nodes are structural groupings created with
// PathPrefix; nodes with no children are route leaves, each representing one
// concrete method+pattern endpoint.
//
//	r := routes.NewRouter()
//	api := r.PathPrefix("/api/v1")
//	api.Handle("/entities", http.MethodGet)
//	api.Handle("/entities/{entityCode}", http.MethodPut)
//
// Every route carries an attribute store for collaborator metadata (input
// shapes, response descriptors) keyed by well-known attribute keys, and the
// whole tree can be traversed depth-first with Walk.
//
// The tree is a description, not a dispatcher: it does not match or serve
// HTTP requests.
package routes
