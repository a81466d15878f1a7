package routes

import "errors"

// SkipSubtree can be returned by a WalkFunc to avoid descending into the
// current route's children.
var SkipSubtree = errors.New("routes: skip this subtree")

// WalkFunc is called for each route in the tree during Walk. The ancestors
// slice holds the route's chain of parents, outermost first, excluding the
// router's synthetic root.
type WalkFunc func(route *Route, ancestors []*Route) error

// Router holds a tree of routes under a synthetic root node.
type Router struct {
	root *Route
}

// NewRouter returns an empty router.
func NewRouter() *Router {
	return &Router{root: &Route{}}
}

// PathPrefix creates a structural grouping node directly under the root.
func (r *Router) PathPrefix(pattern string) *Route {
	return r.root.PathPrefix(pattern)
}

// Handle creates a route leaf directly under the root for the given path
// pattern and HTTP method.
func (r *Router) Handle(pattern, method string) *Route {
	return r.root.Handle(pattern, method)
}

// Walk traverses the tree depth-first, calling fn for every route. A
// WalkFunc returning SkipSubtree prunes that route's children; any other
// non-nil error aborts the walk and is returned unchanged.
func (r *Router) Walk(fn WalkFunc) error {
	return walk(r.root, fn, nil)
}

func walk(rt *Route, fn WalkFunc, ancestors []*Route) error {
	for _, child := range rt.children {
		err := fn(child, ancestors)
		if err == SkipSubtree {
			continue
		}
		if err != nil {
			return err
		}
		if err := walk(child, fn, append(ancestors, child)); err != nil {
			return err
		}
	}
	return nil
}

// Route is one node in the routing tree. Nodes created with PathPrefix are
// purely structural; nodes created with Handle are leaves carrying an HTTP
// method.
type Route struct {
	pattern  string
	method   string
	parent   *Route
	children []*Route
	attrs    map[string]any
}

// PathPrefix creates a structural child grouping node. The pattern should
// start with "/" and is joined with the ancestry chain to form full paths.
func (rt *Route) PathPrefix(pattern string) *Route {
	return rt.newChild(pattern, "")
}

// Handle creates a leaf child for the given path pattern and HTTP method.
// An empty pattern registers the method on the parent's own path.
func (rt *Route) Handle(pattern, method string) *Route {
	return rt.newChild(pattern, method)
}

func (rt *Route) newChild(pattern, method string) *Route {
	child := &Route{
		pattern: pattern,
		method:  method,
		parent:  rt,
	}
	rt.children = append(rt.children, child)
	return child
}

// Pattern returns the path pattern segment this route contributes.
func (rt *Route) Pattern() string {
	return rt.pattern
}

// Method returns the HTTP method of a leaf route, empty for structural
// nodes.
func (rt *Route) Method() string {
	return rt.method
}

// Children returns the route's child nodes. A route with no children is a
// leaf.
func (rt *Route) Children() []*Route {
	return rt.children
}

// FullPath joins the patterns of the route's ancestry chain, outermost
// first, yielding the complete path pattern of the endpoint.
func (rt *Route) FullPath() string {
	if rt.parent == nil {
		return rt.pattern
	}
	return rt.parent.FullPath() + rt.pattern
}

// SetAttr stores a metadata attribute on the route, returning the route for
// chaining. Later writes to the same key overwrite earlier ones.
func (rt *Route) SetAttr(key string, value any) *Route {
	if rt.attrs == nil {
		rt.attrs = make(map[string]any)
	}
	rt.attrs[key] = value
	return rt
}

// Attr reads a metadata attribute from the route.
func (rt *Route) Attr(key string) (any, bool) {
	v, ok := rt.attrs[key]
	return v, ok
}
