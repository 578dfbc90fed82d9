package mux

import (
	"maps"
	"slices"
)

// Route stores a single route definition: method, compiled template,
// handler, middleware names and declared parameter types.
//
// Routes are created by a Builder and owned by the Table returned from
// Build; they are read-only from then on.
type Route struct {
	method     string
	regexp     *routeRegexp
	handler    Handler
	middleware []string
	paramTypes map[string]string
}

// Method returns the HTTP method or MethodCLI the route is registered under.
func (r *Route) Method() string {
	return r.method
}

// PathTemplate returns the path template with prefixes applied and capture
// names stripped, e.g. "/api/posts/:integer".
func (r *Route) PathTemplate() string {
	return r.regexp.template
}

// RawTemplate returns the path template as registered, capture names
// included, e.g. "/api/posts/:integer#id".
func (r *Route) RawTemplate() string {
	return r.regexp.raw
}

// PathRegexp returns the compiled strict pattern.
func (r *Route) PathRegexp() string {
	return r.regexp.regexp.String()
}

// VarNames returns the capture names in order.
func (r *Route) VarNames() []string {
	return slices.Clone(r.regexp.varsN)
}

// Middleware returns the middleware names in execution order: enclosing
// group middleware outer to inner, then the route's own.
func (r *Route) Middleware() []string {
	return slices.Clone(r.middleware)
}

// Handler returns the route handler.
func (r *Route) Handler() Handler {
	return r.handler
}

// ParamTypes returns the declared parameter types.
func (r *Route) ParamTypes() map[string]string {
	return maps.Clone(r.paramTypes)
}

// match checks the route against path. An exact template match wins before
// the pattern is tried.
func (r *Route) match(path string) ([]string, bool) {
	if r.regexp.template == path {
		if len(r.regexp.varsN) == 0 {
			return nil, true
		}
		// A literal placeholder in the request captures nothing.
		return make([]string, len(r.regexp.varsN)), true
	}
	return r.regexp.match(path)
}

// clone returns a deep copy of r. The compiled template is immutable and
// shared.
func (r *Route) clone() *Route {
	return &Route{
		method:     r.method,
		regexp:     r.regexp,
		handler:    r.handler,
		middleware: slices.Clone(r.middleware),
		paramTypes: maps.Clone(r.paramTypes),
	}
}
