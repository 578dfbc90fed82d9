package mux

import (
	"errors"
	"net/http"
	"slices"
	"strings"
)

// allowedMethods lists the methods a Table accepts, in registration order
// for Any.
var allowedMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// isAllowedMethod reports whether method can be dispatched.
func isAllowedMethod(method string) bool {
	return method == MethodCLI || slices.Contains(allowedMethods, method)
}

// Table is the immutable route table produced by Builder.Build. It maps
// each method to its routes in insertion order; matching returns the first
// route that matches, not the most specific one.
//
// A Table is safe for concurrent use.
type Table struct {
	methods []string
	routes  map[string][]*Route
}

// newTable returns an empty table.
func newTable() *Table {
	return &Table{routes: make(map[string][]*Route)}
}

// add stores route under its method. A template already registered under
// that method is replaced in its original position.
func (t *Table) add(route *Route) {
	routes, ok := t.routes[route.method]
	if !ok {
		t.methods = append(t.methods, route.method)
	}

	for i, existing := range routes {
		if existing.regexp.template == route.regexp.template {
			routes[i] = route
			return
		}
	}
	t.routes[route.method] = append(routes, route)
}

// clone returns a deep copy of t.
func (t *Table) clone() *Table {
	c := &Table{
		methods: slices.Clone(t.methods),
		routes:  make(map[string][]*Route, len(t.routes)),
	}
	for method, routes := range t.routes {
		cloned := make([]*Route, len(routes))
		for i, r := range routes {
			cloned[i] = r.clone()
		}
		c.routes[method] = cloned
	}
	return c
}

// Methods returns the methods that have routes, in first-registration order.
func (t *Table) Methods() []string {
	return slices.Clone(t.methods)
}

// Routes returns the routes registered under method in insertion order.
func (t *Table) Routes(method string) []*Route {
	return slices.Clone(t.routes[method])
}

// Len returns the total number of routes.
func (t *Table) Len() int {
	n := 0
	for _, routes := range t.routes {
		n += len(routes)
	}
	return n
}

// Match finds the route for method and path. The query component of path
// is ignored.
//
// Routes are scanned in insertion order and the first exact or pattern match
// wins. When no route matches but some route matched the shape of the path
// with a value of the wrong placeholder type, a *BadRequestError is returned
// instead of ErrNotFound.
func (t *Table) Match(method, path string) (*RouteMatch, error) {
	return t.match(method, stripQuery(path))
}

// match is Match for a path that carries no query.
func (t *Table) match(method, path string) (*RouteMatch, error) {
	if !isAllowedMethod(method) {
		return nil, ErrMethodNotAllowed
	}

	var (
		shape       *Route
		shapeValues []string
	)
	for _, route := range t.routes[method] {
		if values, ok := route.match(path); ok {
			return newRouteMatch(route, values), nil
		}
		if shape == nil {
			if values, ok := route.regexp.shapeValues(path); ok {
				shape, shapeValues = route, values
			}
		}
	}

	if shape != nil {
		return nil, shapeError(shape, shapeValues)
	}

	return nil, ErrNotFound
}

// shapeError explains why the values of a shape-matched route failed the
// strict pattern. Over-long values are named, as the strict patterns are
// bounded to MaxParamLength.
func shapeError(route *Route, values []string) error {
	for i, v := range values {
		if i < len(route.regexp.varsN) && len(strings.TrimSpace(v)) > MaxParamLength {
			return &BadRequestError{Param: route.regexp.varsN[i], Reason: "value too long"}
		}
	}
	return &BadRequestError{Reason: "path segment does not match placeholder type"}
}

func newRouteMatch(route *Route, values []string) *RouteMatch {
	vars := make(map[string]string, len(values))
	for i, name := range route.regexp.varsN {
		if i < len(values) {
			vars[name] = values[i]
		}
	}
	return &RouteMatch{Route: route, Values: values, Vars: vars}
}

// SkipMethod is returned from a WalkFunc to skip the remaining routes of
// the current method.
var SkipMethod = errors.New("skip this method") //nolint:revive,staticcheck // sentinel, not a failure

// WalkFunc is called for each route visited by Walk.
type WalkFunc func(route *Route) error

// Walk calls walkFn for every route, methods in first-registration order and
// routes in insertion order.
func (t *Table) Walk(walkFn WalkFunc) error {
	for _, method := range t.methods {
		for _, route := range t.routes[method] {
			err := walkFn(route)
			if err == SkipMethod {
				break
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// RouteInfo is a plain snapshot of a route, suitable for printing and
// comparison.
type RouteInfo struct {
	Method     string
	Template   string
	Pattern    string
	Captures   []string
	Handler    string
	Middleware []string
	ParamTypes map[string]string
}

// Describe returns a snapshot of every route in Walk order.
func (t *Table) Describe() []RouteInfo {
	infos := make([]RouteInfo, 0, t.Len())
	_ = t.Walk(func(r *Route) error {
		infos = append(infos, RouteInfo{
			Method:     r.method,
			Template:   r.regexp.template,
			Pattern:    r.regexp.regexp.String(),
			Captures:   r.VarNames(),
			Handler:    r.handler.String(),
			Middleware: r.Middleware(),
			ParamTypes: r.ParamTypes(),
		})
		return nil
	})
	return infos
}
