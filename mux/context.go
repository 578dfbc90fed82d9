package mux

import (
	"context"
	"net/http"

	"github.com/dvnc0/gimli/cli"
)

// MethodCLI is the pseudo-method under which CLI commands are registered.
const MethodCLI = "CLI"

// Request is the value a dispatch call processes: an HTTP request reduced
// to method, URI and headers, or a CLI invocation carrying argv.
type Request struct {
	// Method is the HTTP method or MethodCLI.
	Method string

	// URI is the raw request URI, query included.
	URI string

	// Argv is the CLI token list without the program name.
	Argv []string

	// Header holds the HTTP request headers. Nil for CLI requests.
	Header http.Header

	ctx      context.Context
	path     string
	fromHTTP bool
	route    *Route
	vars  map[string]string
	args  *cli.Args
}

// NewRequest returns a Request for the given method and URI.
func NewRequest(method, uri string) *Request {
	return &Request{Method: method, URI: uri, Header: make(http.Header)}
}

// NewCLIRequest returns a CLI Request for argv, program name excluded.
func NewCLIRequest(argv []string) *Request {
	return &Request{Method: MethodCLI, Argv: argv}
}

// FromHTTP adapts a net/http request. The path is cleaned of dot segments
// and decoded; the query is kept as sent. The path is carried apart from
// URI, so a decoded "?" or "#" stays part of it.
func FromHTTP(r *http.Request) *Request {
	path := cleanPath(r.URL.Path)
	return &Request{
		Method:   r.Method,
		URI:      requestURI(path, r.URL.RawQuery),
		Header:   r.Header,
		ctx:      r.Context(),
		path:     path,
		fromHTTP: true,
	}
}

// Path returns the path routes are matched against. For requests built by
// FromHTTP it is the cleaned, decoded path; otherwise it is URI without its
// query and fragment.
func (r *Request) Path() string {
	if r.fromHTTP {
		return r.path
	}
	return stripQuery(r.URI)
}

// Context returns the request context, never nil.
func (r *Request) Context() context.Context {
	if r.ctx != nil {
		return r.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of r with its context changed to ctx.
func (r *Request) WithContext(ctx context.Context) *Request {
	r2 := *r
	r2.ctx = ctx
	return &r2
}

// Route returns the matched route, if any. It is set for the duration of
// middleware and handler execution.
func (r *Request) Route() *Route {
	return r.route
}

// Vars returns the validated captures of the matched route, if any.
func (r *Request) Vars() map[string]string {
	return r.vars
}

// Var returns a single validated capture by name and whether it exists.
func (r *Request) Var(name string) (string, bool) {
	v, ok := r.vars[name]
	return v, ok
}

// Args returns the parsed CLI arguments, or nil for HTTP requests.
func (r *Request) Args() *cli.Args {
	return r.args
}

// withMatch returns a copy of r carrying the matched route and captures.
func (r *Request) withMatch(route *Route, vars map[string]string, args *cli.Args) *Request {
	r2 := *r
	r2.route = route
	r2.vars = vars
	r2.args = args
	return &r2
}

// RouteMatch stores information about a matched route.
type RouteMatch struct {
	// Route is the matched route.
	Route *Route

	// Values holds the raw captured values in capture-name order.
	Values []string

	// Vars maps capture names to raw captured values.
	Vars map[string]string
}
