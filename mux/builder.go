package mux

import (
	"errors"
	"net/http"
	"slices"
	"strings"
)

// groupFrame is one level of Group nesting.
type groupFrame struct {
	prefix     string
	middleware []string
}

// Builder accumulates route definitions during bootstrap and produces an
// immutable Table.
//
//	b := mux.NewBuilder()
//	b.Get("/", mux.MustParseHandler("HomeController@Index"))
//	b.Group("/api", func(b *mux.Builder) {
//	    b.Get("/posts/:integer#id", mux.MustParseHandler("PostController@Show")).
//	        ParamType("id", "int")
//	}, "auth")
//	table, err := b.Build()
//
// A Builder is not safe for concurrent use. Once Build has been called
// every registration method panics with ErrSealed.
type Builder struct {
	table  *Table
	cache  templateCache
	frames []groupFrame
	last   []*Route
	err    error
	sealed bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{table: newTable(), cache: make(templateCache)}
}

// Get registers a GET route.
func (b *Builder) Get(path string, h Handler) *Builder {
	return b.handle([]string{http.MethodGet}, path, h)
}

// Post registers a POST route.
func (b *Builder) Post(path string, h Handler) *Builder {
	return b.handle([]string{http.MethodPost}, path, h)
}

// Put registers a PUT route.
func (b *Builder) Put(path string, h Handler) *Builder {
	return b.handle([]string{http.MethodPut}, path, h)
}

// Patch registers a PATCH route.
func (b *Builder) Patch(path string, h Handler) *Builder {
	return b.handle([]string{http.MethodPatch}, path, h)
}

// Delete registers a DELETE route.
func (b *Builder) Delete(path string, h Handler) *Builder {
	return b.handle([]string{http.MethodDelete}, path, h)
}

// Any registers the same handler under GET, POST, PUT, PATCH and DELETE.
// Chained AddMiddleware and ParamTypes calls apply to all five routes.
func (b *Builder) Any(path string, h Handler) *Builder {
	return b.handle(allowedMethods, path, h)
}

// CLI registers a command under the CLI pseudo-method. The path is the
// subcommand name.
func (b *Builder) CLI(command string, h Handler) *Builder {
	return b.handle([]string{MethodCLI}, command, h)
}

// Group registers the routes added by fn under prefix, with middleware
// prepended to each route's own middleware. Groups nest: prefixes
// concatenate and middleware accumulates outer to inner.
//
// The group frame is popped even when fn panics, so sibling groups and
// later routes never inherit a stale prefix.
func (b *Builder) Group(prefix string, fn func(*Builder), middleware ...string) *Builder {
	b.checkSealed()

	b.frames = append(b.frames, groupFrame{prefix: prefix, middleware: slices.Clone(middleware)})
	defer b.popFrame()

	fn(b)
	return b
}

// AddMiddleware appends middleware names to the routes registered by the
// most recent verb call.
func (b *Builder) AddMiddleware(names ...string) *Builder {
	b.checkSealed()

	if len(b.last) == 0 {
		b.fail(&RegistrationError{Err: errors.New("AddMiddleware called before any route")})
		return b
	}
	for _, r := range b.last {
		r.middleware = append(r.middleware, names...)
	}
	return b
}

// ParamTypes declares validation types for captures of the routes
// registered by the most recent verb call. See ParamType.
func (b *Builder) ParamTypes(types map[string]string) *Builder {
	b.checkSealed()

	if len(b.last) == 0 {
		b.fail(&RegistrationError{Err: errors.New("ParamTypes called before any route")})
		return b
	}
	for _, r := range b.last {
		if r.paramTypes == nil {
			r.paramTypes = make(map[string]string, len(types))
		}
		for name, typ := range types {
			r.paramTypes[name] = typ
		}
	}
	return b
}

// ParamType declares the validation type of one capture. Known types are
// int, integer, float, numeric, string, slug and uuid; other names pass
// values through unchanged.
func (b *Builder) ParamType(name, typ string) *Builder {
	return b.ParamTypes(map[string]string{name: typ})
}

// Err returns the first registration error, if any.
func (b *Builder) Err() error {
	return b.err
}

// Build seals the builder and returns the finished Table. It returns the
// first registration error, or a RegistrationError wrapping ErrNoRoutes
// when nothing was registered.
func (b *Builder) Build() (*Table, error) {
	b.checkSealed()
	b.sealed = true
	b.cache = nil

	if b.err != nil {
		return nil, b.err
	}
	if b.table.Len() == 0 {
		return nil, &RegistrationError{Err: ErrNoRoutes}
	}

	return b.table.clone(), nil
}

// handle compiles the prefixed template once and registers it under each
// method with the inherited middleware.
func (b *Builder) handle(methods []string, path string, h Handler) *Builder {
	b.checkSealed()
	b.last = nil

	full := b.prefix() + path
	if h.IsZero() {
		b.fail(&RegistrationError{Method: strings.Join(methods, ","), Path: full, Err: errors.New("nil handler")})
		return b
	}

	rr, err := b.cache.compile(full)
	if err != nil {
		b.fail(&RegistrationError{Method: strings.Join(methods, ","), Path: full, Err: err})
		return b
	}

	inherited := b.middleware()
	for _, method := range methods {
		route := &Route{
			method:     method,
			regexp:     rr,
			handler:    h,
			middleware: slices.Clone(inherited),
		}
		b.table.add(route)
		b.last = append(b.last, route)
	}
	return b
}

// prefix returns the concatenation of all active group prefixes.
func (b *Builder) prefix() string {
	var sb strings.Builder
	for _, f := range b.frames {
		sb.WriteString(f.prefix)
	}
	return sb.String()
}

// middleware returns the middleware of all active groups, outer to inner.
func (b *Builder) middleware() []string {
	var out []string
	for _, f := range b.frames {
		out = append(out, f.middleware...)
	}
	return out
}

func (b *Builder) popFrame() {
	b.frames = b.frames[:len(b.frames)-1]
}

// fail records the first registration error.
func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Builder) checkSealed() {
	if b.sealed {
		panic(ErrSealed)
	}
}
