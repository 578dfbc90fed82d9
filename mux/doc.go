// Package mux implements the request routing and dispatch engine: a path
// template compiler and matcher, parameter validation, a route builder with
// nested groups, a middleware pipeline and an argument binder shared by
// HTTP routes and CLI commands.
//
// # Builder
//
// Routes are registered on a Builder during bootstrap. Build seals the
// builder and returns an immutable Table:
//
//	b := mux.NewBuilder()
//	b.Get("/", mux.MustParseHandler("HomeController@Index"))
//	b.Get("/posts/:integer#id", mux.MustParseHandler("PostController@Show")).
//	    ParamType("id", "int")
//	b.CLI("deploy", mux.Command("DeployCommand"))
//	table, err := b.Build()
//
// Verbs are Get, Post, Put, Patch, Delete, Any (all five methods) and CLI.
// AddMiddleware, ParamTypes and ParamType apply to the routes registered by
// the preceding verb call. Registration after Build panics with ErrSealed.
//
// # Groups
//
// Group registers routes under a prefix with inherited middleware. Groups
// nest; prefixes concatenate and middleware runs outer to inner, then the
// route's own:
//
//	b.Group("/api", func(b *mux.Builder) {
//	    b.Group("/v1", func(b *mux.Builder) {
//	        b.Get("/x", h).AddMiddleware("audit") // /api/v1/x: auth, v1, audit
//	    }, "v1")
//	}, "auth")
//
// # Placeholders
//
// A template segment may use a placeholder token followed by #name, which
// names the captured value:
//
//	:all          - anything, slashes included
//	:alphanumeric - letters and digits
//	:alpha        - letters
//	:integer      - digits
//	:numeric      - decimal number, optionally signed
//	:id           - digits
//	:slug         - URL-safe slug (e.g. my-post-title)
//	:uuid         - 8-4-4-4-12 hexadecimal UUID
//
// Every placeholder must carry a name; a template whose placeholder count
// differs from its capture-name count fails registration.
//
// # Matching
//
// Routes are scanned in insertion order and the first match wins: a route
// whose template equals the path, or whose pattern matches it. The query
// string is ignored. A path that has the shape of a route but holds a value
// of the wrong placeholder type is a bad request, not a miss.
//
// # Validation
//
// Every captured value is trimmed and must be non-empty and at most
// MaxParamLength bytes. Declared parameter types add checks: int/integer,
// float/numeric, string (rejects <>"' and HTML-escapes), slug and uuid.
// Failures answer 400 and are logged as security events.
//
// # Handlers
//
// A Handler is either Inline, receiving the validated captures positionally,
// or Resolved, naming a type the Resolver produces and a method on it. The
// method's parameters are bound by kind: *Request and context.Context from
// the request, services through ServiceResolver, structs with route-tagged
// fields by name, and scalars positionally through a permissive cast table.
//
//	type ShowPost struct {
//	    ID int `route:"id"`
//	}
//
//	func (c *PostController) Show(ctx context.Context, in ShowPost) (*mux.Response, error)
//
// CLI commands bind against the synthetic values subcommand, options and
// flags, conventionally on an Invoke method.
//
// # Middleware
//
// Middleware names are resolved through the Resolver and must implement
// Middleware. The first failing Result stops the chain and redirects to its
// Forward target; the handler does not run.
//
// # Dispatch
//
// Router.Dispatch converts every per-request error into a response:
//
//	404 "404 page not found"             no route matched
//	400 "Bad Request: Invalid parameters" validation or cast failure
//	405 "405 method not allowed"          method outside GET, POST, PUT, PATCH, DELETE
//	500 "500 internal server error"       resolver, middleware contract or handler failure
//	404 "Command not found"               unknown CLI command
//
// Router implements http.Handler. Run dispatches a CLI invocation and
// ExitCode maps its response to a process exit code.
package mux
