package mux

import (
	"fmt"
	"net/http"
)

// Result is the outcome of a middleware check. A failed Result names where
// the client should be redirected.
type Result struct {
	Success bool
	Forward string
}

// Pass returns a successful Result.
func Pass() Result {
	return Result{Success: true}
}

// Deny returns a failed Result redirecting to forward.
func Deny(forward string) Result {
	return Result{Forward: forward}
}

// Middleware is a check run before a route handler. Failure is a value,
// not an error: the pipeline stops and redirects to Result.Forward.
//
// Middleware does not receive route arguments. It reads request state from
// the Request and gets its collaborators through constructor injection.
type Middleware interface {
	Process(req *Request) Result
}

// ProcessFunc adapts an ordinary function to Middleware.
type ProcessFunc func(req *Request) Result

// Process calls f(req).
func (f ProcessFunc) Process(req *Request) Result {
	return f(req)
}

// runMiddleware resolves and runs the route's middleware in order. It
// returns a redirect Response on the first failure and nil when every
// middleware passed.
func (r *Router) runMiddleware(req *Request, route *Route) (*Response, error) {
	for _, name := range route.middleware {
		inst, err := r.resolver.Resolve(name)
		if err != nil {
			return nil, fmt.Errorf("mux: resolve middleware %q: %w", name, err)
		}
		if inst == nil {
			return nil, fmt.Errorf("mux: resolve middleware %q: resolver returned nil", name)
		}

		mw, ok := inst.(Middleware)
		if !ok {
			return nil, &MiddlewareContractError{Name: name, Got: fmt.Sprintf("%T", inst)}
		}

		if res := mw.Process(req); !res.Success {
			r.logger.WithField("middleware", name).WithField("forward", res.Forward).Debug("middleware rejected request")
			return Redirect(res.Forward), nil
		}
	}
	return nil, nil
}

// MiddlewareFunc is a function which receives an http.Handler and returns
// another http.Handler. Router.Use applies them around ServeHTTP, outside
// route matching.
type MiddlewareFunc func(http.Handler) http.Handler

// Middleware allows MiddlewareFunc to wrap a handler.
func (mw MiddlewareFunc) Middleware(handler http.Handler) http.Handler {
	return mw(handler)
}
