package mux

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/dvnc0/gimli/cli"
)

// tracerName is the instrumentation scope of dispatch spans.
const tracerName = "github.com/dvnc0/gimli/mux"

// cliNames are the names of the synthetic values a CLI handler is bound
// against, in positional order.
var cliNames = []string{"subcommand", "options", "flags"}

// Router dispatches requests against an immutable Table. It serves HTTP
// requests through ServeHTTP and CLI invocations through Run; both go
// through the same matching, middleware and argument binding.
//
//	table, err := b.Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r, err := mux.New(table, resolver, mux.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	http.ListenAndServe(":8080", r)
//
// A Router is safe for concurrent use once Use calls are complete.
type Router struct {
	table    *Table
	resolver Resolver
	logger   logrus.FieldLogger
	metrics  *metrics
	tracer   trace.Tracer

	middlewares []MiddlewareFunc
	handler     http.Handler
}

// New returns a Router dispatching against table and resolving handlers
// and middleware through resolver.
func New(table *Table, resolver Resolver, opts ...Option) (*Router, error) {
	if table == nil {
		return nil, errors.New("mux: table cannot be nil")
	}
	if resolver == nil {
		return nil, errors.New("mux: resolver cannot be nil")
	}

	r := &Router{
		table:    table,
		resolver: resolver,
		logger:   discardLogger(),
		tracer:   noop.NewTracerProvider().Tracer(tracerName),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	r.handler = http.HandlerFunc(r.serveHTTP)

	return r, nil
}

// Table returns the route table the router dispatches against.
func (r *Router) Table() *Table {
	return r.table
}

// Match returns the route matching method and uri without dispatching.
func (r *Router) Match(method, uri string) (*RouteMatch, error) {
	return r.table.Match(method, uri)
}

// ServeHTTP dispatches an HTTP request and writes the Response.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

func (r *Router) serveHTTP(w http.ResponseWriter, req *http.Request) {
	r.Dispatch(FromHTTP(req)).Write(w)
}

// Use appends MiddlewareFunc wrappers around ServeHTTP. The first added runs
// outermost. Use is a setup call and must not race with ServeHTTP.
func (r *Router) Use(mwf ...MiddlewareFunc) {
	r.middlewares = append(r.middlewares, mwf...)

	var h http.Handler = http.HandlerFunc(r.serveHTTP)
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		h = r.middlewares[i].Middleware(h)
	}
	r.handler = h
}

// Run dispatches a CLI invocation. argv excludes the program name.
func (r *Router) Run(ctx context.Context, argv []string) *Response {
	return r.Dispatch(NewCLIRequest(argv).WithContext(ctx))
}

// Dispatch processes one request to completion. Routing, validation and
// handler errors never escape: they are converted to a status and a literal
// body.
func (r *Router) Dispatch(req *Request) *Response {
	start := time.Now()

	ctx, span := r.tracer.Start(req.Context(), "mux.Dispatch",
		trace.WithAttributes(attribute.String("gimli.method", req.Method)))
	defer span.End()

	req = req.WithContext(ctx)

	resp, err := r.dispatch(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		resp = r.errorResponse(req, err)
	}

	span.SetAttributes(attribute.Int("gimli.status", resp.Status))
	r.metrics.observe(methodLabel(req), outcomeOf(resp, err), start)

	return resp
}

func (r *Router) dispatch(req *Request) (*Response, error) {
	if req.Method == MethodCLI {
		if req.fromHTTP {
			return nil, ErrMethodNotAllowed
		}
		return r.dispatchCLI(req)
	}

	m, err := r.table.match(req.Method, req.Path())
	if err != nil {
		return nil, err
	}
	route := m.Route
	trace.SpanFromContext(req.Context()).SetAttributes(attribute.String("gimli.route", route.regexp.template))

	values, err := validateParams(route.regexp.varsN, m.Values, route.paramTypes)
	if err != nil {
		return nil, err
	}

	vars := make(map[string]string, len(values))
	bound := make(map[string]any, len(values))
	for i, name := range route.regexp.varsN {
		vars[name] = values[i]
		bound[name] = values[i]
	}

	req = req.withMatch(route, vars, nil)

	if resp, err := r.runMiddleware(req, route); resp != nil || err != nil {
		return resp, err
	}

	return r.invoke(req, route.handler, route.regexp.varsN, bound)
}

func (r *Router) dispatchCLI(req *Request) (*Response, error) {
	args := cli.Parse(req.Argv)
	if args.Subcommand == "" {
		return nil, ErrCommandNotFound
	}

	m, err := r.table.Match(MethodCLI, args.Subcommand)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrBadRequest) {
			return nil, ErrCommandNotFound
		}
		return nil, err
	}
	route := m.Route
	trace.SpanFromContext(req.Context()).SetAttributes(attribute.String("gimli.route", route.regexp.template))

	req = req.withMatch(route, nil, args)

	if resp, err := r.runMiddleware(req, route); resp != nil || err != nil {
		return resp, err
	}

	values := map[string]any{
		"subcommand": args.Subcommand,
		"options":    args.Options,
		"flags":      args.Flags,
	}

	names := cliNames
	if route.handler.kind == handlerInline {
		names = nil
	}

	return r.invoke(req, route.handler, names, values)
}

// errorResponse converts a dispatch error into its literal response and
// logs it at the matching level.
func (r *Router) errorResponse(req *Request, err error) *Response {
	log := r.logger.WithFields(logrus.Fields{
		"method": req.Method,
		"path":   req.Path(),
	})

	switch {
	case errors.Is(err, ErrCommandNotFound):
		log.WithField("argv", strings.Join(req.Argv, " ")).Info("command not found")
		return Text(http.StatusNotFound, BodyCommandNotFound)
	case errors.Is(err, ErrNotFound):
		log.Debug("no route matched")
		return Text(http.StatusNotFound, BodyNotFound)
	case errors.Is(err, ErrMethodNotAllowed):
		resp := Text(http.StatusMethodNotAllowed, BodyMethodNotAllowed)
		resp.Header.Set("Allow", "DELETE, GET, PATCH, POST, PUT")
		return resp
	case errors.Is(err, ErrBadRequest):
		r.logSecurityEvent(log, err)
		return Text(http.StatusBadRequest, BodyBadRequest)
	default:
		log.WithError(err).Error("dispatch failed")
		return Text(http.StatusInternalServerError, BodyInternalError)
	}
}

// logSecurityEvent records a rejected parameter. The offending value is
// never logged.
func (r *Router) logSecurityEvent(log logrus.FieldLogger, err error) {
	log = log.WithField("event", "security")

	var bre *BadRequestError
	var ce *CastError
	switch {
	case errors.As(err, &bre):
		log = log.WithFields(logrus.Fields{"param": bre.Param, "reason": bre.Reason})
	case errors.As(err, &ce):
		log = log.WithFields(logrus.Fields{"param": ce.Param, "reason": "cast to " + ce.Type + " failed"})
	}

	log.Warn("rejected request parameters")
}

// outcomeOf returns the metrics outcome label of a dispatch.
func outcomeOf(resp *Response, err error) string {
	switch {
	case err == nil && resp.Status >= 300 && resp.Status < 400:
		return outcomeRedirect
	case err == nil:
		return outcomeOK
	case errors.Is(err, ErrNotFound):
		return outcomeNotFound
	case errors.Is(err, ErrMethodNotAllowed):
		return outcomeMethodNotAllowed
	case errors.Is(err, ErrBadRequest):
		return outcomeBadRequest
	default:
		return outcomeError
	}
}
