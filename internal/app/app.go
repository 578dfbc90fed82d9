// Package app is the example application served by the gimli binary: a
// small posts API behind token auth, plus CLI commands, wired through the
// mux dispatcher.
package app

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"github.com/dvnc0/gimli/config"
	"github.com/dvnc0/gimli/mux"
	"github.com/dvnc0/gimli/muxhandlers"
)

// Options configures New.
type Options struct {
	Config config.Config

	// Logger defaults to a logger that discards everything.
	Logger logrus.FieldLogger

	// Posts defaults to an in-memory store with seed content.
	Posts PostStore

	// Registerer enables dispatch metrics when set.
	Registerer prometheus.Registerer

	// Tracer enables dispatch spans when set.
	Tracer trace.Tracer
}

// App holds the wired application.
type App struct {
	Container *Container
	Router    *mux.Router

	cfg    config.Config
	logger logrus.FieldLogger
}

// New wires the container, builds the route table and returns the App.
func New(opts Options) (*App, error) {
	cfg := opts.Config

	logger := opts.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	posts := opts.Posts
	if posts == nil {
		posts = NewMemoryPosts(seedPosts()...)
	}

	c, err := newContainer(cfg, logger, posts)
	if err != nil {
		return nil, err
	}

	b := mux.NewBuilder()
	Routes(b)
	table, err := b.Build()
	if err != nil {
		return nil, err
	}

	routerOpts := []mux.Option{mux.WithLogger(logger)}
	if opts.Registerer != nil {
		routerOpts = append(routerOpts, mux.WithMetrics(opts.Registerer))
	}
	if opts.Tracer != nil {
		routerOpts = append(routerOpts, mux.WithTracer(opts.Tracer))
	}

	router, err := mux.New(table, c, routerOpts...)
	if err != nil {
		return nil, err
	}

	return &App{
		Container: c,
		Router:    router,
		cfg:       cfg,
		logger:    logger,
	}, nil
}

func newContainer(cfg config.Config, logger logrus.FieldLogger, posts PostStore) (*Container, error) {
	c := NewContainer()

	Provide[PostStore](c, posts)
	Provide[logrus.FieldLogger](c, logger)

	c.Register("HomeController", HomeController{Name: cfg.Server.Name})
	c.Register("LoginController", LoginController{})
	c.Register("PostController", PostController{})
	c.Register("DeployCommand", DeployCommand{})
	c.Register("ListPostsCommand", ListPostsCommand{})
	c.Register(MiddlewareAudit, Audit{Log: logger})

	if len(cfg.Auth.Tokens) == 0 {
		// No tokens configured: the API stays closed.
		forward := cfg.Auth.Forward
		c.Register(MiddlewareAuth, mux.ProcessFunc(func(*mux.Request) mux.Result {
			return mux.Deny(forward)
		}))
		return c, nil
	}

	auth, err := muxhandlers.TokenMiddleware(muxhandlers.TokenConfig{
		Tokens:  cfg.Auth.Tokens,
		Forward: cfg.Auth.Forward,
	})
	if err != nil {
		return nil, err
	}
	c.Register(MiddlewareAuth, auth)

	return c, nil
}

// Handler returns the HTTP handler of the serve command: health and metrics
// endpoints next to the dispatcher. Requests pass request id, access log,
// recovery, server identification, security headers and size limits, in
// that order. g may be nil when metrics are off.
func (a *App) Handler(g prometheus.Gatherer) (http.Handler, error) {
	server, err := muxhandlers.ServerMiddleware(muxhandlers.ServerConfig{
		Name:        a.cfg.Server.Name,
		HostnameEnv: []string{"POD_NAME", "HOSTNAME"},
	})
	if err != nil {
		return nil, err
	}

	headers, err := muxhandlers.SecurityHeadersMiddleware(muxhandlers.SecurityHeadersConfig{
		HSTSMaxAge:      a.cfg.Server.HSTSMaxAge,
		NoStorePrefixes: []string{"/api/"},
	})
	if err != nil {
		return nil, err
	}

	limits, err := muxhandlers.LimitsMiddleware(muxhandlers.LimitsConfig{
		MaxURIBytes:  a.cfg.Server.MaxURIBytes,
		MaxBodyBytes: a.cfg.Server.MaxBodyBytes,
	})
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(
		muxhandlers.RequestIDMiddleware(muxhandlers.RequestIDConfig{
			HeaderName:    a.cfg.RequestID.Header,
			TrustIncoming: a.cfg.RequestID.TrustIncoming,
		}),
		muxhandlers.AccessLogMiddleware(a.logger),
		muxhandlers.RecoveryMiddleware(muxhandlers.RecoveryConfig{Logger: a.logger}),
		server,
		headers,
		limits,
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		mux.Text(http.StatusOK, "ok\n").Write(w)
	})

	if a.cfg.Metrics.Enabled && g != nil {
		r.Method(http.MethodGet, a.cfg.Metrics.Path, promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	}

	r.Handle("/*", a.Router)

	return r, nil
}

// Run dispatches a CLI invocation tagged with a fresh run id.
func (a *App) Run(ctx context.Context, argv []string) *mux.Response {
	ctx = muxhandlers.ContextWithRequestID(ctx, muxhandlers.GenerateUUIDv7())
	return a.Router.Run(ctx, argv)
}
