// Package muxhandlers provides middleware for the mux dispatcher.
//
// Two kinds are provided. HTTP wrappers are mux.MiddlewareFunc values
// installed with Router.Use or on an outer http.Handler; they run before
// route matching:
//
//	r.Use(
//	    muxhandlers.RequestIDMiddleware(muxhandlers.RequestIDConfig{TrustIncoming: true}),
//	    muxhandlers.AccessLogMiddleware(logger),
//	    muxhandlers.RecoveryMiddleware(muxhandlers.RecoveryConfig{Logger: logger}),
//	)
//
// Dispatch middleware implements mux.Middleware and is registered by name
// on routes through the resolver. It runs after matching and validation, for
// HTTP routes and CLI commands alike:
//
//	auth, err := muxhandlers.TokenMiddleware(muxhandlers.TokenConfig{
//	    Tokens:  []string{os.Getenv("API_TOKEN")},
//	    Forward: "/login",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	container.Register("auth", auth)
//	b.Group("/api", routes, "auth")
package muxhandlers
