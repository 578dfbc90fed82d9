package muxhandlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dvnc0/gimli/mux"
)

// DefaultRequestIDHeader is the header used when RequestIDConfig.HeaderName
// is empty.
const DefaultRequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestIDFromContext returns the request ID stored in the context by
// RequestIDMiddleware. Returns an empty string if no ID is present.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}

	return ""
}

// ContextWithRequestID returns a copy of ctx carrying id. CLI invocations
// use it to tag a run the same way HTTP requests are tagged.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDConfig configures the Request ID middleware behaviour.
type RequestIDConfig struct {
	// HeaderName overrides the header used to propagate the request ID.
	// Defaults to DefaultRequestIDHeader when empty.
	HeaderName string

	// GenerateFunc returns a new unique ID. Defaults to GenerateUUIDv7.
	GenerateFunc func() string

	// TrustIncoming reuses a valid incoming request ID instead of
	// generating a new one. An incoming value that is not a UUID is
	// replaced.
	TrustIncoming bool
}

// RequestIDMiddleware returns a middleware that generates or propagates a
// request ID header. The ID is set on the request header and context for
// the dispatcher and on the response for the caller.
func RequestIDMiddleware(cfg RequestIDConfig) mux.MiddlewareFunc {
	headerName := cfg.HeaderName
	if headerName == "" {
		headerName = DefaultRequestIDHeader
	}

	generate := cfg.GenerateFunc
	if generate == nil {
		generate = GenerateUUIDv7
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if cfg.TrustIncoming {
				if incoming := r.Header.Get(headerName); incoming != "" {
					if _, err := uuid.Parse(incoming); err == nil {
						id = incoming
					}
				}
			}

			if id == "" {
				id = generate()
			}

			if id != "" {
				r.Header.Set(headerName, id)
				w.Header().Set(headerName, id)
				r = r.WithContext(ContextWithRequestID(r.Context(), id))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GenerateUUIDv4 returns a new random UUID string.
func GenerateUUIDv4() string {
	return uuid.New().String()
}

// GenerateUUIDv7 returns a new time-ordered UUID string: IDs generated later
// sort lexicographically after earlier ones.
func GenerateUUIDv7() string {
	return uuid.Must(uuid.NewV7()).String()
}
