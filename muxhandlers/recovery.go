package muxhandlers

import (
	"net/http"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/dvnc0/gimli/mux"
)

// RecoveryConfig configures the Recovery middleware behaviour.
type RecoveryConfig struct {
	// Logger receives one error entry per recovered panic. When nil, no
	// logging is performed.
	Logger logrus.FieldLogger

	// IncludeStack adds the goroutine stack to the log entry.
	IncludeStack bool
}

// RecoveryMiddleware returns a middleware that recovers from panics in
// downstream handlers. When a panic occurs it answers with the dispatcher's
// literal 500 response and logs the recovered value.
//
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func RecoveryMiddleware(cfg RecoveryConfig) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				if cfg.Logger != nil {
					fields := logrus.Fields{
						"panic":      rvr,
						"method":     r.Method,
						"path":       r.URL.Path,
						"request_id": RequestIDFromContext(r.Context()),
					}
					if cfg.IncludeStack {
						fields["stack"] = string(debug.Stack())
					}
					cfg.Logger.WithFields(fields).Error("panic recovered")
				}

				mux.Text(http.StatusInternalServerError, mux.BodyInternalError).Write(w)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
