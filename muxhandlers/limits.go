package muxhandlers

import (
	"errors"
	"net/http"

	"github.com/dvnc0/gimli/mux"
)

// ErrInvalidLimit is returned when a LimitsConfig bound is not positive.
var ErrInvalidLimit = errors.New("limits: bounds must be greater than zero")

// Response bodies written by LimitsMiddleware.
const (
	BodyURITooLong     = "414 request URI too long"
	BodyEntityTooLarge = "413 request entity too large"
)

// LimitsConfig configures LimitsMiddleware.
type LimitsConfig struct {
	// MaxURIBytes bounds the length of the escaped request target.
	MaxURIBytes int

	// MaxBodyBytes bounds the request body.
	MaxBodyBytes int64
}

// LimitsMiddleware rejects oversized requests before they reach the
// dispatcher. A request target longer than MaxURIBytes answers 414 and a
// declared Content-Length above MaxBodyBytes answers 413. Bodies of unknown
// length are wrapped with http.MaxBytesReader so reads past the bound fail.
func LimitsMiddleware(cfg LimitsConfig) (mux.MiddlewareFunc, error) {
	if cfg.MaxURIBytes <= 0 || cfg.MaxBodyBytes <= 0 {
		return nil, ErrInvalidLimit
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.RequestURI()) > cfg.MaxURIBytes {
				mux.Text(http.StatusRequestURITooLong, BodyURITooLong).Write(w)
				return
			}

			if r.ContentLength > cfg.MaxBodyBytes {
				mux.Text(http.StatusRequestEntityTooLarge, BodyEntityTooLarge).Write(w)
				return
			}

			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxBodyBytes)
			}
			next.ServeHTTP(w, r)
		})
	}, nil
}
