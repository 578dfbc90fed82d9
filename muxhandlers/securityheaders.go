package muxhandlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dvnc0/gimli/mux"
)

// ErrInvalidFrameOption is returned when SecurityHeadersConfig.FrameOption
// is neither "DENY", "SAMEORIGIN" nor empty.
var ErrInvalidFrameOption = errors.New("security headers: frame option must be DENY, SAMEORIGIN, or empty")

// SecurityHeadersConfig configures SecurityHeadersMiddleware.
type SecurityHeadersConfig struct {
	// FrameOption is the X-Frame-Options value. Defaults to "DENY".
	FrameOption string

	// ReferrerPolicy defaults to "strict-origin-when-cross-origin".
	ReferrerPolicy string

	// HSTSMaxAge is the Strict-Transport-Security max-age in seconds.
	// The header is left out when zero.
	HSTSMaxAge int

	// NoStorePrefixes lists path prefixes whose responses get
	// Cache-Control: no-store, e.g. "/api/".
	NoStorePrefixes []string
}

// SecurityHeadersMiddleware sets X-Content-Type-Options, X-Frame-Options
// and Referrer-Policy on every response, plus HSTS and no-store where
// configured. Headers are set before next runs so handlers may override them.
func SecurityHeadersMiddleware(cfg SecurityHeadersConfig) (mux.MiddlewareFunc, error) {
	switch cfg.FrameOption {
	case "":
		cfg.FrameOption = "DENY"
	case "DENY", "SAMEORIGIN":
	default:
		return nil, ErrInvalidFrameOption
	}

	if cfg.ReferrerPolicy == "" {
		cfg.ReferrerPolicy = "strict-origin-when-cross-origin"
	}

	var hsts string
	if cfg.HSTSMaxAge > 0 {
		hsts = "max-age=" + strconv.Itoa(cfg.HSTSMaxAge)
	}

	prefixes := append([]string(nil), cfg.NoStorePrefixes...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", cfg.FrameOption)
			h.Set("Referrer-Policy", cfg.ReferrerPolicy)

			if hsts != "" {
				h.Set("Strict-Transport-Security", hsts)
			}

			for _, p := range prefixes {
				if strings.HasPrefix(r.URL.Path, p) {
					h.Set("Cache-Control", "no-store")
					break
				}
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}
