package muxhandlers

import (
	"net/http"
	"os"

	"github.com/dvnc0/gimli/mux"
)

// ServerConfig configures the Server middleware behaviour.
type ServerConfig struct {
	// Name is written to the Server response header, e.g. "gimli/1.2.0".
	// The header is omitted when empty.
	Name string

	// Hostname is the value written to the X-Server-Hostname response
	// header. Resolution order: Hostname field, then HostnameEnv
	// environment variables, then os.Hostname.
	Hostname string

	// HostnameEnv is a list of environment variable names checked in
	// order (e.g. ["POD_NAME", "HOSTNAME"]). The first non-empty value is
	// used. Only consulted when Hostname is empty.
	HostnameEnv []string
}

// ServerMiddleware returns a middleware that sets server identification
// response headers. The hostname is resolved once when the middleware is
// created. It returns an error if the hostname cannot be determined.
func ServerMiddleware(cfg ServerConfig) (mux.MiddlewareFunc, error) {
	hostname, err := resolveHostname(cfg)
	if err != nil {
		return nil, err
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Name != "" {
				w.Header().Set("Server", cfg.Name)
			}
			w.Header().Set("X-Server-Hostname", hostname)
			next.ServeHTTP(w, r)
		})
	}, nil
}

func resolveHostname(cfg ServerConfig) (string, error) {
	if cfg.Hostname != "" {
		return cfg.Hostname, nil
	}

	for _, env := range cfg.HostnameEnv {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			return v, nil
		}
	}

	return os.Hostname()
}
