package muxhandlers

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"

	"github.com/dvnc0/gimli/mux"
)

// ErrNoTokens is returned when TokenConfig has no accepted tokens.
var ErrNoTokens = errors.New("token auth: at least one token must be set")

// TokenConfig configures the Token dispatch middleware.
type TokenConfig struct {
	// Header carries the token on HTTP requests. Defaults to "X-Api-Token".
	Header string

	// Option carries the token on CLI requests, as --<Option>=<token>.
	// Defaults to "token".
	Option string

	// Tokens lists the accepted tokens.
	Tokens []string

	// Forward is the redirect target when the token is missing or wrong.
	// Defaults to "/".
	Forward string
}

// TokenMiddleware returns a dispatch middleware that passes requests
// carrying one of the accepted tokens and redirects every other request to
// cfg.Forward. HTTP requests are checked by header, CLI requests by option.
// Tokens are compared as SHA-256 digests in constant time.
func TokenMiddleware(cfg TokenConfig) (mux.Middleware, error) {
	if len(cfg.Tokens) == 0 {
		return nil, ErrNoTokens
	}

	header := cfg.Header
	if header == "" {
		header = "X-Api-Token"
	}
	option := cfg.Option
	if option == "" {
		option = "token"
	}
	forward := cfg.Forward
	if forward == "" {
		forward = "/"
	}

	hashes := make([][sha256.Size]byte, len(cfg.Tokens))
	for i, tok := range cfg.Tokens {
		hashes[i] = sha256.Sum256([]byte(tok))
	}

	return mux.ProcessFunc(func(req *mux.Request) mux.Result {
		var got string
		if req.Method == mux.MethodCLI {
			got, _ = req.Args().Options.Get(option)
		} else {
			got = req.Header.Get(header)
		}

		if got == "" || !matchAny(hashes, got) {
			return mux.Deny(forward)
		}
		return mux.Pass()
	}), nil
}

// matchAny compares got against every hash, matched or not.
func matchAny(hashes [][sha256.Size]byte, got string) bool {
	h := sha256.Sum256([]byte(got))

	matched := 0
	for i := range hashes {
		matched |= subtle.ConstantTimeCompare(hashes[i][:], h[:])
	}
	return matched == 1
}
