package muxhandlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvnc0/gimli/mux"
)

func TestTokenMiddleware(t *testing.T) {
	t.Run("requires tokens", func(t *testing.T) {
		_, err := TokenMiddleware(TokenConfig{})
		assert.ErrorIs(t, err, ErrNoTokens)
	})

	mw, err := TokenMiddleware(TokenConfig{
		Tokens:  []string{"alpha", "beta"},
		Forward: "/login",
	})
	require.NoError(t, err)

	resolver := mux.ResolverFunc(func(name string) (any, error) {
		return mw, nil
	})

	b := mux.NewBuilder()
	b.Get("/secret", mux.Inline(okHandler)).AddMiddleware("auth")
	b.CLI("deploy", mux.Inline(okHandler)).AddMiddleware("auth")
	table, err := b.Build()
	require.NoError(t, err)

	r, err := mux.New(table, resolver)
	require.NoError(t, err)

	httpTests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{name: "first token", token: "alpha", wantStatus: http.StatusOK},
		{name: "second token", token: "beta", wantStatus: http.StatusOK},
		{name: "wrong token", token: "gamma", wantStatus: http.StatusFound},
		{name: "prefix of token", token: "alp", wantStatus: http.StatusFound},
		{name: "missing token", wantStatus: http.StatusFound},
	}

	for _, tt := range httpTests {
		t.Run("http "+tt.name, func(t *testing.T) {
			req := mux.NewRequest(http.MethodGet, "/secret")
			if tt.token != "" {
				req.Header.Set("X-Api-Token", tt.token)
			}

			resp := r.Dispatch(req)
			assert.Equal(t, tt.wantStatus, resp.Status)
			if tt.wantStatus == http.StatusFound {
				assert.Equal(t, "/login", resp.Header.Get("Location"))
			}
		})
	}

	cliTests := []struct {
		name     string
		argv     []string
		wantExit int
	}{
		{name: "token option", argv: []string{"deploy", "--token=beta"}, wantExit: 0},
		{name: "wrong option", argv: []string{"deploy", "--token=nope"}, wantExit: 1},
		{name: "token as flag", argv: []string{"deploy", "--token"}, wantExit: 1},
		{name: "no option", argv: []string{"deploy"}, wantExit: 1},
	}

	for _, tt := range cliTests {
		t.Run("cli "+tt.name, func(t *testing.T) {
			resp := r.Run(context.Background(), tt.argv)
			assert.Equal(t, tt.wantExit, mux.ExitCode(resp))
		})
	}
}

func TestTokenMiddlewareDefaults(t *testing.T) {
	mw, err := TokenMiddleware(TokenConfig{Tokens: []string{"t"}})
	require.NoError(t, err)

	req := mux.NewRequest(http.MethodGet, "/")
	assert.Equal(t, mux.Deny("/"), mw.Process(req))

	req.Header.Set("X-Api-Token", "t")
	assert.Equal(t, mux.Pass(), mw.Process(req))
}
