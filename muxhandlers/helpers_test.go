package muxhandlers

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dvnc0/gimli/mux"
)

// newRouter returns a router serving fn at GET /test.
func newRouter(tb testing.TB, fn mux.InlineFunc) *mux.Router {
	tb.Helper()

	b := mux.NewBuilder()
	b.Get("/test", mux.Inline(fn))
	table, err := b.Build()
	require.NoError(tb, err)

	r, err := mux.New(table, mux.ResolverFunc(func(name string) (any, error) {
		return nil, fmt.Errorf("unknown %q", name)
	}))
	require.NoError(tb, err)
	return r
}

func okHandler(_ *mux.Request, _ ...string) (*mux.Response, error) {
	return mux.Text(200, "ok"), nil
}
