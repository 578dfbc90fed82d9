package mux

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvnc0/gimli/cli"
)

// testResolver is a map-backed ServiceResolver.
type testResolver struct {
	named    map[string]any
	services map[reflect.Type]any
}

func newTestResolver() *testResolver {
	return &testResolver{
		named:    map[string]any{},
		services: map[reflect.Type]any{},
	}
}

func (r *testResolver) Resolve(name string) (any, error) {
	v, ok := r.named[name]
	if !ok {
		return nil, fmt.Errorf("unknown name %q", name)
	}
	return v, nil
}

func (r *testResolver) ResolveType(t reflect.Type) (any, bool) {
	v, ok := r.services[t]
	return v, ok
}

type greeter interface {
	Greet(name string) string
}

type englishGreeter struct{}

func (englishGreeter) Greet(name string) string { return "hello " + name }

type showPost struct {
	ID     int     `route:"id"`
	Slug   *string `route:"slug"`
	Hidden string  `route:"-"`
	secret int     `route:"id"`
}

type postController struct{}

func (postController) Show(in showPost) (*Response, error) {
	slug := "<nil>"
	if in.Slug != nil {
		slug = *in.Slug
	}
	return Text(200, fmt.Sprintf("post %d slug %s", in.ID, slug)), nil
}

func (postController) ShowPtr(in *showPost) string {
	return fmt.Sprintf("ptr %d", in.ID)
}

func (postController) Scalar(id int, missing *string) string {
	if missing == nil {
		return fmt.Sprintf("scalar %d missing nil", id)
	}
	return fmt.Sprintf("scalar %d missing %s", id, *missing)
}

func (postController) Flag(on bool) string {
	return fmt.Sprintf("flag %t", on)
}

func (postController) Ratio(r float64, n uint8) string {
	return fmt.Sprintf("%.2f %d", r, n)
}

func (postController) Greet(g greeter, name string) string {
	return g.Greet(name)
}

func (postController) Wired(ctx context.Context, req *Request) string {
	if ctx == nil {
		return "no context"
	}
	return req.Route().PathTemplate()
}

func (postController) Data(id int) (map[string]int, error) {
	return map[string]int{"id": id}, nil
}

func (postController) Bytes() []byte { return []byte("raw") }

func (postController) Nothing() {}

func (postController) NilResponse() *Response { return nil }

func (postController) Fail() error { return errors.New("boom") }

func (postController) TooMany() (string, string) { return "a", "b" }

func (postController) Variadic(_ ...string) string { return "" }

type deployInput struct {
	Subcommand string       `route:"subcommand"`
	Options    *cli.Options `route:"options"`
	Flags      []string     `route:"flags"`
}

type deployCommand struct{}

func (deployCommand) Invoke(in deployInput) string {
	env, _ := in.Options.Get("environment")
	return fmt.Sprintf("%s to %s %v", in.Subcommand, env, in.Flags)
}

type statusCommand struct{}

func (statusCommand) Invoke(sub string, opts *cli.Options, flags []string) string {
	return fmt.Sprintf("%s %d %d", sub, opts.Len(), len(flags))
}

func TestResolverFunc(t *testing.T) {
	r := ResolverFunc(func(name string) (any, error) {
		if name == "x" {
			return 1, nil
		}
		return nil, errors.New("no")
	})

	v, err := r.Resolve("x")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = r.Resolve("y")
	assert.Error(t, err)
}

func TestBindArgs(t *testing.T) {
	rt := newTestResolver()
	rt.services[reflect.TypeOf((*greeter)(nil)).Elem()] = englishGreeter{}
	r := &Router{resolver: rt}

	method := func(name string) reflect.Type {
		m := reflect.ValueOf(postController{}).MethodByName(name)
		require.True(t, m.IsValid(), name)
		return m.Type()
	}

	req := NewRequest("GET", "/")

	t.Run("struct by name", func(t *testing.T) {
		in, err := r.bindArgs(req, method("Show"), []string{"slug", "id"}, map[string]any{"id": "42", "slug": "hi"})
		require.NoError(t, err)
		require.Len(t, in, 1)

		got := in[0].Interface().(showPost)
		assert.Equal(t, 42, got.ID)
		require.NotNil(t, got.Slug)
		assert.Equal(t, "hi", *got.Slug)
		assert.Empty(t, got.Hidden)
		assert.Zero(t, got.secret)
	})

	t.Run("pointer struct with missing name", func(t *testing.T) {
		in, err := r.bindArgs(req, method("ShowPtr"), []string{"id"}, map[string]any{"id": "7"})
		require.NoError(t, err)

		got := in[0].Interface().(*showPost)
		assert.Equal(t, 7, got.ID)
		assert.Nil(t, got.Slug)
	})

	t.Run("positional scalars", func(t *testing.T) {
		in, err := r.bindArgs(req, method("Scalar"), []string{"id"}, map[string]any{"id": "5"})
		require.NoError(t, err)
		require.Len(t, in, 2)
		assert.Equal(t, 5, in[0].Interface())
		assert.Nil(t, in[1].Interface())
	})

	t.Run("service injected before positional", func(t *testing.T) {
		in, err := r.bindArgs(req, method("Greet"), []string{"name"}, map[string]any{"name": "bob"})
		require.NoError(t, err)
		assert.Equal(t, englishGreeter{}, in[0].Interface())
		assert.Equal(t, "bob", in[1].Interface())
	})

	t.Run("cast failure", func(t *testing.T) {
		_, err := r.bindArgs(req, method("Scalar"), []string{"id"}, map[string]any{"id": "x"})
		var ce *CastError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, "id", ce.Param)
		assert.Equal(t, "int", ce.Type)
		assert.ErrorIs(t, err, ErrBadRequest)
	})

	t.Run("variadic rejected", func(t *testing.T) {
		_, err := r.bindArgs(req, method("Variadic"), nil, nil)
		assert.ErrorContains(t, err, "variadic")
	})

	t.Run("resolver without services", func(t *testing.T) {
		plain := &Router{resolver: ResolverFunc(func(string) (any, error) { return nil, nil })}
		in, err := plain.bindArgs(req, method("Greet"), []string{"name"}, map[string]any{"name": "bob"})
		require.Error(t, err, "greeter has no cast and no service")
		assert.Nil(t, in)
	})
}

func TestCastValue(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		typ     reflect.Type
		want    any
		wantErr bool
	}{
		{name: "string", raw: " x ", typ: reflect.TypeOf(""), want: "x"},
		{name: "int", raw: "42", typ: reflect.TypeOf(0), want: 42},
		{name: "int8 overflow", raw: "300", typ: reflect.TypeOf(int8(0)), wantErr: true},
		{name: "uint", raw: "7", typ: reflect.TypeOf(uint(0)), want: uint(7)},
		{name: "negative uint", raw: "-7", typ: reflect.TypeOf(uint(0)), wantErr: true},
		{name: "float", raw: "1.5", typ: reflect.TypeOf(0.0), want: 1.5},
		{name: "bool true", raw: "true", typ: reflect.TypeOf(false), want: true},
		{name: "bool yes", raw: "YES", typ: reflect.TypeOf(false), want: true},
		{name: "bool on", raw: "on", typ: reflect.TypeOf(false), want: true},
		{name: "bool off", raw: "off", typ: reflect.TypeOf(false), want: false},
		{name: "bool empty", raw: "", typ: reflect.TypeOf(false), want: false},
		{name: "bool garbage", raw: "maybe", typ: reflect.TypeOf(false), wantErr: true},
		{name: "missing is zero", raw: nil, typ: reflect.TypeOf(0), want: 0},
		{name: "assignable used as is", raw: []string{"a"}, typ: reflect.TypeOf([]string{}), want: []string{"a"}},
		{name: "unsupported kind", raw: "x", typ: reflect.TypeOf(map[string]int{}), wantErr: true},
		{name: "unsupported source", raw: 3, typ: reflect.TypeOf(""), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := castValue("p", tt.raw, tt.typ)
			if tt.wantErr {
				var ce *CastError
				assert.True(t, errors.As(err, &ce), "expected CastError, got %v", err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Interface())
		})
	}

	t.Run("pointer to scalar", func(t *testing.T) {
		v, err := castValue("p", "9", reflect.TypeOf((*int)(nil)))
		require.NoError(t, err)
		p := v.Interface().(*int)
		require.NotNil(t, p)
		assert.Equal(t, 9, *p)
	})
}

func TestNormalizeResult(t *testing.T) {
	call := func(name string) []reflect.Value {
		return reflect.ValueOf(postController{}).MethodByName(name).Call(nil)
	}

	t.Run("no results", func(t *testing.T) {
		resp, err := normalizeResult(call("Nothing"))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.Status)
		assert.Empty(t, resp.Body)
	})

	t.Run("nil response", func(t *testing.T) {
		resp, err := normalizeResult(call("NilResponse"))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.Status)
	})

	t.Run("bytes", func(t *testing.T) {
		resp, err := normalizeResult(call("Bytes"))
		require.NoError(t, err)
		assert.Equal(t, "raw", string(resp.Body))
	})

	t.Run("error", func(t *testing.T) {
		_, err := normalizeResult(call("Fail"))
		assert.EqualError(t, err, "boom")
	})

	t.Run("too many values", func(t *testing.T) {
		_, err := normalizeResult(call("TooMany"))
		assert.ErrorContains(t, err, "returned 2 values")
	})
}
