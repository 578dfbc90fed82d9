package mux

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

var (
	requestType  = reflect.TypeOf((*Request)(nil))
	contextType  = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
	responseType = reflect.TypeOf((*Response)(nil))
)

// routeTag is the struct tag naming the bound value of a field.
const routeTag = "route"

// invoke runs the route handler with the bound arguments. names lists the
// bound value names in positional order and values holds them by name.
func (r *Router) invoke(req *Request, h Handler, names []string, values map[string]any) (*Response, error) {
	switch h.kind {
	case handlerInline:
		args := make([]string, 0, len(names))
		for _, name := range names {
			s, _ := values[name].(string)
			args = append(args, s)
		}
		resp, err := h.inline(req, args...)
		if err != nil {
			return nil, err
		}
		if resp == nil {
			resp = &Response{Status: http.StatusOK}
		}
		return resp, nil
	case handlerResolved:
		inst, err := r.resolver.Resolve(h.typeName)
		if err != nil {
			return nil, fmt.Errorf("mux: resolve %q: %w", h.typeName, err)
		}
		if inst == nil {
			return nil, fmt.Errorf("mux: resolve %q: resolver returned nil", h.typeName)
		}

		method := reflect.ValueOf(inst).MethodByName(h.method)
		if !method.IsValid() {
			return nil, fmt.Errorf("mux: %s (%T) has no method %q", h.typeName, inst, h.method)
		}

		in, err := r.bindArgs(req, method.Type(), names, values)
		if err != nil {
			return nil, err
		}

		return normalizeResult(method.Call(in))
	default:
		return nil, errors.New("mux: route has no handler")
	}
}

// bindArgs builds the argument list for a handler method.
//
// Each declared parameter is bound by the first rule that applies:
// *Request and context.Context come from the current request; a type the
// resolver provides is injected; a struct (or pointer to struct) with
// route-tagged fields is filled by name; anything else takes the next
// positional value and is cast to the parameter type.
func (r *Router) bindArgs(req *Request, mt reflect.Type, names []string, values map[string]any) ([]reflect.Value, error) {
	if mt.IsVariadic() {
		return nil, fmt.Errorf("mux: variadic handler %s is not supported", mt)
	}

	in := make([]reflect.Value, mt.NumIn())
	next := 0

	for i := range in {
		t := mt.In(i)

		switch {
		case t == requestType:
			in[i] = reflect.ValueOf(req)
			continue
		case t == contextType:
			in[i] = reflect.ValueOf(req.Context())
			continue
		}

		if !isScalar(t) {
			if svc, ok := r.resolveService(t); ok {
				in[i] = svc
				continue
			}
		}

		if hasRouteTags(t) {
			v, err := bindStruct(t, values)
			if err != nil {
				return nil, err
			}
			in[i] = v
			continue
		}

		var (
			name string
			raw  any
		)
		if next < len(names) {
			name = names[next]
			raw = values[name]
		} else {
			name = fmt.Sprintf("#%d", i)
		}
		next++

		v, err := castValue(name, raw, t)
		if err != nil {
			return nil, err
		}
		in[i] = v
	}

	return in, nil
}

// resolveService asks a ServiceResolver for an instance of t.
func (r *Router) resolveService(t reflect.Type) (reflect.Value, bool) {
	sr, ok := r.resolver.(ServiceResolver)
	if !ok {
		return reflect.Value{}, false
	}

	svc, ok := sr.ResolveType(t)
	if !ok || svc == nil {
		return reflect.Value{}, false
	}

	v := reflect.ValueOf(svc)
	if !v.Type().AssignableTo(t) {
		return reflect.Value{}, false
	}
	return v, true
}

// isScalar reports whether t is a scalar the cast table handles, or a
// pointer to one.
func isScalar(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// structType returns the struct type behind t, if any.
func structType(t reflect.Type) (reflect.Type, bool) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t, t.Kind() == reflect.Struct
}

// hasRouteTags reports whether t is a struct, or pointer to struct, with at
// least one exported route-tagged field.
func hasRouteTags(t reflect.Type) bool {
	st, ok := structType(t)
	if !ok {
		return false
	}
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if _, ok := f.Tag.Lookup(routeTag); ok && f.IsExported() {
			return true
		}
	}
	return false
}

// bindStruct fills the route-tagged fields of a new t from values. Fields
// whose name is absent keep their zero value.
func bindStruct(t reflect.Type, values map[string]any) (reflect.Value, error) {
	st, _ := structType(t)
	v := reflect.New(st).Elem()

	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		name, ok := f.Tag.Lookup(routeTag)
		if !ok || name == "" || name == "-" || !f.IsExported() {
			continue
		}

		raw, present := values[name]
		if !present {
			continue
		}

		fv, err := castValue(name, raw, f.Type)
		if err != nil {
			return reflect.Value{}, err
		}
		v.Field(i).Set(fv)
	}

	if t.Kind() == reflect.Pointer {
		return v.Addr(), nil
	}
	return v, nil
}

// castValue converts raw to t. A missing value binds to the zero value of t,
// nil for pointers. Values already assignable to t are used as is; strings
// go through the cast table.
func castValue(name string, raw any, t reflect.Type) (reflect.Value, error) {
	if raw == nil {
		return reflect.Zero(t), nil
	}

	rv := reflect.ValueOf(raw)
	if rv.Type().AssignableTo(t) {
		out := reflect.New(t).Elem()
		out.Set(rv)
		return out, nil
	}

	s, ok := raw.(string)
	if !ok {
		return reflect.Value{}, &CastError{Param: name, Type: t.String(), Err: fmt.Errorf("unsupported source %T", raw)}
	}

	if t.Kind() == reflect.Pointer {
		elem, err := castString(name, s, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(elem)
		return p, nil
	}

	return castString(name, s, t)
}

// castString is the permissive cast table: int, uint, float, bool and
// string kinds.
func castString(name, s string, t reflect.Type) (reflect.Value, error) {
	out := reflect.New(t).Elem()
	s = strings.TrimSpace(s)

	switch t.Kind() {
	case reflect.String:
		out.SetString(s)
	case reflect.Bool:
		b, err := parseBool(s)
		if err != nil {
			return reflect.Value{}, &CastError{Param: name, Type: t.String(), Err: err}
		}
		out.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, &CastError{Param: name, Type: t.String(), Err: err}
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, &CastError{Param: name, Type: t.String(), Err: err}
		}
		out.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, t.Bits())
		if err != nil {
			return reflect.Value{}, &CastError{Param: name, Type: t.String(), Err: err}
		}
		out.SetFloat(f)
	default:
		return reflect.Value{}, &CastError{Param: name, Type: t.String(), Err: errors.New("unsupported parameter type")}
	}

	return out, nil
}

// parseBool accepts strconv.ParseBool forms plus yes/no and on/off.
// An empty string is false.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "", "no", "off":
		return false, nil
	case "yes", "on":
		return true, nil
	}
	return strconv.ParseBool(s)
}

// normalizeResult converts handler method results to a Response.
// Accepted shapes are none, *Response, string, []byte or any other value
// (encoded as JSON), each optionally followed by an error.
func normalizeResult(out []reflect.Value) (*Response, error) {
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		if !out[n-1].IsNil() {
			return nil, out[n-1].Interface().(error)
		}
		out = out[:n-1]
	}

	switch len(out) {
	case 0:
		return &Response{Status: http.StatusOK}, nil
	case 1:
	default:
		return nil, fmt.Errorf("mux: handler returned %d values", len(out))
	}

	if out[0].Type() == responseType {
		if out[0].IsNil() {
			return &Response{Status: http.StatusOK}, nil
		}
		return out[0].Interface().(*Response), nil
	}

	switch v := out[0].Interface().(type) {
	case string:
		return Text(http.StatusOK, v), nil
	case []byte:
		return &Response{Status: http.StatusOK, Header: make(http.Header), Body: v}, nil
	default:
		return JSON(http.StatusOK, v)
	}
}
