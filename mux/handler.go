package mux

import (
	"fmt"
	"strings"
)

// InvokeMethod is the conventional method bound for CLI commands.
const InvokeMethod = "Invoke"

// InlineFunc is an inline route handler. It receives the validated capture
// values positionally, in capture-name order.
type InlineFunc func(req *Request, args ...string) (*Response, error)

type handlerKind uint8

const (
	handlerNone handlerKind = iota
	handlerInline
	handlerResolved
)

// Handler references the code a route dispatches to: either an inline
// function or a method on an instance the resolver produces by type name.
type Handler struct {
	kind     handlerKind
	inline   InlineFunc
	typeName string
	method   string
}

// Inline returns a Handler invoking fn directly.
func Inline(fn InlineFunc) Handler {
	return Handler{kind: handlerInline, inline: fn}
}

// Resolved returns a Handler invoking method on the instance the resolver
// returns for typeName.
func Resolved(typeName, method string) Handler {
	return Handler{kind: handlerResolved, typeName: typeName, method: method}
}

// Command returns a Handler invoking the Invoke method of typeName.
func Command(typeName string) Handler {
	return Resolved(typeName, InvokeMethod)
}

// ParseHandler parses the "Type@method" form. A reference without "@"
// names a command type and binds Invoke.
func ParseHandler(ref string) (Handler, error) {
	typeName, method, ok := strings.Cut(ref, "@")
	if !ok {
		method = InvokeMethod
	}

	if typeName == "" || method == "" || strings.Contains(method, "@") {
		return Handler{}, fmt.Errorf("mux: invalid handler reference %q", ref)
	}

	return Resolved(typeName, method), nil
}

// MustParseHandler is like ParseHandler but panics on error.
func MustParseHandler(ref string) Handler {
	h, err := ParseHandler(ref)
	if err != nil {
		panic(err)
	}
	return h
}

// IsZero reports whether h references nothing.
func (h Handler) IsZero() bool {
	return h.kind == handlerNone || (h.kind == handlerInline && h.inline == nil)
}

// TypeName returns the resolver type name, empty for inline handlers.
func (h Handler) TypeName() string {
	return h.typeName
}

// Method returns the bound method name, empty for inline handlers.
func (h Handler) Method() string {
	return h.method
}

// String returns "Type@method" for resolved handlers and "inline" otherwise.
func (h Handler) String() string {
	switch h.kind {
	case handlerInline:
		return "inline"
	case handlerResolved:
		return h.typeName + "@" + h.method
	default:
		return "none"
	}
}
