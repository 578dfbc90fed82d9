package mux

import (
	"reflect"
)

// Resolver produces instances by name. Route handlers written as
// "Type@method" and middleware names are resolved through it.
type Resolver interface {
	Resolve(name string) (any, error)
}

// ServiceResolver is a Resolver that can also produce an instance for a
// parameter type. The argument binder injects such services into handler
// methods.
type ServiceResolver interface {
	Resolver
	ResolveType(t reflect.Type) (any, bool)
}

// ResolverFunc adapts an ordinary function to Resolver.
type ResolverFunc func(name string) (any, error)

// Resolve calls f(name).
func (f ResolverFunc) Resolve(name string) (any, error) {
	return f(name)
}
