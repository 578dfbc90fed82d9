package app

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrUnresolved is returned when a name has no registration.
var ErrUnresolved = errors.New("app: unresolved name")

// Container resolves handler types and middleware by name and injects
// services by type. It implements mux.ServiceResolver.
//
// Registration happens during bootstrap; resolution is safe for concurrent
// use.
type Container struct {
	mu        sync.RWMutex
	factories map[string]func() (any, error)
	services  map[reflect.Type]any
}

// NewContainer returns an empty Container.
func NewContainer() *Container {
	return &Container{
		factories: make(map[string]func() (any, error)),
		services:  make(map[reflect.Type]any),
	}
}

// Register binds name to a shared instance.
func (c *Container) Register(name string, v any) {
	c.Factory(name, func() (any, error) { return v, nil })
}

// Factory binds name to fn, called on every resolution.
func (c *Container) Factory(name string, fn func() (any, error)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.factories[name] = fn
}

// Provide registers v as the service injected into handler parameters of
// type T. T is usually an interface.
func Provide[T any](c *Container, v T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.services[reflect.TypeFor[T]()] = v
}

// Resolve returns the instance registered under name.
func (c *Container) Resolve(name string) (any, error) {
	c.mu.RLock()
	fn, ok := c.factories[name]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnresolved, name)
	}

	v, err := fn()
	if err != nil {
		return nil, fmt.Errorf("app: build %q: %w", name, err)
	}
	return v, nil
}

// ResolveType returns the service provided for t.
func (c *Container) ResolveType(t reflect.Type) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.services[t]
	return v, ok
}
