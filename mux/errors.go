package mux

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no route matches the request path.
// Dispatch answers it with 404 Not Found.
var ErrNotFound = errors.New("no matching route was found")

// ErrMethodNotAllowed is returned when the request method is outside the
// allowed set. Dispatch answers it with 405 Method Not Allowed.
var ErrMethodNotAllowed = errors.New("method is not allowed")

// ErrCommandNotFound is returned when a CLI invocation names no registered
// command. It wraps ErrNotFound.
var ErrCommandNotFound = fmt.Errorf("command not found: %w", ErrNotFound)

// ErrBadRequest is the sentinel matched by BadRequestError and CastError.
var ErrBadRequest = errors.New("invalid route parameters")

// ErrSealed is the panic value used when a builder is mutated after Build.
var ErrSealed = errors.New("mux: builder is sealed, routes are registered only before Build")

// ErrNoRoutes is wrapped in the RegistrationError Build returns when no
// route was registered.
var ErrNoRoutes = errors.New("no routes registered")

// RegistrationError reports a route that could not be registered.
type RegistrationError struct {
	Method string
	Path   string
	Err    error
}

func (e *RegistrationError) Error() string {
	if e.Method == "" && e.Path == "" {
		return fmt.Sprintf("mux: registration failed: %v", e.Err)
	}
	return fmt.Sprintf("mux: cannot register %s %q: %v", e.Method, e.Path, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// BadRequestError reports a captured value that failed validation.
type BadRequestError struct {
	// Param is the capture name. Empty when a path segment failed its
	// placeholder type.
	Param string
	// Reason is a short machine-friendly description.
	Reason string
}

func (e *BadRequestError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("mux: bad request: %s", e.Reason)
	}
	return fmt.Sprintf("mux: bad request: parameter %q: %s", e.Param, e.Reason)
}

// Is reports whether target is ErrBadRequest.
func (e *BadRequestError) Is(target error) bool {
	return target == ErrBadRequest
}

// CastError reports a bound value that could not be converted to the type
// of the parameter it was bound to.
type CastError struct {
	Param string
	Type  string
	Err   error
}

func (e *CastError) Error() string {
	return fmt.Sprintf("mux: cannot cast parameter %q to %s: %v", e.Param, e.Type, e.Err)
}

func (e *CastError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrBadRequest.
func (e *CastError) Is(target error) bool {
	return target == ErrBadRequest
}

// MiddlewareContractError reports a resolved middleware that does not
// implement Middleware.
type MiddlewareContractError struct {
	Name string
	Got  string
}

func (e *MiddlewareContractError) Error() string {
	return fmt.Sprintf("mux: middleware %q resolved to %s which does not implement Process", e.Name, e.Got)
}
