package mux

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// Literal bodies written by the dispatch boundary.
const (
	BodyNotFound         = "404 page not found"
	BodyBadRequest       = "Bad Request: Invalid parameters"
	BodyMethodNotAllowed = "405 method not allowed"
	BodyInternalError    = "500 internal server error"
	BodyCommandNotFound  = "Command not found"
)

// ExitCommandNotFound is the process exit code for an unknown CLI command.
const ExitCommandNotFound = 127

// Response is the opaque result of a dispatch call. It is handed to an
// emitter: Write for HTTP, or the caller's own output for CLI.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
	// JSON marks Body as an encoded JSON document.
	JSON bool
}

// Text returns a plain-text response.
func Text(code int, body string) *Response {
	h := make(http.Header)
	h.Set("Content-Type", "text/plain; charset=utf-8")
	return &Response{Status: code, Header: h, Body: []byte(body)}
}

// JSON encodes v and returns it as a JSON response with the given status
// code. Encoding errors are returned to the caller.
func JSON(code int, v any) (*Response, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}

	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	return &Response{Status: code, Header: h, Body: buf.Bytes(), JSON: true}, nil
}

// Redirect returns a 302 Found response pointing at location.
func Redirect(location string) *Response {
	if location == "" {
		location = "/"
	}
	h := make(http.Header)
	h.Set("Location", location)
	return &Response{Status: http.StatusFound, Header: h}
}

// Write emits the response to w. A zero status is written as 200.
func (r *Response) Write(w http.ResponseWriter) {
	for k, vv := range r.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}

	code := r.Status
	if code == 0 {
		code = http.StatusOK
	}
	w.WriteHeader(code)
	w.Write(r.Body)
}

// ExitCode maps a CLI response to a process exit code: 0 for success,
// ExitCommandNotFound for an unknown command and 1 otherwise.
func ExitCode(r *Response) int {
	switch {
	case r == nil:
		return 1
	case r.Status == 0 || (r.Status >= 200 && r.Status < 300):
		return 0
	case r.Status == http.StatusNotFound:
		return ExitCommandNotFound
	default:
		return 1
	}
}
