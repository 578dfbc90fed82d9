package muxhandlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dvnc0/gimli/mux"
)

var (
	uuidV4Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	uuidV7Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
)

func TestRequestIDMiddleware(t *testing.T) {
	const incomingUUID = "0190a4d6-3c1e-7b2a-9f00-123456789abc"

	tests := []struct {
		name           string
		config         RequestIDConfig
		incomingHeader string
		wantHeader     string
		wantGenerated  bool
	}{
		{
			name:          "generates UUID v7 by default",
			config:        RequestIDConfig{},
			wantGenerated: true,
		},
		{
			name:           "does not trust incoming by default",
			config:         RequestIDConfig{},
			incomingHeader: incomingUUID,
			wantGenerated:  true,
		},
		{
			name:           "trusts incoming when configured",
			config:         RequestIDConfig{TrustIncoming: true},
			incomingHeader: incomingUUID,
			wantHeader:     incomingUUID,
		},
		{
			name:           "replaces incoming that is not a uuid",
			config:         RequestIDConfig{TrustIncoming: true},
			incomingHeader: "<script>",
			wantGenerated:  true,
		},
		{
			name:          "generates when trust incoming but no header",
			config:        RequestIDConfig{TrustIncoming: true},
			wantGenerated: true,
		},
		{
			name:       "custom generate func",
			config:     RequestIDConfig{GenerateFunc: func() string { return "custom-id" }},
			wantHeader: "custom-id",
		},
		{
			name:       "custom header name",
			config:     RequestIDConfig{HeaderName: "X-Trace-ID", GenerateFunc: func() string { return "trace-123" }},
			wantHeader: "trace-123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var capturedHeader, capturedContext string

			headerName := tt.config.HeaderName
			if headerName == "" {
				headerName = DefaultRequestIDHeader
			}

			r := newRouter(t, func(req *mux.Request, _ ...string) (*mux.Response, error) {
				capturedHeader = req.Header.Get(headerName)
				capturedContext = RequestIDFromContext(req.Context())
				return nil, nil
			})
			r.Use(RequestIDMiddleware(tt.config))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.incomingHeader != "" {
				req.Header.Set(headerName, tt.incomingHeader)
			}
			r.ServeHTTP(w, req)

			responseHeader := w.Header().Get(headerName)

			if tt.wantGenerated {
				assert.Regexp(t, uuidV7Regex, responseHeader)
				assert.NotEqual(t, tt.incomingHeader, responseHeader)
			} else {
				assert.Equal(t, tt.wantHeader, responseHeader)
			}

			assert.Equal(t, responseHeader, capturedHeader)
			assert.Equal(t, responseHeader, capturedContext)
		})
	}

	t.Run("each request gets unique ID", func(t *testing.T) {
		r := newRouter(t, okHandler)
		r.Use(RequestIDMiddleware(RequestIDConfig{}))

		w1 := httptest.NewRecorder()
		r.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/test", nil))

		w2 := httptest.NewRecorder()
		r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/test", nil))

		id1 := w1.Header().Get(DefaultRequestIDHeader)
		id2 := w2.Header().Get(DefaultRequestIDHeader)

		assert.NotEmpty(t, id1)
		assert.NotEmpty(t, id2)
		assert.NotEqual(t, id1, id2)
	})

	t.Run("empty id does not set headers", func(t *testing.T) {
		var captured string

		r := newRouter(t, func(req *mux.Request, _ ...string) (*mux.Response, error) {
			captured = req.Header.Get(DefaultRequestIDHeader)
			return nil, nil
		})
		r.Use(RequestIDMiddleware(RequestIDConfig{
			GenerateFunc: func() string { return "" },
		}))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Empty(t, captured)
		assert.Empty(t, w.Header().Get(DefaultRequestIDHeader))
	})
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))

	ctx := ContextWithRequestID(context.Background(), "run-1")
	assert.Equal(t, "run-1", RequestIDFromContext(ctx))
}

func TestGenerateUUID(t *testing.T) {
	assert.Regexp(t, uuidV4Regex, GenerateUUIDv4())
	assert.Regexp(t, uuidV7Regex, GenerateUUIDv7())

	a, b := GenerateUUIDv7(), GenerateUUIDv7()
	assert.LessOrEqual(t, a, b, "v7 ids are time ordered")
}
