package kit_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MiniCatalog/pkg/kit"
)

func TestResolveRequestID_AdoptsValidHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(kit.RequestIDHeader, "my-trace-1")
	w := httptest.NewRecorder()

	id, r2 := kit.ResolveRequestID(w, r)

	assert.Equal(t, "my-trace-1", id)
	assert.Equal(t, "my-trace-1", w.Header().Get(kit.RequestIDHeader))
	assert.Equal(t, "my-trace-1", kit.RequestIDFromContext(r2.Context()))
	assert.Equal(t, "my-trace-1", chimw.GetReqID(r2.Context()))
}

func TestResolveRequestID_GeneratesWhenInvalid(t *testing.T) {
	cases := map[string]string{
		"missing":    "",
		"bad chars":  "trace id with spaces",
		"underscore": "trace_1",
		"too long":   strings.Repeat("a", 65),
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				r.Header.Set(kit.RequestIDHeader, header)
			}
			w := httptest.NewRecorder()

			id, _ := kit.ResolveRequestID(w, r)

			assert.NotEqual(t, header, id)
			assert.Regexp(t, `^[0-9a-f]{32}$`, id)
			assert.Equal(t, id, w.Header().Get(kit.RequestIDHeader))
		})
	}
}

func TestResolveRequestID_AcceptsMaxLength(t *testing.T) {
	want := strings.Repeat("A-9", 21) + "z"
	require.Len(t, want, 64)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(kit.RequestIDHeader, want)

	id, _ := kit.ResolveRequestID(httptest.NewRecorder(), r)
	assert.Equal(t, want, id)
}

func TestResolveRequestID_Idempotent(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	first, r := kit.ResolveRequestID(w, r)

	w.Header().Del(kit.RequestIDHeader)
	second, r2 := kit.ResolveRequestID(w, r)

	assert.Equal(t, first, second)
	assert.Same(t, r, r2)
	assert.Empty(t, w.Header().Get(kit.RequestIDHeader), "second call must not repeat the side effect")
}

func TestNewRequestID_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for range 1000 {
		id := kit.NewRequestID()
		require.True(t, kit.ValidRequestID(id))
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	h := kit.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = kit.RequestIDFromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(kit.RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get(kit.RequestIDHeader))
}
