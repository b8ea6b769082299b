package kit

import (
	"context"
	"encoding/hex"
	"net/http"
	"regexp"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

var validRequestID = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

// ResolveRequestID returns the request's trace id, attaching it to the
// context and the response header the first time it is called. Callers must
// continue with the returned request.
func ResolveRequestID(w http.ResponseWriter, r *http.Request) (string, *http.Request) {
	if id := RequestIDFromContext(r.Context()); id != "" {
		return id, r
	}

	id := r.Header.Get(RequestIDHeader)
	if !ValidRequestID(id) {
		id = NewRequestID()
	}

	w.Header().Set(RequestIDHeader, id)
	ctx := context.WithValue(r.Context(), chimw.RequestIDKey, id)
	return id, r.WithContext(ctx)
}

func RequestIDFromContext(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

func ValidRequestID(s string) bool {
	return validRequestID.MatchString(s)
}

// NewRequestID returns 32 lowercase hex characters.
func NewRequestID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// RequestID is the first pipeline stage.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, r = ResolveRequestID(w, r)
		next.ServeHTTP(w, r)
	})
}
