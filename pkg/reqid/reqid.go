// Package reqid tags every request with a correlation ID. The ID rides the
// X-Request-ID header and the request context, and the logging middleware
// stamps it onto every log line produced while handling that request.
package reqid

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
)

// Header carries the request ID between client, proxies and server.
const Header = "X-Request-ID"

type idKey struct{}

// New returns a fresh 32-character hex ID.
func New() string {
	var raw [16]byte
	_, _ = rand.Read(raw[:])
	return hex.EncodeToString(raw[:])
}

// WithValue attaches id to ctx.
func WithValue(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, idKey{}, id)
}

// FromCtx returns the request ID stored in ctx, or "" when there is none.
func FromCtx(ctx context.Context) string {
	id, _ := ctx.Value(idKey{}).(string)
	return id
}

// Middleware assigns each request an ID and echoes it in the response.
// An ID already present on the request (set by a proxy or a retrying
// client) is reused instead of replaced.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if id == "" {
				id = New()
			}
			w.Header().Set(Header, id)
			next.ServeHTTP(w, r.WithContext(WithValue(r.Context(), id)))
		})
	}
}
