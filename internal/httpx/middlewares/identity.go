// Package middlewares carries the HTTP middleware of the checkout API.
package middlewares

import (
	"context"
	"net/http"
)

// Header names of the identity contract. Authentication itself happens
// upstream (routing layer); this service only reads who the caller is.
const (
	HeaderUserID    = "X-User-ID"
	HeaderUserEmail = "X-User-Email"
)

type contextKey string

const userKey contextKey = "checkout-user"

// User identifies the authenticated customer as asserted by the upstream
// gateway. Zero value means anonymous.
type User struct {
	ID    string
	Email string
}

// AttachIdentity copies the identity headers into the request context so
// handlers and logs can reference the current user without re-reading
// headers.
func AttachIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := User{
			ID:    r.Header.Get(HeaderUserID),
			Email: r.Header.Get(HeaderUserEmail),
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}

// UserFrom extracts the identity from a request context. Returns the zero
// User when none was attached.
func UserFrom(ctx context.Context) User {
	// Comma-ok keeps the zero value on a missing or mistyped entry.
	u, _ := ctx.Value(userKey).(User)
	return u
}
