// Package middleware holds the HTTP middleware that resolves request
// identity from bearer tokens.
package middleware

import (
	"net/http"
	"strings"

	"github.com/arthurv/ticketd/pkg/identity"
	"github.com/arthurv/ticketd/pkg/server/store"
	"github.com/arthurv/ticketd/pkg/token"
)

const bearerPrefix = "Bearer "

// IdentityFilter resolves the caller from the Authorization header and, when
// a valid token names a live account, attaches an Identity to the request
// context. It never rejects a request: a missing, malformed, or stale token
// just leaves the request anonymous, and the authorization gate decides
// downstream whether that is acceptable.
type IdentityFilter struct {
	codec *token.Codec
	users store.Users
}

// NewIdentityFilter creates an IdentityFilter.
func NewIdentityFilter(codec *token.Codec, users store.Users) *IdentityFilter {
	return &IdentityFilter{codec: codec, users: users}
}

// Middleware returns the HTTP middleware for the filter.
func (f *IdentityFilter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			next.ServeHTTP(w, r)
			return
		}

		claim, err := f.codec.Decode(strings.TrimPrefix(authHeader, bearerPrefix))
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		// The role carried inside the token is only a snapshot from login
		// time. The live record is authoritative, so a demoted or deleted
		// account cannot keep acting on an old token.
		user, err := f.users.FindByHandle(claim.Handle)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		r = r.WithContext(identity.Set(r.Context(), identity.FromUser(user)))
		next.ServeHTTP(w, r)
	})
}
