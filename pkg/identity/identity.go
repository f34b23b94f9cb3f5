package identity

import (
	"context"

	"github.com/arthurv/ticketd/pkg/model"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Identity is the resolved caller for one request. It is created by the
// inbound request filter, stored in the request context, and read-only
// afterwards. Requests without a valid token simply carry no Identity.
type Identity struct {
	UserID uint
	Handle string
	Role   model.Role
}

// FromUser creates an Identity from a live user record.
func FromUser(user *model.User) *Identity {
	return &Identity{
		UserID: user.ID,
		Handle: user.Handle,
		Role:   user.Role,
	}
}

// IsAdmin reports whether the identity holds the administrator role.
func (i *Identity) IsAdmin() bool {
	return i.Role == model.RoleAdministrator
}

// Get retrieves Identity from context. The second return is false for
// anonymous requests.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}
