// Package identity provides the per-request authenticated identity for ticketd.
//
// An Identity is the minimal fact set about the caller (user id, handle,
// role), resolved once per request by the identity middleware and carried in
// the request context. There is deliberately no process-wide "current user":
// each request gets its own isolated value.
//
// # Basic Usage
//
//	// Populate (done by the middleware)
//	ctx = identity.Set(ctx, identity.FromUser(user))
//
//	// Read (handlers and the authorization gate)
//	id, ok := identity.Get(ctx)
package identity
