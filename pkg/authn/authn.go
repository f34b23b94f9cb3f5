// Package authn implements credential issuance and verification for ticketd.
package authn

import (
	"github.com/arthurv/ticketd/pkg/model"
	"github.com/arthurv/ticketd/pkg/password"
	"github.com/arthurv/ticketd/pkg/server/store"
)

// Authenticator registers users and verifies their credentials against the
// user store. It owns no state beyond its collaborators and is safe for
// concurrent use.
type Authenticator struct {
	users  store.Users
	hasher *password.Hasher
}

// New creates an Authenticator.
func New(users store.Users, hasher *password.Hasher) *Authenticator {
	return &Authenticator{users: users, hasher: hasher}
}

// Register creates a new standard user. The secret is hashed before it is
// persisted; the plaintext never leaves this call. Returns ErrInvalidInput
// when handle or secret is empty and store.ErrDuplicateHandle when the handle
// is taken.
func (a *Authenticator) Register(handle, secret string) (*model.User, error) {
	if handle == "" || secret == "" {
		return nil, ErrInvalidInput
	}

	hash, err := a.hasher.Hash(secret)
	if err != nil {
		return nil, err
	}

	// Registration can never mint an administrator.
	user := &model.User{
		Handle:       handle,
		PasswordHash: hash,
		Role:         model.RoleStandard,
	}
	if err := a.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateWithRole creates a user with an explicit role. It backs the
// administrative user-management surface; the public registration path goes
// through Register and is pinned to the standard role.
func (a *Authenticator) CreateWithRole(handle, secret string, role model.Role) (*model.User, error) {
	if handle == "" || secret == "" {
		return nil, ErrInvalidInput
	}

	hash, err := a.hasher.Hash(secret)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Handle:       handle,
		PasswordHash: hash,
		Role:         role,
	}
	if err := a.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ResetPassword replaces the stored hash for handle with a hash of secret.
func (a *Authenticator) ResetPassword(handle, secret string) error {
	if handle == "" || secret == "" {
		return ErrInvalidInput
	}

	user, err := a.users.FindByHandle(handle)
	if err != nil {
		return err
	}

	hash, err := a.hasher.Hash(secret)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	return a.users.Update(user)
}

// Authenticate verifies a handle/secret pair and returns the matching user.
// Unknown handle and wrong secret fail with the same ErrInvalidCredentials.
func (a *Authenticator) Authenticate(handle, secret string) (*model.User, error) {
	if handle == "" || secret == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := a.users.FindByHandle(handle)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !a.hasher.Verify(secret, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
