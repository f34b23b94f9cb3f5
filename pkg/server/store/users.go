package store

import "github.com/arthurv/ticketd/pkg/model"

// Users abstracts identity-record storage. Handle uniqueness is enforced
// here, atomically: of two concurrent Create calls with the same handle
// exactly one succeeds and the other gets ErrDuplicateHandle.
type Users interface {
	// FindByHandle retrieves a user by unique handle. Returns ErrNotFound
	// when the handle is unknown.
	FindByHandle(handle string) (*model.User, error)

	// FindByID retrieves a user by primary key.
	FindByID(id uint) (*model.User, error)

	// List returns all users.
	List() ([]model.User, error)

	// Create persists a new user, assigning its ID. Returns
	// ErrDuplicateHandle when the handle is already taken.
	Create(user *model.User) error

	// Update persists changes to an existing user.
	Update(user *model.User) error

	// Delete removes a user by primary key. Returns ErrNotFound when the
	// user does not exist.
	Delete(id uint) error

	// SetRole updates just the role of the named user. Used by the
	// out-of-band promote/demote commands.
	SetRole(handle string, role model.Role) error
}
