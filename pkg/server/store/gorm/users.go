package gorm

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/arthurv/ticketd/pkg/model"
	"github.com/arthurv/ticketd/pkg/server/store"
)

// Ensure Users implements store.Users
var _ store.Users = (*Users)(nil)

// Users implements store.Users using GORM
type Users struct {
	db *gorm.DB
}

// NewUsers creates a new Users store
func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// FindByHandle retrieves a user by unique handle
func (s *Users) FindByHandle(handle string) (*model.User, error) {
	var user model.User
	tx := s.db.Where("handle = ?", handle).First(&user)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, tx.Error
	}
	return &user, nil
}

// FindByID retrieves a user by primary key
func (s *Users) FindByID(id uint) (*model.User, error) {
	var user model.User
	tx := s.db.First(&user, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, tx.Error
	}
	return &user, nil
}

// List returns all users
func (s *Users) List() ([]model.User, error) {
	var users []model.User
	tx := s.db.Order("id").Find(&users)
	return users, tx.Error
}

// Create persists a new user. The unique index on handle resolves races
// between concurrent registrations; the losing insert surfaces as
// store.ErrDuplicateHandle.
func (s *Users) Create(user *model.User) error {
	tx := s.db.Create(user)
	if tx.Error != nil {
		if isUniqueViolation(tx.Error) {
			return store.ErrDuplicateHandle
		}
		return tx.Error
	}
	return nil
}

// Update persists changes to an existing user
func (s *Users) Update(user *model.User) error {
	tx := s.db.Save(user)
	if tx.Error != nil && isUniqueViolation(tx.Error) {
		return store.ErrDuplicateHandle
	}
	return tx.Error
}

// Delete removes a user by primary key
func (s *Users) Delete(id uint) error {
	tx := s.db.Delete(&model.User{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// SetRole updates just the role of the named user
func (s *Users) SetRole(handle string, role model.Role) error {
	tx := s.db.Model(&model.User{}).Where("handle = ?", handle).Update("role", role.String())
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505), regardless of which driver produced it.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value")
}
