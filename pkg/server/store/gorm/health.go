package gorm

import (
	"gorm.io/gorm"

	"github.com/arthurv/ticketd/pkg/server/store"
)

// Ensure Health implements store.Health
var _ store.Health = (*Health)(nil)

// Health implements store.Health using GORM
type Health struct {
	db *gorm.DB
}

// NewHealth creates a new Health store
func NewHealth(db *gorm.DB) *Health {
	return &Health{db: db}
}

// Ping verifies the database connection is usable
func (s *Health) Ping() error {
	return s.db.Exec("SELECT 1").Error
}
