package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/arthurv/ticketd/pkg/model"
	"github.com/arthurv/ticketd/pkg/server/store"
)

// Ensure Priorities implements store.Priorities
var _ store.Priorities = (*Priorities)(nil)

// Priorities implements store.Priorities using GORM
type Priorities struct {
	db *gorm.DB
}

// NewPriorities creates a new Priorities store
func NewPriorities(db *gorm.DB) *Priorities {
	return &Priorities{db: db}
}

func (s *Priorities) List() ([]model.Priority, error) {
	var priorities []model.Priority
	tx := s.db.Order("id").Find(&priorities)
	return priorities, tx.Error
}

func (s *Priorities) FindByID(id uint) (*model.Priority, error) {
	var priority model.Priority
	tx := s.db.First(&priority, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, tx.Error
	}
	return &priority, nil
}

func (s *Priorities) Create(priority *model.Priority) error {
	return s.db.Create(priority).Error
}

func (s *Priorities) Update(priority *model.Priority) error {
	return s.db.Save(priority).Error
}

func (s *Priorities) Delete(id uint) error {
	tx := s.db.Delete(&model.Priority{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
