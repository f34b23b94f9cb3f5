package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/arthurv/ticketd/pkg/model"
	"github.com/arthurv/ticketd/pkg/server/store"
)

// Ensure Tickets implements store.Tickets
var _ store.Tickets = (*Tickets)(nil)

// Tickets implements store.Tickets using GORM
type Tickets struct {
	db *gorm.DB
}

// NewTickets creates a new Tickets store
func NewTickets(db *gorm.DB) *Tickets {
	return &Tickets{db: db}
}

func (s *Tickets) preloaded() *gorm.DB {
	return s.db.
		Preload("Priority").
		Preload("Categories").
		Preload("SubmittingUser").
		Preload("ResolvingUser")
}

// List returns all tickets with their associations preloaded
func (s *Tickets) List() ([]model.Ticket, error) {
	var tickets []model.Ticket
	tx := s.preloaded().Order("id").Find(&tickets)
	return tickets, tx.Error
}

// FindByID retrieves one ticket with its associations preloaded
func (s *Tickets) FindByID(id uint) (*model.Ticket, error) {
	var ticket model.Ticket
	tx := s.preloaded().First(&ticket, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, tx.Error
	}
	return &ticket, nil
}

// Create persists a new ticket
func (s *Tickets) Create(ticket *model.Ticket) error {
	return s.db.Create(ticket).Error
}

// Update persists changes to an existing ticket, replacing its category
// associations
func (s *Tickets) Update(ticket *model.Ticket) error {
	if err := s.db.Model(ticket).Association("Categories").Replace(ticket.Categories); err != nil {
		return err
	}
	return s.db.Omit("Categories").Save(ticket).Error
}

// Delete removes a ticket by primary key, clearing its category links first
func (s *Tickets) Delete(id uint) error {
	if err := s.db.Model(&model.Ticket{ID: id}).Association("Categories").Clear(); err != nil {
		return err
	}
	tx := s.db.Delete(&model.Ticket{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
