package store

import "github.com/arthurv/ticketd/pkg/model"

// Tickets abstracts ticket storage.
type Tickets interface {
	// List returns all tickets with priority and categories preloaded.
	List() ([]model.Ticket, error)

	// FindByID retrieves one ticket with its associations preloaded.
	FindByID(id uint) (*model.Ticket, error)

	// Create persists a new ticket, assigning its ID.
	Create(ticket *model.Ticket) error

	// Update persists changes to an existing ticket, replacing its
	// category associations.
	Update(ticket *model.Ticket) error

	// Delete removes a ticket by primary key.
	Delete(id uint) error
}
