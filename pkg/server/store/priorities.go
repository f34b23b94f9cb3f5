package store

import "github.com/arthurv/ticketd/pkg/model"

// Priorities abstracts priority storage.
type Priorities interface {
	List() ([]model.Priority, error)
	FindByID(id uint) (*model.Priority, error)
	Create(priority *model.Priority) error
	Update(priority *model.Priority) error
	Delete(id uint) error
}
