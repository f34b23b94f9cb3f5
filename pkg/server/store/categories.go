package store

import "github.com/arthurv/ticketd/pkg/model"

// Categories abstracts category storage.
type Categories interface {
	List() ([]model.Category, error)
	FindByID(id uint) (*model.Category, error)
	FindByIDs(ids []uint) ([]model.Category, error)
	Create(category *model.Category) error
	Update(category *model.Category) error
	Delete(id uint) error
}
