package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/arthurv/ticketd/pkg/model"
	"github.com/arthurv/ticketd/pkg/server/store"
)

// Ensure Categories implements store.Categories
var _ store.Categories = (*Categories)(nil)

// Categories implements store.Categories using GORM
type Categories struct {
	db *gorm.DB
}

// NewCategories creates a new Categories store
func NewCategories(db *gorm.DB) *Categories {
	return &Categories{db: db}
}

func (s *Categories) List() ([]model.Category, error) {
	var categories []model.Category
	tx := s.db.Order("id").Find(&categories)
	return categories, tx.Error
}

func (s *Categories) FindByID(id uint) (*model.Category, error) {
	var category model.Category
	tx := s.db.First(&category, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, tx.Error
	}
	return &category, nil
}

func (s *Categories) FindByIDs(ids []uint) ([]model.Category, error) {
	var categories []model.Category
	tx := s.db.Where("id IN ?", ids).Find(&categories)
	return categories, tx.Error
}

func (s *Categories) Create(category *model.Category) error {
	return s.db.Create(category).Error
}

func (s *Categories) Update(category *model.Category) error {
	return s.db.Save(category).Error
}

func (s *Categories) Delete(id uint) error {
	tx := s.db.Delete(&model.Category{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
