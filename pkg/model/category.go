package model

// Category labels tickets; a ticket can carry several.
type Category struct {
	ID   uint   `gorm:"column:id;primaryKey" json:"id"`
	Name string `gorm:"column:name;uniqueIndex;not null" json:"name"`
}

func (Category) TableName() string {
	return "categories"
}
