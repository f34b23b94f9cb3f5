package model

// Priority is the urgency bucket a ticket is filed under. Every ticket
// references exactly one.
type Priority struct {
	ID   uint   `gorm:"column:id;primaryKey" json:"id"`
	Name string `gorm:"column:name;uniqueIndex;not null" json:"name"`
}

func (Priority) TableName() string {
	return "priorities"
}
