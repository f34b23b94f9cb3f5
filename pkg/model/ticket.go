package model

// Ticket is a support request submitted by a user.
type Ticket struct {
	ID          uint       `gorm:"column:id;primaryKey" json:"id"`
	Title       string     `gorm:"column:title;uniqueIndex;not null" json:"title"`
	Description string     `gorm:"column:description" json:"description"`
	Resolved    bool       `gorm:"column:resolved;not null" json:"resolved"`
	PriorityID  uint       `gorm:"column:priority_id;not null" json:"-"`
	Priority    *Priority  `gorm:"foreignKey:PriorityID" json:"priority,omitempty"`
	Categories  []Category `gorm:"many2many:ticket_categories" json:"categories"`

	SubmittingUserID *uint `gorm:"column:submitting_user_id" json:"-"`
	SubmittingUser   *User `gorm:"foreignKey:SubmittingUserID" json:"submitting_user,omitempty"`
	ResolvingUserID  *uint `gorm:"column:resolving_user_id" json:"-"`
	ResolvingUser    *User `gorm:"foreignKey:ResolvingUserID" json:"resolving_user,omitempty"`
}

func (Ticket) TableName() string {
	return "tickets"
}
