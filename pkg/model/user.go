package model

// User is an identity record. The password hash is opaque to everything but
// pkg/password and is never serialized outward.
type User struct {
	ID           uint   `gorm:"column:id;primaryKey" json:"id"`
	Handle       string `gorm:"column:handle;uniqueIndex;not null" json:"handle"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	Role         Role   `gorm:"column:role;type:text;not null;default:standard" json:"role"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the administrator role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdministrator
}
