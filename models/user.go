package models

import "gorm.io/gorm"

// User roles.
const (
	RoleAdmin        = "admin"
	RoleReceptionist = "receptionist"
)

// User is a front-desk operator account.
type User struct {
	gorm.Model

	Username string `json:"username" gorm:"uniqueIndex;type:varchar(120)"`
	Password string `json:"-" gorm:"column:password_hash;type:varchar(255)"`
	Role     string `json:"role" gorm:"type:varchar(30);default:receptionist"`
	FullName string `json:"fullName" gorm:"type:varchar(120)"`
}
