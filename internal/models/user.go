package models

import (
	"gorm.io/gorm"
)

// User roles. The phone number, not the email, is the login credential.
const (
	RoleSeeker = "seeker"
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
)

type User struct {
	gorm.Model
	Phone           string `gorm:"uniqueIndex;not null" json:"phone"`
	Email           string `gorm:"uniqueIndex;not null" json:"email"`
	Password        string `gorm:"not null" json:"-"`
	FullName        string `json:"full_name"`
	Role            string `gorm:"default:'seeker'" json:"role"`
	IsPhoneVerified bool   `gorm:"default:false" json:"is_phone_verified"`
	IsStaff         bool   `gorm:"default:false" json:"is_staff"`
	TokenVersion    int    `gorm:"default:1" json:"-"`
}

// ValidRole reports whether role is one of the three enumerated values.
func ValidRole(role string) bool {
	switch role {
	case RoleSeeker, RoleOwner, RoleAdmin:
		return true
	}
	return false
}

// CreateUserInput is the registration request body. Password2 must match
// Password, matching the original registration contract.
type CreateUserInput struct {
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}
