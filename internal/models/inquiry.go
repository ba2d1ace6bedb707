package models

import (
	"gorm.io/gorm"
)

// Inquiry is a message from a seeker to a property's owner. Only users with
// the seeker role may create one.
type Inquiry struct {
	gorm.Model
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	PropertyID uint      `gorm:"not null;index" json:"property_id"`
	Property   *Property `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"property,omitempty"`
	Message    string    `gorm:"type:text;not null" json:"message"`
}

type InquiryInput struct {
	PropertyID uint   `json:"property_id"`
	Message    string `json:"message"`
}
