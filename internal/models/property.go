package models

import (
	"gorm.io/gorm"
)

// Property types mirror the listing categories exposed to end users.
const (
	PropertyTypeSale  = "sale"
	PropertyTypeRent  = "rent"
	PropertyTypeLease = "lease"
	PropertyTypePG    = "pg"
)

type Property struct {
	gorm.Model
	Title        string          `gorm:"not null" json:"title"`
	Description  string          `gorm:"type:text" json:"description"`
	Price        float64         `gorm:"type:decimal(12,2);not null" json:"price"`
	Bedrooms     uint            `json:"bedrooms"`
	Bathrooms    uint            `json:"bathrooms"`
	AreaSqft     uint            `json:"area_sqft"`
	PropertyType string          `gorm:"not null" json:"property_type"`
	City         string          `json:"city"`
	State        string          `json:"state"`
	Locality     string          `json:"locality"`
	Address      string          `gorm:"type:text" json:"address"`
	OwnerID      uint            `gorm:"not null;index" json:"owner_id"`
	Owner        *User           `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	IsVerified   bool            `gorm:"default:false" json:"is_verified"`
	IsActive     bool            `json:"is_active"` // soft-delete flag, set explicitly on create
	Images       []PropertyImage `gorm:"foreignKey:PropertyID" json:"images,omitempty"`
}

// ValidPropertyType reports whether t is a known property type.
func ValidPropertyType(t string) bool {
	switch t {
	case PropertyTypeSale, PropertyTypeRent, PropertyTypeLease, PropertyTypePG:
		return true
	}
	return false
}

type PropertyImage struct {
	gorm.Model
	PropertyID uint   `gorm:"not null;index" json:"property_id"`
	URL        string `gorm:"not null" json:"url"`
	StorageKey string `gorm:"uniqueIndex" json:"storage_key"`
	IsPrimary  bool   `gorm:"default:false" json:"is_primary"`
}

// PropertyInput is the create/update request body. Images are attached by
// URL; byte upload is handled elsewhere.
type PropertyInput struct {
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Price        float64             `json:"price"`
	Bedrooms     uint                `json:"bedrooms"`
	Bathrooms    uint                `json:"bathrooms"`
	AreaSqft     uint                `json:"area_sqft"`
	PropertyType string              `json:"property_type"`
	City         string              `json:"city"`
	State        string              `json:"state"`
	Locality     string              `json:"locality"`
	Address      string              `json:"address"`
	Images       []PropertyImageInput `json:"images"`
}

type PropertyImageInput struct {
	URL       string `json:"url"`
	IsPrimary bool   `json:"is_primary"`
}
