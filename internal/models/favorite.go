package models

import (
	"time"
)

// Favorite links a user to a property. The composite unique index enforces
// at most one row per (user, property) pair, which is what makes the
// add-to-favorites operation safely idempotent under concurrency.
//
// Favorites are hard-deleted: a gorm soft-delete column would leave the
// unique index occupied after removal and block re-adding.
type Favorite struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_favorites_user_property" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	PropertyID uint      `gorm:"not null;uniqueIndex:idx_favorites_user_property" json:"property_id"`
	Property   *Property `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"property,omitempty"`
}
