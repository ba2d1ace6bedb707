package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ProjectTypeResidential = "residential"
	ProjectTypeCommercial  = "commercial"
	ProjectTypeMixed       = "mixed"
)

// NewProject is a new-construction project listing. Unapproved projects are
// hidden from non-admin list views.
type NewProject struct {
	gorm.Model
	Name           string         `gorm:"not null" json:"name"`
	BuilderName    string         `gorm:"not null" json:"builder_name"`
	Description    string         `gorm:"type:text" json:"description"`
	City           string         `json:"city"`
	State          string         `json:"state"`
	Location       string         `json:"location"`
	LaunchDate     time.Time      `json:"launch_date"`
	PossessionDate time.Time      `json:"possession_date"`
	ProjectType    string         `gorm:"not null" json:"project_type"`
	Amenities      string         `gorm:"type:text" json:"amenities"`
	IsApproved     bool           `gorm:"default:false" json:"is_approved"`
	AddedByID      uint           `gorm:"not null;index" json:"added_by_id"`
	AddedBy        *User          `gorm:"foreignKey:AddedByID;constraint:OnDelete:CASCADE" json:"added_by,omitempty"`
	Images         []ProjectImage `gorm:"foreignKey:ProjectID" json:"images,omitempty"`
}

// ValidProjectType reports whether t is a known project type.
func ValidProjectType(t string) bool {
	switch t {
	case ProjectTypeResidential, ProjectTypeCommercial, ProjectTypeMixed:
		return true
	}
	return false
}

type ProjectImage struct {
	gorm.Model
	ProjectID  uint   `gorm:"not null;index" json:"project_id"`
	URL        string `gorm:"not null" json:"url"`
	StorageKey string `gorm:"uniqueIndex" json:"storage_key"`
	IsPrimary  bool   `gorm:"default:false" json:"is_primary"`
}

// ProjectInput is the create/update request body. Dates use "2006-01-02".
type ProjectInput struct {
	Name           string               `json:"name"`
	BuilderName    string               `json:"builder_name"`
	Description    string               `json:"description"`
	City           string               `json:"city"`
	State          string               `json:"state"`
	Location       string               `json:"location"`
	LaunchDate     string               `json:"launch_date"`
	PossessionDate string               `json:"possession_date"`
	ProjectType    string               `json:"project_type"`
	Amenities      string               `json:"amenities"`
	Images         []PropertyImageInput `json:"images"`
}
