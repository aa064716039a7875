package models

import (
	"time"
)

// Styleguide is the per-user brand-presentation document consumed by the
// publishing features. One per user; POST overwrites the whole record
// (upsert, no partial merge).
type Styleguide struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	UserID              uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User                User      `gorm:"foreignKey:UserID" json:"-" validate:"-"`
	Name                string    `gorm:"type:varchar(150)" json:"name"`
	TemplateID          *uint     `gorm:"index" json:"template_id,omitempty"`
	Colors              JSON      `gorm:"type:json" json:"colors"`
	Typography          JSON      `gorm:"type:json" json:"typography"`
	Imagery             JSON      `gorm:"type:json" json:"imagery"`
	BrandPersonality    string    `gorm:"type:varchar(255)" json:"brand_personality"`
	BusinessApplication JSON      `gorm:"type:json" json:"business_application"`
	IsActive            bool      `gorm:"default:true" json:"is_active"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
