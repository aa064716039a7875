package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// LandingPage is a many-per-user published page. Slug is unique per user.
type LandingPage struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index:ux_landing_pages_user_slug,unique,priority:1" json:"user_id"`
	User        User           `gorm:"foreignKey:UserID" json:"-" validate:"-"`
	Slug        string         `gorm:"type:varchar(150);not null;index:ux_landing_pages_user_slug,unique,priority:2" json:"slug" validate:"required,min=1,max=150"`
	Title       string         `gorm:"type:varchar(150)" json:"title"`
	Config      JSON           `gorm:"type:json" json:"config"`
	IsPublished bool           `gorm:"default:false" json:"is_published"`
	PublishedAt *time.Time     `gorm:"type:timestamp;default:null" json:"published_at,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (l *LandingPage) Validate() error {
	return validator.New().Struct(l)
}

// Publish marks the landing page published at the given time.
func (l *LandingPage) Publish(now time.Time) {
	l.IsPublished = true
	l.PublishedAt = &now
}
