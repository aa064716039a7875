package models

import (
	"time"
)

// Brandbook is the one-per-user published brandbook artifact.
type Brandbook struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	User        User       `gorm:"foreignKey:UserID" json:"-" validate:"-"`
	Title       string     `gorm:"type:varchar(150)" json:"title"`
	Config      JSON       `gorm:"type:json" json:"config"`
	IsPublished bool       `gorm:"default:false" json:"is_published"`
	PublishedAt *time.Time `gorm:"type:timestamp;default:null" json:"published_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// Publish marks the brandbook published at the given time.
func (b *Brandbook) Publish(now time.Time) {
	b.IsPublished = true
	b.PublishedAt = &now
}
