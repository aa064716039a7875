package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	PROJECT_STATUS_DRAFT     = "draft"
	PROJECT_STATUS_PUBLISHED = "published"
	PROJECT_STATUS_ARCHIVED  = "archived"
)

// Project represents a brand/site in progress, owned by exactly one user.
type Project struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           uint           `gorm:"not null;index" json:"user_id"`
	User             User           `gorm:"foreignKey:UserID" json:"-" validate:"-"`
	Name             string         `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=1,max=150"`
	Description      string         `gorm:"type:text" json:"description" validate:"max=2000"`
	Status           string         `gorm:"type:varchar(20);not null;default:'draft';index" json:"status" validate:"oneof=draft published archived"`
	ImagesCompleted  bool           `gorm:"default:false" json:"images_completed"`
	ContentCompleted bool           `gorm:"default:false" json:"content_completed"`
	PaymentCompleted bool           `gorm:"default:false" json:"payment_completed"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Project) Validate() error {
	return validator.New().Struct(p)
}

// IsSetupComplete reports whether every setup step has been finished.
func (p *Project) IsSetupComplete() bool {
	return p.ImagesCompleted && p.ContentCompleted && p.PaymentCompleted
}
