package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Generation status constants shared by AiImage and UserModel lifecycles.
const (
	GENERATION_PENDING    = "pending"
	GENERATION_PROCESSING = "processing"
	GENERATION_COMPLETED  = "completed"
	GENERATION_FAILED     = "failed"
)

// AiImage records a single one-off generation request against the external
// image provider. IsSelected marks the chosen output among candidate images
// generated for the same project.
type AiImage struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UUID               string    `gorm:"type:char(36);uniqueIndex;not null" json:"uuid"`
	UserID             uint      `gorm:"not null;index" json:"user_id"`
	User               User      `gorm:"foreignKey:UserID" json:"-" validate:"-"`
	ProjectID          *uint     `gorm:"index" json:"project_id,omitempty"`
	Prompt             string    `gorm:"type:text;not null" json:"prompt" validate:"required"`
	Style              string    `gorm:"type:varchar(100)" json:"style" validate:"max=100"`
	ProviderTrackingID string    `gorm:"type:varchar(191);default:'';index" json:"provider_tracking_id"`
	GenerationStatus   string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"generation_status" validate:"oneof=pending processing completed failed"`
	ImageURL           string    `gorm:"type:varchar(512);default:''" json:"image_url"`
	IsSelected         bool      `gorm:"default:false" json:"is_selected"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *AiImage) Validate() error {
	return validator.New().Struct(a)
}

// IsTerminal reports whether the generation reached a final state.
func (a *AiImage) IsTerminal() bool {
	return a.GenerationStatus == GENERATION_COMPLETED || a.GenerationStatus == GENERATION_FAILED
}
