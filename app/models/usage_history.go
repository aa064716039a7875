package models

import (
	"time"
)

// Usage actions recorded in the history log.
const (
	USAGE_ACTION_AI_IMAGE       = "ai_image_generation"
	USAGE_ACTION_MODEL_TRAINING = "model_training"
	USAGE_ACTION_MODEL_IMAGE    = "model_image_generation"
)

// UsageHistory is an append-only log row per billable action. Rows are never
// updated or deleted; cost is immutable once recorded.
type UsageHistory struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;index" json:"user_id"`
	User             User      `gorm:"foreignKey:UserID" json:"-" validate:"-"`
	GeneratedImageID *uint     `gorm:"index" json:"generated_image_id,omitempty"`
	Action           string    `gorm:"type:varchar(50);not null" json:"action"`
	Cost             float64   `gorm:"type:decimal(10,4);not null;default:0" json:"cost"`
	Details          JSON      `gorm:"type:json" json:"details,omitempty"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}
