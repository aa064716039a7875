package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// UserModel is a user's personal trained generation model. A user has at most
// one (unique index on UserID) and the trigger word is globally unique; both
// are enforced at the database level so concurrent creations cannot both
// succeed.
type UserModel struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	User            User       `gorm:"foreignKey:UserID" json:"-" validate:"-"`
	TriggerWord     string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"trigger_word" validate:"required,min=3,max=100"`
	ProviderModelID string     `gorm:"type:varchar(191);default:''" json:"provider_model_id"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status" validate:"oneof=pending training completed failed"`
	TrainedAt       *time.Time `gorm:"type:timestamp;default:null" json:"trained_at,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// Model training statuses reuse the generation constants, plus "training".
const MODEL_TRAINING = "training"

func (m *UserModel) Validate() error {
	return validator.New().Struct(m)
}

// IsReady reports whether the model finished training and can generate.
func (m *UserModel) IsReady() bool {
	return m.Status == GENERATION_COMPLETED
}
