package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	SUBSCRIPTION_ACTIVE    = "active"
	SUBSCRIPTION_CANCELLED = "cancelled"
	SUBSCRIPTION_EXPIRED   = "expired"
)

// Subscription mirrors the billing provider's subscription state for a user.
// Period bounds follow the provider; they are not computed locally.
type Subscription struct {
	ID                     uint       `gorm:"primaryKey" json:"id"`
	UserID                 uint       `gorm:"not null;index" json:"user_id"`
	User                   User       `gorm:"foreignKey:UserID" json:"-" validate:"-"`
	Plan                   string     `gorm:"type:varchar(50);not null;default:'free'" json:"plan"`
	Status                 string     `gorm:"type:varchar(20);not null;default:'active';index" json:"status" validate:"oneof=active cancelled expired"`
	Provider               string     `gorm:"type:varchar(20);not null;default:'stripe'" json:"provider"`
	ProviderSubscriptionID string     `gorm:"type:varchar(191);not null;uniqueIndex" json:"provider_subscription_id"`
	CurrentPeriodStart     *time.Time `gorm:"type:timestamp;default:null" json:"current_period_start,omitempty"`
	CurrentPeriodEnd       *time.Time `gorm:"type:timestamp;default:null" json:"current_period_end,omitempty"`
	CreatedAt              time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *Subscription) Validate() error {
	return validator.New().Struct(s)
}

// IsEntitling reports whether the subscription currently grants its plan.
func (s *Subscription) IsEntitling() bool {
	return s.Status == SUBSCRIPTION_ACTIVE
}
