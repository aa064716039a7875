package models

import (
	"time"
)

// OnboardingLastStep is the terminal step of the intake flow.
const OnboardingLastStep = 5

// OnboardingData captures a user's multi-step intake flow. One evolving
// record per user; OnboardingStep only ever advances, CompletedAt is set once
// the terminal step is reached.
type OnboardingData struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	User            User       `gorm:"foreignKey:UserID" json:"-" validate:"-"`
	OnboardingStep  int        `gorm:"not null;default:0" json:"onboarding_step"`
	BrandName       string     `gorm:"type:varchar(150)" json:"brand_name"`
	Industry        string     `gorm:"type:varchar(100)" json:"industry"`
	PersonalMission string     `gorm:"type:text" json:"personal_mission"`
	BrandVoice      string     `gorm:"type:varchar(255)" json:"brand_voice"`
	TargetAudience  string     `gorm:"type:varchar(255)" json:"target_audience"`
	Answers         JSON       `gorm:"type:json" json:"answers,omitempty"`
	CompletedAt     *time.Time `gorm:"type:timestamp;default:null" json:"completed_at,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsComplete reports whether the intake flow reached its terminal step.
func (o *OnboardingData) IsComplete() bool {
	return o.CompletedAt != nil
}

// Advance moves the flow forward to step, never backwards, and stamps
// CompletedAt when the terminal step is reached.
func (o *OnboardingData) Advance(step int, now time.Time) {
	if step > o.OnboardingStep {
		o.OnboardingStep = step
	}
	if o.OnboardingStep >= OnboardingLastStep && o.CompletedAt == nil {
		o.CompletedAt = &now
	}
}
