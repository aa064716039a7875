package models

import (
	"time"
)

// UserUsage is the evolving counter record per user and plan. The usage
// service owns the invariants: MonthlyGenerationsUsed never exceeds
// MonthlyGenerationsAllowed once enforcement is on, and TotalCostIncurred
// only ever increases.
type UserUsage struct {
	ID                        uint       `gorm:"primaryKey" json:"id"`
	UserID                    uint       `gorm:"not null;index:ux_user_usage_user_plan,unique,priority:1" json:"user_id"`
	User                      User       `gorm:"foreignKey:UserID" json:"-" validate:"-"`
	Plan                      string     `gorm:"type:varchar(50);not null;default:'free';index:ux_user_usage_user_plan,unique,priority:2" json:"plan"`
	TotalGenerationsUsed      int        `gorm:"not null;default:0" json:"total_generations_used"`
	MonthlyGenerationsUsed    int        `gorm:"not null;default:0" json:"monthly_generations_used"`
	MonthlyGenerationsAllowed int        `gorm:"not null;default:0" json:"monthly_generations_allowed"`
	TotalCostIncurred         float64    `gorm:"type:decimal(10,4);not null;default:0" json:"total_cost_incurred"`
	LimitReached              bool       `gorm:"default:false" json:"limit_reached"`
	LastResetAt               *time.Time `gorm:"type:timestamp;default:null" json:"last_reset_at,omitempty"`
	CreatedAt                 time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                 time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// RemainingThisMonth returns how many generations the user may still run in
// the current window. Zero allowance means unlimited.
func (u *UserUsage) RemainingThisMonth() int {
	if u.MonthlyGenerationsAllowed <= 0 {
		return -1
	}
	remaining := u.MonthlyGenerationsAllowed - u.MonthlyGenerationsUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// NeedsMonthlyReset reports whether the counter window has rolled over into a
// new calendar month since the last reset.
func (u *UserUsage) NeedsMonthlyReset(now time.Time) bool {
	if u.LastResetAt == nil {
		return false
	}
	last := u.LastResetAt.UTC()
	now = now.UTC()
	return last.Year() != now.Year() || last.Month() != now.Month()
}
