package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brandforgehq/brandforge/app/models"
)

// onboardingRepository implements the OnboardingRepository interface
type onboardingRepository struct {
	db *gorm.DB
}

// NewOnboardingRepository creates a new onboarding repository instance
func NewOnboardingRepository(db *gorm.DB) OnboardingRepository {
	return &onboardingRepository{db: db}
}

// GetByUserID retrieves the user's intake record
func (r *onboardingRepository) GetByUserID(userID uint) (*models.OnboardingData, error) {
	var data models.OnboardingData
	err := r.db.Where("user_id = ?", userID).First(&data).Error
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// CreateOrUpdate upserts the single evolving record per user.
func (r *onboardingRepository) CreateOrUpdate(data *models.OnboardingData) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"onboarding_step",
			"brand_name",
			"industry",
			"personal_mission",
			"brand_voice",
			"target_audience",
			"answers",
			"completed_at",
			"updated_at",
		}),
	}).Create(data).Error; err != nil {
		return err
	}

	return r.db.Where("user_id = ?", data.UserID).First(data).Error
}
