package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brandforgehq/brandforge/app/models"
)

// subscriptionRepository implements the SubscriptionRepository interface
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository instance
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Upsert creates or refreshes the local mirror of a provider subscription,
// keyed by the provider subscription id.
func (r *subscriptionRepository) Upsert(sub *models.Subscription) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "provider_subscription_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id",
			"plan",
			"status",
			"current_period_start",
			"current_period_end",
			"updated_at",
		}),
	}).Create(sub).Error; err != nil {
		return err
	}

	return r.db.Where("provider_subscription_id = ?", sub.ProviderSubscriptionID).First(sub).Error
}

// GetActiveByUserID returns the user's newest entitling subscription
func (r *subscriptionRepository) GetActiveByUserID(userID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("user_id = ? AND status = ?", userID, models.SUBSCRIPTION_ACTIVE).
		Order("created_at DESC").First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListByUserID returns all subscription records for the user
func (r *subscriptionRepository) ListByUserID(userID uint) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&subs).Error
	return subs, err
}
