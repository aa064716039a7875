package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/brandforgehq/brandforge/app/models"
)

// usageRepository implements the UsageRepository interface
type usageRepository struct {
	db *gorm.DB
}

// NewUsageRepository creates a new usage repository instance
func NewUsageRepository(db *gorm.DB) UsageRepository {
	return &usageRepository{db: db}
}

// WithTx returns a repository bound to the given transaction handle so the
// usage service can update counters and append history atomically.
func (r *usageRepository) WithTx(tx *gorm.DB) UsageRepository {
	return &usageRepository{db: tx}
}

// GetOrCreate returns the counter record for (user, plan), creating it with
// zeroed counters when absent.
func (r *usageRepository) GetOrCreate(userID uint, plan string) (*models.UserUsage, error) {
	var usage models.UserUsage
	err := r.db.Where("user_id = ? AND plan = ?", userID, plan).First(&usage).Error
	if err == nil {
		return &usage, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	usage = models.UserUsage{UserID: userID, Plan: plan}
	if err := r.db.Create(&usage).Error; err != nil {
		return nil, err
	}
	return &usage, nil
}

// Save persists the counter record
func (r *usageRepository) Save(usage *models.UserUsage) error {
	return r.db.Save(usage).Error
}

// AppendHistory inserts a history row. The log is append-only; no update or
// delete path exists.
func (r *usageRepository) AppendHistory(entry *models.UsageHistory) error {
	return r.db.Create(entry).Error
}

// ListHistory returns the user's history rows, newest first
func (r *usageRepository) ListHistory(userID uint, offset, limit int) ([]models.UsageHistory, error) {
	var entries []models.UsageHistory
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&entries).Error
	return entries, err
}
