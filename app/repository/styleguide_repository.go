package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brandforgehq/brandforge/app/models"
)

// styleguideRepository implements the StyleguideRepository interface
type styleguideRepository struct {
	db *gorm.DB
}

// NewStyleguideRepository creates a new styleguide repository instance
func NewStyleguideRepository(db *gorm.DB) StyleguideRepository {
	return &styleguideRepository{db: db}
}

// GetByUserID retrieves a user's styleguide
func (r *styleguideRepository) GetByUserID(userID uint) (*models.Styleguide, error) {
	var sg models.Styleguide
	err := r.db.Where("user_id = ?", userID).First(&sg).Error
	if err != nil {
		return nil, err
	}
	return &sg, nil
}

// CreateOrUpdate upserts the whole record keyed by user id. Last writer wins;
// there is no partial merge.
func (r *styleguideRepository) CreateOrUpdate(styleguide *models.Styleguide) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name",
			"template_id",
			"colors",
			"typography",
			"imagery",
			"brand_personality",
			"business_application",
			"is_active",
			"updated_at",
		}),
	}).Create(styleguide).Error; err != nil {
		return err
	}

	return r.db.Where("user_id = ?", styleguide.UserID).First(styleguide).Error
}
