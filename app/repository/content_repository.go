package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brandforgehq/brandforge/app/models"
)

// contentRepository implements the ContentRepository interface
type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository creates a new published content repository instance
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

// GetBrandbook retrieves the user's brandbook
func (r *contentRepository) GetBrandbook(userID uint) (*models.Brandbook, error) {
	var brandbook models.Brandbook
	err := r.db.Where("user_id = ?", userID).First(&brandbook).Error
	if err != nil {
		return nil, err
	}
	return &brandbook, nil
}

// SaveBrandbook upserts the one-per-user brandbook
func (r *contentRepository) SaveBrandbook(brandbook *models.Brandbook) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "config", "is_published", "published_at", "updated_at",
		}),
	}).Create(brandbook).Error; err != nil {
		return err
	}
	return r.db.Where("user_id = ?", brandbook.UserID).First(brandbook).Error
}

// GetDashboard retrieves the user's dashboard
func (r *contentRepository) GetDashboard(userID uint) (*models.Dashboard, error) {
	var dashboard models.Dashboard
	err := r.db.Where("user_id = ?", userID).First(&dashboard).Error
	if err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// SaveDashboard upserts the one-per-user dashboard
func (r *contentRepository) SaveDashboard(dashboard *models.Dashboard) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "config", "is_published", "published_at", "updated_at",
		}),
	}).Create(dashboard).Error; err != nil {
		return err
	}
	return r.db.Where("user_id = ?", dashboard.UserID).First(dashboard).Error
}

// CreateLandingPage creates a landing page
func (r *contentRepository) CreateLandingPage(page *models.LandingPage) error {
	return r.db.Create(page).Error
}

// GetLandingPage retrieves a landing page by id
func (r *contentRepository) GetLandingPage(id uint) (*models.LandingPage, error) {
	var page models.LandingPage
	err := r.db.First(&page, id).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// GetLandingPagesByUserID lists the user's landing pages
func (r *contentRepository) GetLandingPagesByUserID(userID uint) ([]models.LandingPage, error) {
	var pages []models.LandingPage
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&pages).Error
	return pages, err
}

// UpdateLandingPage updates an existing landing page
func (r *contentRepository) UpdateLandingPage(page *models.LandingPage) error {
	return r.db.Save(page).Error
}

// DeleteLandingPage soft deletes a landing page
func (r *contentRepository) DeleteLandingPage(id uint) error {
	return r.db.Delete(&models.LandingPage{}, id).Error
}
