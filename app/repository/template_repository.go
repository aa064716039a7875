package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/brandforgehq/brandforge/app/models"
)

// templateRepository implements the TemplateRepository interface
type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new template repository instance
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

// List returns all active catalog templates, oldest first so the default
// entry stays the first available template.
func (r *templateRepository) List() ([]models.Template, error) {
	var templates []models.Template
	err := r.db.Where("is_active = ?", true).Order("id ASC").Find(&templates).Error
	return templates, err
}

// GetByID retrieves a template by id
func (r *templateRepository) GetByID(id uint) (*models.Template, error) {
	var template models.Template
	err := r.db.First(&template, id).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// Create adds a template to the catalog
func (r *templateRepository) Create(template *models.Template) error {
	return r.db.Create(template).Error
}

// EnsureDefaults seeds the catalog with the built-in template when empty.
// New templates are added through the repository, not by code changes.
func (r *templateRepository) EnsureDefaults() error {
	var existing models.Template
	err := r.db.Where("`key` = ?", "classic-professional").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.db.Create(&models.Template{
		Key:         "classic-professional",
		Name:        "Classic Professional",
		Description: "A timeless, trustworthy look for consultants and coaches",
		Category:    "professional",
		Config: models.JSON(`{
			"primary_color": "#1a365d",
			"secondary_color": "#2d3748",
			"accent_color": "#d69e2e",
			"heading_font": "Playfair Display",
			"body_font": "Source Sans Pro",
			"imagery_style": "editorial portraits"
		}`),
		IsActive: true,
	}).Error
}
