package repository

import (
	"gorm.io/gorm"

	"github.com/brandforgehq/brandforge/app/models"
)

// domainRepository implements the DomainRepository interface
type domainRepository struct {
	db *gorm.DB
}

// NewDomainRepository creates a new domain repository instance
func NewDomainRepository(db *gorm.DB) DomainRepository {
	return &domainRepository{db: db}
}

// Create inserts a domain record. Global uniqueness of domain and subdomain
// is enforced by the database indexes.
func (r *domainRepository) Create(domain *models.Domain) error {
	return r.db.Create(domain).Error
}

// GetByID retrieves a domain by its ID
func (r *domainRepository) GetByID(id uint) (*models.Domain, error) {
	var domain models.Domain
	err := r.db.First(&domain, id).Error
	if err != nil {
		return nil, err
	}
	return &domain, nil
}

// GetByUserID lists the user's domains
func (r *domainRepository) GetByUserID(userID uint) ([]models.Domain, error) {
	var domains []models.Domain
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&domains).Error
	return domains, err
}

// Update updates an existing domain
func (r *domainRepository) Update(domain *models.Domain) error {
	return r.db.Save(domain).Error
}

// Delete soft deletes a domain by its ID
func (r *domainRepository) Delete(id uint) error {
	return r.db.Delete(&models.Domain{}, id).Error
}
