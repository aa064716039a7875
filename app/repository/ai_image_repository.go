package repository

import (
	"gorm.io/gorm"

	"github.com/brandforgehq/brandforge/app/models"
)

// aiImageRepository implements the AiImageRepository interface
type aiImageRepository struct {
	db *gorm.DB
}

// NewAiImageRepository creates a new AI image repository instance
func NewAiImageRepository(db *gorm.DB) AiImageRepository {
	return &aiImageRepository{db: db}
}

// Create creates a new AI image request record
func (r *aiImageRepository) Create(image *models.AiImage) error {
	return r.db.Create(image).Error
}

// GetByUUID retrieves an AI image by its public UUID
func (r *aiImageRepository) GetByUUID(uuid string) (*models.AiImage, error) {
	var image models.AiImage
	err := r.db.Where("uuid = ?", uuid).First(&image).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// GetByUserID retrieves a paginated list of a user's AI images
func (r *aiImageRepository) GetByUserID(userID uint, offset, limit int) ([]models.AiImage, error) {
	var images []models.AiImage
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&images).Error
	return images, err
}

// Update updates an existing AI image record
func (r *aiImageRepository) Update(image *models.AiImage) error {
	return r.db.Save(image).Error
}

// SelectImage marks image as the chosen candidate and clears the flag on its
// siblings (same user, same project) in one transaction.
func (r *aiImageRepository) SelectImage(image *models.AiImage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		siblings := tx.Model(&models.AiImage{}).Where("user_id = ?", image.UserID)
		if image.ProjectID != nil {
			siblings = siblings.Where("project_id = ?", *image.ProjectID)
		} else {
			siblings = siblings.Where("project_id IS NULL")
		}
		if err := siblings.Update("is_selected", false).Error; err != nil {
			return err
		}

		image.IsSelected = true
		return tx.Save(image).Error
	})
}
