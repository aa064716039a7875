package repository

import (
	"gorm.io/gorm"

	"github.com/brandforgehq/brandforge/app/models"
)

// selfieRepository implements the SelfieRepository interface
type selfieRepository struct {
	db *gorm.DB
}

// NewSelfieRepository creates a new selfie repository instance
func NewSelfieRepository(db *gorm.DB) SelfieRepository {
	return &selfieRepository{db: db}
}

// Create records an uploaded selfie
func (r *selfieRepository) Create(selfie *models.SelfieUpload) error {
	return r.db.Create(selfie).Error
}

// GetByUserID lists a user's selfie uploads, newest first
func (r *selfieRepository) GetByUserID(userID uint) ([]models.SelfieUpload, error) {
	var selfies []models.SelfieUpload
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&selfies).Error
	return selfies, err
}

// CountByUserID returns the number of selfies uploaded by the user
func (r *selfieRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.SelfieUpload{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// userModelRepository implements the UserModelRepository interface
type userModelRepository struct {
	db *gorm.DB
}

// NewUserModelRepository creates a new user model repository instance
func NewUserModelRepository(db *gorm.DB) UserModelRepository {
	return &userModelRepository{db: db}
}

// Create inserts the user's personal model. The unique indexes on user id and
// trigger word make concurrent duplicate creations fail here with a
// uniqueness violation rather than both succeeding.
func (r *userModelRepository) Create(model *models.UserModel) error {
	return r.db.Create(model).Error
}

// GetByUserID retrieves the user's personal model
func (r *userModelRepository) GetByUserID(userID uint) (*models.UserModel, error) {
	var model models.UserModel
	err := r.db.Where("user_id = ?", userID).First(&model).Error
	if err != nil {
		return nil, err
	}
	return &model, nil
}

// Update updates an existing user model
func (r *userModelRepository) Update(model *models.UserModel) error {
	return r.db.Save(model).Error
}

// generatedImageRepository implements the GeneratedImageRepository interface
type generatedImageRepository struct {
	db *gorm.DB
}

// NewGeneratedImageRepository creates a new generated image repository instance
func NewGeneratedImageRepository(db *gorm.DB) GeneratedImageRepository {
	return &generatedImageRepository{db: db}
}

// Create records a generated image batch
func (r *generatedImageRepository) Create(image *models.GeneratedImage) error {
	return r.db.Create(image).Error
}

// GetByUUID retrieves a generated image batch by its public UUID
func (r *generatedImageRepository) GetByUUID(uuid string) (*models.GeneratedImage, error) {
	var image models.GeneratedImage
	err := r.db.Where("uuid = ?", uuid).First(&image).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// GetByUserID lists a user's generated image batches, newest first
func (r *generatedImageRepository) GetByUserID(userID uint, offset, limit int) ([]models.GeneratedImage, error) {
	var images []models.GeneratedImage
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&images).Error
	return images, err
}

// Update updates an existing generated image batch
func (r *generatedImageRepository) Update(image *models.GeneratedImage) error {
	return r.db.Save(image).Error
}
