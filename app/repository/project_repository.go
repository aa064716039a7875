package repository

import (
	"gorm.io/gorm"

	"github.com/brandforgehq/brandforge/app/models"
)

// projectRepository implements the ProjectRepository interface
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create creates a new project in the database
func (r *projectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// GetByID retrieves a project by its ID
func (r *projectRepository) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetByUserID retrieves a paginated list of a user's projects
func (r *projectRepository) GetByUserID(userID uint, offset, limit int) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&projects).Error
	return projects, err
}

// Update updates an existing project
func (r *projectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete soft deletes a project by its ID
func (r *projectRepository) Delete(id uint) error {
	return r.db.Delete(&models.Project{}, id).Error
}

// CountByUserID returns the number of projects owned by the user
func (r *projectRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
