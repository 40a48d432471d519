// Package repos provides database repository implementations
package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/celestiaorg/hypermedia/internal/db/models"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new instance of ProjectRepository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{
		db: db,
	}
}

// Create creates a new project in the database
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Get retrieves a project by ID from the database
func (r *ProjectRepository) Get(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// GetByName retrieves a project by name from the database
func (r *ProjectRepository) GetByName(ctx context.Context, name string) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Where(models.Project{Name: name}).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves projects ordered by ID with pagination
func (r *ProjectRepository) List(ctx context.Context, opts *models.ListOptions) ([]models.Project, error) {
	opts = opts.Normalize()
	var projects []models.Project
	err := r.db.WithContext(ctx).Order("id").
		Limit(opts.Limit).Offset(opts.Offset).Find(&projects).Error
	return projects, err
}

// Count returns the number of projects
func (r *ProjectRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Count(&count).Error
	return count, err
}

// Delete deletes a project and its tasks. Deleting a missing project is not an error.
func (r *ProjectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}
