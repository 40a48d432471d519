package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/celestiaorg/hypermedia/internal/db/models"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new instance of TaskRepository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

// Create creates a new task in the database
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// Get retrieves a task of a project by ID
func (r *TaskRepository) Get(ctx context.Context, projectID, id uint) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).Where(models.Task{ProjectID: projectID}).First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByProject retrieves the tasks of a project ordered by ID with pagination
func (r *TaskRepository) ListByProject(ctx context.Context, projectID uint, opts *models.ListOptions) ([]models.Task, error) {
	opts = opts.Normalize()
	var tasks []models.Task
	err := r.db.WithContext(ctx).Where(models.Task{ProjectID: projectID}).Order("id").
		Limit(opts.Limit).Offset(opts.Offset).Find(&tasks).Error
	return tasks, err
}

// UpdateStatus updates the status of a task. Returns gorm.ErrRecordNotFound
// when the task does not exist in the project.
func (r *TaskRepository) UpdateStatus(ctx context.Context, projectID, id uint, status models.TaskStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Task{}).
		Where("id = ? AND project_id = ?", id, projectID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
