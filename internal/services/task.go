package services

import (
	"context"
	"fmt"

	"github.com/celestiaorg/hypermedia/internal/db/models"
	"github.com/celestiaorg/hypermedia/internal/db/repos"
	"github.com/celestiaorg/hypermedia/internal/events"
	"github.com/celestiaorg/hypermedia/internal/logger"
)

// Task handles task-related operations
type Task struct {
	repo     *repos.TaskRepository
	projects *Project
	bus      *events.Bus
}

// NewTaskService creates a new instance of TaskService
func NewTaskService(repo *repos.TaskRepository, projects *Project, bus *events.Bus) *Task {
	return &Task{
		repo:     repo,
		projects: projects,
		bus:      bus,
	}
}

// Create creates a task in an existing project
func (s *Task) Create(ctx context.Context, projectID uint, task *models.Task) error {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return err
	}

	task.ProjectID = projectID
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	logger.InfoWithFields("Task created", map[string]interface{}{
		"project_id": projectID,
		"task_id":    task.ID,
		"name":       task.Name,
	})
	s.bus.Publish(events.Event{
		Type:      events.EventTaskCreated,
		ProjectID: projectID,
		TaskID:    task.ID,
		Name:      task.Name,
	})
	return nil
}

// Get retrieves a task of a project
func (s *Task) Get(ctx context.Context, projectID, id uint) (*models.Task, error) {
	task, err := s.repo.Get(ctx, projectID, id)
	if err != nil {
		return nil, notFound(err, "task %d of project %d", id, projectID)
	}
	return task, nil
}

// List retrieves the tasks of an existing project with pagination
func (s *Task) List(ctx context.Context, projectID uint, opts *models.ListOptions) ([]models.Task, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	tasks, err := s.repo.ListByProject(ctx, projectID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateStatus changes the status of a task
func (s *Task) UpdateStatus(ctx context.Context, projectID, id uint, status models.TaskStatus) error {
	status, err := models.ParseTaskStatus(status.String())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.repo.UpdateStatus(ctx, projectID, id, status); err != nil {
		return notFound(err, "task %d of project %d", id, projectID)
	}
	if status.Done() {
		logger.InfoWithFields("Task finished", map[string]interface{}{
			"project_id": projectID,
			"task_id":    id,
			"status":     status,
		})
	} else {
		logger.Debugf("Task %d of project %d is now %s", id, projectID, status)
	}
	s.bus.Publish(events.Event{
		Type:      events.EventTaskStatusChanged,
		ProjectID: projectID,
		TaskID:    id,
		Status:    status.String(),
	})
	return nil
}
