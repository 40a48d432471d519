// Package services implements the business logic of the projects API
package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/celestiaorg/hypermedia/internal/db"
	"github.com/celestiaorg/hypermedia/internal/db/models"
	"github.com/celestiaorg/hypermedia/internal/db/repos"
	"github.com/celestiaorg/hypermedia/internal/events"
	"github.com/celestiaorg/hypermedia/internal/logger"
)

// Service errors
var (
	// ErrNotFound is returned when the requested record does not exist
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a record with the same unique key exists
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidInput is returned when a record fails validation
	ErrInvalidInput = errors.New("invalid input")
)

// Project handles project-related operations
type Project struct {
	repo *repos.ProjectRepository
	bus  *events.Bus
}

// NewProjectService creates a new instance of ProjectService. Lifecycle
// events go to bus, which may be nil.
func NewProjectService(repo *repos.ProjectRepository, bus *events.Bus) *Project {
	return &Project{
		repo: repo,
		bus:  bus,
	}
}

// Create creates a new project
func (s *Project) Create(ctx context.Context, project *models.Project) error {
	if err := project.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if existing, err := s.repo.GetByName(ctx, project.Name); err == nil && existing != nil {
		return fmt.Errorf("project %q %w", project.Name, ErrAlreadyExists)
	}
	if err := s.repo.Create(ctx, project); err != nil {
		if db.IsDuplicateKeyError(err) {
			return fmt.Errorf("project %q %w", project.Name, ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create project: %w", err)
	}
	logger.InfoWithFields("Project created", map[string]interface{}{
		"project_id": project.ID,
		"name":       project.Name,
	})
	s.bus.Publish(events.Event{
		Type:      events.EventProjectCreated,
		ProjectID: project.ID,
		Name:      project.Name,
	})
	return nil
}

// Get retrieves a project by ID
func (s *Project) Get(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "project %d", id)
	}
	return project, nil
}

// GetByName retrieves a project by name
func (s *Project) GetByName(ctx context.Context, name string) (*models.Project, error) {
	project, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, notFound(err, "project %q", name)
	}
	return project, nil
}

// List retrieves projects with pagination and the total number of projects
func (s *Project) List(ctx context.Context, opts *models.ListOptions) ([]models.Project, int64, error) {
	projects, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return projects, total, nil
}

// Delete deletes a project and its tasks
func (s *Project) Delete(ctx context.Context, id uint) error {
	project, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project %d: %w", id, err)
	}
	logger.Infof("Project %d deleted", id)
	s.bus.Publish(events.Event{
		Type:      events.EventProjectDeleted,
		ProjectID: id,
		Name:      project.Name,
	})
	return nil
}

// notFound maps gorm.ErrRecordNotFound to ErrNotFound
func notFound(err error, format string, args ...interface{}) error {
	what := fmt.Sprintf(format, args...)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}
