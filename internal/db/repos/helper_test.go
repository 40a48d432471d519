package repos

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/celestiaorg/hypermedia/internal/db/models"
)

// DBRepositoryTestSuite provides a base test suite for repository tests
type DBRepositoryTestSuite struct {
	suite.Suite
	db          *gorm.DB
	ctx         context.Context
	projectRepo *ProjectRepository
	taskRepo    *TaskRepository
	seq         int
}

func (s *DBRepositoryTestSuite) SetupTest() {
	// Each test gets its own named in-memory database
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(s.T().Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err, "Failed to create in-memory database")

	err = db.AutoMigrate(&models.Project{}, &models.Task{})
	require.NoError(s.T(), err, "Failed to run database migrations")

	s.db = db
	s.projectRepo = NewProjectRepository(s.db)
	s.taskRepo = NewTaskRepository(s.db)
	s.ctx = context.Background()
}

func (s *DBRepositoryTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

// Helper methods for creating test data

func (s *DBRepositoryTestSuite) createTestProject() *models.Project {
	s.seq++
	project := &models.Project{
		Name:        fmt.Sprintf("test-project-%d", s.seq),
		Description: "Test project",
	}
	err := s.projectRepo.Create(s.ctx, project)
	s.Require().NoError(err)
	return project
}

func (s *DBRepositoryTestSuite) createTestTask(projectID uint, name string) *models.Task {
	task := &models.Task{
		ProjectID: projectID,
		Name:      name,
	}
	err := s.taskRepo.Create(s.ctx, task)
	s.Require().NoError(err)
	return task
}

// TestDBRepository runs the base suite to verify setup and teardown
func TestDBRepository(t *testing.T) {
	suite.Run(t, new(DBRepositoryTestSuite))
}
