package repos

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/celestiaorg/hypermedia/internal/db/models"
)

type TaskRepositoryTestSuite struct {
	DBRepositoryTestSuite
}

func TestTaskRepository(t *testing.T) {
	suite.Run(t, new(TaskRepositoryTestSuite))
}

func (s *TaskRepositoryTestSuite) TestCreateAndGetTask() {
	project := s.createTestProject()
	task := s.createTestTask(project.ID, "build")
	s.Require().NotZero(task.ID)
	s.Require().Equal(models.TaskStatusPending, task.Status)

	retrieved, err := s.taskRepo.Get(s.ctx, project.ID, task.ID)
	s.Require().NoError(err)
	s.Require().Equal("build", retrieved.Name)

	other := s.createTestProject()
	_, err = s.taskRepo.Get(s.ctx, other.ID, task.ID)
	s.Require().True(errors.Is(err, gorm.ErrRecordNotFound))
}

func (s *TaskRepositoryTestSuite) TestListByProject() {
	project := s.createTestProject()
	other := s.createTestProject()
	s.createTestTask(project.ID, "one")
	s.createTestTask(project.ID, "two")
	s.createTestTask(other.ID, "elsewhere")

	tasks, err := s.taskRepo.ListByProject(s.ctx, project.ID, nil)
	s.Require().NoError(err)
	s.Require().Len(tasks, 2)
	s.Require().Equal("one", tasks[0].Name)

	tasks, err = s.taskRepo.ListByProject(s.ctx, project.ID, &models.ListOptions{Limit: 1, Offset: 1})
	s.Require().NoError(err)
	s.Require().Len(tasks, 1)
	s.Require().Equal("two", tasks[0].Name)
}

func (s *TaskRepositoryTestSuite) TestUpdateStatus() {
	project := s.createTestProject()
	task := s.createTestTask(project.ID, "deploy")

	err := s.taskRepo.UpdateStatus(s.ctx, project.ID, task.ID, models.TaskStatusCompleted)
	s.Require().NoError(err)

	updated, err := s.taskRepo.Get(s.ctx, project.ID, task.ID)
	s.Require().NoError(err)
	s.Require().Equal(models.TaskStatusCompleted, updated.Status)

	err = s.taskRepo.UpdateStatus(s.ctx, project.ID, 999, models.TaskStatusFailed)
	s.Require().True(errors.Is(err, gorm.ErrRecordNotFound))
}
