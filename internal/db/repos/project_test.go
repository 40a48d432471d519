package repos

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/celestiaorg/hypermedia/internal/db/models"
)

type ProjectRepositoryTestSuite struct {
	DBRepositoryTestSuite
}

func TestProjectRepository(t *testing.T) {
	suite.Run(t, new(ProjectRepositoryTestSuite))
}

func (s *ProjectRepositoryTestSuite) TestCreateAndGetProject() {
	project := s.createTestProject()
	s.Require().NotZero(project.ID)

	retrieved, err := s.projectRepo.Get(s.ctx, project.ID)
	s.Require().NoError(err)
	s.Require().Equal(project.Name, retrieved.Name)
	s.Require().Equal(project.Description, retrieved.Description)

	byName, err := s.projectRepo.GetByName(s.ctx, project.Name)
	s.Require().NoError(err)
	s.Require().Equal(project.ID, byName.ID)

	_, err = s.projectRepo.Get(s.ctx, 999)
	s.Require().True(errors.Is(err, gorm.ErrRecordNotFound))

	_, err = s.projectRepo.GetByName(s.ctx, "non-existent-project")
	s.Require().Error(err)
}

func (s *ProjectRepositoryTestSuite) TestCreateInvalidProject() {
	err := s.projectRepo.Create(s.ctx, &models.Project{})
	s.Require().Error(err)
}

func (s *ProjectRepositoryTestSuite) TestListProjects() {
	for i := 0; i < 3; i++ {
		err := s.projectRepo.Create(s.ctx, &models.Project{Name: fmt.Sprintf("list-%d", i)})
		s.Require().NoError(err)
	}

	projects, err := s.projectRepo.List(s.ctx, nil)
	s.Require().NoError(err)
	s.Require().Len(projects, 3)
	s.Require().Equal("list-0", projects[0].Name)

	page, err := s.projectRepo.List(s.ctx, &models.ListOptions{Limit: 2, Offset: 2})
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Require().Equal("list-2", page[0].Name)

	count, err := s.projectRepo.Count(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(int64(3), count)
}

func (s *ProjectRepositoryTestSuite) TestDeleteProject() {
	project := s.createTestProject()
	s.createTestTask(project.ID, "doomed")

	s.Require().NoError(s.projectRepo.Delete(s.ctx, project.ID))

	_, err := s.projectRepo.Get(s.ctx, project.ID)
	s.Require().True(errors.Is(err, gorm.ErrRecordNotFound))

	tasks, err := s.taskRepo.ListByProject(s.ctx, project.ID, nil)
	s.Require().NoError(err)
	s.Require().Empty(tasks)

	s.Require().NoError(s.projectRepo.Delete(s.ctx, 999))
}
