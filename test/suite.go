package test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/celestiaorg/hypermedia/internal/api/v1/routes"
	"github.com/celestiaorg/hypermedia/internal/app"
	"github.com/celestiaorg/hypermedia/internal/db"
	"github.com/celestiaorg/hypermedia/internal/db/models"
	"github.com/celestiaorg/hypermedia/internal/db/repos"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia/client"
)

// DefaultTestTimeout is the default timeout for test suites.
const DefaultTestTimeout = 30 * time.Second

// testClientTimeout is the timeout of a single client request
const testClientTimeout = 5 * time.Second

// Suite encapsulates all components needed for integration testing
type Suite struct {
	t *testing.T

	// Server components
	App    *app.App
	Server *httptest.Server

	// Client components
	Traverson *client.Traverson

	// Database components
	DB          *gorm.DB
	ProjectRepo *repos.ProjectRepository
	TaskRepo    *repos.TaskRepository

	ctx        context.Context
	cancelFunc context.CancelFunc
	tmpDir     string
}

// Option customizes the server options of a suite
type Option func(*app.Options)

// NewSuite starts a server on a fresh database. The suite must be cleaned up
// after use by calling Cleanup.
func NewSuite(t *testing.T, opts ...Option) *Suite {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), DefaultTestTimeout)
	s := &Suite{
		t:          t,
		ctx:        ctx,
		cancelFunc: cancel,
	}

	s.setupDB()
	s.setupServer(opts)
	return s
}

func (s *Suite) setupDB() {
	tmpDir, err := os.MkdirTemp("", "hypermedia_test")
	s.Require().NoError(err, "Failed to create temporary directory")
	s.tmpDir = tmpDir

	conn, err := gorm.Open(sqlite.Open(filepath.Join(tmpDir, "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err, "Failed to open database")
	s.Require().NoError(db.Migrate(conn), "Failed to run migrations")

	s.DB = conn
	s.ProjectRepo = repos.NewProjectRepository(conn)
	s.TaskRepo = repos.NewTaskRepository(conn)
}

func (s *Suite) setupServer(opts []Option) {
	// Links need the server URL, which is only known once it listens
	var handler http.Handler
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r)
	}))

	options := app.Options{
		DB:      s.DB,
		BaseURL: s.Server.URL,
	}
	for _, opt := range opts {
		opt(&options)
	}

	server, err := app.New(options)
	s.Require().NoError(err, "Failed to create app")
	s.App = server
	handler = adaptor.FiberApp(server.App)

	clientOpts := client.DefaultOptions()
	clientOpts.Timeout = testClientTimeout
	s.Traverson, err = client.NewTraverson(s.Server.URL+routes.RootURL(), server.Hypermedia.LinkDiscoverers(), clientOpts)
	s.Require().NoError(err, "Failed to create traversal client")
}

// Cleanup tears down the suite, releasing all resources
func (s *Suite) Cleanup() {
	if s.Server != nil {
		s.Server.Close()
	}
	if s.App != nil {
		s.App.Close()
	}
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	if s.DB != nil {
		sqlDB, err := s.DB.DB()
		if err == nil && sqlDB != nil {
			_ = sqlDB.Close()
		}
	}
	if s.tmpDir != "" {
		_ = os.RemoveAll(s.tmpDir)
	}
}

// Context returns the suite's context, which is canceled on cleanup
func (s *Suite) Context() context.Context {
	return s.ctx
}

// Require returns a require.Assertions instance for this suite
func (s *Suite) Require() *require.Assertions {
	return require.New(s.t)
}

// URL returns the absolute URL of path on the test server
func (s *Suite) URL(path string) string {
	return s.Server.URL + path
}

// CreateProject stores a project directly in the database
func (s *Suite) CreateProject(name string) *models.Project {
	project := &models.Project{Name: name, Description: fmt.Sprintf("%s description", name)}
	s.Require().NoError(s.ProjectRepo.Create(s.ctx, project))
	return project
}

// CreateTask stores a task of a project directly in the database
func (s *Suite) CreateTask(projectID uint, name string) *models.Task {
	task := &models.Task{ProjectID: projectID, Name: name}
	s.Require().NoError(s.TaskRepo.Create(s.ctx, task))
	return task
}
