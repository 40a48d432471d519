package handlers

import (
	"strconv"
	"strings"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/celestiaorg/hypermedia/internal/db/models"
	"github.com/celestiaorg/hypermedia/internal/services"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia/web"
)

// Link relations of the projects API
const (
	RelProjects = "projects"
	RelProject  = "project"
	RelTasks    = "tasks"
)

// Route parameters
const (
	ParamID        = "id"
	ParamProjectID = "project_id"
)

var (
	projectType = hypermedia.TypeOf[models.Project]()
	taskType    = hypermedia.TypeOf[models.Task]()
)

// ProjectCreateParams is the body of a project creation request
type ProjectCreateParams struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate checks the create parameters
func (p ProjectCreateParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fiber.NewError(fiber.StatusBadRequest, ErrMsgProjNameRequired)
	}
	return nil
}

// ProjectHandler serves project resources
type ProjectHandler struct {
	projects *services.Project
	links    hypermedia.EntityLinks
	adapter  *web.RouteAdapter
}

// NewProjectHandler creates a project handler building links with links.
// The adapter binds request bodies.
func NewProjectHandler(projects *services.Project, links hypermedia.EntityLinks, adapter *web.RouteAdapter) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		links:    links,
		adapter:  adapter,
	}
}

// List returns a page of projects
func (h *ProjectHandler) List(c *fiber.Ctx) (any, error) {
	page, opts, err := getPaginationOptions(c)
	if err != nil {
		return nil, err
	}

	projects, total, err := h.projects.List(c.Context(), opts)
	if err != nil {
		return nil, serviceError(err, ErrMsgProjListFailed)
	}

	collection, err := h.links.LinkToCollectionResource(projectType)
	if err != nil {
		return nil, linkError(err)
	}

	items := make([]*hypermedia.EntityModel[models.Project], 0, len(projects))
	for _, p := range projects {
		item, err := projectModel(h.links, p)
		if err != nil {
			return nil, linkError(err)
		}
		items = append(items, item)
	}

	return hypermedia.NewCollectionModel(items, pageLinks(collection.Href, page, opts, len(projects), total)...), nil
}

// Get returns a single project
func (h *ProjectHandler) Get(c *fiber.Ctx) (any, error) {
	id, err := paramID(c, ParamID, ErrMsgInvalidProjectID)
	if err != nil {
		return nil, err
	}

	project, err := h.projects.Get(c.Context(), id)
	if err != nil {
		return nil, serviceError(err, ErrMsgProjGetFailed)
	}

	model, err := projectModel(h.links, *project)
	if err != nil {
		return nil, linkError(err)
	}
	return model, nil
}

// Create creates a project and answers 201 with its representation
func (h *ProjectHandler) Create(c *fiber.Ctx) (any, error) {
	var params ProjectCreateParams
	if err := h.adapter.Bind(c, &params); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	project := models.Project{
		Name:        strings.TrimSpace(params.Name),
		Description: params.Description,
	}
	if err := h.projects.Create(c.Context(), &project); err != nil {
		return nil, serviceError(err, ErrMsgProjCreateFailed)
	}

	model, err := projectModel(h.links, project)
	if err != nil {
		return nil, linkError(err)
	}

	self, _ := model.Link(hypermedia.RelSelf)
	c.Location(self.Href)
	c.Status(fiber.StatusCreated)
	return model, nil
}

// Delete deletes a project with its tasks
func (h *ProjectHandler) Delete(c *fiber.Ctx) (any, error) {
	id, err := paramID(c, ParamID, ErrMsgInvalidProjectID)
	if err != nil {
		return nil, err
	}
	if err := h.projects.Delete(c.Context(), id); err != nil {
		return nil, serviceError(err, ErrMsgProjDeleteFailed)
	}
	return nil, nil
}

// projectModel wraps p with its self, tasks and projects links
func projectModel(links hypermedia.EntityLinks, p models.Project) (*hypermedia.EntityModel[models.Project], error) {
	self, err := links.LinkToItemResource(projectType, p.ID)
	if err != nil {
		return nil, err
	}
	tasks, err := links.LinkFor(taskType, map[string]string{ParamProjectID: formatID(p.ID)})
	if err != nil {
		return nil, err
	}
	collection, err := links.LinkToCollectionResource(projectType)
	if err != nil {
		return nil, err
	}
	return hypermedia.NewEntityModel(p, self, tasks.WithRel(RelTasks), collection.WithRel(RelProjects)), nil
}

// paramID parses a positive numeric route parameter
func paramID(c *fiber.Ctx, name, msg string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, msg)
	}
	return uint(id), nil
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
