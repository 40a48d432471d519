package handlers

import (
	"strings"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/celestiaorg/hypermedia/internal/db/models"
	"github.com/celestiaorg/hypermedia/internal/services"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia/web"
)

// TaskCreateParams is the body of a task creation request
type TaskCreateParams struct {
	Name string `json:"name"`
}

// Validate checks the create parameters
func (p TaskCreateParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fiber.NewError(fiber.StatusBadRequest, ErrMsgTaskNameRequired)
	}
	return nil
}

// TaskStatusParams is the body of a task status update
type TaskStatusParams struct {
	Status string `json:"status"`
}

// Validate checks the status and returns it parsed
func (p TaskStatusParams) Validate() (models.TaskStatus, error) {
	if p.Status == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, ErrMsgTaskStatusReqd)
	}
	status, err := models.ParseTaskStatus(p.Status)
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, ErrMsgTaskStatusInvalid)
	}
	return status, nil
}

// TaskHandler serves the tasks of projects
type TaskHandler struct {
	tasks   *services.Task
	links   hypermedia.EntityLinks
	adapter *web.RouteAdapter
}

// NewTaskHandler creates a task handler
func NewTaskHandler(tasks *services.Task, links hypermedia.EntityLinks, adapter *web.RouteAdapter) *TaskHandler {
	return &TaskHandler{
		tasks:   tasks,
		links:   links,
		adapter: adapter,
	}
}

// List returns a page of the tasks of a project
func (h *TaskHandler) List(c *fiber.Ctx) (any, error) {
	projectID, err := paramID(c, ParamProjectID, ErrMsgInvalidProjectID)
	if err != nil {
		return nil, err
	}
	page, opts, err := getPaginationOptions(c)
	if err != nil {
		return nil, err
	}

	tasks, err := h.tasks.List(c.Context(), projectID, opts)
	if err != nil {
		return nil, serviceError(err, ErrMsgTaskListFailed)
	}

	collection, err := h.links.LinkFor(taskType, map[string]string{ParamProjectID: formatID(projectID)})
	if err != nil {
		return nil, linkError(err)
	}
	project, err := h.links.LinkToItemResource(projectType, projectID)
	if err != nil {
		return nil, linkError(err)
	}

	items := make([]*hypermedia.EntityModel[models.Task], 0, len(tasks))
	for _, t := range tasks {
		item, err := h.taskModel(t)
		if err != nil {
			return nil, linkError(err)
		}
		items = append(items, item)
	}

	// The total is unknown, so a full page always advertises a next page
	total := int64(opts.Offset + len(tasks))
	if len(tasks) == opts.Limit {
		total++
	}
	links := pageLinks(collection.String(), page, opts, len(tasks), total)
	links = append(links, project.WithRel(RelProject))
	return hypermedia.NewCollectionModel(items, links...), nil
}

// Get returns a single task
func (h *TaskHandler) Get(c *fiber.Ctx) (any, error) {
	projectID, id, err := taskParams(c)
	if err != nil {
		return nil, err
	}

	task, err := h.tasks.Get(c.Context(), projectID, id)
	if err != nil {
		return nil, serviceError(err, ErrMsgTaskGetFailed)
	}

	return h.entity(*task)
}

// Create adds a task to a project and answers 201 with its representation
func (h *TaskHandler) Create(c *fiber.Ctx) (any, error) {
	projectID, err := paramID(c, ParamProjectID, ErrMsgInvalidProjectID)
	if err != nil {
		return nil, err
	}

	var params TaskCreateParams
	if err := h.adapter.Bind(c, &params); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	task := models.Task{Name: strings.TrimSpace(params.Name)}
	if err := h.tasks.Create(c.Context(), projectID, &task); err != nil {
		return nil, serviceError(err, ErrMsgTaskCreateFailed)
	}

	model, err := h.taskModel(task)
	if err != nil {
		return nil, linkError(err)
	}

	self, _ := model.Link(hypermedia.RelSelf)
	c.Location(self.Href)
	c.Status(fiber.StatusCreated)
	return model, nil
}

// UpdateStatus changes the status of a task and returns the updated task
func (h *TaskHandler) UpdateStatus(c *fiber.Ctx) (any, error) {
	projectID, id, err := taskParams(c)
	if err != nil {
		return nil, err
	}

	var params TaskStatusParams
	if err := h.adapter.Bind(c, &params); err != nil {
		return nil, err
	}
	status, err := params.Validate()
	if err != nil {
		return nil, err
	}

	if err := h.tasks.UpdateStatus(c.Context(), projectID, id, status); err != nil {
		return nil, serviceError(err, ErrMsgTaskStatusFailed)
	}

	task, err := h.tasks.Get(c.Context(), projectID, id)
	if err != nil {
		return nil, serviceError(err, ErrMsgTaskGetFailed)
	}
	return h.entity(*task)
}

func (h *TaskHandler) entity(t models.Task) (any, error) {
	model, err := h.taskModel(t)
	if err != nil {
		return nil, linkError(err)
	}
	return model, nil
}

// taskModel wraps t with its self and project links
func (h *TaskHandler) taskModel(t models.Task) (*hypermedia.EntityModel[models.Task], error) {
	tasks, err := h.links.LinkFor(taskType, map[string]string{ParamProjectID: formatID(t.ProjectID)})
	if err != nil {
		return nil, err
	}
	project, err := h.links.LinkToItemResource(projectType, t.ProjectID)
	if err != nil {
		return nil, err
	}
	return hypermedia.NewEntityModel(t, tasks.Slash(t.ID).WithSelfRel(), project.WithRel(RelProject)), nil
}

func taskParams(c *fiber.Ctx) (uint, uint, error) {
	projectID, err := paramID(c, ParamProjectID, ErrMsgInvalidProjectID)
	if err != nil {
		return 0, 0, err
	}
	id, err := paramID(c, ParamID, ErrMsgInvalidTaskID)
	if err != nil {
		return 0, 0, err
	}
	return projectID, id, nil
}
