// Package routes defines the API routes and URL structure
package routes

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/celestiaorg/hypermedia/internal/api/v1/handlers"
	"github.com/celestiaorg/hypermedia/internal/metrics"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia/web"
)

/*

Routes are registered in this order:

1. Smallest scope first (projects before tasks)
2. GET, POST, PUT, DELETE
3. Param urls (ie /:id) last within a method, otherwise fiber interprets the slug as the param

*/

// API base configuration
const (
	// DefaultPort is the default port for the API
	DefaultPort = "8000"
	// APIv1Prefix is the prefix for all API endpoints
	APIv1Prefix = "/api/v1"
)

// DefaultBaseURL is the default base URL for the API
var DefaultBaseURL = fmt.Sprintf("http://localhost:%s", DefaultPort)

// Route names for lookup
const (
	// Operational routes
	HealthCheck = "HealthCheck"
	Metrics     = "Metrics"

	// Entry point
	Root = "Root"

	// Project routes
	GetProjects   = "GetProjects"
	GetProject    = "GetProject"
	CreateProject = "CreateProject"
	DeleteProject = "DeleteProject"

	// Task routes
	GetTasks         = "GetTasks"
	GetTask          = "GetTask"
	CreateTask       = "CreateTask"
	UpdateTaskStatus = "UpdateTaskStatus"
)

// Handlers groups the handlers and adapters served by the API
type Handlers struct {
	// Route renders Fiber handler results
	Route *web.RouteAdapter
	// Legacy renders net/http handler results
	Legacy   *web.LegacyAdapter
	Root     *handlers.RootHandler
	Projects *handlers.ProjectHandler
	Tasks    *handlers.TaskHandler
}

// routeCache stores extracted routes for use prior to compilation
var (
	routeCache     map[string]string
	routeCacheInit sync.Once
)

// RegisterRoutes configures the health, metrics and v1 routes
func RegisterRoutes(app *fiber.App, h Handlers) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	}).Name(HealthCheck)

	app.Get("/metrics", adaptor.HTTPHandler(
		promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}),
	)).Name(Metrics)

	v1 := app.Group(APIv1Prefix)
	v1.Get("/", adaptor.HTTPHandler(h.Legacy.Handle(h.Root.Index))).Name(Root)

	projects := v1.Group("/projects")
	projects.Get("/", h.Route.Handle(h.Projects.List)).Name(GetProjects)
	projects.Get("/:"+handlers.ParamID, h.Route.Handle(h.Projects.Get)).Name(GetProject)
	projects.Post("/", h.Route.Handle(h.Projects.Create)).Name(CreateProject)
	projects.Delete("/:"+handlers.ParamID, h.Route.Handle(h.Projects.Delete)).Name(DeleteProject)

	tasks := projects.Group("/:" + handlers.ParamProjectID + "/tasks")
	tasks.Get("/", h.Route.Handle(h.Tasks.List)).Name(GetTasks)
	tasks.Get("/:"+handlers.ParamID, h.Route.Handle(h.Tasks.Get)).Name(GetTask)
	tasks.Post("/", h.Route.Handle(h.Tasks.Create)).Name(CreateTask)
	tasks.Put("/:"+handlers.ParamID+"/status", h.Route.Handle(h.Tasks.UpdateStatus)).Name(UpdateTaskStatus)
}

// initRouteCache registers the routes on a throwaway app and extracts their paths
func initRouteCache() {
	routeCacheInit.Do(func() {
		routeCache = make(map[string]string)

		app := fiber.New()
		RegisterRoutes(app, Handlers{
			Route:    web.NewRouteAdapter(),
			Legacy:   web.NewLegacyAdapter(),
			Root:     &handlers.RootHandler{},
			Projects: &handlers.ProjectHandler{},
			Tasks:    &handlers.TaskHandler{},
		})

		for _, route := range app.GetRoutes() {
			if route.Name != "" {
				routeCache[route.Name] = route.Path
			}
		}
	})
}

// GetRoute returns the route pattern for the given route name
func GetRoute(name string) string {
	initRouteCache()
	return routeCache[name]
}

// BuildURL builds a URL for the given route name and parameters
func BuildURL(routeName string, params map[string]string, queryParams url.Values) string {
	route := GetRoute(routeName)
	if route == "" {
		return ""
	}

	for param, value := range params {
		route = strings.ReplaceAll(route, ":"+param, url.PathEscape(value))
	}

	// Remove trailing slash of group roots
	if len(route) > 1 && strings.HasSuffix(route, "/") && !strings.Contains(route, ":") {
		route = strings.TrimSuffix(route, "/")
	}

	if len(queryParams) > 0 {
		route = fmt.Sprintf("%s?%s", route, queryParams.Encode())
	}

	return route
}

// HealthCheckURL returns the URL for the health check endpoint
func HealthCheckURL() string {
	return BuildURL(HealthCheck, nil, nil)
}

// MetricsURL returns the URL for the metrics endpoint
func MetricsURL() string {
	return BuildURL(Metrics, nil, nil)
}

// RootURL returns the URL of the API entry point
func RootURL() string {
	return BuildURL(Root, nil, nil)
}
