// Package app assembles the HAL projects server
package app

import (
	"context"
	"errors"
	"fmt"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"gorm.io/gorm"

	"github.com/celestiaorg/hypermedia/internal/api/v1/handlers"
	"github.com/celestiaorg/hypermedia/internal/api/v1/middleware"
	"github.com/celestiaorg/hypermedia/internal/api/v1/routes"
	"github.com/celestiaorg/hypermedia/internal/db/models"
	"github.com/celestiaorg/hypermedia/internal/db/repos"
	"github.com/celestiaorg/hypermedia/internal/events"
	"github.com/celestiaorg/hypermedia/internal/metrics"
	"github.com/celestiaorg/hypermedia/internal/services"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia/hal"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia/support"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia/web"
)

// Options configures the server
type Options struct {
	DB *gorm.DB
	// BaseURL prefixes every generated link. Empty yields relative links.
	BaseURL string
	// Types are the hypermedia types to serve. Defaults to HAL.
	Types []hypermedia.Type
	// CurieName and CurieHref namespace custom rels when both are set
	CurieName string
	CurieHref string
	// DisablePluralization names collection rels "<item>List"
	DisablePluralization bool
	// JSONEncoder encodes entity content. Defaults to encoding/json.
	JSONEncoder utils.JSONMarshal
}

// App is the Fiber application together with its hypermedia support
type App struct {
	*fiber.App
	Hypermedia *support.Context
	// Events carries project and task lifecycle events
	Events *events.Bus

	stopEvents context.CancelFunc
}

// New builds the server: the handler adapters, hypermedia support, the
// services and the routes.
func New(opts Options) (*App, error) {
	if opts.DB == nil {
		return nil, errors.New("database connection is required")
	}
	if len(opts.Types) == 0 {
		opts.Types = []hypermedia.Type{hypermedia.HAL}
	}

	fiberApp := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: true,
	})
	fiberApp.Use(middleware.RequestID())
	fiberApp.Use(middleware.Logger())

	routeAdapter := web.NewRouteAdapter()
	legacyAdapter := web.NewLegacyAdapter()

	cfg := support.Config{
		Types:                opts.Types,
		Adapters:             []web.HandlerAdapter{routeAdapter, legacyAdapter},
		JSONEncoder:          opts.JSONEncoder,
		Routes:               fiberApp,
		BaseURL:              opts.BaseURL,
		DisablePluralization: opts.DisablePluralization,
	}
	if opts.CurieName != "" && opts.CurieHref != "" {
		cfg.CurieProvider = hal.NewDefaultCurieProvider(opts.CurieName, opts.CurieHref)
	}

	hctx, err := support.Enable(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to enable hypermedia support: %w", err)
	}
	hctx.RouteEntityLinks().ExposeResource(hypermedia.TypeOf[models.Project](), routes.GetProjects)
	hctx.RouteEntityLinks().ExposeResource(hypermedia.TypeOf[models.Task](), routes.GetTasks)

	bus := events.NewBus(events.EventChannelSize)
	for _, t := range []events.EventType{
		events.EventProjectCreated,
		events.EventProjectDeleted,
		events.EventTaskCreated,
		events.EventTaskStatusChanged,
	} {
		bus.Subscribe(t, countEvent)
	}
	ctx, stop := context.WithCancel(context.Background())
	bus.Start(ctx)

	projectService := services.NewProjectService(repos.NewProjectRepository(opts.DB), bus)
	taskService := services.NewTaskService(repos.NewTaskRepository(opts.DB), projectService, bus)

	links := hctx.DelegatingEntityLinks()
	routes.RegisterRoutes(fiberApp, routes.Handlers{
		Route:  routeAdapter,
		Legacy: legacyAdapter,
		Root: handlers.NewRootHandler(links,
			hypermedia.NewLink(opts.BaseURL+routes.RootURL(), hypermedia.RelSelf),
			hypermedia.NewLink(opts.BaseURL+routes.HealthCheckURL(), "health"),
			hypermedia.NewLink(opts.BaseURL+routes.MetricsURL(), "metrics"),
		),
		Projects: handlers.NewProjectHandler(projectService, links, routeAdapter),
		Tasks:    handlers.NewTaskHandler(taskService, links, routeAdapter),
	})

	return &App{App: fiberApp, Hypermedia: hctx, Events: bus, stopEvents: stop}, nil
}

// Close stops event processing
func (a *App) Close() {
	a.stopEvents()
}

// Shutdown stops event processing and gracefully shuts down the server
func (a *App) Shutdown() error {
	a.Close()
	return a.App.Shutdown()
}

func countEvent(_ context.Context, e events.Event) error {
	metrics.ResourceEventsTotal.WithLabelValues(string(e.Type)).Inc()
	return nil
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
