// Package events provides an in-process bus for resource lifecycle events
package events

import (
	"context"
	"sync"

	"github.com/celestiaorg/hypermedia/internal/logger"
)

// EventType represents the type of resource event
type EventType string

const (
	// EventProjectCreated is emitted after a project is stored
	EventProjectCreated EventType = "project_created"
	// EventProjectDeleted is emitted after a project and its tasks are removed
	EventProjectDeleted EventType = "project_deleted"
	// EventTaskCreated is emitted after a task is stored
	EventTaskCreated EventType = "task_created"
	// EventTaskStatusChanged is emitted after a task changes status
	EventTaskStatusChanged EventType = "task_status_changed"
	// EventChannelSize is the buffer size for the event channel
	EventChannelSize = 100
)

// Event represents a change to a project or task
type Event struct {
	Type      EventType // The type of event
	ProjectID uint      // The project the event belongs to
	TaskID    uint      // The task, zero for project events
	Name      string    // Name of the project or task
	Status    string    // New task status, for status changes
}

// Handler is a function that handles an event
type Handler func(context.Context, Event) error

// Bus dispatches published events to the handlers subscribed to their type.
// A nil *Bus drops every event.
type Bus struct {
	handlers   map[EventType][]Handler
	handlersMu sync.RWMutex
	events     chan Event
}

// NewBus creates a bus buffering up to size events
func NewBus(size int) *Bus {
	if size <= 0 {
		size = EventChannelSize
	}
	return &Bus{
		handlers: make(map[EventType][]Handler),
		events:   make(chan Event, size),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.handlersMu.Lock()
	defer b.handlersMu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	logger.Debugf("Registered handler for event type: %s", eventType)
}

// Publish queues an event for processing. It never blocks: when the buffer
// is full the event is dropped.
func (b *Bus) Publish(event Event) bool {
	if b == nil {
		return false
	}
	select {
	case b.events <- event:
		logger.Debugf("Published event: %s (project %d)", event.Type, event.ProjectID)
		return true
	default:
		logger.Warnf("Event buffer full, dropping %s for project %d", event.Type, event.ProjectID)
		return false
	}
}

// Start starts the event processing loop, which runs until ctx is done
func (b *Bus) Start(ctx context.Context) {
	go b.process(ctx)
	logger.Debug("Started event processing loop")
}

func (b *Bus) process(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Stopping event processing loop")
			return
		case event := <-b.events:
			b.handlersMu.RLock()
			handlers := b.handlers[event.Type]
			b.handlersMu.RUnlock()

			for _, handler := range handlers {
				go func(h Handler, e Event) {
					if err := h(ctx, e); err != nil {
						logger.ErrorWithFields("Failed to handle event", map[string]interface{}{
							"type":       e.Type,
							"project_id": e.ProjectID,
							"error":      err.Error(),
						})
					}
				}(handler, event)
			}
		}
	}
}
