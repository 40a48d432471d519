package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitFor waits for wg or fails the test after two seconds
func waitFor(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Test timed out waiting for event handlers")
	}
}

func TestBus(t *testing.T) {
	t.Run("Subscribe and Publish", func(t *testing.T) {
		bus := NewBus(EventChannelSize)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		bus.Start(ctx)

		var wg sync.WaitGroup
		wg.Add(1)
		var received Event
		bus.Subscribe(EventTaskStatusChanged, func(_ context.Context, e Event) error {
			received = e
			wg.Done()
			return nil
		})

		published := Event{
			Type:      EventTaskStatusChanged,
			ProjectID: 1,
			TaskID:    2,
			Name:      "build",
			Status:    "running",
		}
		require.True(t, bus.Publish(published))

		waitFor(t, &wg)
		assert.Equal(t, published, received)
	})

	t.Run("Multiple Handlers", func(t *testing.T) {
		bus := NewBus(EventChannelSize)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		bus.Start(ctx)

		var wg sync.WaitGroup
		wg.Add(2)
		var mu sync.Mutex
		calls := make(map[string]bool)
		for _, name := range []string{"first", "second"} {
			bus.Subscribe(EventProjectCreated, func(_ context.Context, _ Event) error {
				mu.Lock()
				calls[name] = true
				mu.Unlock()
				wg.Done()
				return nil
			})
		}

		bus.Publish(Event{Type: EventProjectCreated, ProjectID: 7, Name: "alpha"})

		waitFor(t, &wg)
		mu.Lock()
		assert.True(t, calls["first"])
		assert.True(t, calls["second"])
		mu.Unlock()
	})

	t.Run("Different Event Types", func(t *testing.T) {
		bus := NewBus(EventChannelSize)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		bus.Start(ctx)

		var wg sync.WaitGroup
		wg.Add(2)
		var mu sync.Mutex
		received := make(map[EventType]int)
		record := func(_ context.Context, e Event) error {
			mu.Lock()
			received[e.Type]++
			mu.Unlock()
			wg.Done()
			return nil
		}
		bus.Subscribe(EventProjectCreated, record)
		bus.Subscribe(EventProjectDeleted, record)

		bus.Publish(Event{Type: EventProjectCreated, ProjectID: 1})
		bus.Publish(Event{Type: EventProjectDeleted, ProjectID: 1})

		waitFor(t, &wg)
		mu.Lock()
		assert.Equal(t, 1, received[EventProjectCreated])
		assert.Equal(t, 1, received[EventProjectDeleted])
		mu.Unlock()
	})

	t.Run("Full Buffer Drops Events", func(t *testing.T) {
		bus := NewBus(1)

		assert.True(t, bus.Publish(Event{Type: EventTaskCreated}))
		assert.False(t, bus.Publish(Event{Type: EventTaskCreated}))
	})

	t.Run("Nil Bus", func(t *testing.T) {
		var bus *Bus
		assert.False(t, bus.Publish(Event{Type: EventTaskCreated}))
	})
}
