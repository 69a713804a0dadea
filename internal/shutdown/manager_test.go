package shutdown

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"edumerge/internal/logger"
)

func TestShutdownStopsInReverseOrder(t *testing.T) {
	m := NewManager(logger.Nop())

	var mu sync.Mutex
	var order []string
	record := func(name string) Func {
		return func() {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
		}
	}
	m.Register("first", record("first"))
	m.Register("second", record("second"))
	m.SetQuit(record("quit"))

	m.Shutdown()

	assert.Equal(t, []string{"second", "first", "quit"}, order)
	assert.Error(t, m.Context().Err())
	select {
	case <-m.Done():
	default:
		t.Fatal("done channel still open")
	}
}

func TestShutdownRunsOnce(t *testing.T) {
	m := NewManager(logger.Nop())
	calls := 0
	m.Register("counter", Func(func() { calls++ }))

	m.Shutdown()
	m.Shutdown()

	assert.Equal(t, 1, calls)
}

func TestShutdownSkipsStuckComponent(t *testing.T) {
	m := NewManager(logger.Nop())
	m.SetTimeout(20 * time.Millisecond)

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	m.Register("stuck", Func(func() { <-release }))

	quit := make(chan struct{})
	m.SetQuit(func() { close(quit) })

	go m.Shutdown()

	select {
	case <-quit:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown blocked on a stuck component")
	}
}

func TestUnregisteredComponentIsNotStopped(t *testing.T) {
	m := NewManager(logger.Nop())
	var stopped []string
	for _, name := range []string{"editor", "wizard"} {
		m.Register(name, Func(func() { stopped = append(stopped, name) }))
	}

	assert.True(t, m.Unregister("editor"))
	assert.False(t, m.Unregister("editor"))
	m.Shutdown()

	assert.Equal(t, []string{"wizard"}, stopped)
}
