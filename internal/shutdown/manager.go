package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"edumerge/internal/logger"
)

const component = "ShutdownManager"

// DefaultTimeout bounds how long a single component may take to stop.
const DefaultTimeout = 10 * time.Second

type Shutdownable interface {
	Shutdown()
}

// Func adapts a plain function to Shutdownable.
type Func func()

func (f Func) Shutdown() { f() }

type entry struct {
	name      string
	component Shutdownable
}

// Manager stops registered components in reverse order on a signal or an
// explicit Shutdown, then runs the quit hook (normally fyne.App.Quit).
type Manager struct {
	entries []entry
	logger  logger.Logger
	timeout time.Duration
	quit    func()

	mu     sync.Mutex
	done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	stop   func()
}

func NewManager(log logger.Logger) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		logger:  log,
		timeout: DefaultTimeout,
		done:    make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
		stop:    func() {},
	}
}

// SetQuit sets the function run after every component has stopped.
func (m *Manager) SetQuit(quit func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quit = quit
}

// SetTimeout changes the per-component stop timeout.
func (m *Manager) SetTimeout(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d > 0 {
		m.timeout = d
	}
}

func (m *Manager) Register(name string, c Shutdownable) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry{name: name, component: c})
}

// Unregister drops the component registered under name, for components
// that stop on their own before the app quits. It reports whether one was
// found.
func (m *Manager) Unregister(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.entries {
		if e.name == name {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Listen shuts down on SIGINT or SIGTERM.
func (m *Manager) Listen() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	m.mu.Lock()
	m.stop = func() { signal.Stop(sigChan) }
	m.mu.Unlock()

	go func() {
		select {
		case sig := <-sigChan:
			m.logger.Info(component, "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			m.Shutdown()
		case <-m.done:
		}
	}()
}

// Shutdown cancels Context, stops components newest first and quits. Only
// the first call does anything.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	select {
	case <-m.done:
		m.mu.Unlock()
		return
	default:
		close(m.done)
	}
	entries := append([]entry(nil), m.entries...)
	timeout, quit, stop := m.timeout, m.quit, m.stop
	m.mu.Unlock()

	stop()
	m.logger.Info(component, "shutdown sequence initiated", map[string]interface{}{
		"components": len(entries),
	})
	m.cancel()

	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		finished := make(chan struct{})
		go func() {
			defer close(finished)
			e.component.Shutdown()
		}()

		select {
		case <-finished:
			m.logger.Debug(component, "component stopped", map[string]interface{}{
				"component": e.name,
			})
		case <-time.After(timeout):
			m.logger.Warning(component, "component shutdown timeout", map[string]interface{}{
				"component": e.name,
				"timeout":   timeout.String(),
			})
		}
	}

	m.logger.Info(component, "shutdown sequence completed", nil)
	if quit != nil {
		quit()
	}
}

// Context is cancelled when shutdown starts. Long-running work such as the
// mail merge wizard runs under it.
func (m *Manager) Context() context.Context {
	return m.ctx
}

func (m *Manager) Done() <-chan struct{} {
	return m.done
}
