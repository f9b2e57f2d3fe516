package component

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/redisext/logger"
)

const stopTimeout = 10 * time.Second

type entry struct {
	component Component
	started   bool
}

// Registry is an application's extension registry. It maps names to
// components and drives their lifecycle: start in registration order,
// stop in reverse.
type Registry struct {
	entries []*entry
	lookup  map[string]*entry
	log     *logger.Logger
	mu      sync.RWMutex
}

// NewRegistry creates an empty registry logging through the global logger.
func NewRegistry() *Registry {
	return NewRegistryWithLogger(logger.WithComponent("components"))
}

// NewRegistryWithLogger creates an empty registry using log.
func NewRegistryWithLogger(log *logger.Logger) *Registry {
	return &Registry{
		lookup: make(map[string]*entry),
		log:    log,
	}
}

// Register adds a component. It fails if another component already holds
// the name; registering the same component twice is a no-op.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if e, exists := r.lookup[name]; exists {
		if e.component == c {
			return nil
		}
		return fmt.Errorf("component %s already registered", name)
	}
	r.add(c)
	return nil
}

// Set registers c under its name, replacing any component already stored
// there while keeping its position in the start order. It returns the
// replaced component, or nil. The registry no longer stops a replaced
// component, so the caller must.
func (r *Registry) Set(c Component) Component {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if e, exists := r.lookup[name]; exists {
		if e.component == c {
			return nil
		}
		replaced := e.component
		e.component = c
		e.started = false
		r.log.Debug("Component replaced", logger.Fields("component", name))
		return replaced
	}
	r.add(c)
	return nil
}

func (r *Registry) add(c Component) {
	e := &entry{component: c}
	r.entries = append(r.entries, e)
	r.lookup[c.Name()] = e
	r.log.Debug("Component registered", logger.Fields("component", c.Name()))
}

// StartAll starts all components in registration order, skipping ones
// already started.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.log.Info("Starting components", logger.Fields("count", len(r.entries)))

	for _, e := range r.entries {
		if e.started {
			continue
		}
		name := e.component.Name()
		if err := e.component.Start(ctx); err != nil {
			r.log.Error("Component start failed", logger.Fields("component", name, "error", err.Error()))
			return fmt.Errorf("failed to start %s: %w", name, err)
		}
		e.started = true
		r.log.Debug("Component started", logger.Fields("component", name))
	}
	return nil
}

// StopAll stops started components in reverse registration order and
// joins every stop error.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if !e.started {
			continue
		}
		name := e.component.Name()

		stopCtx, cancel := context.WithTimeout(ctx, stopTimeout)
		if err := e.component.Stop(stopCtx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop %s: %w", name, err))
			r.log.Error("Component stop failed", logger.Fields("component", name, "error", err.Error()))
		} else {
			r.log.Info("Component stopped", logger.Fields("component", name))
		}
		cancel()
		e.started = false
	}
	return errors.Join(errs...)
}

// HealthAll returns health for every component in registration order.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]Health, 0, len(r.entries))
	for _, e := range r.entries {
		results = append(results, e.component.Health(ctx))
	}
	return results
}

// Get returns the component registered under name, or nil.
func (r *Registry) Get(name string) Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.lookup[name]; ok {
		return e.component
	}
	return nil
}

// All returns all components in registration order.
func (r *Registry) All() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Component, 0, len(r.entries))
	for _, e := range r.entries {
		result = append(result, e.component)
	}
	return result
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
