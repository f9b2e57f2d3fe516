package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/redisext/component"
	"github.com/kbukum/redisext/redis"
	"github.com/kbukum/redisext/testutil"
)

// Component is an in-memory Redis server for tests. It implements
// testutil.TestComponent and hands out a redis.Provider bound to itself.
type Component struct {
	mini    *miniredis.Miniredis
	client  *goredis.Client
	started bool
	mu      sync.RWMutex
}

var _ component.Component = (*Component)(nil)
var _ testutil.TestComponent = (*Component)(nil)

// NewComponent creates a new in-memory Redis test component.
func NewComponent() *Component {
	return &Component{}
}

// Client returns a go-redis client connected to the server, or nil if not
// started.
func (c *Component) Client() *goredis.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client
}

// Name returns the component name.
func (c *Component) Name() string { return "redis-test" }

// Start launches the in-memory Redis server.
func (c *Component) Start(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return fmt.Errorf("component already started")
	}

	mini, err := miniredis.Run()
	if err != nil {
		return fmt.Errorf("failed to start miniredis: %w", err)
	}

	c.mini = mini
	c.client = goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	c.started = true
	return nil
}

// Stop shuts down the in-memory Redis server.
func (c *Component) Stop(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return nil
	}

	if c.client != nil {
		_ = c.client.Close()
	}
	if c.mini != nil {
		c.mini.Close()
	}
	c.started = false
	return nil
}

// Health returns the health status.
func (c *Component) Health(_ context.Context) component.Health {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.started {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: "not started",
		}
	}
	return component.Health{
		Name:   c.Name(),
		Status: component.StatusHealthy,
	}
}

// Reset flushes all keys from the in-memory Redis.
func (c *Component) Reset(_ context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.started || c.mini == nil {
		return fmt.Errorf("component not started")
	}
	c.mini.FlushAll()
	return nil
}

// Snapshot captures every string key and its value.
func (c *Component) Snapshot(_ context.Context) (interface{}, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.started || c.mini == nil {
		return nil, fmt.Errorf("component not started")
	}

	snapshot := make(map[string]string)
	for _, key := range c.mini.Keys() {
		val, err := c.mini.Get(key)
		if err == nil {
			snapshot[key] = val
		}
	}
	return snapshot, nil
}

// Restore flushes the server and writes back a snapshot.
func (c *Component) Restore(_ context.Context, snap interface{}) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.started || c.mini == nil {
		return fmt.Errorf("component not started")
	}

	snapshot, ok := snap.(map[string]string)
	if !ok {
		return fmt.Errorf("invalid snapshot type: expected map[string]string, got %T", snap)
	}

	c.mini.FlushAll()
	for key, val := range snapshot {
		if err := c.mini.Set(key, val); err != nil {
			return fmt.Errorf("failed to restore key %q: %w", key, err)
		}
	}
	return nil
}

// Addr returns the server address, or "" if not started.
func (c *Component) Addr() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.mini == nil {
		return ""
	}
	return c.mini.Addr()
}

// URL returns a redis:// URL for the server, or "" if not started.
func (c *Component) URL() string {
	addr := c.Addr()
	if addr == "" {
		return ""
	}
	return "redis://" + addr + "/0"
}

// Provider returns a redis.Provider whose clients always talk to this
// server, whatever URL the host configures. Options still apply.
func (c *Component) Provider() redis.Provider {
	return provider{c: c}
}

// Extension creates an extension backed by this server.
func (c *Component) Extension(opts ...redis.Option) (*redis.Extension, error) {
	return redis.NewFromCustomProvider(c.Provider(), opts...)
}

type provider struct {
	c *Component
}

func (p provider) FromURL(_ string, opts redis.Options) (redis.Client, error) {
	url := p.c.URL()
	if url == "" {
		return nil, fmt.Errorf("component not started")
	}
	return redis.Strict.FromURL(url, opts)
}

func (p provider) FromPool(pool *redis.Pool) (redis.Client, error) {
	addr := p.c.Addr()
	if addr == "" {
		return nil, fmt.Errorf("component not started")
	}
	o := pool.Options()
	o.Addr = addr
	return goredis.NewClient(&o), nil
}
