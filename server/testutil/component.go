package testutil

import (
	"context"
	"fmt"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/redisext/component"
	"github.com/kbukum/redisext/logger"
	"github.com/kbukum/redisext/server"
	"github.com/kbukum/redisext/server/middleware"
	"github.com/kbukum/redisext/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Component serves a server.Server through httptest.Server so tests get a
// real base URL without binding a configured port.
type Component struct {
	srv     *server.Server
	ts      *httptest.Server
	log     *logger.Logger
	extra   []middleware.Middleware
	started bool
	mu      sync.RWMutex
}

var _ component.Component = (*Component)(nil)
var _ testutil.TestComponent = (*Component)(nil)

// NewComponent creates a test server. extra middleware runs after the
// standard stack.
func NewComponent(extra ...middleware.Middleware) *Component {
	log := logger.Nop()
	return &Component{
		srv:   newServer(log),
		log:   log,
		extra: extra,
	}
}

func newServer(log *logger.Logger) *server.Server {
	cfg := server.Config{Host: "127.0.0.1"}
	cfg.ApplyDefaults()
	return server.New(cfg, log)
}

// GinEngine returns the gin engine for registering routes.
func (c *Component) GinEngine() *gin.Engine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.srv.GinEngine()
}

// Server returns the underlying server.
func (c *Component) Server() *server.Server {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.srv
}

// BaseURL returns the test server URL, or "" before Start.
func (c *Component) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ts == nil {
		return ""
	}
	return c.ts.URL
}

func (c *Component) Name() string { return "server-test" }

func (c *Component) Start(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return fmt.Errorf("component already started")
	}
	c.srv.ApplyMiddleware(c.extra...)
	c.ts = httptest.NewServer(c.srv.Handler())
	c.started = true
	return nil
}

func (c *Component) Stop(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return nil
	}
	c.ts.Close()
	c.ts = nil
	c.started = false
	return nil
}

func (c *Component) Health(_ context.Context) component.Health {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.started {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Reset replaces the server with a fresh one. Registered routes are lost.
func (c *Component) Reset(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return fmt.Errorf("component not started")
	}
	c.ts.Close()
	c.srv = newServer(c.log)
	c.srv.ApplyMiddleware(c.extra...)
	c.ts = httptest.NewServer(c.srv.Handler())
	return nil
}

// Snapshot is a no-op; servers hold no state.
func (c *Component) Snapshot(_ context.Context) (interface{}, error) {
	return nil, nil
}

// Restore is a no-op.
func (c *Component) Restore(_ context.Context, _ interface{}) error {
	return nil
}
