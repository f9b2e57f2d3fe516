package redis

import (
	"context"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/redisext/component"
)

var (
	_ component.Component   = (*Extension)(nil)
	_ component.Describable = (*Extension)(nil)
)

// Name returns the registry name, the lowercased prefix.
func (e *Extension) Name() string { return strings.ToLower(e.prefix) }

// Start verifies the attached client can reach the server.
func (e *Extension) Start(ctx context.Context) error {
	c := e.current()
	if c == nil {
		return ErrNotAttached
	}
	if err := c.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis start ping: %w", err)
	}
	e.log.Info("Redis extension started")
	return nil
}

// Stop closes the held client. Stopping an unattached extension is a no-op.
func (e *Extension) Stop(_ context.Context) error {
	client, pool := e.detach()
	if client == nil {
		return nil
	}
	e.log.Info("Redis extension stopping")
	return closeClient(client, pool)
}

// Health pings the server.
func (e *Extension) Health(ctx context.Context) component.Health {
	c := e.current()
	if c == nil {
		return component.Health{
			Name:    e.Name(),
			Status:  component.StatusUnhealthy,
			Message: "redis not attached",
		}
	}
	if err := c.Ping(ctx).Err(); err != nil {
		return component.Health{
			Name:    e.Name(),
			Status:  component.StatusUnhealthy,
			Message: fmt.Sprintf("ping failed: %v", err),
		}
	}
	return component.Health{
		Name:   e.Name(),
		Status: component.StatusHealthy,
	}
}

// Describe returns infrastructure summary info for the bootstrap display.
func (e *Extension) Describe() component.Description {
	desc := component.Description{
		Name: "Redis",
		Type: "redis",
	}
	e.mu.RLock()
	client, pool := e.client, e.pool
	e.mu.RUnlock()

	switch c := client.(type) {
	case nil:
		desc.Details = "not attached"
	case interface{ Options() *goredis.Options }:
		o := c.Options()
		desc.Details = fmt.Sprintf("%s db=%d protocol=%d provider=%s pool=%t",
			o.Addr, o.DB, o.Protocol, providerName(e.provider), pool != nil)
	default:
		desc.Details = fmt.Sprintf("provider=%s pool=%t", providerName(e.provider), pool != nil)
	}
	return desc
}
