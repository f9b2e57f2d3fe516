package observability

import (
	"context"
	"fmt"
	"sync"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/redisext/component"
)

// MeterComponent owns the meter provider's lifecycle: Start initializes
// export, Stop flushes and shuts it down.
type MeterComponent struct {
	cfg      MeterConfig
	mu       sync.RWMutex
	provider *sdkmetric.MeterProvider
}

var (
	_ component.Component   = (*MeterComponent)(nil)
	_ component.Describable = (*MeterComponent)(nil)
)

// NewMeterComponent creates a meter component for cfg.
func NewMeterComponent(cfg MeterConfig) *MeterComponent {
	return &MeterComponent{cfg: cfg}
}

func (c *MeterComponent) Name() string { return "metrics" }

func (c *MeterComponent) Start(ctx context.Context) error {
	mp, err := InitMeter(ctx, &c.cfg)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.provider = mp
	c.mu.Unlock()
	return nil
}

func (c *MeterComponent) Stop(ctx context.Context) error {
	c.mu.Lock()
	mp := c.provider
	c.provider = nil
	c.mu.Unlock()
	if mp == nil {
		return nil
	}
	return mp.Shutdown(ctx)
}

func (c *MeterComponent) Health(_ context.Context) component.Health {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.provider == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "meter not started"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

func (c *MeterComponent) Describe() component.Description {
	return component.Description{
		Name:    "Metrics",
		Type:    "otlp",
		Details: fmt.Sprintf("%s every %s", c.cfg.Endpoint, c.cfg.Interval),
	}
}
