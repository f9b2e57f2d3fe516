package component

import "context"

// HealthStatus represents the health state of a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health holds health information for a component.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is a lifecycle-managed extension attached to an application.
type Component interface {
	// Name returns the unique registry key of the component.
	Name() string

	// Start brings the component up. Called once by the host, in
	// registration order.
	Start(ctx context.Context) error

	// Stop releases resources. Called in reverse registration order.
	Stop(ctx context.Context) error

	// Health returns the current health status of the component.
	Health(ctx context.Context) Health
}

// Description holds summary information for the startup display.
type Description struct {
	// Name is the display name. Falls back to the component's Name().
	Name string
	// Type categorizes the component: "redis", "server", ...
	Type string
	// Details is a one-liner such as "localhost:6379 db=0 resp3".
	Details string
	// Port is the primary port, 0 if not applicable.
	Port int
}

// Describable is optionally implemented by components that want to appear
// in the startup summary.
type Describable interface {
	Describe() Description
}
