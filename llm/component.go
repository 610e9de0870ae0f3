package llm

import (
	"context"
	"fmt"

	"github.com/kbukum/promptprobe/component"
	"github.com/kbukum/promptprobe/observability"
)

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Component wraps an Adapter so a tool's bootstrap can report on it and
// close its connection pool on shutdown.
type Component struct {
	adapter *Adapter
	// probe controls whether Health calls the endpoint's health path.
	probe bool
}

// NewComponent returns a component for a. With probe set, Health issues a
// request to the dialect's health path; otherwise it reports up.
func NewComponent(a *Adapter, probe bool) *Component {
	return &Component{adapter: a, probe: probe}
}

// Name returns the component name used for registration.
func (c *Component) Name() string { return c.adapter.Name() }

// Start is a no-op; connections open on the first request.
func (c *Component) Start(context.Context) error { return nil }

// Stop releases idle pooled connections.
func (c *Component) Stop(ctx context.Context) error { return c.adapter.Close(ctx) }

// Health reports whether the endpoint answered its health path.
func (c *Component) Health(ctx context.Context) observability.Health {
	h := observability.Health{
		Name:    c.adapter.Name(),
		Status:  observability.HealthStatusUp,
		Details: map[string]string{"model": c.adapter.Model()},
	}
	if c.probe && !c.adapter.IsAvailable(ctx) {
		h.Status = observability.HealthStatusDown
		h.Message = "endpoint unreachable"
	}
	return h
}

// Describe returns summary info for the bootstrap display.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    "LLM API",
		Type:    "client",
		Details: fmt.Sprintf("%s model=%s dialect=%s", c.adapter.REST().HTTP().BaseURL(), c.adapter.Model(), c.adapter.Dialect().Name()),
	}
}
