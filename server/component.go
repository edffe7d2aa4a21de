package server

import (
	"context"
	"fmt"

	"github.com/bkocaman/harbor/component"
)

// ServiceComponent adapts a Service to the component lifecycle so it can be
// started and stopped by a Registry alongside the database pool.
type ServiceComponent struct {
	service *Service
	addr    string
}

// NewComponent wraps svc as a registry-managed component that binds addr
// on Start.
func NewComponent(svc *Service, addr string) *ServiceComponent {
	return &ServiceComponent{service: svc, addr: addr}
}

// Name implements component.Component.
func (c *ServiceComponent) Name() string { return "http-server" }

// Start binds the configured address and begins serving.
func (c *ServiceComponent) Start(ctx context.Context) error {
	return c.service.Bind(c.addr)
}

// Stop drains in-flight requests and closes the listener.
func (c *ServiceComponent) Stop(ctx context.Context) error {
	return c.service.Shutdown(ctx)
}

// Health reports whether the server is bound.
func (c *ServiceComponent) Health(ctx context.Context) component.Health {
	if c.service.Addr() == "" {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: "server not bound",
		}
	}
	return component.Health{
		Name:    c.Name(),
		Status:  component.StatusHealthy,
		Message: fmt.Sprintf("serving on %s", c.service.Addr()),
	}
}

// Service returns the wrapped Service.
func (c *ServiceComponent) Service() *Service { return c.service }
