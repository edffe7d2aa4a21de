package database

import (
	"context"

	"github.com/bkocaman/harbor/component"
)

const componentName = "database-pool"

// Ensure *PoolComponent satisfies component.Component at compile time.
var _ component.Component = (*PoolComponent)(nil)

// PoolComponent wraps an already-provisioned pool so its lifetime can be
// managed by a component registry. Start verifies connectivity; Stop closes
// the pool.
type PoolComponent struct {
	pool Pool
}

// NewComponent returns a component.Component owning the given pool's
// shutdown.
func NewComponent(pool Pool) *PoolComponent {
	return &PoolComponent{pool: pool}
}

// Name returns the component name used for registration.
func (pc *PoolComponent) Name() string { return componentName }

// Pool returns the wrapped pool handle.
func (pc *PoolComponent) Pool() Pool { return pc.pool }

// Start pings the pool. The pool itself was created during provisioning.
func (pc *PoolComponent) Start(ctx context.Context) error {
	return pc.pool.Ping(ctx)
}

// Stop closes the pool and waits for checked-out connections to be
// returned.
func (pc *PoolComponent) Stop(ctx context.Context) error {
	pc.pool.Close()
	return nil
}

// Health reports whether the pool still answers pings.
func (pc *PoolComponent) Health(ctx context.Context) component.Health {
	if err := pc.pool.Ping(ctx); err != nil {
		return component.Health{
			Name:    componentName,
			Status:  component.StatusUnhealthy,
			Message: err.Error(),
		}
	}
	return component.Health{Name: componentName, Status: component.StatusHealthy}
}
