package bootstrap

import (
	"context"
	"fmt"
	"sync"

	"github.com/bkocaman/harbor/component"
	"github.com/bkocaman/harbor/database"
	"github.com/bkocaman/harbor/errors"
	"github.com/bkocaman/harbor/logger"
	"github.com/bkocaman/harbor/provision"
	"github.com/bkocaman/harbor/secrets"
	"github.com/bkocaman/harbor/server"
	"github.com/bkocaman/harbor/supervise"
)

// Service is the contract the bootstrapper hands back to the host: a
// constructed service that can be bound to an address and later shut down.
// server.Service is the production implementation.
type Service interface {
	Bind(addr string) error
	Shutdown(ctx context.Context) error
}

// Bootstrapper drives the startup sequence. Create one per process with
// CreateService; a Bootstrapper is not reusable after Boot fails.
type Bootstrapper struct {
	mode         secrets.Mode
	serverConfig server.Config
	pipelineOpts []logger.PipelineOption
	install      func(*logger.Pipeline) error
	rt           *supervise.Runtime
	registry     *component.Registry

	mu      sync.Mutex
	state   State
	failure error
}

// CreateService is the host-facing entry point. It constructs the
// bootstrapper with the standard startup sequence and returns the handle
// through which the host runs Boot and Bind. Ownership of the Service
// returned by Boot transfers to the host.
func CreateService(opts ...Option) *Bootstrapper {
	b := &Bootstrapper{
		mode:     secrets.ModeProduction,
		install:  logger.Install,
		rt:       supervise.NewRuntime(),
		registry: component.NewRegistry(),
		state:    StateStart,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// State returns the current bootstrap phase.
func (b *Bootstrapper) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Registry returns the lifecycle registry holding the provisioned pool
// and, after a successful Bind, the HTTP service. Hosts use it for
// ordered shutdown and health reporting.
func (b *Bootstrapper) Registry() *component.Registry {
	return b.registry
}

// Failure returns the error that moved the bootstrapper to StateFailed,
// or nil.
func (b *Bootstrapper) Failure() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failure
}

// setState advances the machine. StateFailed is terminal; once reached,
// no later transition may leave it. An abandoned supervised task that
// finishes after the sequence has already failed is the one caller that
// hits this guard.
func (b *Bootstrapper) setState(s State) {
	b.mu.Lock()
	if b.state != StateFailed {
		b.state = s
	}
	b.mu.Unlock()
}

func (b *Bootstrapper) fail(err error) error {
	b.mu.Lock()
	b.state = StateFailed
	b.failure = err
	b.mu.Unlock()
	return err
}

// Boot runs the startup sequence: resolve secrets, install the logging
// pipeline, provision resources, build the router. The first failure is
// terminal and returned as a *errors.BootError. The required API key is
// checked before any provisioning work starts, and the pipeline is fully
// installed before provisioning begins.
func (b *Bootstrapper) Boot(ctx context.Context, factory provision.Factory) (Service, error) {
	store, err := provision.Secrets(ctx, factory)
	if err != nil {
		return nil, b.fail(err)
	}

	resolver := secrets.Resolver{Mode: b.mode}
	resolved, err := resolver.ResolveConfig(store)
	if err != nil {
		return nil, b.fail(err)
	}
	b.setState(StateSecretsResolved)

	pipe, err := supervise.Run(ctx, b.rt, "panicked setting logger",
		func(ctx context.Context) (*logger.Pipeline, error) {
			p, err := logger.Build(resolved.LogLevel, resolved.APIKey, resolved.Tags, b.pipelineOpts...)
			if err != nil {
				return nil, err
			}
			if err := b.install(p); err != nil {
				p.Close()
				return nil, err
			}
			return p, nil
		})
	if err != nil {
		return nil, b.fail(err)
	}
	b.setState(StateLoggingInstalled)

	log := pipe.Logger().WithComponent("bootstrap")
	log.Info("Logging pipeline installed", map[string]interface{}{
		"level": pipe.Level().String(),
	})

	svc, err := supervise.Run(ctx, b.rt, "panicked during bootstrap",
		func(ctx context.Context) (*server.Service, error) {
			res, err := provision.Provision(ctx, factory, store)
			if err != nil {
				return nil, err
			}
			// Boot may already have failed on cancellation while the
			// factory ran. An abandoned task must not touch the
			// bootstrapper or leak the pool into the registry.
			if cerr := ctx.Err(); cerr != nil {
				res.Pool.Close()
				return nil, cerr
			}
			b.setState(StateResourcesProvisioned)

			// The pool is live already; register it so shutdown is ordered.
			poolComp := database.NewComponent(res.Pool)
			if err := b.registry.Register(poolComp); err != nil {
				res.Pool.Close()
				return nil, err
			}
			b.registry.MarkStarted(poolComp.Name())

			if cerr := ctx.Err(); cerr != nil {
				return nil, cerr
			}
			cfg := b.serverConfig
			cfg.ApplyDefaults()
			svc := server.New(cfg, res.Pool, res.StaticDir, pipe.Logger())
			b.setState(StateRouterBuilt)
			return svc, nil
		})
	if err != nil {
		return nil, b.fail(err)
	}

	b.setState(StateServiceReady)
	log.Info("Bootstrap complete")
	return svc, nil
}

// Bind binds the booted service to addr through a supervised task, so a
// bind-time panic reaches the host as a structured error instead of a
// crash.
func (b *Bootstrapper) Bind(ctx context.Context, svc Service, addr string) error {
	if s := b.State(); s != StateServiceReady {
		return errors.TaskFailed(fmt.Errorf("cannot bind in state %s", s))
	}
	err := supervise.RunErr(ctx, b.rt, "failed to bind service",
		func(ctx context.Context) error {
			return svc.Bind(addr)
		})
	if err != nil {
		return err
	}

	if hs, ok := svc.(*server.Service); ok {
		comp := server.NewComponent(hs, addr)
		if rerr := b.registry.Register(comp); rerr != nil {
			logger.WithComponent("bootstrap").Warn("Service bound but not lifecycle-managed", map[string]interface{}{
				"error": rerr.Error(),
			})
		} else {
			b.registry.MarkStarted(comp.Name())
		}
	}
	return nil
}
