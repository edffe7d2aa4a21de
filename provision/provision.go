package provision

import (
	"context"

	"github.com/bkocaman/harbor/database"
	"github.com/bkocaman/harbor/errors"
	"github.com/bkocaman/harbor/logger"
	"github.com/bkocaman/harbor/secrets"
)

// Factory is the opaque asynchronous resource-acquisition boundary supplied
// by the host. Each method may block until the resource is ready; error
// types are the host's own.
type Factory interface {
	// Secrets returns the secret store for the bootstrap sequence.
	Secrets(ctx context.Context) (secrets.Store, error)
	// Database returns a shared connection pool with process lifetime.
	Database(ctx context.Context) (database.Pool, error)
	// StaticDir returns the filesystem path of the static-asset root.
	StaticDir(ctx context.Context) (string, error)
}

// Resources is the full provisioned set handed onward to service
// construction. All handles are shared; nothing here is owned by the
// provisioner.
type Resources struct {
	Secrets   secrets.Store
	Pool      database.Pool
	StaticDir string
}

// Secrets acquires only the secret store. The bootstrapper needs it before
// the logging pipeline exists, ahead of the remaining resources.
func Secrets(ctx context.Context, factory Factory) (secrets.Store, error) {
	store, err := factory.Secrets(ctx)
	if err != nil {
		return nil, errors.ResourceProvisionFailed("secret store", err)
	}
	return store, nil
}

// Provision acquires the database pool and static directory, runs the
// schema initialization batch against the fresh pool, and returns the full
// resource set. store is the secret store already acquired via Secrets.
func Provision(ctx context.Context, factory Factory, store secrets.Store) (*Resources, error) {
	log := logger.WithComponent("provision")

	pool, err := factory.Database(ctx)
	if err != nil {
		return nil, errors.ResourceProvisionFailed("database pool", err)
	}
	log.Info("Database pool provisioned")

	if err := database.InitSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, errors.ResourceProvisionFailed("database pool", err)
	}
	log.Info("Database schema initialized")

	staticDir, err := factory.StaticDir(ctx)
	if err != nil {
		pool.Close()
		return nil, errors.ResourceProvisionFailed("static directory", err)
	}
	log.Info("Static directory provisioned", map[string]interface{}{
		"path": staticDir,
	})

	return &Resources{
		Secrets:   store,
		Pool:      pool,
		StaticDir: staticDir,
	}, nil
}
