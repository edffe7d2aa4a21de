package provision

import (
	"context"
	"fmt"
	"os"

	"github.com/bkocaman/harbor/config"
	"github.com/bkocaman/harbor/database"
	"github.com/bkocaman/harbor/logger"
	"github.com/bkocaman/harbor/secrets"
)

// HostFactory is the production Factory: secrets come from Vault when an
// address is configured and from the process environment otherwise, the
// pool comes from database.Connect, and the static directory must already
// exist on disk.
type HostFactory struct {
	Config *config.HostConfig
	Log    *logger.Logger
}

// NewHostFactory builds a factory from the host configuration.
func NewHostFactory(cfg *config.HostConfig, log *logger.Logger) *HostFactory {
	return &HostFactory{Config: cfg, Log: log}
}

// Secrets returns the configured secret store.
func (f *HostFactory) Secrets(ctx context.Context) (secrets.Store, error) {
	if f.Config.Vault.Address != "" {
		return secrets.NewVaultStore(f.Config.Vault)
	}
	return secrets.EnvStore{}, nil
}

// Database connects the pgx pool.
func (f *HostFactory) Database(ctx context.Context) (database.Pool, error) {
	pool, err := database.Connect(ctx, f.Config.Database, f.Log)
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// StaticDir verifies the configured asset root exists and is a directory.
func (f *HostFactory) StaticDir(ctx context.Context) (string, error) {
	info, err := os.Stat(f.Config.StaticDir)
	if err != nil {
		return "", fmt.Errorf("static dir %s: %w", f.Config.StaticDir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("static dir %s: not a directory", f.Config.StaticDir)
	}
	return f.Config.StaticDir, nil
}
