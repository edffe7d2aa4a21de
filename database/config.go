package database

import (
	"fmt"
	"time"

	"github.com/bkocaman/harbor/validation"
)

// Config holds database connection configuration.
type Config struct {
	// URL is the PostgreSQL connection string.
	URL string `yaml:"url" mapstructure:"url" validate:"required"`

	// MaxConns sets the maximum number of connections in the pool.
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`

	// MinConns sets the minimum number of idle connections kept open.
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`

	// MaxConnLifetime is the maximum time a connection may be reused.
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" mapstructure:"max_conn_lifetime"`

	// MaxConnIdleTime is the maximum time a connection may sit idle.
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" mapstructure:"max_conn_idle_time"`

	// MaxRetries is the number of connection attempts before giving up.
	MaxRetries int `yaml:"max_retries" mapstructure:"max_retries"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.MaxConns == 0 {
		c.MaxConns = 10
	}
	if c.MinConns == 0 {
		c.MinConns = 2
	}
	if c.MaxConnLifetime == 0 {
		c.MaxConnLifetime = time.Hour
	}
	if c.MaxConnIdleTime == 0 {
		c.MaxConnIdleTime = 5 * time.Minute
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if c.MaxConns < c.MinConns {
		return fmt.Errorf("database.max_conns (%d) must be >= database.min_conns (%d)", c.MaxConns, c.MinConns)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("database.max_retries must be at least 1 (got: %d)", c.MaxRetries)
	}
	return nil
}
