package config

import (
	"fmt"

	"github.com/bkocaman/harbor/database"
	"github.com/bkocaman/harbor/logger"
	"github.com/bkocaman/harbor/secrets"
	"github.com/bkocaman/harbor/server"
)

// ServiceConfig contains the essential configuration fields every host
// needs. Hosts extend this by embedding it in their own config structs.
type ServiceConfig struct {
	BaseConfig `yaml:",inline" mapstructure:",squash"`

	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// SecretsMode maps the configured environment onto the secret resolution
// mode: development probes _DEV-qualified keys, everything else probes the
// keys unchanged.
func (c *ServiceConfig) SecretsMode() secrets.Mode {
	return secrets.ModeFromEnvironment(c.Environment)
}

// ApplyDefaults applies default values to the base configuration.
// Override this in embedding structs and call c.ServiceConfig.ApplyDefaults() first.
func (c *ServiceConfig) ApplyDefaults() {
	c.BaseConfig.ApplyDefaults()
	// Propagate service name into logging so loggers carry the right tag.
	if c.Logging.ServiceName == "" && c.Name != "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
}

// Validate validates the base configuration fields.
// Override this in embedding structs and call c.ServiceConfig.Validate() first.
func (c *ServiceConfig) Validate() error {
	if err := c.BaseConfig.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}

// HostConfig is the full configuration of a harbor host process: the base
// service fields plus everything the provisioning factory and the HTTP
// surface need.
type HostConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	// Addr is the listen address handed to Bind.
	Addr string `yaml:"addr" mapstructure:"addr"`
	// StaticDir is the static asset root served at "/".
	StaticDir string `yaml:"static_dir" mapstructure:"static_dir"`

	Database database.Config     `yaml:"database" mapstructure:"database"`
	Server   server.Config       `yaml:"server" mapstructure:"server"`
	Vault    secrets.VaultConfig `yaml:"vault" mapstructure:"vault"`
}

// ApplyDefaults fills defaults on the host configuration.
func (c *HostConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	if c.Addr == "" {
		c.Addr = ":8000"
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
	c.Database.ApplyDefaults()
	c.Server.ApplyDefaults()
}

// Validate validates the host configuration.
func (c *HostConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("config.database: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	return nil
}
