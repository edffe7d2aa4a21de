package config

import "fmt"

// BaseConfig carries the identity fields shared by every harbor process:
// who the binary is and which environment it runs in. ServiceConfig embeds
// it and layers logging on top.
type BaseConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Version     string `yaml:"version" mapstructure:"version"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`
}

// ApplyDefaults falls back to a development environment and turns debug on
// for it. The environment also drives secret key qualification, see
// ServiceConfig.SecretsMode.
func (c *BaseConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
}

// Validate checks the identity fields.
func (c *BaseConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config: name is required")
	}
	switch c.Environment {
	case "development", "staging", "production":
		return nil
	default:
		return fmt.Errorf("config: environment must be development, staging or production (got %q)", c.Environment)
	}
}
