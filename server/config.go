package server

import (
	"time"

	"github.com/bkocaman/harbor/validation"
)

// ErrorDetailPolicy controls how much of a request-scoped failure is
// exposed to the client in a 500 response body.
type ErrorDetailPolicy string

const (
	// DetailInBody includes the underlying error text in the response body.
	DetailInBody ErrorDetailPolicy = "body"
	// DetailLogOnly logs the underlying error and returns a fixed message.
	DetailLogOnly ErrorDetailPolicy = "log-only"
)

const staticErrorMessage = "Something went wrong..."

// Config holds HTTP server settings.
type Config struct {
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	EnableHTTP2     bool          `mapstructure:"enable_http2"`
	EnableTelemetry bool          `mapstructure:"enable_telemetry"`

	// MessageErrorDetail governs the /message route's 500 responses.
	// The static route always uses DetailLogOnly regardless of this
	// setting so filesystem paths never reach a client.
	MessageErrorDetail ErrorDetailPolicy `mapstructure:"message_error_detail" validate:"omitempty,oneof=body log-only"`
}

// ApplyDefaults fills zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 15 * time.Second
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60 * time.Second
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	if c.MaxHeaderBytes == 0 {
		c.MaxHeaderBytes = 1 << 20
	}
	if c.MessageErrorDetail == "" {
		c.MessageErrorDetail = DetailInBody
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
