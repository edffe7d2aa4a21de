package bootstrap

import (
	"github.com/bkocaman/harbor/logger"
	"github.com/bkocaman/harbor/secrets"
	"github.com/bkocaman/harbor/server"
)

// Option customizes a Bootstrapper.
type Option func(*Bootstrapper)

// WithMode sets the secret resolution mode. The default is production;
// development mode qualifies every key with the _DEV suffix.
func WithMode(m secrets.Mode) Option {
	return func(b *Bootstrapper) {
		b.mode = m
	}
}

// WithServerConfig sets the HTTP server configuration used when the
// service is built. Defaults are applied during Boot.
func WithServerConfig(cfg server.Config) Option {
	return func(b *Bootstrapper) {
		b.serverConfig = cfg
	}
}

// WithPipelineOptions forwards options to the logging pipeline build,
// such as extra host sinks or an alternate remote endpoint.
func WithPipelineOptions(opts ...logger.PipelineOption) Option {
	return func(b *Bootstrapper) {
		b.pipelineOpts = append(b.pipelineOpts, opts...)
	}
}

// WithPipelineInstaller replaces the function that makes the built
// pipeline process-global. The default is logger.Install, which succeeds
// at most once per process; tests substitute a local installer.
func WithPipelineInstaller(install func(*logger.Pipeline) error) Option {
	return func(b *Bootstrapper) {
		b.install = install
	}
}
