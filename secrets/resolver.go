package secrets

import (
	"github.com/bkocaman/harbor/errors"
	"github.com/bkocaman/harbor/version"
)

// Mode selects the key qualification applied before every lookup.
type Mode string

const (
	// ModeDevelopment rewrites every key to key+"_DEV" before lookup.
	ModeDevelopment Mode = "development"
	// ModeProduction looks keys up unchanged.
	ModeProduction Mode = "production"
)

// ModeFromEnvironment maps a service environment name to a resolver mode.
// Only "development" selects the _DEV key transform.
func ModeFromEnvironment(env string) Mode {
	if env == string(ModeDevelopment) {
		return ModeDevelopment
	}
	return ModeProduction
}

// Keys consumed by the bootstrap sequence.
const (
	KeyAPIKey   = "DD_API_KEY"
	KeyTags     = "DD_TAGS"
	KeyLogLevel = "LOG_LEVEL"

	// DefaultLogLevel is used when LOG_LEVEL is absent from the store.
	DefaultLogLevel = "INFO"
)

// Resolver looks up named configuration values from a Store, applying the
// mode-qualified key transform.
type Resolver struct {
	Mode Mode
}

// qualify rewrites key according to the resolver mode.
func (r Resolver) qualify(key string) string {
	if r.Mode == ModeDevelopment {
		return key + "_DEV"
	}
	return key
}

// Resolve looks up key through the mode transform. In development mode only
// key+"_DEV" is probed; an unqualified value is never consulted even when
// present.
func (r Resolver) Resolve(store Store, key string) (string, bool) {
	return store.Get(r.qualify(key))
}

// Require resolves key and returns a SecretMissing error when the qualified
// key is absent. Absence is fatal for the caller; it is not retried.
func (r Resolver) Require(store Store, key string) (string, error) {
	v, ok := r.Resolve(store, key)
	if !ok {
		return "", errors.SecretMissing(r.qualify(key))
	}
	return v, nil
}

// Resolved is the immutable configuration derived from the secret store.
type Resolved struct {
	// LogLevel is the severity threshold for the logging pipeline.
	LogLevel string
	// APIKey authenticates the remote log shipping sink.
	APIKey string
	// Tags is the comma-joined tag string shipped with every record.
	Tags string
}

// ResolveConfig derives the logging configuration from the store:
// LOG_LEVEL (default "INFO"), DD_API_KEY (required, fatal when absent), and
// DD_TAGS with the fixed version tag appended, or the version tag alone
// when no tags are stored.
func (r Resolver) ResolveConfig(store Store) (*Resolved, error) {
	apiKey, err := r.Require(store, KeyAPIKey)
	if err != nil {
		return nil, err
	}

	tags := version.Tag
	if t, ok := r.Resolve(store, KeyTags); ok {
		tags = t + "," + version.Tag
	}

	level := DefaultLogLevel
	if l, ok := r.Resolve(store, KeyLogLevel); ok {
		level = l
	}

	return &Resolved{
		LogLevel: level,
		APIKey:   apiKey,
		Tags:     tags,
	}, nil
}
