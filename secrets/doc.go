// Package secrets provides the opaque secret store abstraction consumed by
// the bootstrap sequence, plus the environment-qualified key resolver.
//
// A Store is a read-only string key/value source. Backends are provided for
// in-memory maps, process environment variables, and HashiCorp Vault. The
// Resolver applies the mode-qualified key transform: in development mode
// every lookup probes key+"_DEV" and nothing else; in production the key is
// probed unchanged. There is no fallback between the two forms.
package secrets
