package secrets

import "os"

// Store is an opaque mapping from string key to string value. Stores are
// read-only from the bootstrap's perspective; the bootstrapper owns the
// store and lends it to downstream consumers for the process lifetime.
type Store interface {
	// Get returns the value for key and whether the key was present.
	Get(key string) (string, bool)
}

// MapStore is an in-memory Store backed by a plain map. It is the store
// handed in by test harnesses and by hosts that inject secrets directly.
type MapStore map[string]string

// Get returns the value for key.
func (m MapStore) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// EnvStore reads secrets from process environment variables, optionally
// applying a fixed prefix to every key.
type EnvStore struct {
	// Prefix is prepended to every key before lookup, e.g. "HARBOR_".
	Prefix string
}

// Get returns the environment variable Prefix+key. An empty variable is
// treated as absent.
func (e EnvStore) Get(key string) (string, bool) {
	v := os.Getenv(e.Prefix + key)
	if v == "" {
		return "", false
	}
	return v, true
}
