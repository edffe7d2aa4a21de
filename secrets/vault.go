package secrets

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/vault/api"
)

// VaultConfig holds the connection settings for a Vault-backed store.
type VaultConfig struct {
	// Address is the Vault server address, e.g. "http://127.0.0.1:8200".
	Address string `yaml:"address" mapstructure:"address"`
	// Token authenticates the client. Falls back to VAULT_TOKEN when empty.
	Token string `yaml:"token" mapstructure:"token"`
	// Path is the logical path holding the service secrets.
	Path string `yaml:"path" mapstructure:"path"`
	// Timeout bounds each Vault request.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *VaultConfig) ApplyDefaults() {
	if c.Path == "" {
		c.Path = "secret/harbor"
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
}

// VaultStore is a Store snapshot read from HashiCorp Vault. The secret data
// is fetched once at construction; the snapshot then serves lookups for the
// whole bootstrap sequence without further network calls.
type VaultStore struct {
	data map[string]string
}

// NewVaultStore connects to Vault, reads the configured logical path, and
// returns a read-only snapshot of its string values.
func NewVaultStore(cfg VaultConfig) (*VaultStore, error) {
	cfg.ApplyDefaults()

	client, err := api.NewClient(&api.Config{
		Address: cfg.Address,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}

	token := cfg.Token
	if token == "" {
		token = os.Getenv("VAULT_TOKEN")
	}
	if token != "" {
		client.SetToken(token)
	}

	secret, err := client.Logical().Read(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read from vault: %w", err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("no secret found at path %s", cfg.Path)
	}

	data := make(map[string]string, len(secret.Data))
	for k, v := range secret.Data {
		if s, ok := v.(string); ok {
			data[k] = s
		}
	}
	return &VaultStore{data: data}, nil
}

// Get returns the value for key from the snapshot.
func (v *VaultStore) Get(key string) (string, bool) {
	s, ok := v.data[key]
	return s, ok
}
