package secrets

import (
	"testing"

	"github.com/bkocaman/harbor/errors"
)

func TestResolveDevelopmentProbesOnlyQualifiedKey(t *testing.T) {
	store := MapStore{
		"DD_API_KEY":     "prod-key",
		"DD_API_KEY_DEV": "dev-key",
		"LOG_LEVEL":      "WARN",
	}
	r := Resolver{Mode: ModeDevelopment}

	v, ok := r.Resolve(store, "DD_API_KEY")
	if !ok || v != "dev-key" {
		t.Errorf("expected dev-key, got %q (ok=%v)", v, ok)
	}

	// LOG_LEVEL has no _DEV form: must be absent, never falling back.
	if v, ok := r.Resolve(store, "LOG_LEVEL"); ok {
		t.Errorf("expected absent, got %q", v)
	}
}

func TestResolveProductionUsesUnqualifiedKey(t *testing.T) {
	store := MapStore{
		"DD_API_KEY":     "prod-key",
		"DD_API_KEY_DEV": "dev-key",
	}
	r := Resolver{Mode: ModeProduction}

	v, ok := r.Resolve(store, "DD_API_KEY")
	if !ok || v != "prod-key" {
		t.Errorf("expected prod-key, got %q (ok=%v)", v, ok)
	}
}

func TestRequireMissingKey(t *testing.T) {
	r := Resolver{Mode: ModeProduction}
	_, err := r.Require(MapStore{}, "DD_API_KEY")
	if err == nil {
		t.Fatal("expected error for missing key")
	}
	if !errors.IsCode(err, errors.CodeSecretMissing) {
		t.Errorf("expected SECRET_MISSING, got %v", err)
	}
	be, _ := errors.AsBootError(err)
	if be.Details["key"] != "DD_API_KEY" {
		t.Errorf("expected key detail DD_API_KEY, got %v", be.Details["key"])
	}
}

func TestRequireMissingKeyReportsQualifiedName(t *testing.T) {
	r := Resolver{Mode: ModeDevelopment}
	_, err := r.Require(MapStore{"DD_API_KEY": "ignored"}, "DD_API_KEY")
	if err == nil {
		t.Fatal("expected error: only DD_API_KEY_DEV should be probed")
	}
	be, ok := errors.AsBootError(err)
	if !ok {
		t.Fatalf("expected BootError, got %T", err)
	}
	if be.Details["key"] != "DD_API_KEY_DEV" {
		t.Errorf("expected key detail DD_API_KEY_DEV, got %v", be.Details["key"])
	}
}

func TestResolveConfigTagComposition(t *testing.T) {
	r := Resolver{Mode: ModeProduction}

	cfg, err := r.ResolveConfig(MapStore{
		"DD_API_KEY": "k",
		"DD_TAGS":    "env:prod",
	})
	if err != nil {
		t.Fatalf("ResolveConfig failed: %v", err)
	}
	if cfg.Tags != "env:prod,version:0.1.0" {
		t.Errorf("expected 'env:prod,version:0.1.0', got %q", cfg.Tags)
	}

	cfg, err = r.ResolveConfig(MapStore{"DD_API_KEY": "k"})
	if err != nil {
		t.Fatalf("ResolveConfig failed: %v", err)
	}
	if cfg.Tags != "version:0.1.0" {
		t.Errorf("expected 'version:0.1.0', got %q", cfg.Tags)
	}
}

func TestResolveConfigDefaultsLevel(t *testing.T) {
	r := Resolver{Mode: ModeProduction}
	cfg, err := r.ResolveConfig(MapStore{"DD_API_KEY": "k"})
	if err != nil {
		t.Fatalf("ResolveConfig failed: %v", err)
	}
	if cfg.LogLevel != "INFO" {
		t.Errorf("expected default level INFO, got %q", cfg.LogLevel)
	}
}

func TestResolveConfigMissingAPIKey(t *testing.T) {
	r := Resolver{Mode: ModeProduction}
	_, err := r.ResolveConfig(MapStore{"DD_TAGS": "env:prod"})
	if !errors.IsCode(err, errors.CodeSecretMissing) {
		t.Errorf("expected SECRET_MISSING, got %v", err)
	}
}

func TestModeFromEnvironment(t *testing.T) {
	if ModeFromEnvironment("development") != ModeDevelopment {
		t.Error("development should map to ModeDevelopment")
	}
	if ModeFromEnvironment("production") != ModeProduction {
		t.Error("production should map to ModeProduction")
	}
	if ModeFromEnvironment("staging") != ModeProduction {
		t.Error("staging should map to ModeProduction")
	}
}

func TestEnvStore(t *testing.T) {
	t.Setenv("HARBOR_TEST_SECRET", "s3cret")
	store := EnvStore{Prefix: "HARBOR_"}

	if v, ok := store.Get("TEST_SECRET"); !ok || v != "s3cret" {
		t.Errorf("expected s3cret, got %q (ok=%v)", v, ok)
	}
	if _, ok := store.Get("TEST_SECRET_ABSENT"); ok {
		t.Error("expected absent key")
	}
}
