package validation

import (
	"strings"
	"testing"
)

type sampleConfig struct {
	URL      string `validate:"required"`
	MaxConns int    `validate:"min=1,max=100"`
	Policy   string `validate:"omitempty,oneof=body log-only"`
}

func TestValidatePasses(t *testing.T) {
	cfg := sampleConfig{URL: "postgres://localhost/db", MaxConns: 10}
	if err := Validate(&cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateNamesEveryFailingField(t *testing.T) {
	cfg := sampleConfig{MaxConns: 0, Policy: "shout"}
	err := Validate(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}

	ve, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if len(ve.Fields) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", len(ve.Fields), ve)
	}

	msg := err.Error()
	for _, want := range []string{"url is required", "max_conns must be at least 1", "policy must be one of"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}

func TestSnakeCase(t *testing.T) {
	cases := map[string]string{
		"MaxConns": "max_conns",
		"URL":      "u_r_l",
		"Addr":     "addr",
	}
	for in, want := range cases {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
