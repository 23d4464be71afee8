package config

import (
	"strings"
	"testing"
)

func TestConfigError_Error_Empty(t *testing.T) {
	e := &ConfigError{Path: "/etc/vomadrid/config.toml"}
	if got := e.Error(); got != "" {
		t.Errorf("expected empty string for no errors, got %q", got)
	}
	if e.HasErrors() {
		t.Error("expected HasErrors to be false")
	}
}

func TestConfigError_Error_MissingVars(t *testing.T) {
	e := &ConfigError{
		Path:    "/etc/vomadrid/config.toml",
		Missing: []string{"API_KEY", "SECRET"},
	}
	got := e.Error()
	if !strings.Contains(got, "missing environment variables: API_KEY, SECRET") {
		t.Errorf("expected var names in error, got %q", got)
	}
	if !strings.Contains(got, "/etc/vomadrid/config.toml") {
		t.Errorf("expected path in error, got %q", got)
	}
}

func TestConfigError_Error_Validation(t *testing.T) {
	e := &ConfigError{Errors: []string{"server.port: bad", "cache.ttl: bad"}}
	got := e.Error()
	if !strings.Contains(got, "validation failed:\n  - server.port: bad\n  - cache.ttl: bad") {
		t.Errorf("unexpected message %q", got)
	}
	if !e.HasErrors() {
		t.Error("expected HasErrors to be true")
	}
}
