package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notifier.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := NewLoader("").WithEnvVars(false).Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Notifier.Docker.Host != "unix:///var/run/docker.sock" {
		t.Errorf("Expected default docker socket, got %q", cfg.Notifier.Docker.Host)
	}
	if cfg.Notifier.Consul.Address != "127.0.0.1:8500" {
		t.Errorf("Expected default consul address, got %q", cfg.Notifier.Consul.Address)
	}
	if cfg.Notifier.Events.ServiceLabel != ServiceLabelSwarm {
		t.Errorf("Expected swarm service label, got %q", cfg.Notifier.Events.ServiceLabel)
	}
}

func TestLoad_FileOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
notifier:
  consul:
    address: 10.0.0.5:8500
  management:
    enabled: true
    port: 9191
`)

	cfg, err := NewLoader(path).WithEnvVars(false).Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Notifier.Consul.Address != "10.0.0.5:8500" {
		t.Errorf("Expected file value, got %q", cfg.Notifier.Consul.Address)
	}
	if !cfg.Notifier.Management.Enabled || cfg.Notifier.Management.Port != 9191 {
		t.Errorf("Expected management enabled on 9191, got %+v", cfg.Notifier.Management)
	}
	// Untouched sections keep their defaults
	if cfg.Notifier.Docker.Host != "unix:///var/run/docker.sock" {
		t.Errorf("Expected default docker socket, got %q", cfg.Notifier.Docker.Host)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
notifier:
  consul:
    address: 10.0.0.5:8500
`)
	t.Setenv("NOTIFIER_NOTIFIER_CONSUL_ADDRESS", "10.9.9.9:8500")

	cfg, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Notifier.Consul.Address != "10.9.9.9:8500" {
		t.Errorf("Expected env value to win, got %q", cfg.Notifier.Consul.Address)
	}
}

func TestLoad_LegacyEnvVars(t *testing.T) {
	t.Setenv("CONSUL_ADDR", "consul.internal:8500")
	t.Setenv("DOCKER_SOCKET", "tcp://docker.internal:2375")

	cfg, err := NewLoader("").Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Notifier.Consul.Address != "consul.internal:8500" {
		t.Errorf("Expected CONSUL_ADDR to apply, got %q", cfg.Notifier.Consul.Address)
	}
	if cfg.Notifier.Docker.Host != "tcp://docker.internal:2375" {
		t.Errorf("Expected DOCKER_SOCKET to apply, got %q", cfg.Notifier.Docker.Host)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := NewLoader("/does/not/exist.yaml").Load(); err == nil {
		t.Fatal("Expected an error for a missing config file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "notifier: [")
	if _, err := NewLoader(path).Load(); err == nil {
		t.Fatal("Expected an error for invalid yaml")
	}
}

func TestLoad_ValidationRejectsEmptyServiceLabel(t *testing.T) {
	path := writeConfig(t, `
notifier:
  events:
    serviceLabel: ""
`)
	if _, err := NewLoader(path).WithEnvVars(false).Load(); err == nil {
		t.Fatal("Expected a validation error for an empty service label")
	}
}

func TestEnvExample(t *testing.T) {
	examples := EnvExample(&Config{})
	if len(examples) == 0 {
		t.Fatal("Expected generated examples")
	}

	found := false
	for _, e := range examples {
		if e == "NOTIFIER_NOTIFIER_CONSUL_ADDRESS=value" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected consul address example, got %v", examples)
	}
}
