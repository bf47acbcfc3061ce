package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadServicesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "services.yaml")
	data := []byte(`
gateway:
  port: 9090
auth:
  port: 9091
  url: http://auth.internal:9091
project:
  port: 9092
task:
  port: 9093
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := LoadServicesConfig(path)
	if err != nil {
		t.Fatalf("LoadServicesConfig: %v", err)
	}
	if cfg.Gateway.Addr() != ":9090" {
		t.Errorf("gateway addr = %q", cfg.Gateway.Addr())
	}
	if cfg.Auth.URL != "http://auth.internal:9091" {
		t.Errorf("explicit url overridden: %q", cfg.Auth.URL)
	}
	if cfg.Project.URL != "http://localhost:9092" {
		t.Errorf("defaulted url = %q", cfg.Project.URL)
	}
}

func TestLoadServicesConfigMissingPort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "services.yaml")
	if err := os.WriteFile(path, []byte("gateway:\n  url: http://x\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	// Omitted sections get defaults; a declared section must carry a port.
	if _, err := LoadServicesConfig(path); err == nil {
		t.Fatal("expected an error for a section without a port")
	}
}

func TestLoadServicesConfigOrDefaultFallsBack(t *testing.T) {
	cfg := LoadServicesConfigOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	if cfg.Gateway.Port != 8080 || cfg.Task.Port != 8083 {
		t.Errorf("unexpected default topology %+v", cfg)
	}
}
