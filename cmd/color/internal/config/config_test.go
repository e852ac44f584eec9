package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate points ENV_FILE at a missing file and clears variables the tests read.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	for _, key := range []string{
		"DEBUG", "LOG_FORMAT", "COLOR_PORT", "COLOR_BACKLOG", "WORKER_POOL_SIZE",
		"HEALTH_ENABLED", "HEALTH_SERVER_PORT", "COLOR_SERVER_HOST", "COLOR_SERVER_PORT",
		"DISCOVERY_MODE", "COLOR_SERVICE_NAME", "NAMESPACE", "POD_NAMESPACE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadServerDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadServerFromEnv()
	if err != nil {
		t.Fatalf("LoadServerFromEnv: %v", err)
	}
	if cfg.Port != 45565 || cfg.Backlog != 6 || cfg.Workers != 0 {
		t.Errorf("listener config = port %d backlog %d workers %d", cfg.Port, cfg.Backlog, cfg.Workers)
	}
	if cfg.ListenAddr() != ":45565" {
		t.Errorf("ListenAddr() = %q", cfg.ListenAddr())
	}
	if !cfg.HealthEnabled || cfg.HealthServerPort != "8080" {
		t.Errorf("health config = %v %q", cfg.HealthEnabled, cfg.HealthServerPort)
	}
}

func TestLoadServerFromEnvFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "server.env")
	if err := os.WriteFile(path, []byte("COLOR_PORT=5000\nWORKER_POOL_SIZE=4\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ENV_FILE", path)
	os.Unsetenv("COLOR_PORT")
	os.Unsetenv("WORKER_POOL_SIZE")
	t.Setenv("COLOR_BACKLOG", "2")

	cfg, err := LoadServerFromEnv()
	if err != nil {
		t.Fatalf("LoadServerFromEnv: %v", err)
	}
	if cfg.Port != 5000 || cfg.Workers != 4 || cfg.Backlog != 2 {
		t.Errorf("config = %+v", cfg)
	}
}

func TestLoadServerValidation(t *testing.T) {
	tests := map[string][2]string{
		"port":       {"COLOR_PORT", "70000"},
		"backlog":    {"COLOR_BACKLOG", "-1"},
		"workers":    {"WORKER_POOL_SIZE", "-3"},
		"log format": {"LOG_FORMAT", "xml"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			t.Setenv(kv[0], kv[1])
			if _, err := LoadServerFromEnv(); err == nil {
				t.Errorf("%s=%s accepted", kv[0], kv[1])
			}
		})
	}
}

func TestLoadClient(t *testing.T) {
	isolate(t)

	cfg, err := LoadClient(nil)
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}
	if cfg.ServerHost != "localhost" || cfg.ServerPort != 45565 || cfg.DiscoveryMode != DiscoveryStatic {
		t.Errorf("defaults = %+v", cfg)
	}

	cfg, err = LoadClient([]string{"--port", "6000", "-n", "Nick", "color.example.com"})
	if err != nil {
		t.Fatalf("LoadClient(args): %v", err)
	}
	if cfg.ServerHost != "color.example.com" || cfg.ServerPort != 6000 || cfg.UserName != "Nick" {
		t.Errorf("flags not applied: %+v", cfg)
	}
}

func TestLoadClientDiscovery(t *testing.T) {
	isolate(t)
	t.Setenv("COLOR_SERVICE_NAME", "colors")
	t.Setenv("POD_NAMESPACE", "games")

	cfg, err := LoadClient(nil)
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}
	if cfg.DiscoveryMode != DiscoveryKubernetes || cfg.Namespace != "games" {
		t.Errorf("discovery = %s namespace = %s", cfg.DiscoveryMode, cfg.Namespace)
	}

	cfg, err = LoadClient([]string{"--discovery", "static"})
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}
	if cfg.DiscoveryMode != DiscoveryStatic {
		t.Errorf("--discovery static ignored: %s", cfg.DiscoveryMode)
	}

	if _, err := LoadClient([]string{"--discovery", "dns"}); err == nil {
		t.Error("unsupported discovery mode accepted")
	}
	if _, err := LoadClient([]string{"--bogus"}); err == nil {
		t.Error("unknown flag accepted")
	}
}
