package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Extractor.FetchTimeout != 20*time.Second {
		t.Fatalf("expected 20s fetch timeout, got %v", cfg.Extractor.FetchTimeout)
	}
	if cfg.Extractor.MaxContentLength != 15000 {
		t.Fatalf("expected 15000 max content length, got %d", cfg.Extractor.MaxContentLength)
	}
	if cfg.Extractor.MinContentLength != 100 {
		t.Fatalf("expected 100 min content length, got %d", cfg.Extractor.MinContentLength)
	}
	if cfg.Workers.PoolSize != 10 {
		t.Fatalf("expected pool size 10, got %d", cfg.Workers.PoolSize)
	}
	if cfg.LLM.Provider != "claude" {
		t.Fatalf("expected claude provider, got %q", cfg.LLM.Provider)
	}
	if cfg.Redis.Enabled {
		t.Fatalf("redis should be disabled by default")
	}
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9090
extractor:
  fetch_timeout: 15s
  max_content_length: 12000
workers:
  pool_size: 4
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Fatalf("expected port 9090 from file, got %d", cfg.Server.Port)
	}
	if cfg.Extractor.FetchTimeout != 15*time.Second {
		t.Fatalf("expected 15s fetch timeout from file, got %v", cfg.Extractor.FetchTimeout)
	}
	if cfg.Extractor.MaxContentLength != 12000 {
		t.Fatalf("expected 12000 from file, got %d", cfg.Extractor.MaxContentLength)
	}
	if cfg.Workers.PoolSize != 4 {
		t.Fatalf("expected pool size 4 from file, got %d", cfg.Workers.PoolSize)
	}
	// Untouched keys keep their defaults.
	if cfg.Extractor.MinContentLength != 100 {
		t.Fatalf("expected default min content length, got %d", cfg.Extractor.MinContentLength)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("EXTRACTOR_FETCH_TIMEOUT", "10s")
	t.Setenv("LLM_PROVIDER", "disabled")
	t.Setenv("REDIS_URL", "redis://cache.internal:6379")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Fatalf("expected env port 7070, got %d", cfg.Server.Port)
	}
	if cfg.Extractor.FetchTimeout != 10*time.Second {
		t.Fatalf("expected env fetch timeout 10s, got %v", cfg.Extractor.FetchTimeout)
	}
	if cfg.LLM.Provider != "disabled" {
		t.Fatalf("expected env provider, got %q", cfg.LLM.Provider)
	}
	if !cfg.Redis.Enabled {
		t.Fatalf("REDIS_URL should enable redis")
	}
	if cfg.Redis.URL != "redis://cache.internal:6379" {
		t.Fatalf("expected env redis url, got %q", cfg.Redis.URL)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_API_KEY", "secret123")

	got := expandEnvVars("key: ${TEST_API_KEY}")
	if got != "key: secret123" {
		t.Fatalf("expected expanded var, got %q", got)
	}

	got = expandEnvVars("key: ${UNSET_VAR_XYZ}")
	if got != "key: ${UNSET_VAR_XYZ}" {
		t.Fatalf("unset vars should pass through, got %q", got)
	}
}
