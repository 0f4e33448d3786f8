package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, env := range []string{configPathEnv, databaseDSNEnv, openAIAPIKeyEnv, openAIModelEnv, listenAddrEnv} {
		t.Setenv(env, "")
	}

	cfg := Load()

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected default addr %q", cfg.Server.Addr)
	}
	if cfg.AI.Enabled() {
		t.Fatalf("AI must be off without an api key")
	}
	if cfg.AI.Timeout() != 45*time.Second {
		t.Fatalf("unexpected default timeout %v", cfg.AI.Timeout())
	}
	if cfg.Batch.IntervalDuration() != 24*time.Hour {
		t.Fatalf("unexpected default interval %v", cfg.Batch.IntervalDuration())
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`
logging:
  level: debug
server:
  addr: ":9000"
ai:
  model: gpt-4o
  requestsPerMinute: 5
batch:
  interval: 6h
  timeframe: weekly
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(openAIAPIKeyEnv, "env-key")
	t.Setenv(listenAddrEnv, ":9999")

	cfg := Load()

	if cfg.Logging.Level != "debug" {
		t.Fatalf("file override lost: %q", cfg.Logging.Level)
	}
	if cfg.Server.Addr != ":9999" {
		t.Fatalf("env must win over file, got %q", cfg.Server.Addr)
	}
	if cfg.AI.Model != "gpt-4o" || cfg.AI.RequestsPerMinute != 5 {
		t.Fatalf("ai overrides lost: %+v", cfg.AI)
	}
	if !cfg.AI.Enabled() || cfg.AI.APIKey != "env-key" {
		t.Fatalf("env api key lost: %+v", cfg.AI)
	}
	if cfg.Batch.IntervalDuration() != 6*time.Hour || cfg.Batch.Timeframe != "weekly" {
		t.Fatalf("batch overrides lost: %+v", cfg.Batch)
	}
	// Untouched fields keep their defaults.
	if cfg.AI.MaxTokens != 800 {
		t.Fatalf("default max tokens lost: %d", cfg.AI.MaxTokens)
	}
}

func TestLoadBadFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv(configPathEnv, path)

	cfg := Load()
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("bad file must fall back to defaults, got %q", cfg.Server.Addr)
	}
}
