package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	// Only the CLI section present; server section absent.
	p := writeConfig(t, `cli:
  dataset: "data/supplychain.json"
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.HTTPPort != DefaultHTTPPort {
		t.Errorf("http_port: got %d, want %d", cfg.Server.HTTPPort, DefaultHTTPPort)
	}
	if cfg.Server.Cache.TTL != DefaultCacheTTL {
		t.Errorf("cache.ttl: got %v, want %v", cfg.Server.Cache.TTL, DefaultCacheTTL)
	}
	if cfg.Server.Stream.Interval != DefaultStreamInterval {
		t.Errorf("stream.interval: got %v, want %v", cfg.Server.Stream.Interval, DefaultStreamInterval)
	}
	if cfg.Server.Dataset.Source != DefaultDatasetSource {
		t.Errorf("dataset.source: got %q, want %q", cfg.Server.Dataset.Source, DefaultDatasetSource)
	}
	if cfg.Server.Dataset.Strict {
		t.Error("dataset.strict: got true, want false")
	}
}

func TestLoad_FullServer(t *testing.T) {
	p := writeConfig(t, `server:
  http_port: 9091
  auth:
    mode: apikey
    key_env: MY_KEY
    header: x-supply-key
  dataset:
    source: "sqlite:///var/lib/supplylens/data.db"
    strict: true
    watch: true
  engine:
    seed: 42
  cache:
    ttl: 10m
  stream:
    interval: 30s
  alerts:
    rules:
      - name: health-degraded
        condition: "health_score < 7"
        severity: critical
        cooldown: 1h
    webhooks:
      - type: slack
        url_env: SLACK_WEBHOOK
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := cfg.Server
	if s.HTTPPort != 9091 {
		t.Errorf("http_port: got %d, want 9091", s.HTTPPort)
	}
	if s.Auth.Mode != "apikey" {
		t.Errorf("auth.mode: got %q, want apikey", s.Auth.Mode)
	}
	if s.Auth.EffectiveHeader() != "x-supply-key" {
		t.Errorf("header: got %q, want x-supply-key", s.Auth.EffectiveHeader())
	}
	if s.Dataset.Source != "sqlite:///var/lib/supplylens/data.db" || !s.Dataset.Strict || !s.Dataset.Watch {
		t.Errorf("dataset: got %+v", s.Dataset)
	}
	if s.Engine.Seed != 42 {
		t.Errorf("engine.seed: got %d, want 42", s.Engine.Seed)
	}
	if s.Cache.TTL != 10*time.Minute {
		t.Errorf("cache.ttl: got %v, want 10m", s.Cache.TTL)
	}
	if s.Stream.Interval != 30*time.Second {
		t.Errorf("stream.interval: got %v, want 30s", s.Stream.Interval)
	}
	if len(s.Alerts.Rules) != 1 || s.Alerts.Rules[0].Cooldown != time.Hour {
		t.Errorf("alerts.rules: got %+v", s.Alerts.Rules)
	}
	if len(s.Alerts.Webhooks) != 1 || s.Alerts.Webhooks[0].Type != "slack" {
		t.Errorf("alerts.webhooks: got %+v", s.Alerts.Webhooks)
	}
}

func TestLoad_DefaultHeader(t *testing.T) {
	p := writeConfig(t, `server:
  auth:
    mode: apikey
    key_env: K
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if h := cfg.Server.Auth.EffectiveHeader(); h != "x-api-key" {
		t.Errorf("EffectiveHeader: got %q, want x-api-key", h)
	}
}

func TestLoad_KeyEnvResolution(t *testing.T) {
	t.Setenv("TEST_SERVER_KEY", "supersecret")
	p := writeConfig(t, `server:
  auth:
    mode: apikey
    key_env: TEST_SERVER_KEY
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if k := cfg.Server.Auth.Key(); k != "supersecret" {
		t.Errorf("Key(): got %q, want supersecret", k)
	}
}

func TestLoad_UnknownAuthMode(t *testing.T) {
	p := writeConfig(t, `server:
  auth:
    mode: oauth2
`)
	_, err := Load(p)
	if err == nil {
		t.Fatal("expected error for unknown auth mode, got nil")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"port out of range", "server:\n  http_port: 70000\n"},
		{"empty dataset source", "server:\n  dataset:\n    source: \"\"\n"},
		{"negative cache ttl", "server:\n  cache:\n    ttl: -1s\n"},
		{"zero stream interval", "server:\n  stream:\n    interval: 0s\n"},
		{"rule without condition", "server:\n  alerts:\n    rules:\n      - name: x\n"},
		{"unknown webhook type", "server:\n  alerts:\n    webhooks:\n      - type: pagerduty\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.yaml)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestDefault_IsValid(t *testing.T) {
	if err := validate(Default()); err != nil {
		t.Errorf("Default() does not validate: %v", err)
	}
}
