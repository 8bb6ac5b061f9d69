package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleConfig = `
environment: test

server:
  port: 8081
  read_timeout: 5s
  write_timeout: 5s
  shutdown_timeout: 5s

logging:
  level: debug
  format: console

backend:
  type: kafka

kafka:
  brokers: ["localhost:9092"]
  topic: cycles

insight:
  base_url: http://insight.local
  api_key: secret
  timeout: 5s

predictor:
  base_url: http://predictor.local
  timeout: 5s

pricing:
  min_price: 0.8
  max_price: 1.2
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Server.Port != 8081 {
		t.Fatalf("unexpected port %d", c.Server.Port)
	}
	if c.Backend.Type != "kafka" {
		t.Fatalf("unexpected backend %q", c.Backend.Type)
	}
	if c.Pricing.MinPrice != 0.8 || c.Pricing.MaxPrice != 1.2 {
		t.Fatalf("unexpected pricing %v/%v", c.Pricing.MinPrice, c.Pricing.MaxPrice)
	}
}

func TestLoadDefaults(t *testing.T) {
	content := `
environment: test
backend:
  type: clickhouse
insight:
  base_url: http://insight.local
  api_key: secret
predictor:
  base_url: http://predictor.local
`
	c, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Pricing.MinPrice != 0.9 || c.Pricing.MaxPrice != 1.1 {
		t.Fatalf("expected default price bounds, got %v/%v", c.Pricing.MinPrice, c.Pricing.MaxPrice)
	}
	if c.Cache.Type != "memory" {
		t.Fatalf("expected memory cache default, got %q", c.Cache.Type)
	}
	if c.Insight.CacheTTL != 30*time.Second {
		t.Fatalf("expected 30s cache ttl, got %v", c.Insight.CacheTTL)
	}
	if c.Scheduler.Timeframe != "1D" {
		t.Fatalf("expected default timeframe 1D, got %q", c.Scheduler.Timeframe)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	content := `
environment: test
backend:
  type: postgres
insight:
  base_url: http://insight.local
  api_key: secret
predictor:
  base_url: http://predictor.local
`
	if _, err := Load(writeConfig(t, content)); err == nil {
		t.Fatalf("expected validation error for unknown backend")
	}
}

func TestLoadRejectsMissingAPIKey(t *testing.T) {
	content := `
environment: test
backend:
  type: kafka
insight:
  base_url: http://insight.local
predictor:
  base_url: http://predictor.local
`
	if _, err := Load(writeConfig(t, content)); err == nil {
		t.Fatalf("expected validation error for missing api key")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	content := `
environment: test
backend:
  type: kafka
insight:
  base_url: http://insight.local
predictor:
  base_url: http://predictor.local
`
	t.Setenv("INSIGHT_API_KEY", "from-env")
	t.Setenv("BACKEND", "clickhouse")
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")

	c, err := LoadWithEnv(writeConfig(t, content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Insight.APIKey != "from-env" {
		t.Fatalf("env api key not applied, got %q", c.Insight.APIKey)
	}
	if c.Backend.Type != "clickhouse" {
		t.Fatalf("env backend not applied, got %q", c.Backend.Type)
	}
	if len(c.Kafka.Brokers) != 2 || c.Kafka.Brokers[1] != "b:9092" {
		t.Fatalf("env brokers not applied, got %v", c.Kafka.Brokers)
	}
}
