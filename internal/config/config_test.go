package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ma593y/seeklyzer/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, 60*time.Second, cfg.LLM.RequestTimeout)
	assert.Equal(t, 3, cfg.Worker.Concurrency)
	assert.Equal(t, 3, cfg.Worker.RetryMaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.Worker.RetryInitialDelay)
	assert.Equal(t, 1.0, cfg.Worker.RateLimit)
	assert.NotEmpty(t, cfg.Dataset.Path)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("LLM_REQUEST_TIMEOUT", "90s")
	t.Setenv("WORKER_CONCURRENCY", "8")
	t.Setenv("WORKER_RATE_LIMIT", "2.5")
	t.Setenv("DATASET_PATH", "/tmp/jobs.jsonl")

	cfg := config.Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 90*time.Second, cfg.LLM.RequestTimeout)
	assert.Equal(t, 8, cfg.Worker.Concurrency)
	assert.Equal(t, 2.5, cfg.Worker.RateLimit)
	assert.Equal(t, "/tmp/jobs.jsonl", cfg.Dataset.Path)
}

func TestLoad_MalformedNumbersFallBack(t *testing.T) {
	t.Setenv("WORKER_CONCURRENCY", "many")
	t.Setenv("LLM_REQUEST_TIMEOUT", "soon")

	cfg := config.Load()

	assert.Equal(t, 3, cfg.Worker.Concurrency)
	assert.Equal(t, 60*time.Second, cfg.LLM.RequestTimeout)
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Host:     "db.internal",
			Port:     "5433",
			User:     "app",
			Password: "secret",
			DBName:   "seeklyzer",
		},
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=app password=secret dbname=seeklyzer sslmode=disable",
		cfg.GetDatabaseDSN(),
	)
}
