package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ma593y/seeklyzer/internal/config"
	"github.com/ma593y/seeklyzer/internal/pipeline"
	"github.com/ma593y/seeklyzer/internal/services"
)

func newKeylessService(t *testing.T, workerCfg config.WorkerConfig) services.CompletionService {
	t.Helper()

	svc, err := services.NewCompletionService(config.LLMConfig{
		Model:          "gemini-2.5-flash",
		RequestTimeout: time.Second,
	}, workerCfg)
	require.NoError(t, err)
	return svc
}

func TestGenerate_MissingCredentialFailsFast(t *testing.T) {
	svc := newKeylessService(t, config.WorkerConfig{RetryMaxAttempts: 3})

	_, err := svc.Generate(context.Background(), services.Prompt{Human: "hello"})

	assert.ErrorIs(t, err, pipeline.ErrCredentialMissing)
}

func TestGenerateWithRetry_NeverRetriesMissingCredential(t *testing.T) {
	svc := newKeylessService(t, config.WorkerConfig{
		RetryMaxAttempts:  3,
		RetryInitialDelay: time.Hour, // would stall the test if a retry ran
	})

	start := time.Now()
	_, err := svc.GenerateWithRetry(context.Background(), services.Prompt{Human: "hello"})

	assert.ErrorIs(t, err, pipeline.ErrCredentialMissing)
	assert.Less(t, time.Since(start), time.Second)
}

func TestGenerateWithRetry_ZeroAttemptsStillRunsOnce(t *testing.T) {
	svc := newKeylessService(t, config.WorkerConfig{RetryMaxAttempts: 0})

	_, err := svc.GenerateWithRetry(context.Background(), services.Prompt{Human: "hello"})

	require.Error(t, err)
	assert.ErrorIs(t, err, pipeline.ErrCredentialMissing)
}

func TestGenerateEmbedding_MissingCredential(t *testing.T) {
	svc := newKeylessService(t, config.WorkerConfig{RetryMaxAttempts: 1})

	_, err := svc.GenerateEmbedding(context.Background(), "text")

	assert.ErrorIs(t, err, pipeline.ErrCredentialMissing)
}
