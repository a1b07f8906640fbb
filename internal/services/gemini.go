package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"google.golang.org/genai"

	"github.com/ma593y/seeklyzer/internal/config"
	"github.com/ma593y/seeklyzer/internal/pipeline"
)

// CompletionService sends (system, human) prompts to the completion endpoint.
// Generation always runs at temperature 0: reproducible extraction matters
// more here than creative variance.
type CompletionService interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
	GenerateWithRetry(ctx context.Context, prompt Prompt) (string, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type geminiService struct {
	client            *genai.Client
	modelName         string
	embedModel        string
	maxOutputTokens   int32
	requestTimeout    time.Duration
	retryMaxAttempts  int
	retryInitialDelay time.Duration
}

// NewCompletionService builds the client when a credential is configured. An
// absent key is not fatal at startup; every call then fails fast with
// ErrCredentialMissing so the caller can show an actionable message instead
// of a failed-request error.
func NewCompletionService(llmCfg config.LLMConfig, workerCfg config.WorkerConfig) (CompletionService, error) {
	retryMaxAttempts := workerCfg.RetryMaxAttempts
	if retryMaxAttempts < 1 {
		retryMaxAttempts = 1
	}

	svc := &geminiService{
		modelName:         llmCfg.Model,
		embedModel:        llmCfg.EmbedModel,
		maxOutputTokens:   llmCfg.MaxOutputTokens,
		requestTimeout:    llmCfg.RequestTimeout,
		retryMaxAttempts:  retryMaxAttempts,
		retryInitialDelay: workerCfg.RetryInitialDelay,
	}

	if llmCfg.APIKey == "" {
		log.Println("⚠️  GEMINI_API_KEY not set; completion calls will fail until configured")
		return svc, nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  llmCfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	svc.client = client
	return svc, nil
}

// Generate implements CompletionService. At most one attempt, fail fast.
func (g *geminiService) Generate(ctx context.Context, prompt Prompt) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("%w: set GEMINI_API_KEY", pipeline.ErrCredentialMissing)
	}

	ctx, cancel := context.WithTimeout(ctx, g.requestTimeout)
	defer cancel()

	var temperature float32 = 0
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: g.maxOutputTokens,
	}
	if prompt.System != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: prompt.System}},
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt.Human), cfg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", pipeline.ErrCompletionFailed, err)
	}

	if resp == nil {
		return "", fmt.Errorf("%w: nil response", pipeline.ErrCompletionFailed)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: no text content in response", pipeline.ErrCompletionFailed)
	}

	return text, nil
}

// GenerateWithRetry implements CompletionService. Bounded retry with a
// doubling backoff on completion failures. A missing credential is a
// configuration error and is never retried.
func (g *geminiService) GenerateWithRetry(ctx context.Context, prompt Prompt) (string, error) {
	var lastErr error
	delay := g.retryInitialDelay

	for attempt := 1; attempt <= g.retryMaxAttempts; attempt++ {
		result, err := g.Generate(ctx, prompt)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, pipeline.ErrCredentialMissing) {
			return "", err
		}

		lastErr = err

		if attempt < g.retryMaxAttempts {
			log.Printf("⚠️ Completion attempt %d failed: %v. Retrying in %s...\n", attempt, err, delay)
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", pipeline.ErrCompletionFailed, ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", g.retryMaxAttempts, lastErr)
}

// GenerateEmbedding implements CompletionService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if g.client == nil {
		return nil, fmt.Errorf("%w: set GEMINI_API_KEY", pipeline.ErrCredentialMissing)
	}

	// Stay under the embedding model's input limit
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}
