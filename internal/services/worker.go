package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"golang.org/x/time/rate"

	"github.com/ma593y/seeklyzer/internal/jobs"
	"github.com/ma593y/seeklyzer/internal/pipeline"
)

var errMalformedDetails = fmt.Errorf("%w: extracted details", pipeline.ErrMalformedResponse)

// BatchExtractor fans per-job requirement extraction across a bounded worker
// pool. Each worker writes only its own record's Details cell, so results
// need no locking and final order never depends on completion order.
type BatchExtractor struct {
	completion    CompletionService
	promptBuilder *PromptBuilder
	concurrency   int
	limiter       *rate.Limiter
}

func NewBatchExtractor(completion CompletionService, concurrency int, callsPerSecond float64) *BatchExtractor {
	if concurrency < 1 {
		concurrency = 1
	}
	if callsPerSecond <= 0 {
		callsPerSecond = 1
	}

	return &BatchExtractor{
		completion:    completion,
		promptBuilder: NewPromptBuilder(),
		concurrency:   concurrency,
		limiter:       rate.NewLimiter(rate.Limit(callsPerSecond), 1),
	}
}

// ExtractAll fills in the Details of every record with a non-empty
// description. Per-row failures are logged and skipped, never fatal. The
// progress callback fires once per processed row.
func (b *BatchExtractor) ExtractAll(ctx context.Context, records []jobs.JobRecord, progress func()) (succeeded, failed int) {
	indexes := make(chan int)
	var okCount, failCount atomic.Int64

	var wg sync.WaitGroup
	for w := 0; w < b.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				if err := b.extractOne(ctx, &records[i]); err != nil {
					log.Printf("⚠️  Job %s: %v\n", records[i].JobID, err)
					failCount.Add(1)
				} else {
					okCount.Add(1)
				}
				if progress != nil {
					progress()
				}
			}
		}()
	}

	for i := range records {
		select {
		case <-ctx.Done():
			close(indexes)
			wg.Wait()
			return int(okCount.Load()), int(failCount.Load())
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	return int(okCount.Load()), int(failCount.Load())
}

func (b *BatchExtractor) extractOne(ctx context.Context, rec *jobs.JobRecord) error {
	if rec.JobDescription == "" {
		return nil
	}

	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}

	prompt := b.promptBuilder.ExtractRequirementBullets(rec.JobDescription)

	response, err := b.completion.GenerateWithRetry(ctx, prompt)
	if err != nil {
		return err
	}

	parsed := ExtractJSON(response)
	if parsed.Status == StatusDegraded {
		return errMalformedDetails
	}

	var details jobs.ExtractedDetails
	if err := json.Unmarshal(parsed.Raw, &details); err != nil {
		return errMalformedDetails
	}

	rec.Details = &details
	return nil
}
