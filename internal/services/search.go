package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ma593y/seeklyzer/internal/jobs"
)

// SearchOutcome bundles the jobs matching a query with the filters that were
// derived from it, so callers can show what was actually applied.
type SearchOutcome struct {
	Filters  jobs.FilterSpec
	Degraded bool
	Jobs     []jobs.JobRecord
}

type SearchService interface {
	Search(ctx context.Context, query string) (*SearchOutcome, error)
	GetJob(id string) (*jobs.JobRecord, error)
}

type searchService struct {
	completion    CompletionService
	promptBuilder *PromptBuilder
	datasetPath   string
	now           func() time.Time
	inflight      singleflight.Group
}

func NewSearchService(completion CompletionService, datasetPath string) SearchService {
	return &searchService{
		completion:    completion,
		promptBuilder: NewPromptBuilder(),
		datasetPath:   datasetPath,
		now:           time.Now,
	}
}

// Search derives a FilterSpec from the free-text query and applies it to a
// fresh read of the dataset. Identical queries submitted while one is still
// running share a single completion call; repeated clicks don't fan out into
// duplicate LLM requests. The shared call runs detached from the leader's
// cancellation so a coalesced follower isn't failed by the first client
// disconnecting; the per-attempt completion timeout still bounds it.
func (s *searchService) Search(ctx context.Context, query string) (*SearchOutcome, error) {
	sharedCtx := context.WithoutCancel(ctx)
	v, err, _ := s.inflight.Do(query, func() (interface{}, error) {
		return s.search(sharedCtx, query)
	})
	if err != nil {
		return nil, err
	}
	return v.(*SearchOutcome), nil
}

func (s *searchService) search(ctx context.Context, query string) (*SearchOutcome, error) {
	records, err := jobs.LoadDataset(s.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load job dataset: %w", err)
	}

	// No query means no filtering, not an error.
	if query == "" {
		return &SearchOutcome{Jobs: records}, nil
	}

	spec, degraded, err := s.extractFilters(ctx, query)
	if err != nil {
		return nil, err
	}

	return &SearchOutcome{
		Filters:  spec,
		Degraded: degraded,
		Jobs:     jobs.Apply(records, spec, s.now().UTC()),
	}, nil
}

// extractFilters runs the filter-extraction task and validates the loosely
// typed response into a FilterSpec at this boundary. A degraded parse yields
// an empty spec: the search still answers, just unfiltered.
func (s *searchService) extractFilters(ctx context.Context, query string) (jobs.FilterSpec, bool, error) {
	prompt := s.promptBuilder.ExtractSearchFilters(query)

	response, err := s.completion.GenerateWithRetry(ctx, prompt)
	if err != nil {
		return jobs.FilterSpec{}, false, err
	}

	parsed := ExtractJSON(response)
	if parsed.Status == StatusDegraded {
		return jobs.FilterSpec{}, true, nil
	}

	return jobs.FilterSpecFromMap(parsed.Object), false, nil
}

// GetJob reads the dataset fresh and returns the record with the given id.
func (s *searchService) GetJob(id string) (*jobs.JobRecord, error) {
	records, err := jobs.LoadDataset(s.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load job dataset: %w", err)
	}

	rec, ok := jobs.FindByID(records, id)
	if !ok {
		return nil, fmt.Errorf("job %s not found", id)
	}

	return rec, nil
}
