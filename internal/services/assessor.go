package services

import (
	"context"
	"fmt"
	"math"

	"github.com/ma593y/seeklyzer/internal/jobs"
	"github.com/ma593y/seeklyzer/internal/pipeline"
)

// AssessmentResult is computed on demand per (resume, job) pair and lives
// only in the response; it is never persisted.
type AssessmentResult struct {
	Categories   []CategoryScore `json:"categories"`
	OverallScore float64         `json:"overall_score"`
}

type CategoryScore struct {
	Category string        `json:"category"`
	Score    float64       `json:"score"` // 0-100, 1 decimal
	Bullets  []BulletScore `json:"bullets"`
}

type BulletScore struct {
	Requirement string  `json:"requirement"`
	Score       float64 `json:"score"` // 0-1, 2 decimals
}

type AssessorService interface {
	Assess(ctx context.Context, resumeText string, details *jobs.ExtractedDetails) (*AssessmentResult, error)
}

type assessorService struct {
	completion    CompletionService
	promptBuilder *PromptBuilder
}

func NewAssessorService(completion CompletionService) AssessorService {
	return &assessorService{
		completion:    completion,
		promptBuilder: NewPromptBuilder(),
	}
}

// Assess scores the resume against each requirement category in turn.
// Per-bullet scores land in [0,1] rounded to 2 decimals, a category score is
// the bullet mean scaled to 100 at 1 decimal, and the overall score is the
// mean of the category scores. Empty categories are skipped entirely.
func (a *assessorService) Assess(ctx context.Context, resumeText string, details *jobs.ExtractedDetails) (*AssessmentResult, error) {
	if details.Empty() {
		return nil, fmt.Errorf("job has no extracted requirement details")
	}

	categories := []struct {
		name    string
		bullets []jobs.RequirementBullet
	}{
		{"responsibilities", details.Responsibilities},
		{"qualifications", details.Qualifications},
		{"skills", details.Skills},
	}

	result := &AssessmentResult{}
	var categoryTotal float64

	for _, cat := range categories {
		if len(cat.bullets) == 0 {
			continue
		}

		score, err := a.assessCategory(ctx, resumeText, cat.name, cat.bullets)
		if err != nil {
			return nil, fmt.Errorf("failed to assess %s: %w", cat.name, err)
		}

		result.Categories = append(result.Categories, *score)
		categoryTotal += score.Score
	}

	result.OverallScore = round1(categoryTotal / float64(len(result.Categories)))
	return result, nil
}

func (a *assessorService) assessCategory(ctx context.Context, resumeText, category string, bullets []jobs.RequirementBullet) (*CategoryScore, error) {
	prompt, err := a.promptBuilder.AssessResume(resumeText, bullets)
	if err != nil {
		return nil, err
	}

	response, err := a.completion.GenerateWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	parsed := ExtractJSON(response)
	if parsed.Status == StatusDegraded {
		return nil, fmt.Errorf("%w: no scores object in completion", pipeline.ErrMalformedResponse)
	}

	raw, ok := parsed.Object["scores"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: scores field missing", pipeline.ErrMalformedResponse)
	}

	scores := make([]BulletScore, len(bullets))
	var total float64
	for i, bullet := range bullets {
		var value float64
		if i < len(raw) {
			if f, ok := raw[i].(float64); ok {
				value = f
			}
		}
		value = round2(clamp01(value))
		scores[i] = BulletScore{Requirement: bullet.Requirement, Score: value}
		total += value
	}

	return &CategoryScore{
		Category: category,
		Score:    round1(total / float64(len(bullets)) * 100),
		Bullets:  scores,
	}, nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
