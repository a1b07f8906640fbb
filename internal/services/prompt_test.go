package services_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ma593y/seeklyzer/internal/jobs"
	"github.com/ma593y/seeklyzer/internal/services"
)

func TestFormatResume_EmbedsPayloadAndDeclaresDividers(t *testing.T) {
	pb := services.NewPromptBuilder()
	resume := "John Doe\nSenior Engineer at Initech\n10 years of Go"

	prompt := pb.FormatResume(resume)

	assert.NotEmpty(t, prompt.System)
	assert.Contains(t, prompt.Human, resume)
	assert.Contains(t, prompt.Human, services.ResumeStartMarker)
	assert.Contains(t, prompt.Human, services.ResumeEndMarker)
}

func TestExtractResumeJSON_DeclaresSchema(t *testing.T) {
	pb := services.NewPromptBuilder()

	prompt := pb.ExtractResumeJSON("resume body")

	assert.Contains(t, prompt.Human, "resume body")
	for _, field := range []string{`"name"`, `"contact"`, `"skills"`, `"experience"`, `"education"`, `"certifications"`} {
		assert.Contains(t, prompt.Human, field)
	}
}

func TestExtractSearchFilters_DeclaresAllSixFields(t *testing.T) {
	pb := services.NewPromptBuilder()

	prompt := pb.ExtractSearchFilters("remote go jobs in sydney")

	assert.Contains(t, prompt.Human, "remote go jobs in sydney")
	for _, field := range []string{`"job_title"`, `"work_arrangement"`, `"work_type"`, `"posting_date"`, `"company_name"`, `"location"`} {
		assert.Contains(t, prompt.Human, field)
	}
	assert.Contains(t, prompt.Human, "Full time, Part time, Contract/Temp, Casual/Vacation")
	assert.Contains(t, prompt.Human, "Remote, Hybrid, On-site")
}

func TestExtractRequirementBullets_DeclaresCategories(t *testing.T) {
	pb := services.NewPromptBuilder()

	prompt := pb.ExtractRequirementBullets("We need a Go engineer.")

	assert.Contains(t, prompt.Human, "We need a Go engineer.")
	for _, field := range []string{`"responsibilities"`, `"qualifications"`, `"skills"`, `"requirement"`, `"assessment_instruction"`} {
		assert.Contains(t, prompt.Human, field)
	}
}

func TestAssessResume_EmbedsBulletsAndResume(t *testing.T) {
	pb := services.NewPromptBuilder()
	bullets := []jobs.RequirementBullet{
		{Requirement: "Go experience", AssessmentInstruction: "Look for Go roles."},
		{Requirement: "SQL", AssessmentInstruction: "Look for database work."},
	}

	prompt, err := pb.AssessResume("resume body", bullets)
	require.NoError(t, err)

	assert.Contains(t, prompt.Human, "resume body")
	assert.Contains(t, prompt.Human, "Go experience")
	assert.Contains(t, prompt.Human, "Look for database work.")
	assert.Contains(t, prompt.Human, `"scores"`)
}

func TestPrompts_PayloadComesAfterInstructions(t *testing.T) {
	pb := services.NewPromptBuilder()
	payload := "UNIQUE-PAYLOAD-TOKEN"

	for name, prompt := range map[string]services.Prompt{
		"format":  pb.FormatResume(payload),
		"extract": pb.ExtractResumeJSON(payload),
		"filters": pb.ExtractSearchFilters(payload),
		"bullets": pb.ExtractRequirementBullets(payload),
	} {
		idx := strings.Index(prompt.Human, payload)
		require.Greater(t, idx, 0, "payload missing in %s prompt", name)
		// The payload is embedded once, whole, never repeated or truncated.
		assert.Equal(t, 1, strings.Count(prompt.Human, payload), "payload duplicated in %s prompt", name)
	}
}
