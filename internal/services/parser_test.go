package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ma593y/seeklyzer/internal/services"
)

func TestExtractDelimited_TrimsMarkedSection(t *testing.T) {
	raw := "Sure, here it is:\n---RESUME-START---\n  John Doe\nEngineer  \n---RESUME-END---\nHope that helps."

	got := services.ExtractDelimited(raw, services.ResumeStartMarker, services.ResumeEndMarker)

	assert.Equal(t, services.StatusOk, got.Status)
	assert.Equal(t, "John Doe\nEngineer", got.Text)
}

func TestExtractDelimited_MissingStartMarkerDegrades(t *testing.T) {
	raw := "John Doe\nEngineer\n---RESUME-END---"

	got := services.ExtractDelimited(raw, services.ResumeStartMarker, services.ResumeEndMarker)

	assert.Equal(t, services.StatusDegraded, got.Status)
	assert.Equal(t, raw, got.Text)
}

func TestExtractDelimited_MissingEndMarkerDegrades(t *testing.T) {
	raw := "---RESUME-START---\nJohn Doe"

	got := services.ExtractDelimited(raw, services.ResumeStartMarker, services.ResumeEndMarker)

	assert.Equal(t, services.StatusDegraded, got.Status)
	assert.Equal(t, raw, got.Text)
}

func TestExtractJSON_DecodesPlainObject(t *testing.T) {
	got := services.ExtractJSON(`{"name": "John", "skills": ["Go"]}`)

	require.Equal(t, services.StatusOk, got.Status)
	assert.Equal(t, "John", got.Object["name"])
	assert.JSONEq(t, `{"name": "John", "skills": ["Go"]}`, string(got.Raw))
}

func TestExtractJSON_StripsMarkdownFences(t *testing.T) {
	raw := "```json\n{\"job_title\": \"engineer\", \"location\": null}\n```"

	got := services.ExtractJSON(raw)

	require.Equal(t, services.StatusOk, got.Status)
	assert.Equal(t, "engineer", got.Object["job_title"])
	assert.Nil(t, got.Object["location"])
}

func TestExtractJSON_IgnoresSurroundingProse(t *testing.T) {
	raw := "Here is the extracted data:\n{\"scores\": [0.8, 0.6]}\nLet me know if you need anything else."

	got := services.ExtractJSON(raw)

	require.Equal(t, services.StatusOk, got.Status)
	scores, ok := got.Object["scores"].([]interface{})
	require.True(t, ok)
	assert.Len(t, scores, 2)
}

func TestExtractJSON_MalformedDegradesToRawWrapper(t *testing.T) {
	raw := "I could not produce JSON for that."

	got := services.ExtractJSON(raw)

	assert.Equal(t, services.StatusDegraded, got.Status)
	assert.Equal(t, raw, got.Object["raw_response"])
	assert.Nil(t, got.Raw)
}

func TestExtractJSON_RawPreservesKeyOrder(t *testing.T) {
	raw := `{"zeta": 1, "alpha": 2}`

	got := services.ExtractJSON(raw)

	require.Equal(t, services.StatusOk, got.Status)
	assert.Equal(t, raw, string(got.Raw))
}
