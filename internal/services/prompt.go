package services

import (
	"encoding/json"
	"fmt"

	"github.com/ma593y/seeklyzer/internal/jobs"
)

// Markers the format-resume task asks the model to wrap its output in, and
// that delimiter-mode parsing looks for. Changing one side without the other
// breaks the round trip, which is why both live here.
const (
	ResumeStartMarker = "---RESUME-START---"
	ResumeEndMarker   = "---RESUME-END---"

	inputStartMarker = "---INPUT-START---"
	inputEndMarker   = "---INPUT-END---"
)

// Prompt is the ordered (system, human) instruction pair sent to the
// completion endpoint.
type Prompt struct {
	System string
	Human  string
}

// PromptBuilder centralizes the instruction templates per task. Each template
// declares the exact output contract the response parser depends on, and the
// payload is always embedded whole between explicit markers, never truncated.
type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// FormatResume asks for a structured plain-text outline of raw resume text,
// wrapped in the resume dividers.
func (pb *PromptBuilder) FormatResume(resumeText string) Prompt {
	return Prompt{
		System: "You are an assistant that formats resumes.",
		Human: fmt.Sprintf(`Format the resume text below into a clear, structured plain-text outline. Don't assume or add anything by yourself. Return the resume between the following dividers: '%s' and '%s'

%s
%s
%s`, ResumeStartMarker, ResumeEndMarker, inputStartMarker, resumeText, inputEndMarker),
	}
}

// ExtractResumeJSON asks for the resume as a structured JSON object.
func (pb *PromptBuilder) ExtractResumeJSON(resumeText string) Prompt {
	return Prompt{
		System: "You are an assistant that extracts structured data from resumes in JSON format.",
		Human: fmt.Sprintf(`Analyze the resume text below and extract it into a structured JSON object. Don't assume or add anything by yourself.

Output only the JSON object:
{
    "name": str or null,
    "contact": {"email": str or null, "phone": str or null, "location": str or null},
    "summary": str or null,
    "skills": [str],
    "experience": [{"company": str, "position": str, "duration": str or null, "highlights": [str]}],
    "education": [{"institution": str, "degree": str or null, "field": str or null}],
    "certifications": [str]
}

Resume text:
%s
%s
%s`, inputStartMarker, resumeText, inputEndMarker),
	}
}

// ExtractSearchFilters turns a free-text job search query into the six-field
// filter object the filter engine consumes.
func (pb *PromptBuilder) ExtractSearchFilters(query string) Prompt {
	return Prompt{
		System: "You are an assistant that extracts job search filters from free text in JSON format.",
		Human: fmt.Sprintf(`Analyze the job search query below and extract filter values. For each field, return a single string of comma-joined alternatives, or null when the query says nothing about it.

Rules:
- "posting_date" is the number of days before today as an integer string (e.g. "last week" becomes "7"), or null.
- "work_type" values are one of: Full time, Part time, Contract/Temp, Casual/Vacation.
- "work_arrangement" values are one of: Remote, Hybrid, On-site.
- Do not invent values the query does not mention.

Output only the JSON object:
{
    "job_title": str or null,
    "work_arrangement": str or null,
    "work_type": str or null,
    "posting_date": str or null,
    "company_name": str or null,
    "location": str or null
}

Search query:
%s
%s
%s`, inputStartMarker, query, inputEndMarker),
	}
}

// ExtractRequirementBullets asks for the per-category requirement breakdown
// stored as a job's Extracted Details.
func (pb *PromptBuilder) ExtractRequirementBullets(jobDescription string) Prompt {
	return Prompt{
		System: "You are an assistant that extracts structured requirements from job descriptions in JSON format.",
		Human: fmt.Sprintf(`Analyze the job description below and extract its requirements into three categories: responsibilities, qualifications, and skills. For every entry, write the requirement as stated and a short instruction describing what evidence in a resume would satisfy it.

Output only the JSON object:
{
    "responsibilities": [{"requirement": str, "assessment_instruction": str}],
    "qualifications": [{"requirement": str, "assessment_instruction": str}],
    "skills": [{"requirement": str, "assessment_instruction": str}]
}

Job description:
%s
%s
%s`, inputStartMarker, jobDescription, inputEndMarker),
	}
}

// AssessResume scores a resume against one category of requirement bullets.
// The template fixes the units and rounding the assessor relies on: one score
// per bullet, in [0,1], rounded to 2 decimals, in input order.
func (pb *PromptBuilder) AssessResume(resumeText string, bullets []jobs.RequirementBullet) (Prompt, error) {
	bulletsJSON, err := json.Marshal(bullets)
	if err != nil {
		return Prompt{}, fmt.Errorf("failed to marshal requirement bullets: %w", err)
	}

	return Prompt{
		System: "You are an assistant that scores how well a resume satisfies job requirements.",
		Human: fmt.Sprintf(`Score the resume below against each requirement. Follow each requirement's assessment_instruction. For every requirement return a relevancy score between 0 and 1, rounded to 2 decimals, where 1 means the resume fully satisfies it. Return the scores in the same order as the requirements.

Requirements:
%s

Output only the JSON object:
{
    "scores": [float]
}

Resume text:
%s
%s
%s`, string(bulletsJSON), inputStartMarker, resumeText, inputEndMarker),
	}, nil
}
