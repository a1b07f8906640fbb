// Package jobs holds the job-listing dataset: the record schema produced by
// the fetch pipeline, the loader, and the filter engine.
package jobs

import "encoding/json"

// JobRecord is one row of the preprocessed listings dataset. The JSON names
// are the dataset's column headers, kept verbatim so files produced by the
// fetch tooling load unchanged.
type JobRecord struct {
	JobID           json.Number       `json:"Job Id"`
	JobTitle        string            `json:"Job Title"`
	CompanyName     string            `json:"Company Name"`
	AdvertiserName  string            `json:"Advertiser Name,omitempty"`
	Location        string            `json:"Location"`
	WorkType        string            `json:"Work Type"`
	WorkArrangement string            `json:"Work Arrangement"`
	PostingDate     string            `json:"Posting Date"`
	SalaryRange     string            `json:"Salary Range,omitempty"`
	JobTeaser       string            `json:"Job Teaser,omitempty"`
	Highlights      string            `json:"Highlights,omitempty"`
	HighlightPoint1 string            `json:"Highlight Point 1,omitempty"`
	HighlightPoint2 string            `json:"Highlight Point 2,omitempty"`
	HighlightPoint3 string            `json:"Highlight Point 3,omitempty"`
	JobDescription  string            `json:"Job Description"`
	JobURL          string            `json:"Job Url,omitempty"`
	Details         *ExtractedDetails `json:"Extracted Details,omitempty"`
}

// ExtractedDetails is the per-job requirement breakdown produced by the
// offline extraction run, never by the interactive app.
type ExtractedDetails struct {
	Responsibilities []RequirementBullet `json:"responsibilities"`
	Qualifications   []RequirementBullet `json:"qualifications"`
	Skills           []RequirementBullet `json:"skills"`
}

// RequirementBullet pairs one requirement from a job description with the
// instruction an assessor should follow when scoring a resume against it.
type RequirementBullet struct {
	Requirement           string `json:"requirement"`
	AssessmentInstruction string `json:"assessment_instruction"`
}

func (d *ExtractedDetails) Empty() bool {
	if d == nil {
		return true
	}
	return len(d.Responsibilities) == 0 && len(d.Qualifications) == 0 && len(d.Skills) == 0
}
