package models

import "github.com/ma593y/seeklyzer/internal/jobs"

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	FileType     string `json:"file_type"`
	SizeBytes    int64  `json:"size_bytes"`
}

type ParseRequest struct {
	DocumentID string `json:"document_id"`
}

type ParseResponse struct {
	DocumentID string `json:"document_id"`
	Text       string `json:"text"`
	CharCount  int    `json:"char_count"`
	PageCount  int    `json:"page_count"`
}

type FormatRequest struct {
	Text string `json:"text"`
}

type FormatResponse struct {
	FormattedText string  `json:"formatted_text"`
	Degraded      bool    `json:"degraded"`
	ElapsedSecs   float64 `json:"elapsed_secs"`
}

type ExtractRequest struct {
	Text string `json:"text"`
}

type ExtractResponse struct {
	Resume   map[string]interface{} `json:"resume"`
	Degraded bool                   `json:"degraded"`
}

type ExportRequest struct {
	Content string `json:"content"`
	Format  string `json:"format"` // txt or json
}

type ExportResponse struct {
	Path string `json:"path"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

type SearchResponse struct {
	Filters  jobs.FilterSpec  `json:"filters"`
	Degraded bool             `json:"degraded"`
	Count    int              `json:"count"`
	Jobs     []jobs.JobRecord `json:"jobs"`
}

type SimilarRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type SimilarMatch struct {
	JobID string  `json:"job_id"`
	Score float32 `json:"score"`
	Text  string  `json:"text"`
}

type SimilarResponse struct {
	Count   int            `json:"count"`
	Matches []SimilarMatch `json:"matches"`
}

type AssessRequest struct {
	DocumentID string `json:"document_id"`
	ResumeText string `json:"resume_text"`
}
