package jobs

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FilterSpec is the structured multi-field query derived from a free-text
// search. Each field holds comma-joined alternatives; empty means unset.
// PostingDate is an integer number of days before now.
type FilterSpec struct {
	JobTitle        string `json:"job_title"`
	WorkArrangement string `json:"work_arrangement"`
	WorkType        string `json:"work_type"`
	PostingDate     string `json:"posting_date"`
	CompanyName     string `json:"company_name"`
	Location        string `json:"location"`
}

func (s FilterSpec) IsEmpty() bool {
	return s.JobTitle == "" && s.WorkArrangement == "" && s.WorkType == "" &&
		s.PostingDate == "" && s.CompanyName == "" && s.Location == ""
}

// FilterSpecFromMap builds a FilterSpec from loosely-typed parser output.
// Every field may be absent, null, a string, or a number; anything else is
// ignored. This is the one place payload shape is validated, so downstream
// code can trust the struct.
func FilterSpecFromMap(m map[string]interface{}) FilterSpec {
	return FilterSpec{
		JobTitle:        coerceString(m["job_title"]),
		WorkArrangement: coerceString(m["work_arrangement"]),
		WorkType:        coerceString(m["work_type"]),
		PostingDate:     coerceString(m["posting_date"]),
		CompanyName:     coerceString(m["company_name"]),
		Location:        coerceString(m["location"]),
	}
}

func coerceString(v interface{}) string {
	switch val := v.(type) {
	case string:
		if strings.EqualFold(strings.TrimSpace(val), "null") {
			return ""
		}
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
}

// Apply filters records by every populated field of spec: AND across fields,
// OR across the comma-separated values within one field. Original row order
// is preserved. An empty spec returns the input unchanged.
//
// Text fields match case-insensitive substrings; categorical fields require
// exact set membership. The strictness difference is deliberate and matches
// observed search behavior.
func Apply(records []JobRecord, spec FilterSpec, now time.Time) []JobRecord {
	if spec.IsEmpty() {
		return records
	}

	titleRe := alternationPattern(spec.JobTitle)
	companyRe := alternationPattern(spec.CompanyName)
	locationRe := alternationPattern(spec.Location)
	workTypes := splitValues(spec.WorkType)
	arrangements := splitValues(spec.WorkArrangement)
	cutoff, hasCutoff := postingCutoff(spec.PostingDate, now)

	var out []JobRecord
	for _, rec := range records {
		if titleRe != nil && !titleRe.MatchString(rec.JobTitle) {
			continue
		}
		if companyRe != nil && !companyRe.MatchString(rec.CompanyName) && !companyRe.MatchString(rec.AdvertiserName) {
			continue
		}
		if locationRe != nil && !locationRe.MatchString(rec.Location) {
			continue
		}
		if len(workTypes) > 0 && !memberOf(rec.WorkType, workTypes) {
			continue
		}
		if len(arrangements) > 0 && !memberOf(rec.WorkArrangement, arrangements) {
			continue
		}
		if hasCutoff {
			posted, err := parsePostingDate(rec.PostingDate)
			if err != nil || posted.Before(cutoff) {
				continue
			}
		}
		out = append(out, rec)
	}

	if out == nil {
		out = []JobRecord{}
	}
	return out
}

// alternationPattern compiles comma-joined values into one case-insensitive
// substring alternation. Returns nil when the field is unset.
func alternationPattern(value string) *regexp.Regexp {
	values := splitValues(value)
	if len(values) == 0 {
		return nil
	}

	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, regexp.QuoteMeta(v))
	}

	return regexp.MustCompile(`(?i)` + strings.Join(quoted, "|"))
}

func splitValues(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func memberOf(value string, set []string) bool {
	value = strings.TrimSpace(value)
	for _, s := range set {
		if strings.EqualFold(value, s) {
			return true
		}
	}
	return false
}

// postingCutoff parses the "days ago" field into a UTC cutoff time. A
// malformed integer disables the filter rather than failing the request.
func postingCutoff(value string, now time.Time) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	days, err := strconv.Atoi(value)
	if err != nil {
		return time.Time{}, false
	}

	return now.UTC().AddDate(0, 0, -days), true
}

func parsePostingDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return time.ParseInLocation("2006-01-02", value, time.UTC)
}
