package jobs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ma593y/seeklyzer/internal/jobs"
)

func sampleRecords() []jobs.JobRecord {
	return []jobs.JobRecord{
		{
			JobID:           "81000001",
			JobTitle:        "Senior Software Engineer",
			CompanyName:     "Initech",
			Location:        "Sydney NSW - AU",
			WorkType:        "Full time",
			WorkArrangement: "Remote",
			PostingDate:     "2024-01-10",
		},
		{
			JobID:           "81000002",
			JobTitle:        "Data Engineer",
			CompanyName:     "Globex",
			Location:        "Melbourne VIC - AU",
			WorkType:        "Full time",
			WorkArrangement: "Hybrid",
			PostingDate:     "2024-01-08",
		},
		{
			JobID:           "81000003",
			JobTitle:        "Software Engineer",
			CompanyName:     "Hooli",
			AdvertiserName:  "Hooli Recruiting",
			Location:        "Sydney NSW - AU",
			WorkType:        "Contract/Temp",
			WorkArrangement: "Remote",
			PostingDate:     "2024-01-05",
		},
		{
			JobID:           "81000004",
			JobTitle:        "Product Manager",
			CompanyName:     "Initech",
			Location:        "Brisbane QLD - AU",
			WorkType:        "Full time",
			WorkArrangement: "On-site",
			PostingDate:     "2024-01-09",
		},
		{
			JobID:           "81000005",
			JobTitle:        "Junior Software Engineer",
			CompanyName:     "Globex",
			Location:        "Sydney NSW - AU",
			WorkType:        "Part time",
			WorkArrangement: "Hybrid",
			PostingDate:     "2024-01-10",
		},
	}
}

func jobIDs(records []jobs.JobRecord) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.JobID.String())
	}
	return ids
}

func TestApply_EmptySpecIsIdentity(t *testing.T) {
	records := sampleRecords()

	got := jobs.Apply(records, jobs.FilterSpec{}, time.Now())

	assert.Equal(t, records, got)
}

func TestApply_TitleMatchesSubstringCaseInsensitive(t *testing.T) {
	got := jobs.Apply(sampleRecords(), jobs.FilterSpec{JobTitle: "software engineer"}, time.Now())

	assert.Equal(t, []string{"81000001", "81000003", "81000005"}, jobIDs(got))
}

func TestApply_CategoricalRequiresExactMembership(t *testing.T) {
	// "Full" is a substring of "Full time" but work type matching is exact.
	got := jobs.Apply(sampleRecords(), jobs.FilterSpec{WorkType: "Full"}, time.Now())
	assert.Empty(t, got)

	got = jobs.Apply(sampleRecords(), jobs.FilterSpec{WorkType: "full time"}, time.Now())
	assert.Equal(t, []string{"81000001", "81000002", "81000004"}, jobIDs(got))
}

func TestApply_UnknownCategoricalValueReturnsEmptySlice(t *testing.T) {
	got := jobs.Apply(sampleRecords(), jobs.FilterSpec{WorkArrangement: "Underwater"}, time.Now())

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestApply_PostingDateCutoff(t *testing.T) {
	// Midnight now: cutoff is 2024-01-09T00:00Z, so the 01-09, 01-10 rows
	// survive and the older ones drop.
	now := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)

	got := jobs.Apply(sampleRecords(), jobs.FilterSpec{PostingDate: "2"}, now)

	assert.Equal(t, []string{"81000001", "81000004", "81000005"}, jobIDs(got))
}

func TestApply_PostingDateCutoffKeepsTimeOfDay(t *testing.T) {
	// The cutoff is exactly now minus N days, not a calendar day: at 15:30
	// the 01-09 row (parsed at midnight) falls before 01-09T15:30Z.
	now := time.Date(2024, 1, 11, 15, 30, 0, 0, time.UTC)

	got := jobs.Apply(sampleRecords(), jobs.FilterSpec{PostingDate: "2"}, now)

	assert.Equal(t, []string{"81000001", "81000005"}, jobIDs(got))
}

func TestApply_MalformedPostingDateIsIgnored(t *testing.T) {
	got := jobs.Apply(sampleRecords(), jobs.FilterSpec{PostingDate: "recently"}, time.Now())

	assert.Len(t, got, len(sampleRecords()))
}

func TestApply_CompanyMatchesAdvertiserToo(t *testing.T) {
	got := jobs.Apply(sampleRecords(), jobs.FilterSpec{CompanyName: "Recruiting"}, time.Now())

	assert.Equal(t, []string{"81000003"}, jobIDs(got))
}

func TestApply_CombinedFieldsAndOrSemantics(t *testing.T) {
	now := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	spec := jobs.FilterSpec{
		JobTitle:        "engineer",
		WorkArrangement: "Remote, Hybrid",
		WorkType:        "Full time",
		PostingDate:     "7",
	}

	got := jobs.Apply(sampleRecords(), spec, now)

	// AND across fields, OR within one: full-time engineers that are either
	// remote or hybrid, posted within a week, in original row order.
	assert.Equal(t, []string{"81000001", "81000002"}, jobIDs(got))
}

func TestApply_ArrangementAndTypeScenario(t *testing.T) {
	spec := jobs.FilterSpec{
		WorkArrangement: "Remote, Hybrid",
		WorkType:        "Full time",
	}

	got := jobs.Apply(sampleRecords(), spec, time.Now())

	assert.Equal(t, []string{"81000001", "81000002"}, jobIDs(got))
}

func TestFilterSpecFromMap_CoercesLooseTypes(t *testing.T) {
	spec := jobs.FilterSpecFromMap(map[string]interface{}{
		"job_title":        " Software Engineer ",
		"work_arrangement": "null",
		"work_type":        nil,
		"posting_date":     float64(7),
		"location":         true, // unsupported type, dropped
	})

	assert.Equal(t, "Software Engineer", spec.JobTitle)
	assert.Equal(t, "", spec.WorkArrangement)
	assert.Equal(t, "", spec.WorkType)
	assert.Equal(t, "7", spec.PostingDate)
	assert.Equal(t, "", spec.Location)
	assert.False(t, spec.IsEmpty())
}

func TestFilterSpecFromMap_AllAbsentIsEmpty(t *testing.T) {
	spec := jobs.FilterSpecFromMap(map[string]interface{}{})

	assert.True(t, spec.IsEmpty())
}
