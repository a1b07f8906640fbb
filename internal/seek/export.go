package seek

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ma593y/seeklyzer/internal/jobs"
)

var workbookColumns = []string{
	"Job Id",
	"Job Title",
	"Company Name",
	"Advertiser Name",
	"Work Type",
	"Work Arrangement",
	"Location",
	"Posting Date",
	"Salary Range",
	"Job Url",
	"Job Description",
	"Extracted Details",
}

// WriteWorkbook mirrors the dataset to a spreadsheet for human inspection.
func WriteWorkbook(path string, records []jobs.JobRecord) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create workbook directory: %w", err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	for col, name := range workbookColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, rec := range records {
		values := []string{
			rec.JobID.String(),
			rec.JobTitle,
			rec.CompanyName,
			rec.AdvertiserName,
			rec.WorkType,
			rec.WorkArrangement,
			rec.Location,
			rec.PostingDate,
			rec.SalaryRange,
			rec.JobURL,
			rec.JobDescription,
			detailsCell(rec.Details),
		}

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

func detailsCell(details *jobs.ExtractedDetails) string {
	if details.Empty() {
		return ""
	}

	data, err := json.Marshal(details)
	if err != nil {
		return ""
	}
	return string(data)
}
