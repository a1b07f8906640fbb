package seek

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ma593y/seeklyzer/internal/jobs"
	"github.com/ma593y/seeklyzer/internal/services"
)

var titleCaser = cases.Title(language.English)

// BuildDataset flattens raw listings into dataset rows: featured listings
// dropped, duplicates removed by id (first wins), HTML stripped out of
// descriptions, and the description composed as teaser | highlights | body.
func BuildDataset(listings []Listing) []jobs.JobRecord {
	seen := make(map[string]struct{}, len(listings))
	var records []jobs.JobRecord

	for _, l := range listings {
		if l.IsFeatured {
			continue
		}

		id := l.ID.String()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		records = append(records, flatten(l))
	}

	return records
}

func flatten(l Listing) jobs.JobRecord {
	role := roleLabel(l.RoleID)

	title := l.Title
	if role != "" && !strings.Contains(titleCaser.String(title), role) {
		title = title + " | " + role
	}

	highlights := joinNonEmpty(l.BulletPoints, "; ")
	body := services.CollapseWhitespace(stripHTML(l.Content))
	description := services.CollapseWhitespace(l.Teaser + " | " + highlights + " | " + body)

	rec := jobs.JobRecord{
		JobID:          l.ID,
		JobTitle:       title,
		CompanyName:    l.Advertiser.Description,
		AdvertiserName: l.CompanyName,
		PostingDate:    l.ListingDate,
		SalaryRange:    l.SalaryLabel,
		JobTeaser:      l.Teaser,
		Highlights:     highlights,
		JobDescription: description,
		JobURL:         l.URL,
	}

	if rec.CompanyName == "" {
		rec.CompanyName = l.CompanyName
	}

	if len(l.Locations) > 0 {
		rec.Location = l.Locations[0].Label + " - " + l.Locations[0].CountryCode
	}
	if len(l.WorkTypes) > 0 {
		rec.WorkType = l.WorkTypes[0]
	}
	if len(l.WorkArrangements.Data) > 0 {
		rec.WorkArrangement = l.WorkArrangements.Data[0].Label.Text
	}

	points := l.BulletPoints
	if len(points) > 0 {
		rec.HighlightPoint1 = points[0]
	}
	if len(points) > 1 {
		rec.HighlightPoint2 = points[1]
	}
	if len(points) > 2 {
		rec.HighlightPoint3 = points[2]
	}

	return rec
}

// roleLabel turns a slugged role id like "software-engineer" into
// "Software Engineer".
func roleLabel(roleID string) string {
	if roleID == "" {
		return ""
	}
	return titleCaser.String(strings.ReplaceAll(roleID, "-", " "))
}

// stripHTML flattens listing HTML to plain text, keeping a separator
// between block elements so words don't run together.
func stripHTML(html string) string {
	if html == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	var b strings.Builder
	doc.Find("body").Contents().Each(func(_ int, s *goquery.Selection) {
		b.WriteString(s.Text())
		b.WriteString("   ")
	})

	text := b.String()
	if strings.TrimSpace(text) == "" {
		text = doc.Text()
	}

	return text
}

func joinNonEmpty(values []string, sep string) string {
	var kept []string
	for _, v := range values {
		if v != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, sep)
}
