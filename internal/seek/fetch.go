// Package seek turns raw job-listing API payloads into the preprocessed
// dataset the rest of the application reads.
package seek

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Listing mirrors the slice of the raw API item the dataset needs; unknown
// fields are ignored on decode.
type Listing struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	CompanyName string      `json:"companyName"`
	URL         string      `json:"url"`
	ListingDate string      `json:"listingDate"`
	IsFeatured  bool        `json:"isFeatured"`
	Teaser      string      `json:"teaser"`
	RoleID      string      `json:"roleId"`
	SalaryLabel string      `json:"salaryLabel"`
	Content     string      `json:"content"`

	Advertiser struct {
		Description string `json:"description"`
	} `json:"advertiser"`

	Locations []struct {
		CountryCode string `json:"countryCode"`
		Label       string `json:"label"`
	} `json:"locations"`

	BulletPoints []string `json:"bulletPoints"`

	WorkArrangements struct {
		Data []struct {
			Label struct {
				Text string `json:"text"`
			} `json:"label"`
		} `json:"data"`
	} `json:"workArrangements"`

	WorkTypes []string `json:"workTypes"`
}

// FetchListings downloads the raw listings JSON array.
func FetchListings(ctx context.Context, url string) ([]Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listings API returned status %d", resp.StatusCode)
	}

	var listings []Listing
	if err := json.NewDecoder(resp.Body).Decode(&listings); err != nil {
		return nil, fmt.Errorf("failed to decode listings JSON: %w", err)
	}

	return listings, nil
}
