// Package model defines the canonical business record shared by live search
// results and persisted prospects.
package model

import (
	"github.com/lendstack/prospect-pipeline/internal/taxonomy"
)

// DataSource labels the provenance of a search response.
type DataSource string

const (
	SourceLive DataSource = "live"
	SourceMock DataSource = "mock"
)

// Indicators holds the four boolean checks of the indicator scoring strategy.
type Indicators struct {
	RevenueQualified    bool `json:"revenue_qualified"`
	ExperienceQualified bool `json:"experience_qualified"`
	LocationQualified   bool `json:"location_qualified"`
	IndustryQualified   bool `json:"industry_qualified"`
}

// QualificationResult is derived from a BusinessRecord and criteria. It is
// never persisted independently; it is recomputed whenever criteria or
// record attributes change.
type QualificationResult struct {
	Strategy   string     `json:"strategy"`
	Indicators Indicators `json:"indicators"`
	Score      int        `json:"score"`
	Qualified  bool       `json:"qualified"`
}

// BusinessRecord is the normalized representation of a business, whether a
// transient search result or a saved prospect. Financial attributes are
// nil when neither observed nor estimated; band fields carry the estimated
// display ranges when attributes were derived from review signals.
type BusinessRecord struct {
	ID      string `json:"id"`
	PlaceID string `json:"place_id,omitempty"`

	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`

	BusinessType taxonomy.BusinessType `json:"business_type"`
	Category     taxonomy.Category     `json:"industry_category"`
	DisplayName  string                `json:"display_name"`

	Rating      float64 `json:"rating,omitempty"`
	ReviewCount int     `json:"review_count,omitempty"`

	MonthlyRevenue  *float64 `json:"monthly_revenue,omitempty"`
	YearsInBusiness *float64 `json:"years_in_business,omitempty"`
	EmployeeCount   *int     `json:"employee_count,omitempty"`

	RevenueBand  string `json:"revenue_band,omitempty"`
	YearsBand    string `json:"years_band,omitempty"`
	EmployeeBand string `json:"employee_band,omitempty"`
	Estimated    bool   `json:"estimated"`

	Qualification *QualificationResult `json:"qualification,omitempty"`
}

// DedupKey returns the deduplication key for a record: the external place
// identifier when present, else name+address.
func (b *BusinessRecord) DedupKey() string {
	if b.PlaceID != "" {
		return b.PlaceID
	}
	return b.Name + "|" + b.Address
}
