// Package search orchestrates live business search: it fetches raw hits
// from the external source, classifies and scores each one, and returns a
// ranked, deduplicated result set with an explicit provenance flag.
package search

import (
	"context"

	"github.com/lendstack/prospect-pipeline/internal/model"
	"github.com/lendstack/prospect-pipeline/internal/qualify"
)

// Request is the caller's search input.
type Request struct {
	Location    string `json:"location"`
	Category    string `json:"industry_category"`
	RadiusMiles int    `json:"radius"`
}

// Response is the search output. DataSource is "live" for classified
// external results and "mock" for the fallback sample set; the two are
// never conflated.
type Response struct {
	Businesses   []model.BusinessRecord `json:"businesses"`
	TotalResults int                    `json:"total_results"`
	DataSource   model.DataSource       `json:"data_source"`
	Message      string                 `json:"message,omitempty"`
}

// Query is the provider-facing search input.
type Query struct {
	Term        string
	Location    string
	RadiusMiles int
	MaxResults  int
}

// RawPlace is one unclassified hit from the external source.
type RawPlace struct {
	PlaceID           string
	Title             string
	Categories        []string
	Address           string
	Phone             string
	Website           string
	Rating            float64
	ReviewCount       int
	PermanentlyClosed bool
	TemporarilyClosed bool
}

// Provider abstracts the external search source so the normalizer can be
// tested without a live network.
type Provider interface {
	Search(ctx context.Context, q Query) ([]RawPlace, error)
}

// CriteriaSource supplies the current qualification criteria at request
// time. The prospect store implements it.
type CriteriaSource interface {
	Criteria(ctx context.Context) (qualify.Criteria, error)
}
