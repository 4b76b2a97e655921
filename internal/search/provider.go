package search

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/lendstack/prospect-pipeline/pkg/apify"
)

// apifyProvider adapts the Apify places client to the Provider interface.
type apifyProvider struct {
	client apify.Client
}

// NewApifyProvider wraps an Apify client as a search Provider.
func NewApifyProvider(client apify.Client) Provider {
	return &apifyProvider{client: client}
}

func (p *apifyProvider) Search(ctx context.Context, q Query) ([]RawPlace, error) {
	// The actor's input schema has no radius parameter; coverage is bounded
	// by the location query itself, so q.RadiusMiles is not forwarded.
	items, err := p.client.SearchPlaces(ctx, apify.SearchRequest{
		SearchStringsArray: []string{q.Term},
		LocationQuery:      q.Location,
		MaxCrawledPlaces:   q.MaxResults,
	})
	if err != nil {
		return nil, eris.Wrap(err, "search: apify places")
	}

	places := make([]RawPlace, 0, len(items))
	for _, it := range items {
		categories := it.Categories
		if it.CategoryName != "" {
			categories = append([]string{it.CategoryName}, categories...)
		}
		places = append(places, RawPlace{
			PlaceID:           it.PlaceID,
			Title:             it.Title,
			Categories:        categories,
			Address:           it.Address,
			Phone:             it.Phone,
			Website:           it.Website,
			Rating:            it.TotalScore,
			ReviewCount:       it.ReviewsCount,
			PermanentlyClosed: it.PermanentlyClosed,
			TemporarilyClosed: it.TemporarilyClosed,
		})
	}
	return places, nil
}
