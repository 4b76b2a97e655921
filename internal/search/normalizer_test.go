package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendstack/prospect-pipeline/internal/model"
	"github.com/lendstack/prospect-pipeline/internal/qualify"
	"github.com/lendstack/prospect-pipeline/internal/resilience"
	"github.com/lendstack/prospect-pipeline/internal/taxonomy"
)

// mockProvider scripts provider responses per call.
type mockProvider struct {
	calls   []Query
	results [][]RawPlace
	errs    []error
}

func (m *mockProvider) Search(ctx context.Context, q Query) ([]RawPlace, error) {
	idx := len(m.calls)
	m.calls = append(m.calls, q)
	var (
		places []RawPlace
		err    error
	)
	if idx < len(m.results) {
		places = m.results[idx]
	}
	if idx < len(m.errs) {
		err = m.errs[idx]
	}
	return places, err
}

// staticCriteria is a CriteriaSource returning a fixed value.
type staticCriteria struct {
	criteria qualify.Criteria
	err      error
}

func (s staticCriteria) Criteria(ctx context.Context) (qualify.Criteria, error) {
	return s.criteria, s.err
}

func newTestNormalizer(p Provider) *Normalizer {
	return NewNormalizer(p, staticCriteria{criteria: qualify.DefaultCriteria()}, Config{
		MaxResults: 10,
		RateLimit:  1000, // effectively unlimited in tests
	})
}

func autoPlaces() []RawPlace {
	return []RawPlace{
		{PlaceID: "p1", Title: "Joe's Collision Center", Address: "1 Main St, Tulsa, OK 74101", Rating: 4.5, ReviewCount: 120},
		{PlaceID: "p2", Title: "Tulsa Tire & Wheel", Address: "2 Main St, Tulsa, OK 74101", Rating: 4.2, ReviewCount: 45},
		{PlaceID: "p1", Title: "Joe's Collision Center", Address: "1 Main St, Tulsa, OK 74101", Rating: 4.5, ReviewCount: 120}, // duplicate
		{PlaceID: "p3", Title: "Downtown Software Consulting", Address: "3 Main St, Tulsa, OK 74101"},                          // rejected
		{PlaceID: "p4", Title: "Five Star Auto Repair", Address: "4 Main St, Tulsa, OK 74101", PermanentlyClosed: true},        // closed
	}
}

func TestSearch_EmptyLocation(t *testing.T) {
	n := newTestNormalizer(&mockProvider{})
	_, err := n.Search(context.Background(), Request{Location: "  ", Category: "AUTOMOTIVE_SERVICES"})
	assert.Error(t, err)
}

func TestSearch_UnsupportedCategory(t *testing.T) {
	n := newTestNormalizer(&mockProvider{})
	_, err := n.Search(context.Background(), Request{Location: "Tulsa, OK", Category: "AGRICULTURE"})
	assert.Error(t, err)
}

func TestSearch_AllCategoryReturnsSamples(t *testing.T) {
	p := &mockProvider{}
	n := newTestNormalizer(p)

	resp, err := n.Search(context.Background(), Request{Location: "Tulsa, OK", Category: "all"})
	require.NoError(t, err)
	assert.Equal(t, model.SourceMock, resp.DataSource)
	assert.NotEmpty(t, resp.Businesses)
	assert.NotEmpty(t, resp.Message)
	assert.Empty(t, p.calls, "provider must not be called for unscoped search")

	// Samples are scored like live results.
	for _, b := range resp.Businesses {
		require.NotNil(t, b.Qualification)
	}
}

func TestSearch_LiveResults(t *testing.T) {
	p := &mockProvider{results: [][]RawPlace{autoPlaces()}}
	n := newTestNormalizer(p)

	resp, err := n.Search(context.Background(), Request{Location: "Tulsa, OK", Category: "AUTOMOTIVE_SERVICES"})
	require.NoError(t, err)
	assert.Equal(t, model.SourceLive, resp.DataSource)
	assert.Empty(t, resp.Message)

	// 5 raw: 1 duplicate, 1 rejected, 1 closed → 2 records.
	require.Len(t, resp.Businesses, 2)
	assert.Equal(t, resp.TotalResults, len(resp.Businesses))

	names := []string{resp.Businesses[0].Name, resp.Businesses[1].Name}
	assert.Contains(t, names, "Joe's Collision Center")
	assert.Contains(t, names, "Tulsa Tire & Wheel")

	for _, b := range resp.Businesses {
		assert.NotEmpty(t, b.ID)
		assert.Equal(t, taxonomy.CategoryAutomotive, b.Category)
		require.NotNil(t, b.Qualification)
		assert.True(t, b.Estimated)
		require.NotNil(t, b.MonthlyRevenue)
		require.NotNil(t, b.YearsInBusiness)
		require.NotNil(t, b.EmployeeCount)
	}
}

func TestSearch_RankedByScoreDescending(t *testing.T) {
	p := &mockProvider{results: [][]RawPlace{autoPlaces()}}
	n := newTestNormalizer(p)

	resp, err := n.Search(context.Background(), Request{Location: "Tulsa, OK", Category: "AUTOMOTIVE_SERVICES"})
	require.NoError(t, err)

	for i := 1; i < len(resp.Businesses); i++ {
		assert.GreaterOrEqual(t,
			resp.Businesses[i-1].Qualification.Score,
			resp.Businesses[i].Qualification.Score,
		)
	}
}

func TestSearch_ProviderFailureFallsBackToMock(t *testing.T) {
	p := &mockProvider{errs: []error{
		resilience.NewBoundaryError(assert.AnError, 500),
		resilience.NewBoundaryError(assert.AnError, 500),
	}}
	n := newTestNormalizer(p)

	resp, err := n.Search(context.Background(), Request{Location: "Tulsa, OK", Category: "AUTOMOTIVE_SERVICES"})
	require.NoError(t, err)
	assert.Equal(t, model.SourceMock, resp.DataSource)
	assert.Contains(t, resp.Message, "sample data")
}

func TestSearch_QuotaFailureMessage(t *testing.T) {
	p := &mockProvider{errs: []error{
		resilience.NewBoundaryError(assert.AnError, 429),
		resilience.NewBoundaryError(assert.AnError, 429),
	}}
	n := newTestNormalizer(p)

	resp, err := n.Search(context.Background(), Request{Location: "Tulsa, OK", Category: "AUTOMOTIVE_SERVICES"})
	require.NoError(t, err)
	assert.Equal(t, model.SourceMock, resp.DataSource)
	assert.Contains(t, resp.Message, "quota")
}

func TestSearch_RetriesOnceWithNormalizedLocation(t *testing.T) {
	p := &mockProvider{
		errs:    []error{resilience.NewBoundaryError(assert.AnError, 503), nil},
		results: [][]RawPlace{nil, autoPlaces()},
	}
	n := newTestNormalizer(p)

	resp, err := n.Search(context.Background(), Request{Location: "  Tulsa   OK ", Category: "AUTOMOTIVE_SERVICES"})
	require.NoError(t, err)
	assert.Equal(t, model.SourceLive, resp.DataSource)

	require.Len(t, p.calls, 2)
	assert.Equal(t, "  Tulsa   OK ", p.calls[0].Location)
	assert.Equal(t, "Tulsa OK, USA", p.calls[1].Location)
}

func TestSearch_NoRetryWhenLocationAlreadyNormalized(t *testing.T) {
	p := &mockProvider{errs: []error{resilience.NewBoundaryError(assert.AnError, 503)}}
	n := newTestNormalizer(p)

	resp, err := n.Search(context.Background(), Request{Location: "Tulsa, OK", Category: "AUTOMOTIVE_SERVICES"})
	require.NoError(t, err)
	assert.Equal(t, model.SourceMock, resp.DataSource)
	assert.Len(t, p.calls, 1)
}

func TestSearch_CriteriaLoadFailureUsesDefaults(t *testing.T) {
	p := &mockProvider{results: [][]RawPlace{autoPlaces()}}
	n := NewNormalizer(p, staticCriteria{err: assert.AnError}, Config{RateLimit: 1000})

	resp, err := n.Search(context.Background(), Request{Location: "Tulsa, OK", Category: "AUTOMOTIVE_SERVICES"})
	require.NoError(t, err)
	assert.Equal(t, model.SourceLive, resp.DataSource)
}

func TestSearch_ObservedAttributesNotOverwritten(t *testing.T) {
	rec := model.BusinessRecord{ReviewCount: 500, Rating: 4.9}
	observed := 9999.0
	rec.MonthlyRevenue = &observed

	estimateAttributes(&rec)
	assert.Equal(t, 9999.0, *rec.MonthlyRevenue)
	assert.Empty(t, rec.RevenueBand)
	// The other two were missing, so the record is still marked estimated.
	assert.True(t, rec.Estimated)
	assert.NotNil(t, rec.YearsInBusiness)
	assert.NotNil(t, rec.EmployeeCount)
}

func TestNormalizeLocation(t *testing.T) {
	assert.Equal(t, "Tulsa OK, USA", normalizeLocation("  Tulsa   OK "))
	assert.Equal(t, "Tulsa, OK", normalizeLocation("Tulsa, OK"))
}

func TestSampleBusinesses_MixedSetCoversCategories(t *testing.T) {
	all := sampleBusinesses("")
	require.NotEmpty(t, all)

	seen := map[taxonomy.Category]bool{}
	for _, b := range all {
		seen[b.Category] = true
	}
	assert.Len(t, seen, len(taxonomy.Categories()))
}
