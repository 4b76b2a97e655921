package search

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/lendstack/prospect-pipeline/internal/classify"
	"github.com/lendstack/prospect-pipeline/internal/estimate"
	"github.com/lendstack/prospect-pipeline/internal/model"
	"github.com/lendstack/prospect-pipeline/internal/qualify"
	"github.com/lendstack/prospect-pipeline/internal/resilience"
	"github.com/lendstack/prospect-pipeline/internal/taxonomy"
)

// Config tunes the normalizer.
type Config struct {
	// MaxResults caps how many places are requested from the provider.
	MaxResults int
	// RateLimit is provider calls per second across this normalizer.
	RateLimit float64
}

// Normalizer turns raw external search hits into classified, scored,
// deduplicated business records.
type Normalizer struct {
	provider Provider
	criteria CriteriaSource
	limiter  *rate.Limiter
	cfg      Config
}

// NewNormalizer creates a Normalizer with the given collaborators.
func NewNormalizer(provider Provider, criteria CriteriaSource, cfg Config) *Normalizer {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 50
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 2
	}
	return &Normalizer{
		provider: provider,
		criteria: criteria,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		cfg:      cfg,
	}
}

// Search runs one end-to-end search. Input errors (empty location) surface;
// every external failure converts into a mock-fallback response so the
// caller always receives something displayable.
func (n *Normalizer) Search(ctx context.Context, req Request) (*Response, error) {
	log := zap.L().With(zap.String("location", req.Location), zap.String("category", req.Category))

	if strings.TrimSpace(req.Location) == "" {
		return nil, eris.New("search: location is required")
	}

	criteria, err := n.criteria.Criteria(ctx)
	if err != nil {
		log.Warn("search: criteria load failed, using defaults", zap.Error(err))
		criteria = qualify.DefaultCriteria()
	}

	// Unscoped "all industries" requests have no well-defined mandatory
	// keyword rule, so live classification is skipped entirely.
	if req.Category == "" || strings.EqualFold(req.Category, "all") {
		return n.mockResponse("", criteria,
			"Industry-scoped search required for live results; showing sample data."), nil
	}

	category, ok := taxonomy.ParseCategory(req.Category)
	if !ok {
		return nil, eris.Errorf("search: unsupported category %q", req.Category)
	}

	places, err := n.fetch(ctx, category, req)
	if err != nil {
		log.Warn("search: external source unavailable, falling back to sample data",
			zap.String("failure_kind", string(resilience.KindOf(err))),
			zap.Error(err),
		)
		return n.mockResponse(category, criteria, fallbackMessage(err)), nil
	}

	records := n.normalize(places, category, criteria)

	log.Info("search: live results",
		zap.Int("raw_hits", len(places)),
		zap.Int("classified", len(records)),
	)

	return &Response{
		Businesses:   records,
		TotalResults: len(records),
		DataSource:   model.SourceLive,
	}, nil
}

// fetch calls the provider, retrying exactly once with a lightly normalized
// location string. This is best-effort enrichment, not a reliability path:
// no backoff, no further attempts.
func (n *Normalizer) fetch(ctx context.Context, category taxonomy.Category, req Request) ([]RawPlace, error) {
	rule, _ := taxonomy.RuleFor(category)

	q := Query{
		Term:        rule.SearchTerm,
		Location:    req.Location,
		RadiusMiles: req.RadiusMiles,
		MaxResults:  n.cfg.MaxResults,
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "search: rate limit wait")
	}
	places, err := n.provider.Search(ctx, q)
	if err == nil {
		return places, nil
	}

	normalized := normalizeLocation(req.Location)
	if normalized == q.Location {
		return nil, err
	}

	q.Location = normalized
	if waitErr := n.limiter.Wait(ctx); waitErr != nil {
		return nil, eris.Wrap(waitErr, "search: rate limit wait")
	}
	return n.provider.Search(ctx, q)
}

// normalize classifies, estimates, scores, dedups, and ranks a raw batch.
// Classification rejections are expected and frequent; they drop silently.
func (n *Normalizer) normalize(places []RawPlace, category taxonomy.Category, criteria qualify.Criteria) []model.BusinessRecord {
	seen := make(map[string]bool, len(places))
	records := make([]model.BusinessRecord, 0, len(places))

	for _, p := range places {
		if p.PermanentlyClosed || p.TemporarilyClosed {
			continue
		}

		cls, err := classify.Classify(p.Title, p.Categories, category)
		if err != nil {
			if !classify.IsRejection(err) {
				zap.L().Debug("search: hit skipped", zap.String("title", p.Title), zap.Error(err))
			}
			continue
		}

		rec := model.BusinessRecord{
			ID:           uuid.New().String(),
			PlaceID:      p.PlaceID,
			Name:         p.Title,
			Address:      p.Address,
			Phone:        p.Phone,
			Website:      p.Website,
			BusinessType: cls.BusinessType,
			Category:     cls.Category,
			DisplayName:  cls.DisplayName,
			Rating:       p.Rating,
			ReviewCount:  p.ReviewCount,
		}
		estimateAttributes(&rec)

		if seen[rec.DedupKey()] {
			continue
		}
		seen[rec.DedupKey()] = true

		result := qualify.Score(rec, criteria, qualify.StrategyIndicator)
		rec.Qualification = &result

		records = append(records, rec)
	}

	// Rank by score descending; ties keep source order.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Qualification.Score > records[j].Qualification.Score
	})

	return records
}

// estimateAttributes fills missing financials from review signals. Observed
// values are never overwritten.
func estimateAttributes(rec *model.BusinessRecord) {
	if rec.MonthlyRevenue == nil {
		band := estimate.Revenue(rec.ReviewCount, rec.Rating)
		rev := band.LowerMonthly
		rec.MonthlyRevenue = &rev
		rec.RevenueBand = band.Label
		rec.Estimated = true
	}
	if rec.YearsInBusiness == nil {
		band := estimate.Years(rec.ReviewCount)
		years := band.LowerYears
		rec.YearsInBusiness = &years
		rec.YearsBand = band.Label
		rec.Estimated = true
	}
	if rec.EmployeeCount == nil {
		band := estimate.Employees(rec.ReviewCount)
		count := band.LowerEmployees
		rec.EmployeeCount = &count
		rec.EmployeeBand = band.Label
		rec.Estimated = true
	}
}

// normalizeLocation trims and collapses whitespace and appends a country
// hint when the string has no comma-separated region part.
func normalizeLocation(loc string) string {
	fields := strings.Fields(loc)
	normalized := strings.Join(fields, " ")
	if !strings.Contains(normalized, ",") {
		normalized += ", USA"
	}
	return normalized
}

// mockResponse builds the labeled fallback result set. The samples are
// scored with the live criteria so the display stays consistent.
func (n *Normalizer) mockResponse(category taxonomy.Category, criteria qualify.Criteria, message string) *Response {
	samples := sampleBusinesses(category)
	for i := range samples {
		estimateAttributes(&samples[i])
		result := qualify.Score(samples[i], criteria, qualify.StrategyIndicator)
		samples[i].Qualification = &result
	}
	return &Response{
		Businesses:   samples,
		TotalResults: len(samples),
		DataSource:   model.SourceMock,
		Message:      message,
	}
}

// fallbackMessage phrases a provider failure for the caller.
func fallbackMessage(err error) string {
	switch resilience.KindOf(err) {
	case resilience.KindAuth:
		return "Live search unavailable (authentication failed); showing sample data."
	case resilience.KindQuota:
		return "Live search unavailable (quota exhausted); showing sample data."
	default:
		return "Live search unavailable; showing sample data."
	}
}
