package prospect

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/lendstack/prospect-pipeline/internal/qualify"
)

// RequalifyResult summarizes a bulk re-scoring run.
type RequalifyResult struct {
	Total       int `json:"total"`
	Qualified   int `json:"qualified"`
	Unqualified int `json:"unqualified"`
	Changed     int `json:"changed"`
}

// RequalifyAll re-scores every stored prospect against the current criteria
// using the weighted strategy and persists the new results.
func RequalifyAll(ctx context.Context, store Store) (RequalifyResult, error) {
	criteria, err := store.Criteria(ctx)
	if err != nil {
		return RequalifyResult{}, eris.Wrap(err, "requalify: load criteria")
	}

	prospects, err := store.ListProspects(ctx, ListFilter{Limit: 10000})
	if err != nil {
		return RequalifyResult{}, eris.Wrap(err, "requalify: list prospects")
	}

	var result RequalifyResult
	for i := range prospects {
		p := &prospects[i]
		prev := false
		if p.Record.Qualification != nil {
			prev = p.Record.Qualification.Qualified
		}

		Requalify(p, criteria)

		if err := store.UpdateProspect(ctx, p); err != nil {
			return result, eris.Wrapf(err, "requalify: update prospect %s", p.ID)
		}

		result.Total++
		if p.Record.Qualification.Qualified {
			result.Qualified++
		} else {
			result.Unqualified++
		}
		if p.Record.Qualification.Qualified != prev {
			result.Changed++
		}
	}

	zap.L().Info("requalified prospects",
		zap.Int("total", result.Total),
		zap.Int("qualified", result.Qualified),
		zap.Int("changed", result.Changed))
	return result, nil
}

// Requalify re-scores a single prospect in place using the weighted strategy.
// A prospect whose credit score is known and below the minimum is marked
// unqualified regardless of its point total.
func Requalify(p *Prospect, criteria qualify.Criteria) {
	qr := qualify.Score(p.Record, criteria, qualify.StrategyWeighted)
	if p.CreditScore != nil && *p.CreditScore < criteria.MinCreditScore {
		qr.Qualified = false
	}
	p.Record.Qualification = &qr
}
