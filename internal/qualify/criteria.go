// Package qualify scores a business record against configurable lending
// criteria. Two named strategies coexist and are deliberately not merged:
// the indicator strategy used for live search ranking, and the weighted
// strategy used for persisted prospect qualification. They carry different
// point models and different qualified thresholds.
package qualify

import (
	"github.com/rotisserie/eris"

	"github.com/lendstack/prospect-pipeline/internal/taxonomy"
)

// Criteria is the admin-editable qualification configuration. It is loaded
// from the configuration store at request time; last write wins.
type Criteria struct {
	MinMonthlyRevenue    float64                 `json:"min_monthly_revenue" yaml:"min_monthly_revenue" mapstructure:"min_monthly_revenue"`
	MinBusinessAgeMonths int                     `json:"min_business_age_months" yaml:"min_business_age_months" mapstructure:"min_business_age_months"`
	MinCreditScore       int                     `json:"min_credit_score" yaml:"min_credit_score" mapstructure:"min_credit_score"`
	AllowedTypes         []taxonomy.BusinessType `json:"allowed_types,omitempty" yaml:"allowed_types" mapstructure:"allowed_types"`
	USOnly               bool                    `json:"us_only" yaml:"us_only" mapstructure:"us_only"`
}

// Validate enforces the criteria invariants: all thresholds non-negative,
// and every allowed type known to the taxonomy.
func (c Criteria) Validate() error {
	if c.MinMonthlyRevenue < 0 {
		return eris.New("criteria: min_monthly_revenue must be non-negative")
	}
	if c.MinBusinessAgeMonths < 0 {
		return eris.New("criteria: min_business_age_months must be non-negative")
	}
	if c.MinCreditScore < 0 {
		return eris.New("criteria: min_credit_score must be non-negative")
	}
	for _, t := range c.AllowedTypes {
		if _, ok := taxonomy.TypeCategory(t); !ok {
			return eris.Errorf("criteria: unknown business type %q", t)
		}
	}
	return nil
}

// AllowsType reports whether the criteria permit a business type. An empty
// allowed set means category-restricted qualification is inactive and any
// known type passes.
func (c Criteria) AllowsType(t taxonomy.BusinessType) bool {
	if len(c.AllowedTypes) == 0 {
		_, ok := taxonomy.TypeCategory(t)
		return ok
	}
	for _, allowed := range c.AllowedTypes {
		if allowed == t {
			return true
		}
	}
	return false
}

// DefaultCriteria returns the stock lending criteria used when the
// configuration store has no saved row.
func DefaultCriteria() Criteria {
	return Criteria{
		MinMonthlyRevenue:    15000,
		MinBusinessAgeMonths: 12,
		MinCreditScore:       550,
		USOnly:               true,
	}
}
