package qualify

import (
	"math"

	"github.com/lendstack/prospect-pipeline/internal/model"
	"github.com/lendstack/prospect-pipeline/internal/taxonomy"
)

// Strategy selects a scoring policy. The caller, not the scorer, decides
// which strategy applies to which workflow.
type Strategy string

const (
	// StrategyIndicator is used for live search ranking: four boolean
	// indicators worth 25 points each, qualified at 75.
	StrategyIndicator Strategy = "indicator"

	// StrategyWeighted is used for persisted prospect qualification:
	// a weighted point model capped at 100, qualified at 60.
	StrategyWeighted Strategy = "weighted"
)

// Qualified thresholds per strategy. These differ on purpose; see the two
// strategy definitions above.
const (
	indicatorThreshold = 75
	weightedThreshold  = 60
)

// highValueTypes are business types with the strongest lending profiles:
// recurring demand, licensed operators, steady cash flow.
var highValueTypes = map[taxonomy.BusinessType]bool{
	taxonomy.TypeDentalPractice:   true,
	taxonomy.TypeMedicalPractice:  true,
	taxonomy.TypeVeterinaryClinic: true,
	taxonomy.TypeUrgentCare:       true,
	taxonomy.TypeAutoRepair:       true,
	taxonomy.TypeAutoBody:         true,
	taxonomy.TypeHVAC:             true,
	taxonomy.TypePlumbing:         true,
	taxonomy.TypeElectrical:       true,
	taxonomy.TypeLawFirm:          true,
	taxonomy.TypeAccountingFirm:   true,
}

// mediumValueTypes are solid but more cyclical or competitive segments.
var mediumValueTypes = map[taxonomy.BusinessType]bool{
	taxonomy.TypeRestaurant:        true,
	taxonomy.TypePizzeria:          true,
	taxonomy.TypeHairSalon:         true,
	taxonomy.TypeDaySpa:            true,
	taxonomy.TypeFitnessGym:        true,
	taxonomy.TypeChiropractic:      true,
	taxonomy.TypeOptometryPractice: true,
	taxonomy.TypePhysicalTherapy:   true,
	taxonomy.TypeTireShop:          true,
	taxonomy.TypeTransmission:      true,
	taxonomy.TypeRoofing:           true,
	taxonomy.TypeLandscaping:       true,
	taxonomy.TypeRetailStore:       true,
	taxonomy.TypeInsuranceAgency:   true,
	taxonomy.TypeRealEstateAgency:  true,
}

// Score evaluates a record against the criteria under the named strategy.
// It is pure and total: missing attributes score the lowest tier, never an
// error. Unknown strategies fall back to the indicator policy.
func Score(rec model.BusinessRecord, c Criteria, s Strategy) model.QualificationResult {
	switch s {
	case StrategyWeighted:
		return scoreWeighted(rec, c)
	default:
		return scoreIndicator(rec, c)
	}
}

// scoreIndicator computes the four-indicator policy: each indicator is worth
// 25 points, so the score is always a multiple of 25.
func scoreIndicator(rec model.BusinessRecord, c Criteria) model.QualificationResult {
	ind := model.Indicators{
		RevenueQualified:    rec.MonthlyRevenue != nil && *rec.MonthlyRevenue >= c.MinMonthlyRevenue,
		ExperienceQualified: rec.YearsInBusiness != nil && *rec.YearsInBusiness*12 >= float64(c.MinBusinessAgeMonths),
		LocationQualified:   locationQualifies(rec.Address, c),
		IndustryQualified:   c.AllowsType(rec.BusinessType) && typeInCategory(rec),
	}

	count := 0
	for _, ok := range []bool{ind.RevenueQualified, ind.ExperienceQualified, ind.LocationQualified, ind.IndustryQualified} {
		if ok {
			count++
		}
	}
	score := int(math.Round(100 * float64(count) / 4))

	return model.QualificationResult{
		Strategy:   string(StrategyIndicator),
		Indicators: ind,
		Score:      score,
		Qualified:  score >= indicatorThreshold,
	}
}

// scoreWeighted computes the prospect-qualification policy: revenue up to 30,
// years in business up to 25, business type up to 20, employee count up to
// 15, US geography a flat 10. Capped at 100.
func scoreWeighted(rec model.BusinessRecord, c Criteria) model.QualificationResult {
	score := 0

	if rec.MonthlyRevenue != nil {
		switch rev := *rec.MonthlyRevenue; {
		case rev >= 17000:
			score += 30
		case rev >= 10000:
			score += 20
		case rev >= 5000:
			score += 10
		}
	}

	if rec.YearsInBusiness != nil {
		switch years := *rec.YearsInBusiness; {
		case years >= 2:
			score += 25
		case years >= 1:
			score += 15
		case years >= 0.5:
			score += 10
		}
	}

	switch {
	case highValueTypes[rec.BusinessType]:
		score += 20
	case mediumValueTypes[rec.BusinessType]:
		score += 15
	default:
		if _, known := taxonomy.TypeCategory(rec.BusinessType); known {
			score += 10
		}
	}

	if rec.EmployeeCount != nil {
		switch n := *rec.EmployeeCount; {
		case n >= 10:
			score += 15
		case n >= 5:
			score += 10
		case n >= 2:
			score += 5
		}
	}

	usBased := USFormattedAddress(rec.Address)
	if usBased {
		score += 10
	}

	if score > 100 {
		score = 100
	}

	// The indicator breakdown is reported for the weighted strategy too so
	// dashboards can show which checks a prospect cleared.
	ind := model.Indicators{
		RevenueQualified:    rec.MonthlyRevenue != nil && *rec.MonthlyRevenue >= c.MinMonthlyRevenue,
		ExperienceQualified: rec.YearsInBusiness != nil && *rec.YearsInBusiness*12 >= float64(c.MinBusinessAgeMonths),
		LocationQualified:   usBased,
		IndustryQualified:   c.AllowsType(rec.BusinessType) && typeInCategory(rec),
	}

	return model.QualificationResult{
		Strategy:   string(StrategyWeighted),
		Indicators: ind,
		Score:      score,
		Qualified:  score >= weightedThreshold,
	}
}

// locationQualifies applies the criteria's geography predicate. When USOnly
// is off, any address passes.
func locationQualifies(addr string, c Criteria) bool {
	if !c.USOnly {
		return true
	}
	return USFormattedAddress(addr)
}

// typeInCategory reports whether the record's type belongs to its declared
// category. The classifier enforces this at classification time; the check
// here guards records that arrived through other paths (manual entry).
func typeInCategory(rec model.BusinessRecord) bool {
	parent, ok := taxonomy.TypeCategory(rec.BusinessType)
	return ok && parent == rec.Category
}
