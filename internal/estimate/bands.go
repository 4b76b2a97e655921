// Package estimate derives plausible business attributes from indirect
// search signals (review count, star rating) when no observed values exist.
//
// All estimators return a band from a fixed enumerated set rather than a raw
// number, to avoid presenting false precision on an estimate.
package estimate

// RevenueBand is an estimated monthly revenue range.
type RevenueBand struct {
	Label        string  `json:"label"`
	LowerMonthly float64 `json:"lower_monthly"`
}

// YearsBand is an estimated years-in-business range.
type YearsBand struct {
	Label      string  `json:"label"`
	LowerYears float64 `json:"lower_years"`
}

// EmployeeBand is an estimated employee headcount range.
type EmployeeBand struct {
	Label          string `json:"label"`
	LowerEmployees int    `json:"lower_employees"`
}

// Revenue bands, ascending. The estimator only ever returns one of these.
var (
	Revenue15to25  = RevenueBand{"$15K-25K monthly", 15000}
	Revenue25to30  = RevenueBand{"$25K-30K monthly", 25000}
	Revenue30to40  = RevenueBand{"$30K-40K monthly", 30000}
	Revenue40to50  = RevenueBand{"$40K-50K monthly", 40000}
	Revenue50to100 = RevenueBand{"$50K-100K monthly", 50000}
)

// Years-in-business bands, ascending.
var (
	Years1     = YearsBand{"1 year", 1}
	Years1to2  = YearsBand{"1-2 years", 1}
	Years2to3  = YearsBand{"2-3 years", 2}
	Years3to4  = YearsBand{"3-4 years", 3}
	Years4to5  = YearsBand{"4-5 years", 4}
	Years5Plus = YearsBand{"5+ years", 5}
)

// Employee count bands, ascending.
var (
	Employees4to8   = EmployeeBand{"4-8 employees", 4}
	Employees8to12  = EmployeeBand{"8-12 employees", 8}
	Employees10to15 = EmployeeBand{"10-15 employees", 10}
	Employees12to20 = EmployeeBand{"12-20 employees", 12}
	Employees15to25 = EmployeeBand{"15-25 employees", 15}
)

// Revenue estimates a monthly revenue band from review count and rating.
// The weighted signal is reviews*0.1 + rating*5; negative inputs clamp to
// the lowest band.
func Revenue(reviewCount int, rating float64) RevenueBand {
	if reviewCount < 0 {
		reviewCount = 0
	}
	if rating < 0 {
		rating = 0
	}
	score := float64(reviewCount)*0.1 + rating*5

	switch {
	case score >= 50:
		return Revenue50to100
	case score >= 38:
		return Revenue40to50
	case score >= 26:
		return Revenue30to40
	case score >= 14:
		return Revenue25to30
	default:
		return Revenue15to25
	}
}

// Years estimates a years-in-business band from review count. The result is
// monotonically non-decreasing in reviewCount.
func Years(reviewCount int) YearsBand {
	switch {
	case reviewCount >= 200:
		return Years5Plus
	case reviewCount >= 100:
		return Years4to5
	case reviewCount >= 50:
		return Years3to4
	case reviewCount >= 25:
		return Years2to3
	case reviewCount >= 10:
		return Years1to2
	default:
		return Years1
	}
}

// Employees estimates a headcount band from review count. The result is
// monotonically non-decreasing in reviewCount.
func Employees(reviewCount int) EmployeeBand {
	switch {
	case reviewCount >= 180:
		return Employees15to25
	case reviewCount >= 90:
		return Employees12to20
	case reviewCount >= 40:
		return Employees10to15
	case reviewCount >= 15:
		return Employees8to12
	default:
		return Employees4to8
	}
}
