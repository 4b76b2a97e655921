// Package classify decides whether a raw external search hit belongs to a
// requested industry category, and which canonical business type it maps to.
package classify

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/lendstack/prospect-pipeline/internal/taxonomy"
)

// Sentinel errors. ErrRejected covers the expected, frequent outcome of a
// hit failing category validation; callers drop those silently. The other
// two are input errors and surface to the caller.
var (
	ErrRejected            = eris.New("classify: rejected")
	ErrEmptyTitle          = eris.New("classify: empty title")
	ErrUnsupportedCategory = eris.New("classify: unsupported category")
)

// Result is a successful classification. The business type always belongs
// to the requested category; there is no partial or uncertain state.
type Result struct {
	BusinessType taxonomy.BusinessType
	Category     taxonomy.Category
	DisplayName  string
}

// Classify validates a raw hit against the requested category's keyword
// rules and maps it to a canonical business type. It is a pure function of
// its inputs: no I/O, fully deterministic.
//
// Rejections are returned as errors wrapping ErrRejected and carry the
// rejection reason for logging.
func Classify(rawTitle string, rawCategories []string, requested taxonomy.Category) (Result, error) {
	if strings.TrimSpace(rawTitle) == "" {
		return Result{}, ErrEmptyTitle
	}

	rule, ok := taxonomy.RuleFor(requested)
	if !ok {
		return Result{}, eris.Wrapf(ErrUnsupportedCategory, "category %q", requested)
	}

	blob := combinedText(rawTitle, rawCategories)

	// Global exclusions reject unconditionally, regardless of category.
	if kw := firstMatch(blob, taxonomy.GlobalExclusions); kw != "" {
		return Result{}, eris.Wrapf(ErrRejected, "global exclusion %q", kw)
	}

	// At least one mandatory category keyword must appear.
	if firstMatch(blob, rule.Mandatory) == "" {
		return Result{}, eris.Wrapf(ErrRejected, "no %s keyword", requested)
	}

	// Category-specific exclusions.
	if kw := firstMatch(blob, rule.Exclude); kw != "" {
		return Result{}, eris.Wrapf(ErrRejected, "category exclusion %q", kw)
	}

	// Ordered subtype scan; first match wins, else the category default.
	businessType := rule.Default
	for _, sub := range rule.Subtypes {
		if firstMatch(blob, sub.Keywords) != "" {
			businessType = sub.Type
			break
		}
	}

	// The returned type's declared parent category must equal the requested
	// category. A mismatch is an internal-consistency error in the rule
	// tables: log it and reject the hit, never return a mismatched record.
	parent, known := taxonomy.TypeCategory(businessType)
	if !known || parent != requested {
		zap.L().Error("classify: type/category mismatch",
			zap.String("business_type", string(businessType)),
			zap.String("requested_category", string(requested)),
			zap.String("title", rawTitle),
		)
		return Result{}, eris.Wrapf(ErrRejected, "type %s not in category %s", businessType, requested)
	}

	return Result{
		BusinessType: businessType,
		Category:     requested,
		DisplayName:  taxonomy.DisplayName(businessType),
	}, nil
}

// IsRejection reports whether err is an expected classification rejection
// rather than an input error.
func IsRejection(err error) bool {
	return eris.Is(err, ErrRejected)
}

// combinedText lowercases and joins the title and category tags into one
// searchable blob.
func combinedText(title string, categories []string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(title))
	for _, c := range categories {
		b.WriteString(" ")
		b.WriteString(strings.ToLower(c))
	}
	return b.String()
}

// firstMatch returns the first keyword contained in the (already lowercased)
// text, or "" if none match.
func firstMatch(text string, keywords []string) string {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return kw
		}
	}
	return ""
}
