package output

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/taxgenius/regime-calculator/internal/domain"
)

// Recommendation summarizes which regime to pick and why.
type Recommendation struct {
	Regime     domain.Regime
	Label      string
	TotalTax   decimal.Decimal
	Savings    decimal.Decimal
	Percentage decimal.Decimal
	Reason     string
}

// RegimeLabel is the display name of a regime.
func RegimeLabel(r domain.Regime) string {
	if r == domain.RegimeNew {
		return "New Regime"
	}
	return "Old Regime"
}

// AnalyzeComparison explains the recommendation carried by results.
func AnalyzeComparison(results *domain.RegimeComparison) Recommendation {
	rec := Recommendation{
		Regime:     results.RecommendedRegime,
		Label:      RegimeLabel(results.RecommendedRegime),
		TotalTax:   results.Recommended().TotalTax,
		Savings:    results.AnnualSavings,
		Percentage: results.SavingsPercentage,
	}
	switch {
	case results.TaxDifference.IsZero():
		rec.Reason = "Both regimes cost the same; the old regime keeps your deductions on record."
	case results.RecommendedRegime == domain.RegimeNew:
		rec.Reason = fmt.Sprintf("Lower slab rates outweigh your %s of old regime deductions.", FormatCurrency(results.Old.TotalDeductions))
	default:
		rec.Reason = fmt.Sprintf("Your %s of deductions outweigh the lower new regime slab rates.", FormatCurrency(results.Old.TotalDeductions))
	}
	return rec
}
