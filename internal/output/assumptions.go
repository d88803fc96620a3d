package output

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/taxgenius/regime-calculator/internal/domain"
)

// GenerateAssumptions lists the rule book parameters that drive a comparison.
func GenerateAssumptions(rules domain.TaxYearRules) []string {
	out := []string{
		fmt.Sprintf("Rule book: %s", rules.AssessmentYear),
		fmt.Sprintf("Old regime standard deduction: %s", FormatCurrency(rules.OldRegime.Deductions.StandardDeduction)),
		fmt.Sprintf("New regime standard deduction: %s", FormatCurrency(rules.NewRegime.Deductions.StandardDeduction)),
		rebateAssumption("Old", rules.OldRegime.Rebate),
		rebateAssumption("New", rules.NewRegime.Rebate),
		fmt.Sprintf("Health and education cess: %s of tax plus surcharge", FormatPercentage(rules.CessRate)),
	}
	if rules.Description != "" {
		out = append([]string{rules.Description}, out...)
	}
	return out
}

func rebateAssumption(regime string, r domain.RebateRule) string {
	switch r.Mode {
	case domain.RebateMarginal:
		if r.ReliefCeiling.IsZero() {
			return fmt.Sprintf("%s regime rebate: nil tax up to %s with marginal relief above it", regime, FormatCurrency(r.Threshold))
		}
		return fmt.Sprintf("%s regime rebate: nil tax up to %s with marginal relief to %s", regime, FormatCurrency(r.Threshold), FormatCurrency(r.ReliefCeiling))
	case domain.RebateFlat:
		limit := "the full tax"
		if r.MaxRebate != nil {
			limit = FormatCurrency(*r.MaxRebate)
		}
		return fmt.Sprintf("%s regime rebate: up to %s at or below %s", regime, limit, FormatCurrency(r.Threshold))
	default:
		return fmt.Sprintf("%s regime rebate: none", regime)
	}
}

var decimalHundred = decimal.NewFromInt(100)
