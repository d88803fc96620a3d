package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/taxgenius/regime-calculator/internal/domain"
)

// ApplyRelief applies the Section 87A rebate and marginal relief to slab tax.
//
// flat:     taxable <= threshold gives max(0, slabTax - maxRebate), or 0 without a cap.
// marginal: taxable <= threshold gives 0; above it tax is capped at the excess
// over the threshold, up to the relief ceiling when one is set.
//
// An empty mode leaves the slab tax unchanged.
func ApplyRelief(taxable, slabTax decimal.Decimal, rule domain.RebateRule) decimal.Decimal {
	switch rule.Mode {
	case domain.RebateFlat:
		if taxable.GreaterThan(rule.Threshold) {
			return slabTax
		}
		if rule.MaxRebate == nil {
			return decimal.Zero
		}
		return decimal.Max(decimal.Zero, slabTax.Sub(*rule.MaxRebate))

	case domain.RebateMarginal:
		if taxable.LessThanOrEqual(rule.Threshold) {
			return decimal.Zero
		}
		if !rule.ReliefCeiling.IsZero() && taxable.GreaterThan(rule.ReliefCeiling) {
			return slabTax
		}
		return decimal.Min(slabTax, taxable.Sub(rule.Threshold))
	}
	return slabTax
}

// rebateApplies reports whether the rebate rule had any effect: either income
// sits inside the rebate threshold or relief lowered the tax.
func rebateApplies(taxable, rebate decimal.Decimal, rule domain.RebateRule) bool {
	if rule.Mode == "" {
		return false
	}
	return taxable.LessThanOrEqual(rule.Threshold) || rebate.IsPositive()
}
