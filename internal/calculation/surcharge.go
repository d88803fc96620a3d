package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/taxgenius/regime-calculator/internal/domain"
)

// ComputeSurcharge applies the rate of the highest band whose threshold the
// taxable income strictly exceeds. Income at or below every threshold pays none.
func ComputeSurcharge(incomeTax, taxable decimal.Decimal, bands []domain.SurchargeBand) decimal.Decimal {
	var (
		found bool
		best  domain.SurchargeBand
	)
	for _, band := range bands {
		if !taxable.GreaterThan(band.Above) {
			continue
		}
		if !found || band.Above.GreaterThan(best.Above) {
			best, found = band, true
		}
	}
	if !found {
		return decimal.Zero
	}
	return incomeTax.Mul(best.Rate).Div(hundred)
}

// ComputeCess returns the health and education cess on tax plus surcharge.
func ComputeCess(taxPlusSurcharge, ratePercent decimal.Decimal) decimal.Decimal {
	return taxPlusSurcharge.Mul(ratePercent).Div(hundred)
}
