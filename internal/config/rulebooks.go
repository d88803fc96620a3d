package config

import (
	"github.com/shopspring/decimal"
	"github.com/taxgenius/regime-calculator/internal/domain"
	"github.com/taxgenius/regime-calculator/pkg/dateutil"
)

// DefaultAssessmentYear is used when a request names no year.
const DefaultAssessmentYear = "AY2026-27"

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func dp(v int64) *decimal.Decimal {
	x := d(v)
	return &x
}

// oldRegime returns the old regime block, unchanged since AY2024-25.
func oldRegime() domain.OldRegimeRules {
	return domain.OldRegimeRules{
		Slabs: []domain.SlabRule{
			domain.UpTo(d(250000), d(0)),
			domain.Range(d(250001), d(500000), d(5)),
			domain.Range(d(500001), d(1000000), d(20)),
			domain.Above(d(1000000), d(30)),
		},
		Rebate: domain.RebateRule{Mode: domain.RebateFlat, Threshold: d(500000), MaxRebate: dp(12500)},
		Surcharge: []domain.SurchargeBand{
			{Above: d(5000000), Rate: d(10)},
			{Above: d(10000000), Rate: d(15)},
			{Above: d(20000000), Rate: d(25)},
			{Above: d(50000000), Rate: d(37)},
		},
		Deductions: domain.OldRegimeLimits{
			StandardDeduction:   d(50000),
			ProfessionalTaxMax:  d(2500),
			HRABasicFraction:    decimal.NewFromFloat(0.5),
			HRARentOffset:       decimal.NewFromFloat(0.1),
			HRAMetroFraction:    decimal.NewFromFloat(0.5),
			HRANonMetroFraction: decimal.NewFromFloat(0.4),
			Section80C:          d(150000),
			Section80D:          d(25000),
			Section24:           d(200000),
			Section80CCD1B:      d(50000),
			Section80TTA:        d(10000),
			Section80TTB:        d(50000),
		},
	}
}

// newRegimeSurcharge tops out at 25% from AY2024-25 onwards.
func newRegimeSurcharge() []domain.SurchargeBand {
	return []domain.SurchargeBand{
		{Above: d(5000000), Rate: d(10)},
		{Above: d(10000000), Rate: d(15)},
		{Above: d(20000000), Rate: d(25)},
	}
}

// BuiltInRuleBooks returns fresh copies of the published rule books.
func BuiltInRuleBooks() []domain.TaxYearRules {
	return []domain.TaxYearRules{
		{
			AssessmentYear: "AY2024-25",
			Description:    "Finance Act 2023 (FY 2023-24)",
			OldRegime:      oldRegime(),
			NewRegime: domain.NewRegimeRules{
				Slabs: []domain.SlabRule{
					domain.UpTo(d(300000), d(0)),
					domain.Range(d(300001), d(600000), d(5)),
					domain.Range(d(600001), d(900000), d(10)),
					domain.Range(d(900001), d(1200000), d(15)),
					domain.Range(d(1200001), d(1500000), d(20)),
					domain.Above(d(1500000), d(30)),
				},
				Rebate:     domain.RebateRule{Mode: domain.RebateMarginal, Threshold: d(700000)},
				Surcharge:  newRegimeSurcharge(),
				Deductions: domain.NewRegimeLimits{StandardDeduction: d(50000), ProfessionalTaxMax: d(2500)},
			},
			CessRate: d(4),
		},
		{
			AssessmentYear: "AY2025-26",
			Description:    "Finance (No. 2) Act 2024 (FY 2024-25)",
			OldRegime:      oldRegime(),
			NewRegime: domain.NewRegimeRules{
				Slabs: []domain.SlabRule{
					domain.UpTo(d(300000), d(0)),
					domain.Range(d(300001), d(700000), d(5)),
					domain.Range(d(700001), d(1000000), d(10)),
					domain.Range(d(1000001), d(1200000), d(15)),
					domain.Range(d(1200001), d(1500000), d(20)),
					domain.Above(d(1500000), d(30)),
				},
				Rebate:     domain.RebateRule{Mode: domain.RebateMarginal, Threshold: d(700000)},
				Surcharge:  newRegimeSurcharge(),
				Deductions: domain.NewRegimeLimits{StandardDeduction: d(75000), ProfessionalTaxMax: d(2500)},
			},
			CessRate: d(4),
		},
		{
			AssessmentYear: "AY2026-27",
			Description:    "Finance Act 2025 (FY 2025-26)",
			OldRegime:      oldRegime(),
			NewRegime: domain.NewRegimeRules{
				Slabs: []domain.SlabRule{
					domain.UpTo(d(400000), d(0)),
					domain.Range(d(400001), d(800000), d(5)),
					domain.Range(d(800001), d(1200000), d(10)),
					domain.Range(d(1200001), d(1600000), d(15)),
					domain.Range(d(1600001), d(2000000), d(20)),
					domain.Range(d(2000001), d(2400000), d(25)),
					domain.Above(d(2400000), d(30)),
				},
				Rebate:     domain.RebateRule{Mode: domain.RebateMarginal, Threshold: d(1200000), ReliefCeiling: d(1275000)},
				Surcharge:  newRegimeSurcharge(),
				Deductions: domain.NewRegimeLimits{StandardDeduction: d(75000), ProfessionalTaxMax: d(2500)},
			},
			CessRate: d(4),
		},
	}
}

// DefaultGSTRules returns the September 2025 rate rationalisation.
func DefaultGSTRules() domain.GSTRules {
	return domain.GSTRules{
		ReformDate: dateutil.NewDate(2025, 9, 22),
		Rates: map[domain.SupplyType]domain.GSTRatePair{
			domain.SupplyGoods:    {Old: d(18), New: d(5)},
			domain.SupplyServices: {Old: d(18), New: d(12)},
		},
	}
}
