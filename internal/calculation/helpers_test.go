package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/taxgenius/regime-calculator/internal/domain"
	"github.com/taxgenius/regime-calculator/pkg/dateutil"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v int64) *decimal.Decimal {
	d := dec(v)
	return &d
}

func oldRegimeFixture() domain.OldRegimeRules {
	return domain.OldRegimeRules{
		Slabs: []domain.SlabRule{
			domain.UpTo(dec(250000), dec(0)),
			domain.Range(dec(250001), dec(500000), dec(5)),
			domain.Range(dec(500001), dec(1000000), dec(20)),
			domain.Above(dec(1000000), dec(30)),
		},
		Rebate: domain.RebateRule{Mode: domain.RebateFlat, Threshold: dec(500000), MaxRebate: decPtr(12500)},
		Surcharge: []domain.SurchargeBand{
			{Above: dec(5000000), Rate: dec(10)},
			{Above: dec(10000000), Rate: dec(15)},
			{Above: dec(20000000), Rate: dec(25)},
			{Above: dec(50000000), Rate: dec(37)},
		},
		Deductions: domain.OldRegimeLimits{
			StandardDeduction:   dec(50000),
			ProfessionalTaxMax:  dec(2500),
			HRABasicFraction:    decimal.RequireFromString("0.5"),
			HRARentOffset:       decimal.RequireFromString("0.1"),
			HRAMetroFraction:    decimal.RequireFromString("0.5"),
			HRANonMetroFraction: decimal.RequireFromString("0.4"),
			Section80C:          dec(150000),
			Section80D:          dec(25000),
			Section24:           dec(200000),
			Section80CCD1B:      dec(50000),
			Section80TTA:        dec(10000),
			Section80TTB:        dec(50000),
		},
	}
}

func newRegimeSurcharge() []domain.SurchargeBand {
	return []domain.SurchargeBand{
		{Above: dec(5000000), Rate: dec(10)},
		{Above: dec(10000000), Rate: dec(15)},
		{Above: dec(20000000), Rate: dec(25)},
	}
}

// rulesAY2026 mirrors the published AY2026-27 figures.
func rulesAY2026() domain.TaxYearRules {
	return domain.TaxYearRules{
		AssessmentYear: "AY2026-27",
		OldRegime:      oldRegimeFixture(),
		NewRegime: domain.NewRegimeRules{
			Slabs: []domain.SlabRule{
				domain.UpTo(dec(400000), dec(0)),
				domain.Range(dec(400001), dec(800000), dec(5)),
				domain.Range(dec(800001), dec(1200000), dec(10)),
				domain.Range(dec(1200001), dec(1600000), dec(15)),
				domain.Range(dec(1600001), dec(2000000), dec(20)),
				domain.Range(dec(2000001), dec(2400000), dec(25)),
				domain.Above(dec(2400000), dec(30)),
			},
			Rebate:     domain.RebateRule{Mode: domain.RebateMarginal, Threshold: dec(1200000), ReliefCeiling: dec(1275000)},
			Surcharge:  newRegimeSurcharge(),
			Deductions: domain.NewRegimeLimits{StandardDeduction: dec(75000), ProfessionalTaxMax: dec(2500)},
		},
		CessRate: dec(4),
	}
}

// rulesAY2025 mirrors the published AY2025-26 figures.
func rulesAY2025() domain.TaxYearRules {
	return domain.TaxYearRules{
		AssessmentYear: "AY2025-26",
		OldRegime:      oldRegimeFixture(),
		NewRegime: domain.NewRegimeRules{
			Slabs: []domain.SlabRule{
				domain.UpTo(dec(300000), dec(0)),
				domain.Range(dec(300001), dec(700000), dec(5)),
				domain.Range(dec(700001), dec(1000000), dec(10)),
				domain.Range(dec(1000001), dec(1200000), dec(15)),
				domain.Range(dec(1200001), dec(1500000), dec(20)),
				domain.Above(dec(1500000), dec(30)),
			},
			Rebate:     domain.RebateRule{Mode: domain.RebateMarginal, Threshold: dec(700000)},
			Surcharge:  newRegimeSurcharge(),
			Deductions: domain.NewRegimeLimits{StandardDeduction: dec(75000), ProfessionalTaxMax: dec(2500)},
		},
		CessRate: dec(4),
	}
}

// exampleInputs is the salaried metro taxpayer used across the golden tests.
func exampleInputs() domain.TaxInputs {
	return domain.TaxInputs{
		AnnualSalary:     dec(1100000),
		HRA:              dec(220000),
		RentPaid:         dec(180000),
		ProvidentFund:    dec(60000),
		LifeInsurance:    dec(30000),
		ELSS:             dec(60000),
		HomeLoanInterest: dec(180000),
		MedicalInsurance: dec(25000),
		EducationLoan:    dec(40000),
		NPS:              dec(50000),
		IsMetro:          true,
	}
}

func gstFixture() domain.GSTRules {
	return domain.GSTRules{
		ReformDate: dateutil.MustParseDate("2025-09-22"),
		Rates: map[domain.SupplyType]domain.GSTRatePair{
			domain.SupplyGoods:    {Old: dec(18), New: dec(5)},
			domain.SupplyServices: {Old: dec(18), New: dec(12)},
		},
	}
}

func mustCalculator(rules domain.TaxYearRules) *Calculator {
	c, err := NewCalculator(rules)
	if err != nil {
		panic(err)
	}
	return c
}
