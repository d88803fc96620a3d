package calculation

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxgenius/regime-calculator/internal/domain"
)

func assertTotals(t *testing.T, res domain.TaxResults) {
	t.Helper()
	assert.True(t, res.TotalTax.Equal(res.IncomeTax.Add(res.Surcharge).Add(res.Cess)), "total = income tax + surcharge + cess")
	assert.True(t, res.NetIncome.Equal(res.GrossIncome.Sub(res.TotalTax)), "net = gross - total")
	assert.False(t, res.TaxableIncome.IsNegative(), "taxable is never negative")
	assert.True(t, res.Rebate.Equal(res.SlabTax.Sub(res.IncomeTax)))
}

func TestNewCalculator_RejectsBadRules(t *testing.T) {
	rules := rulesAY2026()
	rules.NewRegime.Slabs = rules.NewRegime.Slabs[:3]

	_, err := NewCalculator(rules)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), "new_regime.slabs")
}

func TestNewCalculator_CopiesRules(t *testing.T) {
	rules := rulesAY2026()
	calc := mustCalculator(rules)

	rules.NewRegime.Slabs[1] = domain.Range(dec(400000), dec(800000), dec(99))
	*rules.OldRegime.Rebate.MaxRebate = dec(0)

	res, err := calc.CalculateNewRegimeTax(domain.TaxInputs{AnnualSalary: dec(1675000)})
	require.NoError(t, err)
	assert.Equal(t, "120000", res.SlabTax.String(), "mutating the caller's rules must not leak in")

	got := calc.Rules()
	assert.True(t, got.OldRegime.Rebate.MaxRebate.Equal(dec(12500)))
}

func TestCalculateOldRegimeTax_Example(t *testing.T) {
	calc := mustCalculator(rulesAY2026())

	res, err := calc.CalculateOldRegimeTax(exampleInputs())
	require.NoError(t, err)

	assert.Equal(t, domain.RegimeOld, res.Regime)
	assert.Equal(t, "AY2026-27", res.AssessmentYear)
	assert.Equal(t, "620000", res.TotalDeductions.String())
	assert.Equal(t, "480000", res.TaxableIncome.String())
	assert.Equal(t, "11500", res.SlabTax.String())
	assert.Equal(t, "11500", res.Rebate.String())
	assert.True(t, res.IncomeTax.IsZero())
	assert.True(t, res.TotalTax.IsZero())
	assert.True(t, res.RebateApplied)
	assert.True(t, res.TotalTax.LessThan(ComputeSlabTax(res.GrossIncome, calc.oldSlabs)))
	assertTotals(t, res)
}

func TestCalculateNewRegimeTax_Example(t *testing.T) {
	calc := mustCalculator(rulesAY2026())

	res, err := calc.CalculateNewRegimeTax(exampleInputs())
	require.NoError(t, err)

	assert.Equal(t, "75000", res.TotalDeductions.String())
	assert.Equal(t, "1025000", res.TaxableIncome.String())
	assert.Equal(t, "42500", res.SlabTax.String())
	assert.True(t, res.TotalTax.IsZero())
	assert.True(t, res.RebateApplied)

	for name, v := range map[string]decimal.Decimal{
		"hra": res.HRAExemption, "80c": res.Section80C, "80d": res.Section80D,
		"24": res.Section24, "80e": res.Section80E, "80ccd1b": res.Section80CCD1B,
	} {
		assert.True(t, v.IsZero(), "%s must not appear in the new regime", name)
	}
	assertTotals(t, res)
}

func TestCalculateTax_GoldenFigures(t *testing.T) {
	tests := []struct {
		name        string
		rules       domain.TaxYearRules
		regime      domain.Regime
		gross       int64
		slabTax     string
		incomeTax   string
		surcharge   string
		cess        string
		totalTax    string
		effective   string
		description string
	}{
		{
			name: "new regime marginal relief", rules: rulesAY2026(), regime: domain.RegimeNew,
			gross: 1285000, slabTax: "61500", incomeTax: "10000", surcharge: "0", cess: "400", totalTax: "10400", effective: "0.81",
			description: "taxable 12.1L is capped at the 10000 excess over 12L",
		},
		{
			name: "new regime at the rebate threshold", rules: rulesAY2026(), regime: domain.RegimeNew,
			gross: 1275000, slabTax: "60000", incomeTax: "0", surcharge: "0", cess: "0", totalTax: "0", effective: "0",
			description: "taxable exactly 12L owes nothing",
		},
		{
			name: "new regime relief no longer binding", rules: rulesAY2026(), regime: domain.RegimeNew,
			gross: 1350000, slabTax: "71250", incomeTax: "71250", surcharge: "0", cess: "2850", totalTax: "74100", effective: "5.49",
			description: "taxable 12.75L: slab tax is below the excess",
		},
		{
			name: "new regime high income", rules: rulesAY2026(), regime: domain.RegimeNew,
			gross: 6000000, slabTax: "1357500", incomeTax: "1357500", surcharge: "135750", cess: "59730", totalTax: "1552980", effective: "25.88",
			description: "10% surcharge above 50L",
		},
		{
			name: "old regime high income", rules: rulesAY2026(), regime: domain.RegimeOld,
			gross: 6000000, slabTax: "1597500", incomeTax: "1597500", surcharge: "159750", cess: "70290", totalTax: "1827540", effective: "30.46",
			description: "standard deduction only",
		},
		{
			name: "old regime one rupee over the rebate", rules: rulesAY2026(), regime: domain.RegimeOld,
			gross: 550001, slabTax: "12500.2", incomeTax: "12500.2", surcharge: "0", cess: "500.008", totalTax: "13000.208", effective: "2.36",
			description: "no rebate above 5L taxable",
		},
		{
			name: "AY2025-26 new regime", rules: rulesAY2025(), regime: domain.RegimeNew,
			gross: 1100000, slabTax: "53750", incomeTax: "53750", surcharge: "0", cess: "2150", totalTax: "55900", effective: "5.08",
			description: "3/7/10/12/15 slabs",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := mustCalculator(tt.rules)
			res, err := calc.Calculate(tt.regime, domain.TaxInputs{AnnualSalary: dec(tt.gross)})
			require.NoError(t, err)

			assert.Equal(t, tt.slabTax, res.SlabTax.String(), tt.description)
			assert.Equal(t, tt.incomeTax, res.IncomeTax.String(), tt.description)
			assert.Equal(t, tt.surcharge, res.Surcharge.String(), tt.description)
			assert.Equal(t, tt.cess, res.Cess.String(), tt.description)
			assert.Equal(t, tt.totalTax, res.TotalTax.String(), tt.description)
			assert.Equal(t, tt.effective, res.EffectiveRate.String(), tt.description)
			assertTotals(t, res)
		})
	}
}

func TestCalculateTax_TopSurchargePerRegime(t *testing.T) {
	calc := mustCalculator(rulesAY2026())

	oldRes, err := calc.CalculateOldRegimeTax(domain.TaxInputs{AnnualSalary: dec(60050000)})
	require.NoError(t, err)
	assert.True(t, oldRes.Surcharge.Equal(oldRes.IncomeTax.Mul(decimal.RequireFromString("0.37"))))

	newRes, err := calc.CalculateNewRegimeTax(domain.TaxInputs{AnnualSalary: dec(60075000)})
	require.NoError(t, err)
	assert.True(t, newRes.Surcharge.Equal(newRes.IncomeTax.Mul(decimal.RequireFromString("0.25"))))
}

func TestCalculateTax_DeductionsAboveGross(t *testing.T) {
	calc := mustCalculator(rulesAY2026())
	in := domain.TaxInputs{
		AnnualSalary:  dec(100000),
		ProvidentFund: dec(150000),
		EducationLoan: dec(200000),
	}
	res, err := calc.CalculateOldRegimeTax(in)
	require.NoError(t, err)
	assert.True(t, res.TaxableIncome.IsZero())
	assert.True(t, res.TotalTax.IsZero())
	assertTotals(t, res)
}

func TestCalculateTax_InvalidInput(t *testing.T) {
	calc := mustCalculator(rulesAY2026())

	_, err := calc.CalculateOldRegimeTax(domain.TaxInputs{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = calc.CalculateNewRegimeTax(domain.TaxInputs{AnnualSalary: dec(500000), HRA: dec(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = calc.Calculate("flat", domain.TaxInputs{AnnualSalary: dec(500000)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompareRegimes(t *testing.T) {
	tests := []struct {
		name        string
		rules       domain.TaxYearRules
		inputs      domain.TaxInputs
		difference  string
		recommended domain.Regime
		savings     string
		percentage  string
	}{
		{
			name:        "tie goes to old",
			rules:       rulesAY2026(),
			inputs:      exampleInputs(),
			difference:  "0",
			recommended: domain.RegimeOld,
			savings:     "0",
			percentage:  "0",
		},
		{
			name:        "old cheaper under AY2025-26",
			rules:       rulesAY2025(),
			inputs:      exampleInputs(),
			difference:  "-55900",
			recommended: domain.RegimeOld,
			savings:     "55900",
			percentage:  "5.08",
		},
		{
			name:        "new cheaper with no deductions",
			rules:       rulesAY2026(),
			inputs:      domain.TaxInputs{AnnualSalary: dec(6000000)},
			difference:  "274560",
			recommended: domain.RegimeNew,
			savings:     "274560",
			percentage:  "4.58",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmp, err := mustCalculator(tt.rules).CompareRegimes(tt.inputs)
			require.NoError(t, err)
			assert.Equal(t, tt.rules.AssessmentYear, cmp.AssessmentYear)
			assert.Equal(t, tt.difference, cmp.TaxDifference.String())
			assert.Equal(t, tt.recommended, cmp.RecommendedRegime)
			assert.Equal(t, tt.savings, cmp.AnnualSavings.String())
			assert.Equal(t, tt.percentage, cmp.SavingsPercentage.String())
			assert.True(t, cmp.TaxDifference.Equal(cmp.Old.TotalTax.Sub(cmp.New.TotalTax)))
		})
	}
}

func TestCompareRegimes_Deterministic(t *testing.T) {
	calc := mustCalculator(rulesAY2025())
	in := exampleInputs()

	first, err := calc.CompareRegimes(in)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			again, err := calc.CompareRegimes(in)
			assert.NoError(t, err)
			assert.Equal(t, first, again)
		}()
	}
	wg.Wait()
}

func TestCalculator_SetLogger(t *testing.T) {
	calc := mustCalculator(rulesAY2026())

	var buf bytes.Buffer
	calc.SetLogger(NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	_, err := calc.CompareRegimes(exampleInputs())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "recommend=old")

	calc.SetLogger(nil)
	assert.IsType(t, NopLogger{}, calc.Logger)
}
