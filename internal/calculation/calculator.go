package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/taxgenius/regime-calculator/internal/domain"
)

// Calculator computes both regimes for one assessment year. It holds a private
// copy of its rule book and is safe for concurrent use once configured.
type Calculator struct {
	rules    domain.TaxYearRules
	oldSlabs []domain.ProcessedSlab
	newSlabs []domain.ProcessedSlab
	Logger   Logger
}

// NewCalculator validates rules and pre-processes both slab tables.
func NewCalculator(rules domain.TaxYearRules) (*Calculator, error) {
	if err := ValidateRules(rules); err != nil {
		return nil, fmt.Errorf("rule book %s: %w", rules.AssessmentYear, err)
	}
	rules = rules.Clone()

	oldSlabs, err := processSlabs("old_regime.slabs", rules.OldRegime.Slabs)
	if err != nil {
		return nil, err
	}
	newSlabs, err := processSlabs("new_regime.slabs", rules.NewRegime.Slabs)
	if err != nil {
		return nil, err
	}
	return &Calculator{
		rules:    rules,
		oldSlabs: oldSlabs,
		newSlabs: newSlabs,
		Logger:   NopLogger{},
	}, nil
}

// SetLogger sets the logger for the calculator. If nil is provided, a no-op logger is used.
func (c *Calculator) SetLogger(l Logger) {
	if l == nil {
		c.Logger = NopLogger{}
		return
	}
	c.Logger = l
}

// AssessmentYear returns the year of the rule book in use.
func (c *Calculator) AssessmentYear() string {
	return c.rules.AssessmentYear
}

// Rules returns a copy of the rule book in use.
func (c *Calculator) Rules() domain.TaxYearRules {
	return c.rules.Clone()
}

// CalculateOldRegimeTax runs the old regime pipeline.
func (c *Calculator) CalculateOldRegimeTax(in domain.TaxInputs) (domain.TaxResults, error) {
	if err := in.Validate(); err != nil {
		return domain.TaxResults{}, err
	}
	regime := c.rules.OldRegime
	ded := ResolveOldRegimeDeductions(in, regime.Deductions)

	res := domain.TaxResults{
		Regime:            domain.RegimeOld,
		AssessmentYear:    c.rules.AssessmentYear,
		GrossIncome:       in.AnnualSalary,
		StandardDeduction: ded.StandardDeduction,
		ProfessionalTax:   ded.ProfessionalTax,
		HRAExemption:      ded.HRAExemption,
		Section80C:        ded.Section80C,
		Section80D:        ded.Section80D,
		Section24:         ded.Section24,
		Section80E:        ded.Section80E,
		Section80G:        ded.Section80G,
		Section80TTA:      ded.Section80TTA,
		Section80TTB:      ded.Section80TTB,
		Section80CCD1B:    ded.Section80CCD1B,
		Section80CCD2:     ded.Section80CCD2,
		TotalDeductions:   ded.Total(),
	}
	c.applyTax(&res, c.oldSlabs, regime.Rebate, regime.Surcharge)
	return res, nil
}

// CalculateNewRegimeTax runs the new regime pipeline.
func (c *Calculator) CalculateNewRegimeTax(in domain.TaxInputs) (domain.TaxResults, error) {
	if err := in.Validate(); err != nil {
		return domain.TaxResults{}, err
	}
	regime := c.rules.NewRegime
	ded := ResolveNewRegimeDeductions(in, regime.Deductions)

	res := domain.TaxResults{
		Regime:            domain.RegimeNew,
		AssessmentYear:    c.rules.AssessmentYear,
		GrossIncome:       in.AnnualSalary,
		StandardDeduction: ded.StandardDeduction,
		ProfessionalTax:   ded.ProfessionalTax,
		Section80CCD2:     ded.Section80CCD2,
		Section80CCH2:     ded.Section80CCH2,
		TotalDeductions:   ded.Total(),
	}
	c.applyTax(&res, c.newSlabs, regime.Rebate, regime.Surcharge)
	return res, nil
}

// Calculate dispatches on regime.
func (c *Calculator) Calculate(regime domain.Regime, in domain.TaxInputs) (domain.TaxResults, error) {
	switch regime {
	case domain.RegimeOld:
		return c.CalculateOldRegimeTax(in)
	case domain.RegimeNew:
		return c.CalculateNewRegimeTax(in)
	default:
		return domain.TaxResults{}, &domain.InputError{Field: "regime", Reason: fmt.Sprintf("unknown regime %q", regime)}
	}
}

// CompareRegimes runs both pipelines on the same inputs. The new regime is
// recommended only when it is strictly cheaper.
func (c *Calculator) CompareRegimes(in domain.TaxInputs) (domain.RegimeComparison, error) {
	oldRes, err := c.CalculateOldRegimeTax(in)
	if err != nil {
		return domain.RegimeComparison{}, err
	}
	newRes, err := c.CalculateNewRegimeTax(in)
	if err != nil {
		return domain.RegimeComparison{}, err
	}

	diff := oldRes.TotalTax.Sub(newRes.TotalTax)
	recommended := domain.RegimeOld
	if diff.IsPositive() {
		recommended = domain.RegimeNew
	}
	savings := diff.Abs()

	c.Logger.Debugf("%s: old=%s new=%s recommend=%s", c.rules.AssessmentYear, oldRes.TotalTax, newRes.TotalTax, recommended)

	return domain.RegimeComparison{
		AssessmentYear:    c.rules.AssessmentYear,
		Old:               oldRes,
		New:               newRes,
		TaxDifference:     diff,
		RecommendedRegime: recommended,
		AnnualSavings:     savings,
		SavingsPercentage: percentOf(savings, in.AnnualSalary),
	}, nil
}

// applyTax fills everything after deductions: taxable income, slab tax,
// relief, surcharge, cess and the totals.
func (c *Calculator) applyTax(res *domain.TaxResults, slabs []domain.ProcessedSlab, rebate domain.RebateRule, surcharge []domain.SurchargeBand) {
	res.TaxableIncome = decimal.Max(decimal.Zero, res.GrossIncome.Sub(res.TotalDeductions))
	res.SlabTax = ComputeSlabTax(res.TaxableIncome, slabs)
	res.IncomeTax = ApplyRelief(res.TaxableIncome, res.SlabTax, rebate)
	res.Rebate = res.SlabTax.Sub(res.IncomeTax)
	res.RebateApplied = rebateApplies(res.TaxableIncome, res.Rebate, rebate)
	res.Surcharge = ComputeSurcharge(res.IncomeTax, res.TaxableIncome, surcharge)
	res.Cess = ComputeCess(res.IncomeTax.Add(res.Surcharge), c.rules.CessRate)
	res.TotalTax = res.IncomeTax.Add(res.Surcharge).Add(res.Cess)
	res.NetIncome = res.GrossIncome.Sub(res.TotalTax)
	res.EffectiveRate = percentOf(res.TotalTax, res.GrossIncome)

	c.Logger.Debugf("%s %s regime: taxable=%s slab=%s relief=%s surcharge=%s cess=%s",
		c.rules.AssessmentYear, res.Regime, res.TaxableIncome, res.SlabTax, res.Rebate, res.Surcharge, res.Cess)
}

// percentOf returns part/whole*100 rounded to 2 dp, or 0 for a zero whole.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}
