package domain

import (
	"github.com/shopspring/decimal"
)

// Regime identifies the personal income tax regime.
type Regime string

const (
	RegimeOld Regime = "old"
	RegimeNew Regime = "new"
)

// ParseRegime maps "old" or "new" to a Regime.
func ParseRegime(s string) (Regime, error) {
	switch Regime(s) {
	case RegimeOld, RegimeNew:
		return Regime(s), nil
	default:
		return "", &InputError{Field: "regime", Reason: "must be \"old\" or \"new\""}
	}
}

// TaxResults is the itemized outcome of one regime calculation.
// TotalTax = IncomeTax + Surcharge + Cess and NetIncome = GrossIncome - TotalTax.
type TaxResults struct {
	Regime         Regime          `json:"regime"`
	AssessmentYear string          `json:"assessment_year"`
	GrossIncome    decimal.Decimal `json:"gross_income"`

	// Deductions and exemptions; components a regime does not allow stay zero.
	StandardDeduction decimal.Decimal `json:"standard_deduction"`
	ProfessionalTax   decimal.Decimal `json:"professional_tax"`
	HRAExemption      decimal.Decimal `json:"hra_exemption"`
	Section80C        decimal.Decimal `json:"section_80c"`
	Section80D        decimal.Decimal `json:"section_80d"`
	Section24         decimal.Decimal `json:"section_24"`
	Section80E        decimal.Decimal `json:"section_80e"`
	Section80G        decimal.Decimal `json:"section_80g"`
	Section80TTA      decimal.Decimal `json:"section_80tta"`
	Section80TTB      decimal.Decimal `json:"section_80ttb"`
	Section80CCD1B    decimal.Decimal `json:"section_80ccd_1b"`
	Section80CCD2     decimal.Decimal `json:"section_80ccd_2"`
	Section80CCH2     decimal.Decimal `json:"section_80cch_2"`
	TotalDeductions   decimal.Decimal `json:"total_deductions"`

	TaxableIncome decimal.Decimal `json:"taxable_income"`
	SlabTax       decimal.Decimal `json:"slab_tax"`   // before rebate and relief
	Rebate        decimal.Decimal `json:"rebate"`     // SlabTax - IncomeTax
	IncomeTax     decimal.Decimal `json:"income_tax"` // after rebate and relief
	Surcharge     decimal.Decimal `json:"surcharge"`
	Cess          decimal.Decimal `json:"cess"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	NetIncome     decimal.Decimal `json:"net_income"`
	EffectiveRate decimal.Decimal `json:"effective_rate"` // percent of gross, 2 dp
	RebateApplied bool            `json:"rebate_applied"`
}

// RegimeComparison places both outcomes side by side.
// TaxDifference = Old.TotalTax - New.TotalTax; a positive value favors the new regime.
type RegimeComparison struct {
	AssessmentYear    string          `json:"assessment_year"`
	Old               TaxResults      `json:"old_regime"`
	New               TaxResults      `json:"new_regime"`
	TaxDifference     decimal.Decimal `json:"tax_difference"`
	RecommendedRegime Regime          `json:"recommended_regime"`
	AnnualSavings     decimal.Decimal `json:"annual_savings"`
	SavingsPercentage decimal.Decimal `json:"savings_percentage"` // percent of gross, 2 dp

	// Assumptions are rule book highlights attached for reports.
	Assumptions []string `json:"assumptions,omitempty"`
}

// Recommended returns the result of the recommended regime.
func (c *RegimeComparison) Recommended() *TaxResults {
	if c.RecommendedRegime == RegimeNew {
		return &c.New
	}
	return &c.Old
}
