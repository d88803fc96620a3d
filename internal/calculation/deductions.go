package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/taxgenius/regime-calculator/internal/domain"
)

// OldRegimeDeductions itemizes every exemption and deduction the old regime allows.
type OldRegimeDeductions struct {
	StandardDeduction decimal.Decimal
	ProfessionalTax   decimal.Decimal
	HRAExemption      decimal.Decimal
	Section80C        decimal.Decimal
	Section80D        decimal.Decimal
	Section24         decimal.Decimal
	Section80E        decimal.Decimal
	Section80G        decimal.Decimal
	Section80TTA      decimal.Decimal
	Section80TTB      decimal.Decimal
	Section80CCD1B    decimal.Decimal
	Section80CCD2     decimal.Decimal
}

// Total sums all components.
func (d OldRegimeDeductions) Total() decimal.Decimal {
	return decimal.Sum(d.StandardDeduction,
		d.ProfessionalTax,
		d.HRAExemption,
		d.Section80C,
		d.Section80D,
		d.Section24,
		d.Section80E,
		d.Section80G,
		d.Section80TTA,
		d.Section80TTB,
		d.Section80CCD1B,
		d.Section80CCD2,
	)
}

// NewRegimeDeductions is the short list the new regime permits.
type NewRegimeDeductions struct {
	StandardDeduction decimal.Decimal
	ProfessionalTax   decimal.Decimal
	Section80CCD2     decimal.Decimal
	Section80CCH2     decimal.Decimal
}

// Total sums all components.
func (d NewRegimeDeductions) Total() decimal.Decimal {
	return decimal.Sum(d.StandardDeduction, d.ProfessionalTax, d.Section80CCD2, d.Section80CCH2)
}

// ResolveOldRegimeDeductions caps each claimed amount at its limit. Negative
// amounts are treated as zero.
func ResolveOldRegimeDeductions(in domain.TaxInputs, limits domain.OldRegimeLimits) OldRegimeDeductions {
	out := OldRegimeDeductions{
		StandardDeduction: limits.StandardDeduction,
		ProfessionalTax:   capAt(in.ProfessionalTax, limits.ProfessionalTaxMax),
		HRAExemption:      hraExemption(in, limits),
		Section80C:        capAt(in.Section80CContributions(), limits.Section80C),
		Section80D:        capAt(in.MedicalInsurance, limits.Section80D),
		Section24:         capAt(in.HomeLoanInterest, limits.Section24),
		Section80E:        nonNegative(in.EducationLoan),
		Section80TTA:      capAt(in.Section80TTA, limits.Section80TTA),
		Section80TTB:      capAt(in.Section80TTB, limits.Section80TTB),
		Section80CCD1B:    capAt(in.NPS, limits.Section80CCD1B),
		Section80CCD2:     nonNegative(in.EmployerNPS),
	}
	if limits.Section80G != nil {
		out.Section80G = capAt(in.Section80G, *limits.Section80G)
	} else {
		out.Section80G = nonNegative(in.Section80G)
	}
	return out
}

// ResolveNewRegimeDeductions applies the standard deduction, the professional tax
// cap and the employer NPS and Agniveer pass-throughs. Nothing else is allowed.
func ResolveNewRegimeDeductions(in domain.TaxInputs, limits domain.NewRegimeLimits) NewRegimeDeductions {
	return NewRegimeDeductions{
		StandardDeduction: limits.StandardDeduction,
		ProfessionalTax:   capAt(in.ProfessionalTax, limits.ProfessionalTaxMax),
		Section80CCD2:     nonNegative(in.EmployerNPS),
		Section80CCH2:     nonNegative(in.AgniveerCorpus),
	}
}

// hraExemption is max(0, min(hra, rent - offset*basic, metroFraction*basic)),
// zero unless both HRA and rent are positive. Basic salary falls back to a
// fraction of gross when basic+DA is not supplied.
func hraExemption(in domain.TaxInputs, limits domain.OldRegimeLimits) decimal.Decimal {
	if !in.HRA.IsPositive() || !in.RentPaid.IsPositive() {
		return decimal.Zero
	}
	basic := in.BasicPlusDA
	if !basic.IsPositive() {
		basic = in.AnnualSalary.Mul(limits.HRABasicFraction)
	}
	fraction := limits.HRANonMetroFraction
	if in.IsMetro {
		fraction = limits.HRAMetroFraction
	}
	rentExcess := in.RentPaid.Sub(basic.Mul(limits.HRARentOffset))
	return nonNegative(decimal.Min(in.HRA, rentExcess, basic.Mul(fraction)))
}

func capAt(amount, limit decimal.Decimal) decimal.Decimal {
	return decimal.Min(nonNegative(amount), nonNegative(limit))
}

func nonNegative(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
