package domain

import (
	"github.com/shopspring/decimal"
)

// TaxInputs is the salaried taxpayer's annual data for one assessment year.
// All amounts are annual rupees; absent fields decode as zero.
type TaxInputs struct {
	AnnualSalary decimal.Decimal `yaml:"annual_salary" json:"annual_salary"`
	// BasicPlusDA overrides the basic salary estimate used by the HRA exemption.
	BasicPlusDA decimal.Decimal `yaml:"basic_plus_da,omitempty" json:"basic_plus_da,omitempty"`
	HRA         decimal.Decimal `yaml:"hra" json:"hra"`
	RentPaid    decimal.Decimal `yaml:"rent_paid" json:"rent_paid"`
	IsMetro     bool            `yaml:"is_metro" json:"is_metro"`

	// Section 80C components
	ProvidentFund decimal.Decimal `yaml:"provident_fund" json:"provident_fund"`
	LifeInsurance decimal.Decimal `yaml:"life_insurance" json:"life_insurance"`
	ELSS          decimal.Decimal `yaml:"elss" json:"elss"`

	HomeLoanInterest decimal.Decimal `yaml:"home_loan_interest" json:"home_loan_interest"` // Section 24
	MedicalInsurance decimal.Decimal `yaml:"medical_insurance" json:"medical_insurance"`   // Section 80D
	EducationLoan    decimal.Decimal `yaml:"education_loan" json:"education_loan"`         // Section 80E
	NPS              decimal.Decimal `yaml:"nps" json:"nps"`                               // Section 80CCD(1B)
	ProfessionalTax  decimal.Decimal `yaml:"professional_tax" json:"professional_tax"`
	EmployerNPS      decimal.Decimal `yaml:"employer_nps" json:"employer_nps"`         // Section 80CCD(2)
	AgniveerCorpus   decimal.Decimal `yaml:"agniveer_corpus" json:"agniveer_corpus"`   // Section 80CCH(2)
	Section80G       decimal.Decimal `yaml:"section_80g,omitempty" json:"section_80g,omitempty"`
	Section80TTA     decimal.Decimal `yaml:"section_80tta,omitempty" json:"section_80tta,omitempty"`
	Section80TTB     decimal.Decimal `yaml:"section_80ttb,omitempty" json:"section_80ttb,omitempty"`
}

// amountFields lists every money field with its wire name, in declaration order.
func (in *TaxInputs) amountFields() []struct {
	name  string
	value decimal.Decimal
} {
	return []struct {
		name  string
		value decimal.Decimal
	}{
		{"annual_salary", in.AnnualSalary},
		{"basic_plus_da", in.BasicPlusDA},
		{"hra", in.HRA},
		{"rent_paid", in.RentPaid},
		{"provident_fund", in.ProvidentFund},
		{"life_insurance", in.LifeInsurance},
		{"elss", in.ELSS},
		{"home_loan_interest", in.HomeLoanInterest},
		{"medical_insurance", in.MedicalInsurance},
		{"education_loan", in.EducationLoan},
		{"nps", in.NPS},
		{"professional_tax", in.ProfessionalTax},
		{"employer_nps", in.EmployerNPS},
		{"agniveer_corpus", in.AgniveerCorpus},
		{"section_80g", in.Section80G},
		{"section_80tta", in.Section80TTA},
		{"section_80ttb", in.Section80TTB},
	}
}

// Validate rejects negative amounts and a missing or zero salary.
func (in *TaxInputs) Validate() error {
	for _, f := range in.amountFields() {
		if f.value.IsNegative() {
			return &InputError{Field: f.name, Reason: "must not be negative"}
		}
	}
	if !in.AnnualSalary.IsPositive() {
		return &InputError{Field: "annual_salary", Reason: "must be greater than zero"}
	}
	return nil
}

// Section80CContributions returns the uncapped sum of the 80C components.
func (in *TaxInputs) Section80CContributions() decimal.Decimal {
	return in.ProvidentFund.Add(in.LifeInsurance).Add(in.ELSS)
}
