package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/taxgenius/regime-calculator/internal/domain"
	"github.com/taxgenius/regime-calculator/pkg/dateutil"
)

// ValidateRules checks a rule book before any calculator is built from it.
func ValidateRules(rules domain.TaxYearRules) error {
	year, err := dateutil.NormalizeAssessmentYear(rules.AssessmentYear)
	if err != nil {
		return &domain.ConfigError{Section: "assessment_year", Reason: err.Error()}
	}
	if year != rules.AssessmentYear {
		return &domain.ConfigError{Section: "assessment_year", Reason: fmt.Sprintf("%q should be written %q", rules.AssessmentYear, year)}
	}

	if _, err := processSlabs("old_regime.slabs", rules.OldRegime.Slabs); err != nil {
		return err
	}
	if _, err := processSlabs("new_regime.slabs", rules.NewRegime.Slabs); err != nil {
		return err
	}
	if err := validateRebate("old_regime.rebate", rules.OldRegime.Rebate); err != nil {
		return err
	}
	if err := validateRebate("new_regime.rebate", rules.NewRegime.Rebate); err != nil {
		return err
	}
	if err := validateSurcharge("old_regime.surcharge", rules.OldRegime.Surcharge); err != nil {
		return err
	}
	if err := validateSurcharge("new_regime.surcharge", rules.NewRegime.Surcharge); err != nil {
		return err
	}
	if err := validatePercent("cess_rate", rules.CessRate); err != nil {
		return err
	}
	return validateLimits(rules)
}

func validateRebate(section string, rule domain.RebateRule) error {
	switch rule.Mode {
	case "", domain.RebateFlat, domain.RebateMarginal:
	default:
		return &domain.ConfigError{Section: section, Reason: fmt.Sprintf("unknown mode %q", rule.Mode)}
	}
	if rule.Threshold.IsNegative() {
		return &domain.ConfigError{Section: section, Reason: "threshold must not be negative"}
	}
	if rule.MaxRebate != nil && rule.MaxRebate.IsNegative() {
		return &domain.ConfigError{Section: section, Reason: "max_rebate must not be negative"}
	}
	if !rule.ReliefCeiling.IsZero() && !rule.ReliefCeiling.GreaterThan(rule.Threshold) {
		return &domain.ConfigError{Section: section, Reason: "relief_ceiling must exceed threshold"}
	}
	return nil
}

func validateSurcharge(section string, bands []domain.SurchargeBand) error {
	seen := make(map[string]bool, len(bands))
	for _, band := range bands {
		if band.Above.IsNegative() {
			return &domain.ConfigError{Section: section, Reason: "threshold must not be negative"}
		}
		key := band.Above.String()
		if seen[key] {
			return &domain.ConfigError{Section: section, Reason: fmt.Sprintf("duplicate threshold %s", key)}
		}
		seen[key] = true
		if err := validatePercent(section, band.Rate); err != nil {
			return err
		}
	}
	return nil
}

func validateLimits(rules domain.TaxYearRules) error {
	old := rules.OldRegime.Deductions
	amounts := map[string]decimal.Decimal{
		"old_regime.deductions.standard_deduction":   old.StandardDeduction,
		"old_regime.deductions.professional_tax_max": old.ProfessionalTaxMax,
		"old_regime.deductions.section_80c":          old.Section80C,
		"old_regime.deductions.section_80d":          old.Section80D,
		"old_regime.deductions.section_24":           old.Section24,
		"old_regime.deductions.section_80ccd_1b":     old.Section80CCD1B,
		"old_regime.deductions.section_80tta":        old.Section80TTA,
		"old_regime.deductions.section_80ttb":        old.Section80TTB,
		"new_regime.deductions.standard_deduction":   rules.NewRegime.Deductions.StandardDeduction,
		"new_regime.deductions.professional_tax_max": rules.NewRegime.Deductions.ProfessionalTaxMax,
	}
	if old.Section80G != nil {
		amounts["old_regime.deductions.section_80g"] = *old.Section80G
	}
	for section, v := range amounts {
		if v.IsNegative() {
			return &domain.ConfigError{Section: section, Reason: "must not be negative"}
		}
	}

	fractions := map[string]decimal.Decimal{
		"old_regime.deductions.hra_basic_fraction":     old.HRABasicFraction,
		"old_regime.deductions.hra_rent_offset":        old.HRARentOffset,
		"old_regime.deductions.hra_metro_fraction":     old.HRAMetroFraction,
		"old_regime.deductions.hra_non_metro_fraction": old.HRANonMetroFraction,
	}
	for section, v := range fractions {
		if v.IsNegative() || v.GreaterThan(one) {
			return &domain.ConfigError{Section: section, Reason: fmt.Sprintf("%s is outside 0-1", v)}
		}
	}
	return nil
}

func validatePercent(section string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(hundred) {
		return &domain.ConfigError{Section: section, Reason: fmt.Sprintf("rate %s is outside 0-100", v)}
	}
	return nil
}
