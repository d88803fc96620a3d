package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxgenius/regime-calculator/internal/domain"
)

func TestValidateRules(t *testing.T) {
	require.NoError(t, ValidateRules(rulesAY2026()))
	require.NoError(t, ValidateRules(rulesAY2025()))

	tests := []struct {
		name    string
		mutate  func(r *domain.TaxYearRules)
		section string
	}{
		{"bad year label", func(r *domain.TaxYearRules) { r.AssessmentYear = "next year" }, "assessment_year"},
		{"non canonical year", func(r *domain.TaxYearRules) { r.AssessmentYear = "2026-27" }, "assessment_year"},
		{"old slabs gap", func(r *domain.TaxYearRules) {
			r.OldRegime.Slabs[2] = domain.Range(dec(600000), dec(1000000), dec(20))
		}, "old_regime.slabs"},
		{"unknown rebate mode", func(r *domain.TaxYearRules) { r.NewRegime.Rebate.Mode = "partial" }, "new_regime.rebate"},
		{"ceiling below threshold", func(r *domain.TaxYearRules) { r.NewRegime.Rebate.ReliefCeiling = dec(1000000) }, "new_regime.rebate"},
		{"negative max rebate", func(r *domain.TaxYearRules) { r.OldRegime.Rebate.MaxRebate = decPtr(-1) }, "old_regime.rebate"},
		{"surcharge rate too high", func(r *domain.TaxYearRules) { r.OldRegime.Surcharge[0].Rate = dec(120) }, "old_regime.surcharge"},
		{"duplicate surcharge band", func(r *domain.TaxYearRules) {
			r.NewRegime.Surcharge = append(r.NewRegime.Surcharge, domain.SurchargeBand{Above: dec(5000000), Rate: dec(12)})
		}, "new_regime.surcharge"},
		{"negative cess", func(r *domain.TaxYearRules) { r.CessRate = dec(-4) }, "cess_rate"},
		{"negative limit", func(r *domain.TaxYearRules) { r.OldRegime.Deductions.Section80C = dec(-1) }, "old_regime.deductions.section_80c"},
		{"fraction above one", func(r *domain.TaxYearRules) { r.OldRegime.Deductions.HRAMetroFraction = dec(50) }, "old_regime.deductions.hra_metro_fraction"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := rulesAY2026()
			tt.mutate(&rules)
			err := ValidateRules(rules)
			var cfgErr *domain.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.section, cfgErr.Section)
		})
	}
}

func TestNopLoggerAndSlogLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Debugf("ignored %d", 1)
	l.Errorf("ignored")

	s := NewSlogLogger(nil)
	assert.NotNil(t, s.l)
}
