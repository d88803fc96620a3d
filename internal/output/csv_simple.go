package output

import (
	"bytes"
	"encoding/csv"

	"github.com/taxgenius/regime-calculator/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per regime).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.RegimeComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"AssessmentYear", "Regime", "GrossIncome", "TotalDeductions", "TaxableIncome", "SlabTax", "Rebate", "IncomeTax", "Surcharge", "Cess", "TotalTax", "NetIncome", "EffectiveRate", "Recommended"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range []domain.TaxResults{results.Old, results.New} {
		row := []string{
			results.AssessmentYear,
			string(r.Regime),
			r.GrossIncome.StringFixed(2),
			r.TotalDeductions.StringFixed(2),
			r.TaxableIncome.StringFixed(2),
			r.SlabTax.StringFixed(2),
			r.Rebate.StringFixed(2),
			r.IncomeTax.StringFixed(2),
			r.Surcharge.StringFixed(2),
			r.Cess.StringFixed(2),
			r.TotalTax.StringFixed(2),
			r.NetIncome.StringFixed(2),
			r.EffectiveRate.StringFixed(2),
			boolToString(r.Regime == results.RecommendedRegime),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
