package output

import (
	"bytes"
	"fmt"

	"github.com/taxgenius/regime-calculator/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.RegimeComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "TAX REGIME SUMMARY (%s)\n", results.AssessmentYear)
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Gross Income: %s\n", FormatCurrency(results.Old.GrossIncome))
	fmt.Fprintln(&buf)
	for _, r := range []domain.TaxResults{results.Old, results.New} {
		fmt.Fprintf(&buf, "%s: Taxable=%s Tax=%s Effective=%s\n",
			RegimeLabel(r.Regime),
			FormatCurrency(r.TaxableIncome),
			FormatCurrency(r.TotalTax),
			FormatPercentage(r.EffectiveRate),
		)
	}
	rec := AnalyzeComparison(results)
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Recommended: %s (saves %s / %s)\n", rec.Label, FormatCurrency(rec.Savings), FormatPercentage(rec.Percentage))
	return buf.Bytes(), nil
}
