package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/taxgenius/regime-calculator/internal/domain"
)

// ConsoleVerboseFormatter renders the itemized side-by-side console report.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

// lineItem is one row of the side-by-side breakdown.
type lineItem struct {
	label    string
	old, new decimal.Decimal
}

// deductionItems lists every deduction component; rows zero under both
// regimes are dropped by the caller.
func deductionItems(results *domain.RegimeComparison) []lineItem {
	o, n := results.Old, results.New
	return []lineItem{
		{"  Standard Deduction", o.StandardDeduction, n.StandardDeduction},
		{"  Professional Tax", o.ProfessionalTax, n.ProfessionalTax},
		{"  HRA Exemption", o.HRAExemption, n.HRAExemption},
		{"  Section 80C", o.Section80C, n.Section80C},
		{"  Section 80D", o.Section80D, n.Section80D},
		{"  Section 24 (Home Loan)", o.Section24, n.Section24},
		{"  Section 80E", o.Section80E, n.Section80E},
		{"  Section 80G", o.Section80G, n.Section80G},
		{"  Section 80TTA", o.Section80TTA, n.Section80TTA},
		{"  Section 80TTB", o.Section80TTB, n.Section80TTB},
		{"  Section 80CCD(1B)", o.Section80CCD1B, n.Section80CCD1B},
		{"  Section 80CCD(2)", o.Section80CCD2, n.Section80CCD2},
		{"  Section 80CCH(2)", o.Section80CCH2, n.Section80CCH2},
	}
}

func (c ConsoleVerboseFormatter) Format(results *domain.RegimeComparison) ([]byte, error) {
	var buf bytes.Buffer
	o, n := results.Old, results.New

	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintf(&buf, "DETAILED INCOME TAX REGIME COMPARISON (%s)\n", results.AssessmentYear)
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf)

	if len(results.Assumptions) > 0 {
		fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
		for _, a := range results.Assumptions {
			fmt.Fprintf(&buf, "• %s\n", a)
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintf(&buf, "%-35s %15s %15s %15s\n", "COMPONENT", "OLD REGIME", "NEW REGIME", "DIFFERENCE")
	fmt.Fprintln(&buf, strings.Repeat("-", 83))
	cmpLine(&buf, "GROSS INCOME", o.GrossIncome, n.GrossIncome)
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "DEDUCTIONS & EXEMPTIONS:")
	for _, item := range deductionItems(results) {
		if item.old.IsZero() && item.new.IsZero() {
			continue
		}
		cmpLine(&buf, item.label, item.old, item.new)
	}
	fmt.Fprintln(&buf, strings.Repeat("-", 83))
	cmpLine(&buf, "TOTAL DEDUCTIONS", o.TotalDeductions, n.TotalDeductions)
	cmpLine(&buf, "TAXABLE INCOME", o.TaxableIncome, n.TaxableIncome)
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "TAX COMPUTATION:")
	cmpLine(&buf, "  Slab Tax", o.SlabTax, n.SlabTax)
	cmpLine(&buf, "  Rebate / Marginal Relief", o.Rebate, n.Rebate)
	cmpLine(&buf, "  Income Tax", o.IncomeTax, n.IncomeTax)
	cmpLine(&buf, "  Surcharge", o.Surcharge, n.Surcharge)
	cmpLine(&buf, "  Health & Education Cess", o.Cess, n.Cess)
	fmt.Fprintln(&buf, strings.Repeat("=", 83))
	cmpLine(&buf, "TOTAL TAX", o.TotalTax, n.TotalTax)
	cmpLine(&buf, "NET INCOME", o.NetIncome, n.NetIncome)
	cmpLine(&buf, "MONTHLY NET INCOME", o.NetIncome.Div(decimal.NewFromInt(12)), n.NetIncome.Div(decimal.NewFromInt(12)))
	fmt.Fprintf(&buf, "%-35s %15s %15s\n", "EFFECTIVE RATE", FormatPercentage(o.EffectiveRate), FormatPercentage(n.EffectiveRate))
	fmt.Fprintln(&buf)

	rec := AnalyzeComparison(results)
	fmt.Fprintln(&buf, "RECOMMENDATION:")
	fmt.Fprintf(&buf, "• Choose the %s\n", rec.Label)
	fmt.Fprintf(&buf, "• Annual savings: %s (%s of gross income)\n", FormatCurrency(rec.Savings), FormatPercentage(rec.Percentage))
	if o.RebateApplied {
		fmt.Fprintln(&buf, "• Section 87A rebate applies under the old regime")
	}
	if n.RebateApplied {
		fmt.Fprintln(&buf, "• Section 87A rebate applies under the new regime")
	}
	fmt.Fprintf(&buf, "• %s\n", rec.Reason)
	return buf.Bytes(), nil
}

// cmpLine prints one row with the new minus old difference.
func cmpLine(buf *bytes.Buffer, label string, oldAmt, newAmt decimal.Decimal) {
	diff := newAmt.Sub(oldAmt)
	fmt.Fprintf(buf, "%-35s %15s %15s %15s\n", label, FormatCurrency(oldAmt), FormatCurrency(newAmt), FormatCurrency(diff))
}
