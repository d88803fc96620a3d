package output

import (
	"bytes"
	"encoding/csv"

	"github.com/taxgenius/regime-calculator/internal/domain"
)

// CSVDetailedExporter lists every line item of both regimes, one component per row.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.RegimeComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Component", "OldRegime", "NewRegime", "Difference"}); err != nil {
		return nil, err
	}
	o, n := results.Old, results.New
	items := []lineItem{{"Gross Income", o.GrossIncome, n.GrossIncome}}
	for _, item := range deductionItems(results) {
		item.label = trimIndent(item.label)
		items = append(items, item)
	}
	items = append(items,
		lineItem{"Total Deductions", o.TotalDeductions, n.TotalDeductions},
		lineItem{"Taxable Income", o.TaxableIncome, n.TaxableIncome},
		lineItem{"Slab Tax", o.SlabTax, n.SlabTax},
		lineItem{"Rebate", o.Rebate, n.Rebate},
		lineItem{"Income Tax", o.IncomeTax, n.IncomeTax},
		lineItem{"Surcharge", o.Surcharge, n.Surcharge},
		lineItem{"Cess", o.Cess, n.Cess},
		lineItem{"Total Tax", o.TotalTax, n.TotalTax},
		lineItem{"Net Income", o.NetIncome, n.NetIncome},
		lineItem{"Effective Rate", o.EffectiveRate, n.EffectiveRate},
	)
	for _, item := range items {
		row := []string{item.label, item.old.StringFixed(2), item.new.StringFixed(2), item.new.Sub(item.old).StringFixed(2)}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func trimIndent(s string) string {
	for len(s) > 0 && s[0] == ' ' {
		s = s[1:]
	}
	return s
}
