package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/taxgenius/regime-calculator/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"pct":   FormatPercentage,
	"label": RegimeLabel,
}).Parse(htmlTemplateSource))

type htmlRow struct {
	Label    string
	Old, New string
	Total    bool
}

func (h HTMLFormatter) Format(results *domain.RegimeComparison) ([]byte, error) {
	var buf bytes.Buffer
	o, n := results.Old, results.New

	var rows []htmlRow
	add := func(label string, item lineItem, total bool) {
		rows = append(rows, htmlRow{Label: label, Old: FormatCurrency(item.old), New: FormatCurrency(item.new), Total: total})
	}
	add("Gross Income", lineItem{old: o.GrossIncome, new: n.GrossIncome}, false)
	for _, item := range deductionItems(results) {
		if item.old.IsZero() && item.new.IsZero() {
			continue
		}
		add(trimIndent(item.label), item, false)
	}
	add("Total Deductions", lineItem{old: o.TotalDeductions, new: n.TotalDeductions}, true)
	add("Taxable Income", lineItem{old: o.TaxableIncome, new: n.TaxableIncome}, true)
	add("Slab Tax", lineItem{old: o.SlabTax, new: n.SlabTax}, false)
	add("Rebate / Marginal Relief", lineItem{old: o.Rebate, new: n.Rebate}, false)
	add("Surcharge", lineItem{old: o.Surcharge, new: n.Surcharge}, false)
	add("Cess", lineItem{old: o.Cess, new: n.Cess}, false)
	add("Total Tax", lineItem{old: o.TotalTax, new: n.TotalTax}, true)
	add("Net Income", lineItem{old: o.NetIncome, new: n.NetIncome}, true)

	data := struct {
		*domain.RegimeComparison
		Recommendation Recommendation
		Rows           []htmlRow
	}{results, AnalyzeComparison(results), rows}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
