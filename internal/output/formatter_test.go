package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/taxgenius/regime-calculator/internal/domain"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// buildTestComparison mirrors a ₹60,00,000 salary with no deductions under AY2026-27.
func buildTestComparison() *domain.RegimeComparison {
	return &domain.RegimeComparison{
		AssessmentYear: "AY2026-27",
		Old: domain.TaxResults{
			Regime: domain.RegimeOld, AssessmentYear: "AY2026-27",
			GrossIncome: d(6000000), StandardDeduction: d(50000), TotalDeductions: d(50000),
			TaxableIncome: d(5950000), SlabTax: d(1597500), IncomeTax: d(1597500),
			Surcharge: d(159750), Cess: d(70290), TotalTax: d(1827540), NetIncome: d(4172460),
			EffectiveRate: decimal.RequireFromString("30.46"),
		},
		New: domain.TaxResults{
			Regime: domain.RegimeNew, AssessmentYear: "AY2026-27",
			GrossIncome: d(6000000), StandardDeduction: d(75000), TotalDeductions: d(75000),
			TaxableIncome: d(5925000), SlabTax: d(1357500), IncomeTax: d(1357500),
			Surcharge: d(135750), Cess: d(59730), TotalTax: d(1552980), NetIncome: d(4447020),
			EffectiveRate: decimal.RequireFromString("25.88"),
		},
		TaxDifference:     d(274560),
		RecommendedRegime: domain.RegimeNew,
		AnnualSavings:     d(274560),
		SavingsPercentage: decimal.RequireFromString("4.58"),
	}
}

func TestConsoleLiteFormatter(t *testing.T) {
	f := ConsoleFormatter{}
	out, err := f.Format(buildTestComparison())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	if !strings.Contains(content, "Recommended: New Regime (saves ₹2,74,560 / 4.58%)") {
		t.Fatalf("expected new regime recommendation, got: %s", content)
	}
	if !strings.Contains(content, "Old Regime: Taxable=₹59,50,000 Tax=₹18,27,540 Effective=30.46%") {
		t.Fatalf("expected old regime line, got: %s", content)
	}
}

func TestConsoleVerboseFormatter(t *testing.T) {
	results := buildTestComparison()
	results.Assumptions = []string{"Rule book: AY2026-27"}
	out, err := ConsoleVerboseFormatter{}.Format(results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{
		"DETAILED INCOME TAX REGIME COMPARISON (AY2026-27)",
		"• Rule book: AY2026-27",
		"Standard Deduction",
		"₹18,27,540",
		"• Choose the New Regime",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in verbose output:\n%s", want, content)
		}
	}
	// Components zero under both regimes are omitted.
	if strings.Contains(content, "Section 80C ") {
		t.Fatalf("unexpected zero row in output:\n%s", content)
	}
}

func TestCSVSummarizerRegimeOrder(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestComparison())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (header+2 rows), got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "AY2026-27,old,") || !strings.HasPrefix(lines[2], "AY2026-27,new,") {
		t.Fatalf("rows not in old, new order: %v", lines)
	}
}

func TestCSVDetailedExporter(t *testing.T) {
	out, err := CSVDetailedExporter{}.Format(buildTestComparison())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	if !strings.Contains(content, "Total Tax,1827540.00,1552980.00,-274560.00\n") {
		t.Fatalf("missing total tax row:\n%s", content)
	}
	if !strings.Contains(content, "Standard Deduction,50000.00,75000.00,25000.00\n") {
		t.Fatalf("missing standard deduction row:\n%s", content)
	}
}

func TestHTMLFormatter(t *testing.T) {
	results := buildTestComparison()
	results.Assumptions = []string{"Cess <4%>"}
	out, err := HTMLFormatter{}.Format(results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	if !strings.HasPrefix(content, "<!DOCTYPE html>") {
		t.Fatalf("expected html document, got: %s", content[:40])
	}
	for _, want := range []string{"Recommended: New Regime", "₹15,52,980", "Cess &lt;4%&gt;", `<tr class="total"><td>Total Tax</td>`} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in html output", want)
		}
	}
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestComparison())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{`"recommended_regime": "new"`, `"total_tax": "1827540"`, `"savings_percentage": "4.58"`} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %s in json output:\n%s", want, content)
		}
	}
}

func TestCSVSummaryGolden(t *testing.T) {
	data, err := CSVSummarizer{}.Format(buildTestComparison())
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	goldenPath := filepath.Join("testdata", "csv_summary.golden")
	if os.Getenv("UPDATE_GOLDEN") == "1" {
		if err := os.WriteFile(goldenPath, data, 0644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
	}
	golden, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	if string(golden) != string(data) {
		t.Fatalf("csv summary drift; run UPDATE_GOLDEN=1 to accept\n--- have ---\n%s\n--- want ---\n%s", string(data), string(golden))
	}
}

func TestGetFormatterByName(t *testing.T) {
	cases := map[string]string{
		"console":      "console",
		"verbose":      "console",
		" CSV ":        "csv",
		"csv-detailed": "detailed-csv",
		"lite":         "console-lite",
		"html-report":  "html",
		"json":         "json",
	}
	for in, want := range cases {
		f := GetFormatterByName(in)
		if f == nil {
			t.Fatalf("no formatter for %q", in)
		}
		if f.Name() != want {
			t.Fatalf("GetFormatterByName(%q) = %s, want %s", in, f.Name(), want)
		}
	}
	if GetFormatterByName("pdf") != nil {
		t.Fatalf("expected nil for unknown format")
	}
}

func TestWriteFormatted(t *testing.T) {
	nowFunc = func() time.Time { return time.Date(2025, 9, 22, 10, 30, 0, 0, time.UTC) }
	defer func() { nowFunc = time.Now }()

	dir := t.TempDir()
	ff := FormatterFunc{ID: "stub", F: func(*domain.RegimeComparison) ([]byte, error) { return []byte("ok"), nil }}
	name, err := WriteFormatted(ff, buildTestComparison(), dir+string(os.PathSeparator), "txt")
	if err != nil {
		t.Fatalf("WriteFormatted: %v", err)
	}
	if want := filepath.Join(dir, "tax_report_AY2026-27_20250922_103000.txt"); name != want {
		t.Fatalf("unexpected file name %s, want %s", name, want)
	}
	b, err := os.ReadFile(name)
	if err != nil || string(b) != "ok" {
		t.Fatalf("unexpected file content %q (%v)", b, err)
	}
}
