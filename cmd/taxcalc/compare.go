package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/taxgenius/regime-calculator/internal/config"
	"github.com/taxgenius/regime-calculator/internal/domain"
	"github.com/taxgenius/regime-calculator/internal/output"
)

// loadInputs reads inputs from the single positional file or builds them
// from --salary.
func loadInputs(args []string, salary string) (domain.TaxInputs, error) {
	if len(args) == 1 {
		in, err := config.NewInputParser().LoadInputsFromFile(args[0])
		if err != nil {
			return domain.TaxInputs{}, err
		}
		return *in, nil
	}
	if salary == "" {
		return domain.TaxInputs{}, errors.New("provide an inputs file or --salary")
	}
	amount, err := decimal.NewFromString(salary)
	if err != nil {
		return domain.TaxInputs{}, &domain.InputError{Field: "salary", Reason: "must be a number"}
	}
	return domain.TaxInputs{AnnualSalary: amount}, nil
}

func newCompareCmd(a *app) *cobra.Command {
	var (
		format    string
		outputDir string
		salary    string
	)
	cmd := &cobra.Command{
		Use:   "compare [inputs.yaml]",
		Short: "Compare the old and new regimes and recommend the cheaper one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInputs(args, salary)
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			cmp, err := svc.Compare(context.Background(), a.year, in)
			if err != nil {
				return err
			}
			if rules, err := svc.Rules(cmp.AssessmentYear); err == nil {
				cmp.Assumptions = output.GenerateAssumptions(rules)
			}

			if outputDir != "" {
				files, err := output.GenerateReport(&cmp, format, outputDir)
				if err != nil {
					return err
				}
				for _, f := range files {
					a.printf("wrote %s\n", f)
				}
				return nil
			}
			return output.Print(a.out, &cmp, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", fmt.Sprintf("output format: %s", strings.Join(output.AvailableFormatterNames(), ", ")))
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "write a timestamped report file to this directory instead of stdout")
	cmd.Flags().StringVar(&salary, "salary", "", "annual salary, used when no inputs file is given")
	return cmd
}

func newRegimeCmd(a *app, regime domain.Regime) *cobra.Command {
	var (
		format string
		salary string
	)
	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s [inputs.yaml]", regime),
		Short: fmt.Sprintf("Compute tax under the %s regime only", regime),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInputs(args, salary)
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			res, err := svc.Calculate(context.Background(), a.year, regime, in)
			if err != nil {
				return err
			}
			switch output.NormalizeFormatName(format) {
			case "json":
				data, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return err
				}
				a.printf("%s\n", data)
			case "console", "console-lite":
				printRegime(a, res)
			default:
				return fmt.Errorf("%w: %q. Single regime output supports console and json", output.ErrUnsupportedFormat, format)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format: console or json")
	cmd.Flags().StringVar(&salary, "salary", "", "annual salary, used when no inputs file is given")
	return cmd
}

func printRegime(a *app, res domain.TaxResults) {
	a.printf("%s (%s)\n", strings.ToUpper(output.RegimeLabel(res.Regime)), res.AssessmentYear)
	a.printf("%s\n", strings.Repeat("=", 40))
	rows := []struct {
		label string
		value decimal.Decimal
	}{
		{"Gross Income", res.GrossIncome},
		{"Total Deductions", res.TotalDeductions},
		{"Taxable Income", res.TaxableIncome},
		{"Slab Tax", res.SlabTax},
		{"Rebate / Marginal Relief", res.Rebate},
		{"Surcharge", res.Surcharge},
		{"Cess", res.Cess},
		{"Total Tax", res.TotalTax},
		{"Net Income", res.NetIncome},
	}
	for _, r := range rows {
		a.printf("%-26s %14s\n", r.label, output.FormatCurrency(r.value))
	}
	a.printf("%-26s %14s\n", "Effective Rate", output.FormatPercentage(res.EffectiveRate))
}
