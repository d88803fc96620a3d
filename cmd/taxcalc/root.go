package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/taxgenius/regime-calculator/internal/calculation"
	"github.com/taxgenius/regime-calculator/internal/config"
	"github.com/taxgenius/regime-calculator/internal/domain"
	"github.com/taxgenius/regime-calculator/internal/service"
)

// app carries global flags and lazily built dependencies for subcommands.
type app struct {
	out    io.Writer
	errOut io.Writer

	rulesFile string
	year      string
	verbose   bool

	logger *slog.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:          "taxcalc",
		Short:        "Indian income tax regime comparison and GST time-of-supply calculator",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.rulesFile, "rules", "", "YAML file with additional or replacement rule books")
	root.PersistentFlags().StringVarP(&a.year, "year", "y", "", "assessment year, e.g. AY2026-27 (default: latest built-in)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log calculation steps to stderr")

	root.AddCommand(
		newCompareCmd(a),
		newRegimeCmd(a, domain.RegimeOld),
		newRegimeCmd(a, domain.RegimeNew),
		newGSTCmd(a),
		newRulesCmd(a),
		newExampleCmd(a),
		newServeCmd(a),
	)
	return root
}

// registry builds the rule registry, applying --rules when given. It also
// returns the GST rules to use.
func (a *app) registry(rulesFile string) (*config.RuleRegistry, domain.GSTRules, error) {
	registry := config.NewRuleRegistry()
	gst := config.DefaultGSTRules()
	if rulesFile == "" {
		return registry, gst, nil
	}

	parser := config.NewInputParser()
	rf, err := parser.LoadRulesFromFile(rulesFile)
	if err != nil {
		return nil, domain.GSTRules{}, err
	}
	if err := parser.ApplyRuleFile(registry, rf); err != nil {
		return nil, domain.GSTRules{}, err
	}
	if rf.GST != nil {
		gst = *rf.GST
	}
	a.logger.Debug("loaded rule file", "file", rulesFile, "rule_books", len(rf.RuleBooks), "default_year", registry.Default())
	return registry, gst, nil
}

// service assembles an uncached TaxService for one-shot CLI runs.
func (a *app) service() (*service.TaxService, error) {
	registry, gst, err := a.registry(a.rulesFile)
	if err != nil {
		return nil, err
	}
	svc, err := service.NewTaxService(registry, gst, nil)
	if err != nil {
		return nil, err
	}
	svc.SetLogger(calculation.NewSlogLogger(a.logger))
	return svc, nil
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
