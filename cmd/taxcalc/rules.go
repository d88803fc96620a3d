package main

import (
	"github.com/spf13/cobra"
	"github.com/taxgenius/regime-calculator/internal/config"
	"gopkg.in/yaml.v3"
)

func newRulesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and validate rule books",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered assessment years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, _, err := a.registry(a.rulesFile)
			if err != nil {
				return err
			}
			def := registry.Default()
			for _, y := range registry.Years() {
				marker := " "
				if y == def {
					marker = "*"
				}
				a.printf("%s %s\n", marker, y)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show [year]",
		Short: "Print a rule book as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, _, err := a.registry(a.rulesFile)
			if err != nil {
				return err
			}
			year := a.year
			if len(args) == 1 {
				year = args[0]
			}
			rules, err := registry.Lookup(year)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(rules)
			if err != nil {
				return err
			}
			_, err = a.out.Write(data)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate <rules.yaml>",
		Short: "Validate a rule file without applying it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rf, err := config.NewInputParser().LoadRulesFromFile(args[0])
			if err != nil {
				return err
			}
			a.printf("%s: %d rule book(s) valid\n", args[0], len(rf.RuleBooks))
			return nil
		},
	})
	return cmd
}

func newExampleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "example <inputs.yaml>",
		Short: "Write an example inputs file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			if err := parser.SaveInputs(parser.CreateExampleInputs(), args[0]); err != nil {
				return err
			}
			a.printf("wrote %s\n", args[0])
			return nil
		},
	}
}
