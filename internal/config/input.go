package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/taxgenius/regime-calculator/internal/calculation"
	"github.com/taxgenius/regime-calculator/internal/domain"
	"gopkg.in/yaml.v3"
)

// RuleFile is the on-disk shape of an extra rule book file.
type RuleFile struct {
	DefaultYear string                `yaml:"default_year,omitempty" json:"default_year,omitempty"`
	RuleBooks   []domain.TaxYearRules `yaml:"rule_books" json:"rule_books"`
	GST         *domain.GSTRules      `yaml:"gst,omitempty" json:"gst,omitempty"`
}

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadInputsFromFile loads taxpayer inputs from a YAML or JSON file
func (ip *InputParser) LoadInputsFromFile(filename string) (*domain.TaxInputs, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var inputs domain.TaxInputs
	if err := yaml.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := inputs.Validate(); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	return &inputs, nil
}

// LoadTransactionFromFile loads a GST transaction from a YAML or JSON file
func (ip *InputParser) LoadTransactionFromFile(filename string) (*domain.GSTTransaction, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var tx domain.GSTTransaction
	if err := yaml.Unmarshal(data, &tx); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &tx, nil
}

// LoadRulesFromFile loads and validates additional rule books
func (ip *InputParser) LoadRulesFromFile(filename string) (*RuleFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var rf RuleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateRuleFile(&rf); err != nil {
		return nil, fmt.Errorf("rule file validation failed: %w", err)
	}

	return &rf, nil
}

// ValidateRuleFile validates every rule book and the GST block
func (ip *InputParser) ValidateRuleFile(rf *RuleFile) error {
	if len(rf.RuleBooks) == 0 && rf.GST == nil {
		return &domain.ConfigError{Section: "rule_books", Reason: "no rule books or gst rules provided"}
	}

	seen := make(map[string]bool, len(rf.RuleBooks))
	for i, book := range rf.RuleBooks {
		if err := calculation.ValidateRules(book); err != nil {
			return fmt.Errorf("rule book %d (%s) validation failed: %w", i, book.AssessmentYear, err)
		}
		if seen[book.AssessmentYear] {
			return &domain.ConfigError{Section: "rule_books", Reason: fmt.Sprintf("%s appears more than once", book.AssessmentYear)}
		}
		seen[book.AssessmentYear] = true
	}

	if rf.GST != nil {
		if _, err := calculation.NewGSTCalculator(*rf.GST); err != nil {
			return fmt.Errorf("gst rules validation failed: %w", err)
		}
	}
	return nil
}

// ApplyRuleFile registers each rule book and switches the default year when one is named
func (ip *InputParser) ApplyRuleFile(registry *RuleRegistry, rf *RuleFile) error {
	for _, book := range rf.RuleBooks {
		if err := registry.Register(book); err != nil {
			return err
		}
	}
	if rf.DefaultYear != "" {
		if err := registry.SetDefault(rf.DefaultYear); err != nil {
			return fmt.Errorf("default_year: %w", err)
		}
	}
	return nil
}

// CreateExampleInputs creates an example taxpayer: a metro resident with
// HRA, a home loan and the usual 80C investments
func (ip *InputParser) CreateExampleInputs() *domain.TaxInputs {
	return &domain.TaxInputs{
		AnnualSalary:     decimal.NewFromInt(1100000),
		HRA:              decimal.NewFromInt(220000),
		RentPaid:         decimal.NewFromInt(180000),
		IsMetro:          true,
		ProvidentFund:    decimal.NewFromInt(60000),
		LifeInsurance:    decimal.NewFromInt(30000),
		ELSS:             decimal.NewFromInt(60000),
		HomeLoanInterest: decimal.NewFromInt(180000),
		MedicalInsurance: decimal.NewFromInt(25000),
		EducationLoan:    decimal.NewFromInt(40000),
		NPS:              decimal.NewFromInt(50000),
	}
}

// SaveInputs writes inputs as YAML
func (ip *InputParser) SaveInputs(inputs *domain.TaxInputs, filename string) error {
	data, err := yaml.Marshal(inputs)
	if err != nil {
		return fmt.Errorf("failed to marshal inputs: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
