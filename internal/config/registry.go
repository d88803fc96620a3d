package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/taxgenius/regime-calculator/internal/calculation"
	"github.com/taxgenius/regime-calculator/internal/domain"
	"github.com/taxgenius/regime-calculator/pkg/dateutil"
)

// RuleRegistry holds validated rule books keyed by assessment year.
type RuleRegistry struct {
	mu          sync.RWMutex
	books       map[string]domain.TaxYearRules
	defaultYear string
}

// NewRuleRegistry returns a registry preloaded with BuiltInRuleBooks.
func NewRuleRegistry() *RuleRegistry {
	r := &RuleRegistry{books: make(map[string]domain.TaxYearRules), defaultYear: DefaultAssessmentYear}
	for _, book := range BuiltInRuleBooks() {
		r.books[book.AssessmentYear] = book
	}
	return r
}

// Register validates rules and adds them, replacing any book for the same year.
func (r *RuleRegistry) Register(rules domain.TaxYearRules) error {
	if err := calculation.ValidateRules(rules); err != nil {
		return fmt.Errorf("rule book %s: %w", rules.AssessmentYear, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.books[rules.AssessmentYear] = rules.Clone()
	return nil
}

// Lookup returns a copy of the rule book for year. An empty year selects the
// default; labels are normalized first, so "2026-27" finds "AY2026-27".
func (r *RuleRegistry) Lookup(year string) (domain.TaxYearRules, error) {
	key, err := r.resolve(year)
	if err != nil {
		return domain.TaxYearRules{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	book, ok := r.books[key]
	if !ok {
		return domain.TaxYearRules{}, fmt.Errorf("%w: %s", domain.ErrUnknownAssessmentYear, key)
	}
	return book.Clone(), nil
}

// Years lists registered assessment years in ascending order.
func (r *RuleRegistry) Years() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	years := make([]string, 0, len(r.books))
	for y := range r.books {
		years = append(years, y)
	}
	sort.Strings(years)
	return years
}

// Default returns the year used for requests that name none.
func (r *RuleRegistry) Default() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultYear
}

// SetDefault changes the default year; it must already be registered.
func (r *RuleRegistry) SetDefault(year string) error {
	key, err := dateutil.NormalizeAssessmentYear(year)
	if err != nil {
		return &domain.InputError{Field: "assessment_year", Reason: err.Error()}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[key]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownAssessmentYear, key)
	}
	r.defaultYear = key
	return nil
}

// ResolveYear normalizes year, substituting the default for an empty label.
func (r *RuleRegistry) ResolveYear(year string) (string, error) {
	return r.resolve(year)
}

func (r *RuleRegistry) resolve(year string) (string, error) {
	if year == "" {
		return r.Default(), nil
	}
	key, err := dateutil.NormalizeAssessmentYear(year)
	if err != nil {
		return "", &domain.InputError{Field: "assessment_year", Reason: err.Error()}
	}
	return key, nil
}
