package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/taxgenius/regime-calculator/internal/cache"
	"github.com/taxgenius/regime-calculator/internal/calculation"
	"github.com/taxgenius/regime-calculator/internal/config"
	"github.com/taxgenius/regime-calculator/internal/domain"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchLimit bounds concurrent comparisons in CompareBatch.
const DefaultBatchLimit = 10

// TaxService wires the registry, calculators and result cache together for
// the CLI and the HTTP API.
type TaxService struct {
	registry   *config.RuleRegistry
	gst        *calculation.GSTCalculator
	cache      cache.Repository
	Logger     calculation.Logger
	BatchLimit int

	mu          sync.RWMutex
	calculators map[string]*calculation.Calculator
}

// NewTaxService builds a service. repo may be nil to disable caching.
func NewTaxService(registry *config.RuleRegistry, gstRules domain.GSTRules, repo cache.Repository) (*TaxService, error) {
	gst, err := calculation.NewGSTCalculator(gstRules)
	if err != nil {
		return nil, err
	}
	return &TaxService{
		registry:    registry,
		gst:         gst,
		cache:       repo,
		Logger:      calculation.NopLogger{},
		BatchLimit:  DefaultBatchLimit,
		calculators: make(map[string]*calculation.Calculator),
	}, nil
}

// SetLogger sets the logger for the service and the calculators it builds.
// If nil is provided, a no-op logger is used.
func (s *TaxService) SetLogger(l calculation.Logger) {
	if l == nil {
		l = calculation.NopLogger{}
	}
	s.Logger = l
	s.gst.SetLogger(l)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.calculators {
		c.SetLogger(l)
	}
}

// calculatorFor returns the calculator for year, building it on first use.
func (s *TaxService) calculatorFor(year string) (*calculation.Calculator, error) {
	key, err := s.registry.ResolveYear(year)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	calc, ok := s.calculators[key]
	s.mu.RUnlock()
	if ok {
		return calc, nil
	}

	rules, err := s.registry.Lookup(key)
	if err != nil {
		return nil, err
	}
	calc, err = calculation.NewCalculator(rules)
	if err != nil {
		return nil, err
	}
	calc.SetLogger(s.Logger)

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.calculators[key]; ok {
		return existing, nil
	}
	s.calculators[key] = calc
	return calc, nil
}

// Compare runs both regimes for year, serving repeated inputs from the cache.
func (s *TaxService) Compare(ctx context.Context, year string, in domain.TaxInputs) (domain.RegimeComparison, error) {
	calc, err := s.calculatorFor(year)
	if err != nil {
		return domain.RegimeComparison{}, err
	}

	key := ""
	if s.cache != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return domain.RegimeComparison{}, fmt.Errorf("failed to encode inputs: %w", err)
		}
		key = cache.Key("compare", calc.AssessmentYear(), string(payload))
		if cached, ok := s.cache.Get(ctx, key); ok {
			var cmp domain.RegimeComparison
			if err := json.Unmarshal([]byte(cached), &cmp); err == nil {
				s.Logger.Debugf("cache hit %s", key)
				return cmp, nil
			}
			s.Logger.Warnf("discarding unreadable cache entry %s", key)
		}
	}

	cmp, err := calc.CompareRegimes(in)
	if err != nil {
		return domain.RegimeComparison{}, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(cmp); err == nil {
			if err := s.cache.Set(ctx, key, string(data)); err != nil {
				s.Logger.Warnf("failed to cache comparison: %v", err)
			}
		}
	}
	return cmp, nil
}

// Calculate runs a single regime for year.
func (s *TaxService) Calculate(_ context.Context, year string, regime domain.Regime, in domain.TaxInputs) (domain.TaxResults, error) {
	calc, err := s.calculatorFor(year)
	if err != nil {
		return domain.TaxResults{}, err
	}
	return calc.Calculate(regime, in)
}

// CompareBatch compares every input for year with bounded concurrency. The
// results keep the order of inputs; the first failure cancels the rest.
func (s *TaxService) CompareBatch(ctx context.Context, year string, inputs []domain.TaxInputs) ([]domain.RegimeComparison, error) {
	if _, err := s.calculatorFor(year); err != nil {
		return nil, err
	}

	results := make([]domain.RegimeComparison, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	limit := s.BatchLimit
	if limit <= 0 {
		limit = DefaultBatchLimit
	}
	g.SetLimit(limit)

	for i := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cmp, err := s.Compare(gctx, year, inputs[i])
			if err != nil {
				return fmt.Errorf("inputs[%d]: %w", i, err)
			}
			results[i] = cmp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ComputeGST resolves the GST rate for tx.
func (s *TaxService) ComputeGST(_ context.Context, tx domain.GSTTransaction) (domain.GSTResult, error) {
	return s.gst.ComputeGST(tx)
}

// Years lists the registered assessment years.
func (s *TaxService) Years() []string {
	return s.registry.Years()
}

// DefaultYear is the year used when a request names none.
func (s *TaxService) DefaultYear() string {
	return s.registry.Default()
}

// Rules returns the rule book for year.
func (s *TaxService) Rules(year string) (domain.TaxYearRules, error) {
	return s.registry.Lookup(year)
}

// GSTReformDate returns the configured GST rate-change date as YYYY-MM-DD.
func (s *TaxService) GSTReformDate() string {
	return s.gst.ReformDate().String()
}
