package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/taxgenius/regime-calculator/internal/domain"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// ProcessSlabs turns a rate table into normalized bands with fractional rates.
// The bands must partition [0, ∞): the first starts at 0, each later band starts
// where the previous one ended and only the last is open-ended. A band that
// starts one rupee after the previous upper bound ("from: 250001") is treated
// as starting at that bound, which keeps the tax function continuous.
func ProcessSlabs(rules []domain.SlabRule) ([]domain.ProcessedSlab, error) {
	return processSlabs("slabs", rules)
}

func processSlabs(section string, rules []domain.SlabRule) ([]domain.ProcessedSlab, error) {
	if len(rules) == 0 {
		return nil, &domain.ConfigError{Section: section, Reason: "at least one band is required"}
	}

	slabs := make([]domain.ProcessedSlab, 0, len(rules))
	for i, rule := range rules {
		if rule.Rate.IsNegative() || rule.Rate.GreaterThan(hundred) {
			return nil, &domain.ConfigError{Section: section, Reason: fmt.Sprintf("band %d: rate %s is outside 0-100", i+1, rule.Rate)}
		}

		slab := domain.ProcessedSlab{Rate: rule.Rate.Div(hundred)}
		switch rule.Kind {
		case domain.SlabUpTo:
			if i != 0 {
				return nil, &domain.ConfigError{Section: section, Reason: fmt.Sprintf("band %d: an upto band must come first", i+1)}
			}
			slab.Min, slab.Max = decimal.Zero, rule.To
		case domain.SlabRange:
			slab.Min, slab.Max = rule.From, rule.To
		case domain.SlabAbove:
			if i != len(rules)-1 {
				return nil, &domain.ConfigError{Section: section, Reason: fmt.Sprintf("band %d: only the last band may be open-ended", i+1)}
			}
			slab.Min, slab.Unbounded = rule.From, true
		default:
			return nil, &domain.ConfigError{Section: section, Reason: fmt.Sprintf("band %d: unknown kind %q", i+1, rule.Kind)}
		}

		if i == 0 {
			if !slab.Min.IsZero() {
				return nil, &domain.ConfigError{Section: section, Reason: fmt.Sprintf("first band starts at %s, not 0", slab.Min)}
			}
		} else {
			prevMax := slabs[i-1].Max
			switch {
			case slab.Min.Equal(prevMax):
			case slab.Min.Equal(prevMax.Add(one)):
				slab.Min = prevMax
			case slab.Min.GreaterThan(prevMax):
				return nil, &domain.ConfigError{Section: section, Reason: fmt.Sprintf("gap between %s and %s", prevMax, slab.Min)}
			default:
				return nil, &domain.ConfigError{Section: section, Reason: fmt.Sprintf("band %d overlaps the previous band at %s", i+1, slab.Min)}
			}
		}

		if !slab.Unbounded && !slab.Max.GreaterThan(slab.Min) {
			return nil, &domain.ConfigError{Section: section, Reason: fmt.Sprintf("band %d: upper bound %s must exceed %s", i+1, slab.Max, slab.Min)}
		}
		slabs = append(slabs, slab)
	}

	if !slabs[len(slabs)-1].Unbounded {
		return nil, &domain.ConfigError{Section: section, Reason: "last band must be open-ended"}
	}
	return slabs, nil
}

// ComputeSlabTax integrates the marginal rate over [0, taxable].
// Non-positive income owes nothing.
func ComputeSlabTax(taxable decimal.Decimal, slabs []domain.ProcessedSlab) decimal.Decimal {
	total := decimal.Zero
	if !taxable.IsPositive() {
		return total
	}
	for _, slab := range slabs {
		if taxable.LessThanOrEqual(slab.Min) {
			break
		}
		upper := taxable
		if !slab.Unbounded {
			upper = decimal.Min(taxable, slab.Max)
		}
		total = total.Add(upper.Sub(slab.Min).Mul(slab.Rate))
	}
	return total
}
