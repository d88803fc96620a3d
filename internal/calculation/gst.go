package calculation

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/taxgenius/regime-calculator/internal/domain"
	"github.com/taxgenius/regime-calculator/pkg/dateutil"
)

// GSTCalculator resolves the time of supply around a rate change. When at
// least two of supply, invoice and payment fall strictly before the reform
// date the pre-reform rate applies.
type GSTCalculator struct {
	rules  domain.GSTRules
	Logger Logger
}

// NewGSTCalculator validates rules and keeps a private copy.
func NewGSTCalculator(rules domain.GSTRules) (*GSTCalculator, error) {
	if rules.ReformDate.IsZero() {
		return nil, &domain.ConfigError{Section: "gst.reform_date", Reason: "is required"}
	}
	if len(rules.Rates) == 0 {
		return nil, &domain.ConfigError{Section: "gst.rates", Reason: "at least one supply type is required"}
	}
	for t, pair := range rules.Rates {
		section := fmt.Sprintf("gst.rates.%s", t)
		if err := validatePercent(section, pair.Old); err != nil {
			return nil, err
		}
		if err := validatePercent(section, pair.New); err != nil {
			return nil, err
		}
	}
	return &GSTCalculator{rules: rules.Clone(), Logger: NopLogger{}}, nil
}

// SetLogger sets the logger for the calculator. If nil is provided, a no-op logger is used.
func (g *GSTCalculator) SetLogger(l Logger) {
	if l == nil {
		g.Logger = NopLogger{}
		return
	}
	g.Logger = l
}

// ReformDate returns the configured rate-change date.
func (g *GSTCalculator) ReformDate() dateutil.Date {
	return g.rules.ReformDate
}

// SupplyTypes lists the configured supply types in sorted order.
func (g *GSTCalculator) SupplyTypes() []domain.SupplyType {
	types := make([]domain.SupplyType, 0, len(g.rules.Rates))
	for t := range g.rules.Rates {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// ComputeGST resolves the applicable rate for tx and the resulting tax.
func (g *GSTCalculator) ComputeGST(tx domain.GSTTransaction) (domain.GSTResult, error) {
	pair, ok := g.rules.Rates[tx.Type]
	if !ok {
		return domain.GSTResult{}, &domain.InputError{Field: "type", Reason: fmt.Sprintf("unknown supply type %q", tx.Type)}
	}
	if !tx.Amount.IsPositive() {
		return domain.GSTResult{}, &domain.InputError{Field: "amount", Reason: "must be greater than zero"}
	}
	for _, f := range []struct {
		name string
		date dateutil.Date
	}{
		{"supply_date", tx.SupplyDate},
		{"invoice_date", tx.InvoiceDate},
		{"payment_date", tx.PaymentDate},
	} {
		if f.date.IsZero() {
			return domain.GSTResult{}, &domain.InputError{Field: f.name, Reason: "is required"}
		}
	}

	reform := g.rules.ReformDate.Time
	res := domain.GSTResult{
		Type:          tx.Type,
		Amount:        tx.Amount,
		SupplyBefore:  dateutil.IsStrictlyBefore(tx.SupplyDate.Time, reform),
		InvoiceBefore: dateutil.IsStrictlyBefore(tx.InvoiceDate.Time, reform),
		PaymentBefore: dateutil.IsStrictlyBefore(tx.PaymentDate.Time, reform),
		ReformDate:    g.rules.ReformDate,
	}
	for _, before := range []bool{res.SupplyBefore, res.InvoiceBefore, res.PaymentBefore} {
		if before {
			res.EventCount++
		}
	}

	rate := pair.New
	res.RateType = domain.RateNew
	if res.EventCount >= 2 {
		rate = pair.Old
		res.RateType = domain.RateOld
	}
	res.ApplicableRate = rate.Div(hundred)
	res.GSTAmount = tx.Amount.Mul(res.ApplicableRate)
	res.TotalAmount = tx.Amount.Add(res.GSTAmount)

	g.Logger.Debugf("gst %s: %d of 3 events before %s, rate=%s", tx.Type, res.EventCount, g.rules.ReformDate, res.ApplicableRate)
	return res, nil
}

// ComputeGST is the positional form of GSTCalculator.ComputeGST.
func ComputeGST(rules domain.GSTRules, supplyType domain.SupplyType, amount decimal.Decimal, supply, invoice, payment time.Time) (domain.GSTResult, error) {
	calc, err := NewGSTCalculator(rules)
	if err != nil {
		return domain.GSTResult{}, err
	}
	return calc.ComputeGST(domain.GSTTransaction{
		Type:        supplyType,
		Amount:      amount,
		SupplyDate:  dateutil.Date{Time: supply},
		InvoiceDate: dateutil.Date{Time: invoice},
		PaymentDate: dateutil.Date{Time: payment},
	})
}
