package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a rupee amount with full decimal precision. Rounding to
// whole rupees happens only for display.
type Money struct {
	decimal.Decimal
}

// NewMoney creates a Money from an integer number of rupees
func NewMoney(rupees int64) Money {
	return Money{decimal.NewFromInt(rupees)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds to the nearest rupee, halves away from zero
func (m Money) Round() Money {
	return Money{m.Decimal.Round(0)}
}

// Monthly converts an annual amount to monthly
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(decimal.NewFromInt(12))}
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the amount with two decimal places and no grouping
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount as whole rupees with Indian digit grouping,
// e.g. ₹12,34,567.
func (m Money) Format() string {
	digits := m.Round().Decimal.Abs().StringFixed(0)
	grouped := groupIndian(digits)
	if m.Round().IsNegative() {
		return "-₹" + grouped
	}
	return "₹" + grouped
}

// groupIndian inserts separators 3 digits from the right and every 2 digits after that.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(append(parts, tail), ",")
}
