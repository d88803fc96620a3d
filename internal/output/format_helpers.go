package output

import (
	"strconv"

	"github.com/shopspring/decimal"
	money "github.com/taxgenius/regime-calculator/pkg/decimal"
)

// FormatCurrency formats a decimal as whole rupees with Indian digit grouping.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string { return money.NewMoneyFromDecimal(amount).Format() }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

func boolToString(b bool) string { return strconv.FormatBool(b) }
