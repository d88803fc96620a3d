package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/taxgenius/regime-calculator/internal/domain"
)

// FormatGST renders a GST resolution as "console" text or "json".
func FormatGST(res domain.GSTResult, format string) ([]byte, error) {
	switch NormalizeFormatName(format) {
	case "json":
		return json.MarshalIndent(res, "", "  ")
	case "console", "console-lite", "":
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "GST TIME OF SUPPLY (%s)\n", res.Type)
		fmt.Fprintln(&buf, "================================")
		fmt.Fprintf(&buf, "Reform date:     %s\n", res.ReformDate)
		fmt.Fprintf(&buf, "Supply before:   %s\n", yesNo(res.SupplyBefore))
		fmt.Fprintf(&buf, "Invoice before:  %s\n", yesNo(res.InvoiceBefore))
		fmt.Fprintf(&buf, "Payment before:  %s\n", yesNo(res.PaymentBefore))
		fmt.Fprintf(&buf, "Events before:   %d of 3 (%s rate)\n", res.EventCount, res.RateType)
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Taxable value:   %s\n", res.Amount.StringFixed(2))
		fmt.Fprintf(&buf, "Rate:            %s\n", FormatPercentage(res.ApplicableRate.Mul(decimalHundred)))
		fmt.Fprintf(&buf, "GST:             %s\n", res.GSTAmount.StringFixed(2))
		fmt.Fprintf(&buf, "Total:           %s\n", res.TotalAmount.StringFixed(2))
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q. GST output supports console and json", ErrUnsupportedFormat, format)
	}
}

// PrintGST writes the rendered resolution to w.
func PrintGST(w io.Writer, res domain.GSTResult, format string) error {
	data, err := FormatGST(res, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
