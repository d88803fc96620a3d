package main

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/taxgenius/regime-calculator/internal/config"
	"github.com/taxgenius/regime-calculator/internal/domain"
	"github.com/taxgenius/regime-calculator/internal/output"
	"github.com/taxgenius/regime-calculator/pkg/dateutil"
)

func newGSTCmd(a *app) *cobra.Command {
	var (
		format     string
		supplyType string
		amount     string
		supply     string
		invoice    string
		payment    string
	)
	cmd := &cobra.Command{
		Use:   "gst [transaction.yaml]",
		Short: "Resolve the GST rate from the supply, invoice and payment dates",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tx domain.GSTTransaction
			if len(args) == 1 {
				loaded, err := config.NewInputParser().LoadTransactionFromFile(args[0])
				if err != nil {
					return err
				}
				tx = *loaded
			} else {
				if amount == "" {
					return errors.New("provide a transaction file or --amount with the three dates")
				}
				amt, err := decimal.NewFromString(amount)
				if err != nil {
					return &domain.InputError{Field: "amount", Reason: "must be a number"}
				}
				tx = domain.GSTTransaction{Type: domain.SupplyType(supplyType), Amount: amt}
				for _, f := range []struct {
					name string
					raw  string
					dst  *dateutil.Date
				}{
					{"supply_date", supply, &tx.SupplyDate},
					{"invoice_date", invoice, &tx.InvoiceDate},
					{"payment_date", payment, &tx.PaymentDate},
				} {
					if f.raw == "" {
						continue
					}
					t, err := dateutil.ParseDate(f.raw)
					if err != nil {
						return &domain.InputError{Field: f.name, Reason: err.Error()}
					}
					*f.dst = dateutil.Date{Time: t}
				}
			}

			svc, err := a.service()
			if err != nil {
				return err
			}
			res, err := svc.ComputeGST(context.Background(), tx)
			if err != nil {
				return err
			}
			return output.PrintGST(a.out, res, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format: console or json")
	cmd.Flags().StringVar(&supplyType, "type", string(domain.SupplyGoods), "supply type: goods or services")
	cmd.Flags().StringVar(&amount, "amount", "", "taxable value")
	cmd.Flags().StringVar(&supply, "supply-date", "", "date of supply (YYYY-MM-DD)")
	cmd.Flags().StringVar(&invoice, "invoice-date", "", "invoice date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&payment, "payment-date", "", "payment date (YYYY-MM-DD)")
	return cmd
}
