package domain

import (
	"github.com/shopspring/decimal"
	"github.com/taxgenius/regime-calculator/pkg/dateutil"
)

// SupplyType distinguishes goods from services for GST rate lookup.
type SupplyType string

const (
	SupplyGoods    SupplyType = "goods"
	SupplyServices SupplyType = "services"
)

// RateType reports which side of the reform date a transaction was taxed on.
type RateType string

const (
	RateOld RateType = "old"
	RateNew RateType = "new"
)

// GSTTransaction carries the three dated events that fix the time of supply.
type GSTTransaction struct {
	Type        SupplyType      `yaml:"type" json:"type"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
	SupplyDate  dateutil.Date   `yaml:"supply_date" json:"supply_date"`
	InvoiceDate dateutil.Date   `yaml:"invoice_date" json:"invoice_date"`
	PaymentDate dateutil.Date   `yaml:"payment_date" json:"payment_date"`
}

// GSTResult is the resolved rate and tax for a transaction.
// RateType is RateOld exactly when EventCount >= 2.
type GSTResult struct {
	Type           SupplyType      `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	GSTAmount      decimal.Decimal `json:"gst_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	ApplicableRate decimal.Decimal `json:"applicable_rate"` // fraction, e.g. 0.18
	RateType       RateType        `json:"rate_type"`
	EventCount     int             `json:"event_count"` // events strictly before the reform date
	SupplyBefore   bool            `json:"supply_before"`
	InvoiceBefore  bool            `json:"invoice_before"`
	PaymentBefore  bool            `json:"payment_before"`
	ReformDate     dateutil.Date   `json:"reform_date"`
}
