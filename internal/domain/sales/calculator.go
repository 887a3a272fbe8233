package sales

import (
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// TaxRate is the single flat sales tax rate (12.5%)
var TaxRate = decimal.NewFromFloat(0.125)

// balanceTolerance absorbs floating-point noise: a balance within a cent of
// zero is treated as exactly settled.
var balanceTolerance = decimal.NewFromFloat(0.01)

// PaymentStatus is the derived payment state of an invoice version.
// It is recomputed from balance and deposit on every read and write,
// never stored as a transition.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPartial  PaymentStatus = "partial"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusOverpaid PaymentStatus = "overpaid"
)

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid, PaymentStatusOverpaid:
		return true
	}
	return false
}

// FinancialSummary is the monetary state derived from a set of line items
// and a cumulative deposit
type FinancialSummary struct {
	Subtotal        valueobject.Money `json:"subtotal"`
	Tax             valueobject.Money `json:"tax"`
	Total           valueobject.Money `json:"total"`
	DepositReceived valueobject.Money `json:"depositReceived"`
	BalanceDue      valueobject.Money `json:"balanceDue"`
	Due             valueobject.Money `json:"due"`
	Status          PaymentStatus     `json:"status"`
}

// Calculate derives the full financial summary from items and the cumulative
// deposit. This function is the single source of truth for invoice totals and
// payment status; client-side mirrors are never authoritative.
//
// Rounding to two decimals happens at each derived step, not only at the end.
func Calculate(items []LineItem, depositReceived valueobject.Money) FinancialSummary {
	subtotal := valueobject.Zero()
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount)
	}

	tax := subtotal.MulDecimal(TaxRate)
	total := subtotal.Add(tax)
	balanceDue := total.Sub(depositReceived).SnapToZero(balanceTolerance)

	due := balanceDue
	if due.IsNegative() {
		due = valueobject.Zero()
	}

	return FinancialSummary{
		Subtotal:        subtotal,
		Tax:             tax,
		Total:           total,
		DepositReceived: depositReceived,
		BalanceDue:      balanceDue,
		Due:             due,
		Status:          DeriveStatus(balanceDue, depositReceived),
	}
}

// DeriveStatus computes payment status purely from balance and deposit:
//
//	balance > 0, deposit > 0 → partial
//	balance > 0, deposit = 0 → pending
//	balance = 0              → paid
//	balance < 0              → overpaid
func DeriveStatus(balanceDue, depositReceived valueobject.Money) PaymentStatus {
	switch {
	case balanceDue.IsNegative():
		return PaymentStatusOverpaid
	case balanceDue.IsZero():
		return PaymentStatusPaid
	case depositReceived.IsPositive():
		return PaymentStatusPartial
	default:
		return PaymentStatusPending
	}
}

// BackDeriveTax extracts the tax portion from a tax-inclusive total:
// tax = round2(total × 0.125 / 1.125). Receipt generation from an invoice
// edit uses this instead of recomputing from items, so the receipt matches
// the edit's stored total exactly.
func BackDeriveTax(total valueobject.Money) valueobject.Money {
	return valueobject.NewMoney(total.Amount().Mul(TaxRate).DivRound(one.Add(TaxRate), 2))
}
