package sales

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SaleType distinguishes a walk-in cash sale from an invoice-backed sale
type SaleType string

const (
	SaleTypeCash    SaleType = "cash"
	SaleTypeInvoice SaleType = "invoice"
)

// IsValid checks if the sale type is valid
func (t SaleType) IsValid() bool {
	return t == SaleTypeCash || t == SaleTypeInvoice
}

// String returns the string representation of SaleType
func (t SaleType) String() string {
	return string(t)
}

// ReceiptStatus represents the status of a receipt
type ReceiptStatus string

const (
	ReceiptStatusDraft     ReceiptStatus = "draft"
	ReceiptStatusCompleted ReceiptStatus = "completed"
)

// IsValid checks if the status is a valid ReceiptStatus
func (s ReceiptStatus) IsValid() bool {
	return s == ReceiptStatusDraft || s == ReceiptStatusCompleted
}

// String returns the string representation of ReceiptStatus
func (s ReceiptStatus) String() string {
	return string(s)
}

// ReceiptItem is a receipt line. Unlike invoice edit items, receipt items
// carry the unit price; the post-discount amount is kept alongside it.
type ReceiptItem struct {
	ProductCode string            `json:"productCode"`
	Description string            `json:"description"`
	Quantity    decimal.Decimal   `json:"quantity"`
	Price       valueobject.Money `json:"price"`
	Discount    decimal.Decimal   `json:"discount"`
	Amount      valueobject.Money `json:"amount"`
}

// Receipt is a generated sales document. When derived from an invoice edit it
// is a historical record: totals are copied from the edit, never recomputed.
type Receipt struct {
	shared.BaseAggregateRoot
	ReceiptNumber          string            `json:"receiptNumber"`
	SaleType               SaleType          `json:"saleType"`
	InvoiceID              *uuid.UUID        `json:"invoiceId,omitempty"`
	InvoiceEditID          *uuid.UUID        `json:"invoiceEditId,omitempty"`
	Items                  []ReceiptItem     `json:"items"`
	Deposit                valueobject.Money `json:"deposit"`
	SubtotalBeforeDiscount valueobject.Money `json:"subtotalBeforeDiscount"`
	SubtotalAfterDiscount  valueobject.Money `json:"subtotalAfterDiscount"`
	Tax                    valueobject.Money `json:"tax"`
	Total                  valueobject.Money `json:"total"`
	Status                 ReceiptStatus     `json:"status"`
	Print                  bool              `json:"print"`
	Signature              string            `json:"signature,omitempty"`
}

// NewCashReceipt creates a standalone receipt for a cash sale with no
// backing invoice. Totals are computed from the normalized items.
func NewCashReceipt(receiptNumber string, items []LineItem, deposit valueobject.Money, signature string, draft bool) (*Receipt, error) {
	if receiptNumber == "" {
		return nil, shared.NewDomainError("INVALID_RECEIPT_NUMBER", "Receipt number cannot be empty")
	}
	if deposit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DEPOSIT", "Deposit cannot be negative")
	}

	receiptItems := make([]ReceiptItem, 0, len(items))
	before := valueobject.Zero()
	after := valueobject.Zero()
	for _, item := range items {
		before = before.Add(item.Price.MulDecimal(item.Quantity))
		after = after.Add(item.Amount)
		receiptItems = append(receiptItems, ReceiptItem{
			ProductCode: item.ProductCode,
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Discount:    item.Discount,
			Amount:      item.Amount,
		})
	}

	tax := after.MulDecimal(TaxRate)
	total := after.Add(tax)

	status := ReceiptStatusCompleted
	if draft {
		status = ReceiptStatusDraft
	}

	return &Receipt{
		BaseAggregateRoot:      shared.NewBaseAggregateRoot(),
		ReceiptNumber:          receiptNumber,
		SaleType:               SaleTypeCash,
		Items:                  receiptItems,
		Deposit:                deposit,
		SubtotalBeforeDiscount: before,
		SubtotalAfterDiscount:  after,
		Tax:                    tax,
		Total:                  total,
		Status:                 status,
		Signature:              signature,
	}, nil
}

// NewReceiptFromEdit creates the receipt for an invoice edit. Line items are
// translated by back-computing unit prices from the edit's post-discount
// amounts; totals are copied from the edit's stored values so the receipt
// preserves the financial snapshot exactly as it existed at edit time. Tax is
// back-derived from the tax-inclusive total rather than recomputed from
// items.
func NewReceiptFromEdit(receiptNumber string, edit *InvoiceEdit, signature string) (*Receipt, error) {
	if receiptNumber == "" {
		return nil, shared.NewDomainError("INVALID_RECEIPT_NUMBER", "Receipt number cannot be empty")
	}
	if edit == nil {
		return nil, shared.NewDomainError("INVALID_EDIT", "Invoice edit is required")
	}

	items := make([]ReceiptItem, 0, len(edit.Items))
	before := valueobject.Zero()
	for _, item := range edit.Items {
		price := item.UnitPrice()
		before = before.Add(price.MulDecimal(item.Quantity))
		items = append(items, ReceiptItem{
			ProductCode: item.ProductCode,
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       price,
			Discount:    item.Discount,
			Amount:      item.Amount,
		})
	}

	tax := BackDeriveTax(edit.Total)
	invoiceID := edit.BaseInvoiceID
	editID := edit.ID

	return &Receipt{
		BaseAggregateRoot:      shared.NewBaseAggregateRoot(),
		ReceiptNumber:          receiptNumber,
		SaleType:               SaleTypeInvoice,
		InvoiceID:              &invoiceID,
		InvoiceEditID:          &editID,
		Items:                  items,
		Deposit:                edit.DepositReceived,
		SubtotalBeforeDiscount: before,
		SubtotalAfterDiscount:  edit.Total.Sub(tax),
		Tax:                    tax,
		Total:                  edit.Total,
		Status:                 ReceiptStatusCompleted,
		Print:                  true,
		Signature:              signature,
	}, nil
}
