package sales

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/sales"
)

// CreateInvoiceRequest creates a base invoice with its initial snapshot
type CreateInvoiceRequest struct {
	CustomerID   uuid.UUID
	SalesRepID   uuid.UUID
	PaymentTerms string
	Items        []sales.RawLineItem
	Deposit      float64
}

// CreateEditRequest appends a new edit to an invoice's chain. Deposit is the
// cumulative amount received, not a delta.
type CreateEditRequest struct {
	InvoiceID uuid.UUID
	Items     []sales.RawLineItem
	Deposit   float64
}

// CurrentInvoiceView is the read model of an invoice: the base document plus
// the head of its edit chain, if any
type CurrentInvoiceView struct {
	Invoice *sales.Invoice     `json:"invoice"`
	Current *sales.InvoiceEdit `json:"current,omitempty"`
}

// CreateCashReceiptRequest creates a standalone receipt with no invoice
type CreateCashReceiptRequest struct {
	Items     []sales.RawLineItem
	Deposit   float64
	Signature string
	Draft     bool
}

// GenerateReceiptRequest generates the receipt for an invoice edit
type GenerateReceiptRequest struct {
	InvoiceID uuid.UUID
	EditID    uuid.UUID
	Signature string
}

// GenerateReceiptResult carries the receipt plus the idempotency marker:
// AlreadyExists is true when a prior call (or a concurrent winner) created it
type GenerateReceiptResult struct {
	Receipt       *sales.Receipt `json:"receipt"`
	AlreadyExists bool           `json:"alreadyExists"`
}

// CreditNoteRequest creates or re-edits a credit note. SaveDraft=false
// finalizes it.
type CreditNoteRequest struct {
	CustomerID uuid.UUID
	SalesRepID uuid.UUID
	Products   []sales.RawLineItem
	Signature  string
	SaveDraft  bool
}

// RefundRequest creates or re-edits a refund, optionally derived from a
// credit note
type RefundRequest struct {
	CustomerID   uuid.UUID
	SalesRepID   uuid.UUID
	CreditNoteID *uuid.UUID
	Items        []sales.RawLineItem
	Signature    string
	SaveDraft    bool
}
