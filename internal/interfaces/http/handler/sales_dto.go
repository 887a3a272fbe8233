package handler

import (
	"github.com/google/uuid"

	salesapp "github.com/retailpos/backend/internal/application/sales"
	"github.com/retailpos/backend/internal/domain/sales"
)

// LineItemInput represents a raw line item as submitted by the client
type LineItemInput struct {
	ProductCode string  `json:"productCode" binding:"required,min=1,max=50"`
	Description string  `json:"description" binding:"max=500"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	Price       float64 `json:"price" binding:"min=0"`
	Discount    float64 `json:"discount" binding:"min=0,max=100"`
}

func toRawItems(items []LineItemInput) []sales.RawLineItem {
	raw := make([]sales.RawLineItem, len(items))
	for i, item := range items {
		raw[i] = sales.RawLineItem{
			ProductCode: item.ProductCode,
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Discount:    item.Discount,
		}
	}
	return raw
}

// CreateInvoiceRequest represents a request to create a new invoice
type CreateInvoiceRequest struct {
	CustomerID   string          `json:"customerId" binding:"required,uuid"`
	SalesRepID   string          `json:"salesRepId" binding:"required,uuid"`
	PaymentTerms string          `json:"paymentTerms" binding:"max=100"`
	Items        []LineItemInput `json:"items" binding:"required,min=1,dive"`
	Deposit      float64         `json:"deposit" binding:"min=0"`
}

func (r CreateInvoiceRequest) toApplication() salesapp.CreateInvoiceRequest {
	return salesapp.CreateInvoiceRequest{
		CustomerID:   uuid.MustParse(r.CustomerID),
		SalesRepID:   uuid.MustParse(r.SalesRepID),
		PaymentTerms: r.PaymentTerms,
		Items:        toRawItems(r.Items),
		Deposit:      r.Deposit,
	}
}

// CreateEditRequest represents a request to append an edit to an invoice.
// Deposit is the cumulative amount received, not a delta.
type CreateEditRequest struct {
	Items   []LineItemInput `json:"items" binding:"required,min=1,dive"`
	Deposit float64         `json:"deposit" binding:"min=0"`
}

// CashReceiptRequest represents a request to create a standalone cash receipt
type CashReceiptRequest struct {
	Items     []LineItemInput `json:"items" binding:"required,min=1,dive"`
	Deposit   float64         `json:"deposit" binding:"min=0"`
	Signature string          `json:"signature"`
	Draft     bool            `json:"draft"`
}

// GenerateReceiptRequest represents a request to generate the receipt for an
// invoice edit
type GenerateReceiptRequest struct {
	InvoiceID string `json:"invoiceId" binding:"required,uuid"`
	EditID    string `json:"editId" binding:"required,uuid"`
	Signature string `json:"signature"`
}

// CreditNoteRequest represents a request to create or re-edit a credit note
type CreditNoteRequest struct {
	CustomerID string          `json:"customerId" binding:"required,uuid"`
	SalesRepID string          `json:"salesRepId" binding:"required,uuid"`
	Products   []LineItemInput `json:"products" binding:"required,min=1,dive"`
	Signature  string          `json:"signature"`
	SaveDraft  bool            `json:"saveDraft"`
}

func (r CreditNoteRequest) toApplication() salesapp.CreditNoteRequest {
	return salesapp.CreditNoteRequest{
		CustomerID: uuid.MustParse(r.CustomerID),
		SalesRepID: uuid.MustParse(r.SalesRepID),
		Products:   toRawItems(r.Products),
		Signature:  r.Signature,
		SaveDraft:  r.SaveDraft,
	}
}

// RefundRequest represents a request to create or re-edit a refund
type RefundRequest struct {
	CustomerID   string          `json:"customerId" binding:"required,uuid"`
	SalesRepID   string          `json:"salesRepId" binding:"required,uuid"`
	CreditNoteID *string         `json:"creditNoteId" binding:"omitempty,uuid"`
	Items        []LineItemInput `json:"items" binding:"required,min=1,dive"`
	Signature    string          `json:"signature"`
	SaveDraft    bool            `json:"saveDraft"`
}

func (r RefundRequest) toApplication() salesapp.RefundRequest {
	req := salesapp.RefundRequest{
		CustomerID: uuid.MustParse(r.CustomerID),
		SalesRepID: uuid.MustParse(r.SalesRepID),
		Items:      toRawItems(r.Items),
		Signature:  r.Signature,
		SaveDraft:  r.SaveDraft,
	}
	if r.CreditNoteID != nil {
		id := uuid.MustParse(*r.CreditNoteID)
		req.CreditNoteID = &id
	}
	return req
}
