package sales

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// ErrDuplicateKey is returned by repositories when an insert violates a
// persisted unique constraint. For receipt generation this is not a failure:
// the losing writer recovers by re-reading the winner's document.
var ErrDuplicateKey = errors.New("duplicate key violates unique constraint")

// InvoiceRepository persists base invoices. The base invoice's financial
// fields are written once; only the chain bookkeeping (EditIDs, EditCount)
// is updated afterwards.
type InvoiceRepository interface {
	// Save inserts a new base invoice
	Save(ctx context.Context, inv *Invoice) error

	// UpdateChain persists the appended edit link and incremented edit count
	UpdateChain(ctx context.Context, inv *Invoice) error

	// FindByID finds a base invoice by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByNumber finds a base invoice by its document number
	FindByNumber(ctx context.Context, number string) (*Invoice, error)

	// FindAll lists base invoices with pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)

	// Count counts base invoices
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// NumberExists reports whether an invoice number is taken
	NumberExists(ctx context.Context, number string) (bool, error)
}

// InvoiceEditRepository persists the append-only edit chain. Edits are never
// updated or deleted.
type InvoiceEditRepository interface {
	// Save inserts a new immutable edit
	Save(ctx context.Context, edit *InvoiceEdit) error

	// FindByID finds an edit by ID
	FindByID(ctx context.Context, id uuid.UUID) (*InvoiceEdit, error)

	// FindByInvoice returns the chain for a base invoice in creation order
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]InvoiceEdit, error)
}

// ReceiptRepository persists receipts. Save must surface ErrDuplicateKey when
// the (invoice_id, invoice_edit_id) pair already exists; that constraint is
// the authoritative idempotency guard under concurrent generation.
type ReceiptRepository interface {
	// Save inserts a new receipt
	Save(ctx context.Context, receipt *Receipt) error

	// FindByID finds a receipt by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Receipt, error)

	// FindByInvoiceEdit finds the receipt generated for an invoice edit, if any
	FindByInvoiceEdit(ctx context.Context, invoiceID, editID uuid.UUID) (*Receipt, error)

	// NumberExists reports whether a receipt number is taken
	NumberExists(ctx context.Context, number string) (bool, error)
}

// CreditNoteRepository persists credit notes
type CreditNoteRepository interface {
	Save(ctx context.Context, note *CreditNote) error
	Update(ctx context.Context, note *CreditNote) error
	FindByID(ctx context.Context, id uuid.UUID) (*CreditNote, error)
	NumberExists(ctx context.Context, number string) (bool, error)
}

// RefundRepository persists refunds
type RefundRepository interface {
	Save(ctx context.Context, refund *Refund) error
	Update(ctx context.Context, refund *Refund) error
	FindByID(ctx context.Context, id uuid.UUID) (*Refund, error)
	NumberExists(ctx context.Context, number string) (bool, error)
}
