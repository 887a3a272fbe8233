package sales

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
)

// VersionSource identifies which kind of record an edit followed
type VersionSource string

const (
	// VersionSourceInvoice marks an edit chained directly off the base invoice
	VersionSourceInvoice VersionSource = "invoice"
	// VersionSourceEdit marks an edit chained off a previous edit
	VersionSourceEdit VersionSource = "edit"
)

// IsValid checks if the source is a valid VersionSource
func (s VersionSource) IsValid() bool {
	return s == VersionSourceInvoice || s == VersionSourceEdit
}

// String returns the string representation of VersionSource
func (s VersionSource) String() string {
	return string(s)
}

// VersionSnapshot is the read-side view of the current chain head used when
// proposing a new edit. Records are addressed by id, never by in-memory
// reference.
type VersionSnapshot struct {
	ID              uuid.UUID
	Source          VersionSource
	Items           []LineItem
	DepositReceived valueobject.Money
	BalanceDue      valueobject.Money
}

// InvoiceEdit is an immutable snapshot in an invoice's append-only edit
// chain. It points back to the version it followed; it is never mutated or
// deleted after creation.
type InvoiceEdit struct {
	shared.BaseEntity
	InvoiceReference      string            `json:"invoiceReference"`
	BaseInvoiceID         uuid.UUID         `json:"baseInvoiceId"`
	PreviousVersionID     uuid.UUID         `json:"previousVersionId"`
	PreviousVersionSource VersionSource     `json:"previousVersionSource"`
	Items                 []LineItem        `json:"items"`
	Subtotal              valueobject.Money `json:"subtotal"`
	Tax                   valueobject.Money `json:"tax"`
	Total                 valueobject.Money `json:"total"`
	DepositReceived       valueobject.Money `json:"depositReceived"`
	DepositAdded          valueobject.Money `json:"depositAdded"`
	BalanceDue            valueobject.Money `json:"balanceDue"`
	Due                   valueobject.Money `json:"due"`
	Status                PaymentStatus     `json:"status"`
}

// NewInvoiceEdit proposes a new edit against the current head of an invoice's
// chain: items are normalized already, the deposit change is vetted against
// the head's balance, and the financials are recomputed for the new item set
// and cumulative deposit. DepositAdded records the delta against the previous
// version.
func NewInvoiceEdit(inv *Invoice, head VersionSnapshot, items []LineItem, newDeposit valueobject.Money) (*InvoiceEdit, error) {
	if inv == nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Base invoice is required")
	}
	if newDeposit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DEPOSIT", "Deposit cannot be negative")
	}

	changed, err := CheckDepositChange(head.BalanceDue, head.DepositReceived, newDeposit)
	if err != nil {
		return nil, err
	}

	depositAdded := valueobject.Zero()
	if changed {
		depositAdded = newDeposit.Sub(head.DepositReceived)
	}

	summary := Calculate(items, newDeposit)

	return &InvoiceEdit{
		BaseEntity:            shared.NewBaseEntity(),
		InvoiceReference:      inv.InvoiceNumber,
		BaseInvoiceID:         inv.ID,
		PreviousVersionID:     head.ID,
		PreviousVersionSource: head.Source,
		Items:                 items,
		Subtotal:              summary.Subtotal,
		Tax:                   summary.Tax,
		Total:                 summary.Total,
		DepositReceived:       summary.DepositReceived,
		DepositAdded:          depositAdded,
		BalanceDue:            summary.BalanceDue,
		Due:                   summary.Due,
		Status:                summary.Status,
	}, nil
}

// BelongsTo reports whether this edit is part of the given invoice's chain
func (e *InvoiceEdit) BelongsTo(invoiceID uuid.UUID) bool {
	return e.BaseInvoiceID == invoiceID
}

// Snapshot returns this edit viewed as a chain version
func (e *InvoiceEdit) Snapshot() VersionSnapshot {
	return VersionSnapshot{
		ID:              e.ID,
		Source:          VersionSourceEdit,
		Items:           e.Items,
		DepositReceived: e.DepositReceived,
		BalanceDue:      e.BalanceDue,
	}
}
