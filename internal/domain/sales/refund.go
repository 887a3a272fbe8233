package sales

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// RefundStatus is the explicit two-state machine of a refund
type RefundStatus string

const (
	RefundStatusDraft    RefundStatus = "DRAFT"
	RefundStatusRefunded RefundStatus = "REFUNDED"
)

// IsValid checks if the status is a valid RefundStatus
func (s RefundStatus) IsValid() bool {
	return s == RefundStatusDraft || s == RefundStatusRefunded
}

// String returns the string representation of RefundStatus
func (s RefundStatus) String() string {
	return string(s)
}

// IsTerminal returns true once the refund is issued
func (s RefundStatus) IsTerminal() bool {
	return s == RefundStatusRefunded
}

// Refund is a two-state document: DRAFT while editable, REFUNDED once
// finalized. It optionally back-references the credit note it settles.
type Refund struct {
	shared.BaseAggregateRoot
	Number       string       `json:"number"`
	CustomerID   uuid.UUID    `json:"customerId"`
	SalesRepID   uuid.UUID    `json:"salesRepId"`
	CreditNoteID *uuid.UUID   `json:"creditNoteId,omitempty"`
	Items        []LineItem   `json:"items"`
	Signature    string       `json:"signature,omitempty"`
	Status       RefundStatus `json:"status"`
}

// NewRefund creates a refund, optionally derived from a credit note
func NewRefund(number string, customerID, salesRepID uuid.UUID, creditNoteID *uuid.UUID, items []LineItem, signature string, saveDraft bool) (*Refund, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Refund number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if salesRepID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALES_REP", "Sales representative ID cannot be empty")
	}

	status := RefundStatusRefunded
	if saveDraft {
		status = RefundStatusDraft
	}

	return &Refund{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		CustomerID:        customerID,
		SalesRepID:        salesRepID,
		CreditNoteID:      creditNoteID,
		Items:             items,
		Signature:         signature,
		Status:            status,
	}, nil
}

// Update re-edits a draft or finalizes it. Fails once the refund is issued.
func (r *Refund) Update(items []LineItem, signature string, saveDraft bool) error {
	if r.Status.IsTerminal() {
		return ErrDocumentFinalized
	}
	r.Items = items
	r.Signature = signature
	if !saveDraft {
		r.Status = RefundStatusRefunded
	}
	r.Touch()
	return nil
}
