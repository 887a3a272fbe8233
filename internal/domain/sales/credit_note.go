package sales

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// CreditNoteStatus is the explicit two-state machine of a credit note
type CreditNoteStatus string

const (
	CreditNoteStatusDraft    CreditNoteStatus = "DRAFT"
	CreditNoteStatusApproved CreditNoteStatus = "APPROVED"
)

// IsValid checks if the status is a valid CreditNoteStatus
func (s CreditNoteStatus) IsValid() bool {
	return s == CreditNoteStatusDraft || s == CreditNoteStatusApproved
}

// String returns the string representation of CreditNoteStatus
func (s CreditNoteStatus) String() string {
	return string(s)
}

// IsTerminal returns true once the credit note is approved. The terminal
// state is absorbing: no further writes are allowed.
func (s CreditNoteStatus) IsTerminal() bool {
	return s == CreditNoteStatusApproved
}

// ErrDocumentFinalized rejects any write against a document that reached its
// terminal state
var ErrDocumentFinalized = shared.NewDomainError("FORBIDDEN", "Document has been finalized and can no longer be modified")

// CreditNote is a two-state document: DRAFT while editable, APPROVED once
// finalized. Each write carries a saveDraft flag; DRAFT→DRAFT is a re-edit,
// DRAFT→APPROVED finalizes.
type CreditNote struct {
	shared.BaseAggregateRoot
	Number     string           `json:"number"`
	CustomerID uuid.UUID        `json:"customerId"`
	SalesRepID uuid.UUID        `json:"salesRepId"`
	Products   []LineItem       `json:"products"`
	Signature  string           `json:"signature,omitempty"`
	Status     CreditNoteStatus `json:"status"`
}

// NewCreditNote creates a credit note. Initial state is always DRAFT unless
// the first write already finalizes it.
func NewCreditNote(number string, customerID, salesRepID uuid.UUID, products []LineItem, signature string, saveDraft bool) (*CreditNote, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Credit note number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if salesRepID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALES_REP", "Sales representative ID cannot be empty")
	}

	status := CreditNoteStatusApproved
	if saveDraft {
		status = CreditNoteStatusDraft
	}

	return &CreditNote{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		CustomerID:        customerID,
		SalesRepID:        salesRepID,
		Products:          products,
		Signature:         signature,
		Status:            status,
	}, nil
}

// Update re-edits a draft or finalizes it, depending on saveDraft. Fails once
// the credit note is approved.
func (cn *CreditNote) Update(products []LineItem, signature string, saveDraft bool) error {
	if cn.Status.IsTerminal() {
		return ErrDocumentFinalized
	}
	cn.Products = products
	cn.Signature = signature
	if !saveDraft {
		cn.Status = CreditNoteStatusApproved
	}
	cn.Touch()
	return nil
}
