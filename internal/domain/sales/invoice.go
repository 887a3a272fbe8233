package sales

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
)

// Invoice is the base invoice aggregate root. Its identity fields and the
// initial financial snapshot are written once and never modified; corrections
// happen by appending InvoiceEdit records to its chain. Only EditIDs and
// EditCount mutate, and only by appending.
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber   string            `json:"invoiceNumber"`
	CustomerID      uuid.UUID         `json:"customerId"`
	SalesRepID      uuid.UUID         `json:"salesRep"`
	PaymentTerms    string            `json:"paymentTerms"`
	Items           []LineItem        `json:"items"`
	Subtotal        valueobject.Money `json:"subtotal"`
	Tax             valueobject.Money `json:"tax"`
	Total           valueobject.Money `json:"total"`
	DepositReceived valueobject.Money `json:"depositReceived"`
	BalanceDue      valueobject.Money `json:"balanceDue"`
	Due             valueobject.Money `json:"due"`
	Status          PaymentStatus     `json:"status"`

	// Append-only chain bookkeeping. EditIDs is ordered by creation;
	// the head of the chain is the last element.
	EditIDs   []uuid.UUID `json:"editIds"`
	EditCount int         `json:"editCount"`
}

// NewInvoice creates a base invoice with its initial snapshot computed from
// the given items and deposit
func NewInvoice(invoiceNumber string, customerID, salesRepID uuid.UUID, paymentTerms string, items []LineItem, deposit valueobject.Money) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if salesRepID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALES_REP", "Sales representative ID cannot be empty")
	}
	if deposit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DEPOSIT", "Deposit cannot be negative")
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     invoiceNumber,
		CustomerID:        customerID,
		SalesRepID:        salesRepID,
		PaymentTerms:      paymentTerms,
		Items:             items,
		EditIDs:           make([]uuid.UUID, 0),
	}
	inv.applySummary(Calculate(items, deposit))
	return inv, nil
}

func (inv *Invoice) applySummary(s FinancialSummary) {
	inv.Subtotal = s.Subtotal
	inv.Tax = s.Tax
	inv.Total = s.Total
	inv.DepositReceived = s.DepositReceived
	inv.BalanceDue = s.BalanceDue
	inv.Due = s.Due
	inv.Status = s.Status
}

// AppendEdit records a newly persisted edit at the head of the chain
func (inv *Invoice) AppendEdit(editID uuid.UUID) {
	inv.EditIDs = append(inv.EditIDs, editID)
	inv.EditCount++
	inv.Touch()
}

// HasEdits reports whether any edit has been appended
func (inv *Invoice) HasEdits() bool {
	return len(inv.EditIDs) > 0
}

// HeadEditID returns the id of the most recent edit, if any
func (inv *Invoice) HeadEditID() (uuid.UUID, bool) {
	if len(inv.EditIDs) == 0 {
		return uuid.Nil, false
	}
	return inv.EditIDs[len(inv.EditIDs)-1], true
}

// Snapshot returns the base invoice viewed as a chain version
func (inv *Invoice) Snapshot() VersionSnapshot {
	return VersionSnapshot{
		ID:              inv.ID,
		Source:          VersionSourceInvoice,
		Items:           inv.Items,
		DepositReceived: inv.DepositReceived,
		BalanceDue:      inv.BalanceDue,
	}
}
