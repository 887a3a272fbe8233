package models

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
)

// InvoiceModel is the persistence model for the Invoice aggregate root. The
// financial columns are written at insert and never updated; chain writes
// touch only edit_ids and edit_count.
type InvoiceModel struct {
	AggregateModel
	InvoiceNumber   string            `gorm:"type:varchar(20);not null;uniqueIndex:idx_invoices_number"`
	CustomerID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	SalesRepID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	PaymentTerms    string            `gorm:"type:varchar(100)"`
	Items           LineItems         `gorm:"type:jsonb;not null;default:'[]'"`
	Subtotal        valueobject.Money `gorm:"type:decimal(18,4);not null"`
	Tax             valueobject.Money `gorm:"type:decimal(18,4);not null"`
	Total           valueobject.Money `gorm:"type:decimal(18,4);not null"`
	DepositReceived valueobject.Money `gorm:"type:decimal(18,4);not null"`
	BalanceDue      valueobject.Money `gorm:"type:decimal(18,4);not null"`
	Due             valueobject.Money `gorm:"type:decimal(18,4);not null"`
	Status          string            `gorm:"type:varchar(20);not null;index"`
	EditIDs         UUIDList          `gorm:"type:jsonb;not null;default:'[]'"`
	EditCount       int               `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() *sales.Invoice {
	return &sales.Invoice{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		InvoiceNumber:     m.InvoiceNumber,
		CustomerID:        m.CustomerID,
		SalesRepID:        m.SalesRepID,
		PaymentTerms:      m.PaymentTerms,
		Items:             m.Items,
		Subtotal:          m.Subtotal,
		Tax:               m.Tax,
		Total:             m.Total,
		DepositReceived:   m.DepositReceived,
		BalanceDue:        m.BalanceDue,
		Due:               m.Due,
		Status:            sales.PaymentStatus(m.Status),
		EditIDs:           m.EditIDs,
		EditCount:         m.EditCount,
	}
}

// FromDomain populates the persistence model from a domain Invoice
func (m *InvoiceModel) FromDomain(inv *sales.Invoice) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.InvoiceNumber = inv.InvoiceNumber
	m.CustomerID = inv.CustomerID
	m.SalesRepID = inv.SalesRepID
	m.PaymentTerms = inv.PaymentTerms
	m.Items = inv.Items
	m.Subtotal = inv.Subtotal
	m.Tax = inv.Tax
	m.Total = inv.Total
	m.DepositReceived = inv.DepositReceived
	m.BalanceDue = inv.BalanceDue
	m.Due = inv.Due
	m.Status = inv.Status.String()
	m.EditIDs = inv.EditIDs
	m.EditCount = inv.EditCount
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice
func InvoiceModelFromDomain(inv *sales.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// InvoiceEditModel is the persistence model for immutable invoice edits.
// Rows are insert-only.
type InvoiceEditModel struct {
	BaseModel
	InvoiceReference      string            `gorm:"type:varchar(20);not null"`
	BaseInvoiceID         uuid.UUID         `gorm:"type:uuid;not null;index"`
	PreviousVersionID     uuid.UUID         `gorm:"type:uuid;not null"`
	PreviousVersionSource string            `gorm:"type:varchar(10);not null"`
	Items                 LineItems         `gorm:"type:jsonb;not null;default:'[]'"`
	Subtotal              valueobject.Money `gorm:"type:decimal(18,4);not null"`
	Tax                   valueobject.Money `gorm:"type:decimal(18,4);not null"`
	Total                 valueobject.Money `gorm:"type:decimal(18,4);not null"`
	DepositReceived       valueobject.Money `gorm:"type:decimal(18,4);not null"`
	DepositAdded          valueobject.Money `gorm:"type:decimal(18,4);not null"`
	BalanceDue            valueobject.Money `gorm:"type:decimal(18,4);not null"`
	Due                   valueobject.Money `gorm:"type:decimal(18,4);not null"`
	Status                string            `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (InvoiceEditModel) TableName() string {
	return "invoice_edits"
}

// ToDomain converts the persistence model to a domain InvoiceEdit
func (m *InvoiceEditModel) ToDomain() *sales.InvoiceEdit {
	return &sales.InvoiceEdit{
		BaseEntity:            m.BaseModel.ToDomain(),
		InvoiceReference:      m.InvoiceReference,
		BaseInvoiceID:         m.BaseInvoiceID,
		PreviousVersionID:     m.PreviousVersionID,
		PreviousVersionSource: sales.VersionSource(m.PreviousVersionSource),
		Items:                 m.Items,
		Subtotal:              m.Subtotal,
		Tax:                   m.Tax,
		Total:                 m.Total,
		DepositReceived:       m.DepositReceived,
		DepositAdded:          m.DepositAdded,
		BalanceDue:            m.BalanceDue,
		Due:                   m.Due,
		Status:                sales.PaymentStatus(m.Status),
	}
}

// FromDomain populates the persistence model from a domain InvoiceEdit
func (m *InvoiceEditModel) FromDomain(edit *sales.InvoiceEdit) {
	m.FromDomainBaseEntity(edit.BaseEntity)
	m.InvoiceReference = edit.InvoiceReference
	m.BaseInvoiceID = edit.BaseInvoiceID
	m.PreviousVersionID = edit.PreviousVersionID
	m.PreviousVersionSource = edit.PreviousVersionSource.String()
	m.Items = edit.Items
	m.Subtotal = edit.Subtotal
	m.Tax = edit.Tax
	m.Total = edit.Total
	m.DepositReceived = edit.DepositReceived
	m.DepositAdded = edit.DepositAdded
	m.BalanceDue = edit.BalanceDue
	m.Due = edit.Due
	m.Status = edit.Status.String()
}

// InvoiceEditModelFromDomain creates a new persistence model from a domain InvoiceEdit
func InvoiceEditModelFromDomain(edit *sales.InvoiceEdit) *InvoiceEditModel {
	m := &InvoiceEditModel{}
	m.FromDomain(edit)
	return m
}

// ReceiptModel is the persistence model for receipts. The partial unique
// index over (invoice_id, invoice_edit_id) is the authoritative idempotency
// guard for receipt generation; cash receipts leave both columns NULL and
// are unaffected.
type ReceiptModel struct {
	AggregateModel
	ReceiptNumber          string            `gorm:"type:varchar(20);not null;uniqueIndex:idx_receipts_number"`
	SaleType               string            `gorm:"type:varchar(10);not null"`
	InvoiceID              *uuid.UUID        `gorm:"type:uuid;uniqueIndex:idx_receipts_invoice_edit,where:invoice_edit_id IS NOT NULL"`
	InvoiceEditID          *uuid.UUID        `gorm:"type:uuid;uniqueIndex:idx_receipts_invoice_edit,where:invoice_edit_id IS NOT NULL"`
	Items                  ReceiptItems      `gorm:"type:jsonb;not null;default:'[]'"`
	Deposit                valueobject.Money `gorm:"type:decimal(18,4);not null"`
	SubtotalBeforeDiscount valueobject.Money `gorm:"type:decimal(18,4);not null"`
	SubtotalAfterDiscount  valueobject.Money `gorm:"type:decimal(18,4);not null"`
	Tax                    valueobject.Money `gorm:"type:decimal(18,4);not null"`
	Total                  valueobject.Money `gorm:"type:decimal(18,4);not null"`
	Status                 string            `gorm:"type:varchar(20);not null"`
	Print                  bool              `gorm:"not null"`
	Signature              string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ReceiptModel) TableName() string {
	return "receipts"
}

// ToDomain converts the persistence model to a domain Receipt
func (m *ReceiptModel) ToDomain() *sales.Receipt {
	return &sales.Receipt{
		BaseAggregateRoot:      m.ToDomainAggregateRoot(),
		ReceiptNumber:          m.ReceiptNumber,
		SaleType:               sales.SaleType(m.SaleType),
		InvoiceID:              m.InvoiceID,
		InvoiceEditID:          m.InvoiceEditID,
		Items:                  m.Items,
		Deposit:                m.Deposit,
		SubtotalBeforeDiscount: m.SubtotalBeforeDiscount,
		SubtotalAfterDiscount:  m.SubtotalAfterDiscount,
		Tax:                    m.Tax,
		Total:                  m.Total,
		Status:                 sales.ReceiptStatus(m.Status),
		Print:                  m.Print,
		Signature:              m.Signature,
	}
}

// FromDomain populates the persistence model from a domain Receipt
func (m *ReceiptModel) FromDomain(receipt *sales.Receipt) {
	m.FromDomainAggregateRoot(receipt.BaseAggregateRoot)
	m.ReceiptNumber = receipt.ReceiptNumber
	m.SaleType = receipt.SaleType.String()
	m.InvoiceID = receipt.InvoiceID
	m.InvoiceEditID = receipt.InvoiceEditID
	m.Items = receipt.Items
	m.Deposit = receipt.Deposit
	m.SubtotalBeforeDiscount = receipt.SubtotalBeforeDiscount
	m.SubtotalAfterDiscount = receipt.SubtotalAfterDiscount
	m.Tax = receipt.Tax
	m.Total = receipt.Total
	m.Status = receipt.Status.String()
	m.Print = receipt.Print
	m.Signature = receipt.Signature
}

// ReceiptModelFromDomain creates a new persistence model from a domain Receipt
func ReceiptModelFromDomain(receipt *sales.Receipt) *ReceiptModel {
	m := &ReceiptModel{}
	m.FromDomain(receipt)
	return m
}

// CreditNoteModel is the persistence model for credit notes
type CreditNoteModel struct {
	AggregateModel
	Number     string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_credit_notes_number"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	SalesRepID uuid.UUID `gorm:"type:uuid;not null"`
	Products   LineItems `gorm:"type:jsonb;not null;default:'[]'"`
	Signature  string    `gorm:"type:text"`
	Status     string    `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (CreditNoteModel) TableName() string {
	return "credit_notes"
}

// ToDomain converts the persistence model to a domain CreditNote
func (m *CreditNoteModel) ToDomain() *sales.CreditNote {
	return &sales.CreditNote{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Number:            m.Number,
		CustomerID:        m.CustomerID,
		SalesRepID:        m.SalesRepID,
		Products:          m.Products,
		Signature:         m.Signature,
		Status:            sales.CreditNoteStatus(m.Status),
	}
}

// FromDomain populates the persistence model from a domain CreditNote
func (m *CreditNoteModel) FromDomain(note *sales.CreditNote) {
	m.FromDomainAggregateRoot(note.BaseAggregateRoot)
	m.Number = note.Number
	m.CustomerID = note.CustomerID
	m.SalesRepID = note.SalesRepID
	m.Products = note.Products
	m.Signature = note.Signature
	m.Status = note.Status.String()
}

// CreditNoteModelFromDomain creates a new persistence model from a domain CreditNote
func CreditNoteModelFromDomain(note *sales.CreditNote) *CreditNoteModel {
	m := &CreditNoteModel{}
	m.FromDomain(note)
	return m
}

// RefundModel is the persistence model for refunds
type RefundModel struct {
	AggregateModel
	Number       string     `gorm:"type:varchar(20);not null;uniqueIndex:idx_refunds_number"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	SalesRepID   uuid.UUID  `gorm:"type:uuid;not null"`
	CreditNoteID *uuid.UUID `gorm:"type:uuid;index"`
	Items        LineItems  `gorm:"type:jsonb;not null;default:'[]'"`
	Signature    string     `gorm:"type:text"`
	Status       string     `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (RefundModel) TableName() string {
	return "refunds"
}

// ToDomain converts the persistence model to a domain Refund
func (m *RefundModel) ToDomain() *sales.Refund {
	return &sales.Refund{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Number:            m.Number,
		CustomerID:        m.CustomerID,
		SalesRepID:        m.SalesRepID,
		CreditNoteID:      m.CreditNoteID,
		Items:             m.Items,
		Signature:         m.Signature,
		Status:            sales.RefundStatus(m.Status),
	}
}

// FromDomain populates the persistence model from a domain Refund
func (m *RefundModel) FromDomain(refund *sales.Refund) {
	m.FromDomainAggregateRoot(refund.BaseAggregateRoot)
	m.Number = refund.Number
	m.CustomerID = refund.CustomerID
	m.SalesRepID = refund.SalesRepID
	m.CreditNoteID = refund.CreditNoteID
	m.Items = refund.Items
	m.Signature = refund.Signature
	m.Status = refund.Status.String()
}

// RefundModelFromDomain creates a new persistence model from a domain Refund
func RefundModelFromDomain(refund *sales.Refund) *RefundModel {
	m := &RefundModel{}
	m.FromDomain(refund)
	return m
}
