package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/sales/acl"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// ErrNumberConflict surfaces when the persisted unique constraint rejects a
// generated document number after the advisory pre-filter passed
var ErrNumberConflict = shared.NewDomainError("GENERATION_EXHAUSTED", "Document number collided at the store")

// InvoiceService manages base invoices and their append-only edit chains
type InvoiceService struct {
	invoices sales.InvoiceRepository
	edits    sales.InvoiceEditRepository
	parties  partyValidator
	numbers  *sales.ReferenceGenerator
	logger   *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoices sales.InvoiceRepository,
	edits sales.InvoiceEditRepository,
	directory acl.PartyDirectory,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoices: invoices,
		edits:    edits,
		parties:  partyValidator{directory: directory},
		numbers:  sales.NewReferenceGenerator(invoices.NumberExists),
		logger:   logger,
	}
}

// CreateInvoice validates the request, derives the initial snapshot and
// persists the base invoice. All validation happens before any write.
func (s *InvoiceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*sales.Invoice, error) {
	items, err := sales.NormalizeItems(req.Items)
	if err != nil {
		return nil, err
	}
	if err := s.parties.requireCustomer(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	if err := s.parties.requireSalesRep(ctx, req.SalesRepID); err != nil {
		return nil, err
	}

	number, err := s.numbers.Generate(ctx, sales.PrefixInvoice)
	if err != nil {
		return nil, err
	}

	inv, err := sales.NewInvoice(number, req.CustomerID, req.SalesRepID, req.PaymentTerms, items, valueobject.NewMoneyFromFloat(req.Deposit))
	if err != nil {
		return nil, err
	}

	if err := s.invoices.Save(ctx, inv); err != nil {
		if errors.Is(err, sales.ErrDuplicateKey) {
			return nil, ErrNumberConflict
		}
		return nil, fmt.Errorf("save invoice: %w", err)
	}

	s.logger.Info("invoice created",
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("invoice_id", inv.ID.String()),
		zap.String("status", inv.Status.String()),
	)
	return inv, nil
}

// CreateEdit appends a new immutable edit to the invoice's chain: normalize,
// vet the deposit change against the current head, recompute financials,
// persist the edit, then link it from the base invoice.
//
// The edit insert and the chain update are two separate writes with no
// surrounding transaction. A crash between them leaves the edit persisted but
// unlinked; that gap is accepted and left to offline reconciliation.
func (s *InvoiceService) CreateEdit(ctx context.Context, req CreateEditRequest) (*sales.InvoiceEdit, error) {
	items, err := sales.NormalizeItems(req.Items)
	if err != nil {
		return nil, err
	}

	inv, err := s.invoices.FindByID(ctx, req.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("find invoice: %w", err)
	}
	if inv == nil {
		return nil, shared.NewDomainError("INVOICE_NOT_FOUND", "Invoice does not exist")
	}

	head, err := s.headSnapshot(ctx, inv)
	if err != nil {
		return nil, err
	}

	edit, err := sales.NewInvoiceEdit(inv, head, items, valueobject.NewMoneyFromFloat(req.Deposit))
	if err != nil {
		return nil, err
	}

	if err := s.edits.Save(ctx, edit); err != nil {
		return nil, fmt.Errorf("save edit: %w", err)
	}

	inv.AppendEdit(edit.ID)
	if err := s.invoices.UpdateChain(ctx, inv); err != nil {
		// The edit row exists but is not yet linked from the base
		// invoice. Surface the failure; reconciliation is out of band.
		s.logger.Error("edit persisted but chain update failed",
			zap.String("invoice_id", inv.ID.String()),
			zap.String("edit_id", edit.ID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("link edit to invoice: %w", err)
	}

	s.logger.Info("invoice edit appended",
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("edit_id", edit.ID.String()),
		zap.Int("edit_count", inv.EditCount),
		zap.String("status", edit.Status.String()),
	)
	return edit, nil
}

// GetCurrent returns the invoice with the head of its chain: the most recent
// edit, or just the base document if no edit exists
func (s *InvoiceService) GetCurrent(ctx context.Context, invoiceID uuid.UUID) (*CurrentInvoiceView, error) {
	inv, err := s.invoices.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("find invoice: %w", err)
	}
	if inv == nil {
		return nil, shared.NewDomainError("INVOICE_NOT_FOUND", "Invoice does not exist")
	}

	view := &CurrentInvoiceView{Invoice: inv}
	if headID, ok := inv.HeadEditID(); ok {
		edit, err := s.edits.FindByID(ctx, headID)
		if err != nil {
			return nil, fmt.Errorf("find head edit: %w", err)
		}
		view.Current = edit
	}
	return view, nil
}

// ListEdits returns the invoice's chain in creation order for audit display
func (s *InvoiceService) ListEdits(ctx context.Context, invoiceID uuid.UUID) ([]sales.InvoiceEdit, error) {
	inv, err := s.invoices.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("find invoice: %w", err)
	}
	if inv == nil {
		return nil, shared.NewDomainError("INVOICE_NOT_FOUND", "Invoice does not exist")
	}
	return s.edits.FindByInvoice(ctx, inv.ID)
}

// ListInvoices returns a page of base invoices
func (s *InvoiceService) ListInvoices(ctx context.Context, filter shared.Filter) (shared.Paginated[sales.Invoice], error) {
	invoices, err := s.invoices.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[sales.Invoice]{}, fmt.Errorf("list invoices: %w", err)
	}
	total, err := s.invoices.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[sales.Invoice]{}, fmt.Errorf("count invoices: %w", err)
	}
	return shared.NewPaginated(invoices, total, filter.Page, filter.PageSize), nil
}

// headSnapshot resolves the current version of the chain: the latest edit, or
// the base invoice when the chain is empty
func (s *InvoiceService) headSnapshot(ctx context.Context, inv *sales.Invoice) (sales.VersionSnapshot, error) {
	headID, ok := inv.HeadEditID()
	if !ok {
		return inv.Snapshot(), nil
	}
	edit, err := s.edits.FindByID(ctx, headID)
	if err != nil {
		return sales.VersionSnapshot{}, fmt.Errorf("find head edit: %w", err)
	}
	if edit == nil {
		return sales.VersionSnapshot{}, shared.NewDomainError("CHAIN_BROKEN", "Head edit referenced by invoice is missing")
	}
	return edit.Snapshot(), nil
}
