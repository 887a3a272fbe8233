package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// ReceiptService creates standalone cash receipts and generates receipts
// from invoice edits
type ReceiptService struct {
	receipts sales.ReceiptRepository
	invoices sales.InvoiceRepository
	edits    sales.InvoiceEditRepository
	numbers  *sales.ReferenceGenerator
	logger   *zap.Logger
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(
	receipts sales.ReceiptRepository,
	invoices sales.InvoiceRepository,
	edits sales.InvoiceEditRepository,
	logger *zap.Logger,
) *ReceiptService {
	return &ReceiptService{
		receipts: receipts,
		invoices: invoices,
		edits:    edits,
		numbers:  sales.NewReferenceGenerator(receipts.NumberExists),
		logger:   logger,
	}
}

// CreateCashReceipt creates a receipt for a walk-in sale with no invoice
func (s *ReceiptService) CreateCashReceipt(ctx context.Context, req CreateCashReceiptRequest) (*sales.Receipt, error) {
	items, err := sales.NormalizeItems(req.Items)
	if err != nil {
		return nil, err
	}

	number, err := s.numbers.Generate(ctx, sales.PrefixReceipt)
	if err != nil {
		return nil, err
	}

	receipt, err := sales.NewCashReceipt(number, items, valueobject.NewMoneyFromFloat(req.Deposit), req.Signature, req.Draft)
	if err != nil {
		return nil, err
	}

	if err := s.receipts.Save(ctx, receipt); err != nil {
		if errors.Is(err, sales.ErrDuplicateKey) {
			return nil, ErrNumberConflict
		}
		return nil, fmt.Errorf("save receipt: %w", err)
	}

	s.logger.Info("cash receipt created",
		zap.String("receipt_number", receipt.ReceiptNumber),
		zap.String("total", receipt.Total.String()),
	)
	return receipt, nil
}

// GenerateFromInvoice generates the receipt for an invoice edit. The
// operation is idempotent per (invoiceId, editId): a repeat call returns the
// existing receipt with AlreadyExists set instead of creating a duplicate.
//
// Preconditions, checked in order, each a hard failure if unmet:
//  1. the edit belongs to the invoice's chain,
//  2. the edit added a deposit,
//  3. no receipt exists yet for the pair (optimistic check; the partial
//     unique index is the authority under concurrency).
func (s *ReceiptService) GenerateFromInvoice(ctx context.Context, req GenerateReceiptRequest) (*GenerateReceiptResult, error) {
	inv, err := s.invoices.FindByID(ctx, req.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("find invoice: %w", err)
	}
	if inv == nil {
		return nil, shared.NewDomainError("INVOICE_NOT_FOUND", "Invoice does not exist")
	}

	edit, err := s.edits.FindByID(ctx, req.EditID)
	if err != nil {
		return nil, fmt.Errorf("find edit: %w", err)
	}
	if edit == nil {
		return nil, shared.NewDomainError("EDIT_NOT_FOUND", "Invoice edit does not exist")
	}
	if !edit.BelongsTo(inv.ID) {
		return nil, shared.NewDomainError("EDIT_MISMATCH", "Edit does not belong to the given invoice")
	}
	if !edit.DepositAdded.IsPositive() {
		return nil, shared.NewDomainError("NO_DEPOSIT_ADDED", "Edit did not add a deposit; nothing to receipt")
	}

	existing, err := s.receipts.FindByInvoiceEdit(ctx, inv.ID, edit.ID)
	if err != nil {
		return nil, fmt.Errorf("lookup existing receipt: %w", err)
	}
	if existing != nil {
		return &GenerateReceiptResult{Receipt: existing, AlreadyExists: true}, nil
	}

	number, err := s.numbers.Generate(ctx, sales.PrefixReceipt)
	if err != nil {
		return nil, err
	}

	receipt, err := sales.NewReceiptFromEdit(number, edit, req.Signature)
	if err != nil {
		return nil, err
	}

	if err := s.receipts.Save(ctx, receipt); err != nil {
		if errors.Is(err, sales.ErrDuplicateKey) {
			// A concurrent writer won the race on the
			// (invoice_id, invoice_edit_id) constraint. Recover by
			// returning the winner's receipt.
			return s.recoverExisting(ctx, inv.ID, edit.ID)
		}
		return nil, fmt.Errorf("save receipt: %w", err)
	}

	s.logger.Info("receipt generated from invoice edit",
		zap.String("receipt_number", receipt.ReceiptNumber),
		zap.String("invoice_id", inv.ID.String()),
		zap.String("edit_id", edit.ID.String()),
	)
	return &GenerateReceiptResult{Receipt: receipt}, nil
}

// GetReceipt returns a receipt by id
func (s *ReceiptService) GetReceipt(ctx context.Context, id uuid.UUID) (*sales.Receipt, error) {
	receipt, err := s.receipts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find receipt: %w", err)
	}
	if receipt == nil {
		return nil, shared.NewDomainError("RECEIPT_NOT_FOUND", "Receipt does not exist")
	}
	return receipt, nil
}

func (s *ReceiptService) recoverExisting(ctx context.Context, invoiceID, editID uuid.UUID) (*GenerateReceiptResult, error) {
	winner, err := s.receipts.FindByInvoiceEdit(ctx, invoiceID, editID)
	if err != nil {
		return nil, fmt.Errorf("re-read after duplicate key: %w", err)
	}
	if winner == nil {
		// The insert hit the unique constraint but the winner is not
		// readable; nothing safe to return.
		return nil, shared.NewDomainError("INTERNAL", "Receipt insert conflicted but no existing receipt was found")
	}
	s.logger.Info("receipt generation lost the race, returning winner",
		zap.String("receipt_number", winner.ReceiptNumber),
		zap.String("invoice_id", invoiceID.String()),
		zap.String("edit_id", editID.String()),
	)
	return &GenerateReceiptResult{Receipt: winner, AlreadyExists: true}, nil
}
