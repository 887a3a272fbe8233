package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/sales/acl"
	"github.com/retailpos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RefundService manages the two-state refund lifecycle
type RefundService struct {
	refunds sales.RefundRepository
	notes   sales.CreditNoteRepository
	parties partyValidator
	numbers *sales.ReferenceGenerator
	logger  *zap.Logger
}

// NewRefundService creates a new RefundService
func NewRefundService(
	refunds sales.RefundRepository,
	notes sales.CreditNoteRepository,
	directory acl.PartyDirectory,
	logger *zap.Logger,
) *RefundService {
	return &RefundService{
		refunds: refunds,
		notes:   notes,
		parties: partyValidator{directory: directory},
		numbers: sales.NewReferenceGenerator(refunds.NumberExists),
		logger:  logger,
	}
}

// Create creates a refund. When the refund references a credit note, the
// note must exist.
func (s *RefundService) Create(ctx context.Context, req RefundRequest) (*sales.Refund, error) {
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
	if req.CreditNoteID != nil {
		note, err := s.notes.FindByID(ctx, *req.CreditNoteID)
		if err != nil {
			return nil, fmt.Errorf("find credit note: %w", err)
		}
		if note == nil {
			return nil, shared.NewDomainError("CREDIT_NOTE_NOT_FOUND", "Referenced credit note does not exist")
		}
	}

	number, err := s.numbers.Generate(ctx, sales.PrefixRefund)
	if err != nil {
		return nil, err
	}

	refund, err := sales.NewRefund(number, req.CustomerID, req.SalesRepID, req.CreditNoteID, items, req.Signature, req.SaveDraft)
	if err != nil {
		return nil, err
	}

	if err := s.refunds.Save(ctx, refund); err != nil {
		if errors.Is(err, sales.ErrDuplicateKey) {
			return nil, ErrNumberConflict
		}
		return nil, fmt.Errorf("save refund: %w", err)
	}

	s.logger.Info("refund created",
		zap.String("number", refund.Number),
		zap.String("status", refund.Status.String()),
	)
	return refund, nil
}

// Update re-edits a draft or finalizes it. Writes against an issued refund
// fail.
func (s *RefundService) Update(ctx context.Context, id uuid.UUID, req RefundRequest) (*sales.Refund, error) {
	refund, err := s.refunds.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find refund: %w", err)
	}
	if refund == nil {
		return nil, shared.NewDomainError("REFUND_NOT_FOUND", "Refund does not exist")
	}

	items, err := sales.NormalizeItems(req.Items)
	if err != nil {
		return nil, err
	}

	if err := refund.Update(items, req.Signature, req.SaveDraft); err != nil {
		return nil, err
	}

	if err := s.refunds.Update(ctx, refund); err != nil {
		return nil, fmt.Errorf("update refund: %w", err)
	}

	s.logger.Info("refund updated",
		zap.String("number", refund.Number),
		zap.String("status", refund.Status.String()),
	)
	return refund, nil
}

// Get returns a refund by id
func (s *RefundService) Get(ctx context.Context, id uuid.UUID) (*sales.Refund, error) {
	refund, err := s.refunds.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find refund: %w", err)
	}
	if refund == nil {
		return nil, shared.NewDomainError("REFUND_NOT_FOUND", "Refund does not exist")
	}
	return refund, nil
}
