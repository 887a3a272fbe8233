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

// CreditNoteService manages the two-state credit note lifecycle
type CreditNoteService struct {
	notes   sales.CreditNoteRepository
	parties partyValidator
	numbers *sales.ReferenceGenerator
	logger  *zap.Logger
}

// NewCreditNoteService creates a new CreditNoteService
func NewCreditNoteService(notes sales.CreditNoteRepository, directory acl.PartyDirectory, logger *zap.Logger) *CreditNoteService {
	return &CreditNoteService{
		notes:   notes,
		parties: partyValidator{directory: directory},
		numbers: sales.NewReferenceGenerator(notes.NumberExists),
		logger:  logger,
	}
}

// Create creates a credit note; SaveDraft=false finalizes it immediately
func (s *CreditNoteService) Create(ctx context.Context, req CreditNoteRequest) (*sales.CreditNote, error) {
	products, err := sales.NormalizeItems(req.Products)
	if err != nil {
		return nil, err
	}
	if err := s.parties.requireCustomer(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	if err := s.parties.requireSalesRep(ctx, req.SalesRepID); err != nil {
		return nil, err
	}

	number, err := s.numbers.Generate(ctx, sales.PrefixCreditNote)
	if err != nil {
		return nil, err
	}

	note, err := sales.NewCreditNote(number, req.CustomerID, req.SalesRepID, products, req.Signature, req.SaveDraft)
	if err != nil {
		return nil, err
	}

	if err := s.notes.Save(ctx, note); err != nil {
		if errors.Is(err, sales.ErrDuplicateKey) {
			return nil, ErrNumberConflict
		}
		return nil, fmt.Errorf("save credit note: %w", err)
	}

	s.logger.Info("credit note created",
		zap.String("number", note.Number),
		zap.String("status", note.Status.String()),
	)
	return note, nil
}

// Update re-edits a draft or finalizes it. Writes against an approved credit
// note fail.
func (s *CreditNoteService) Update(ctx context.Context, id uuid.UUID, req CreditNoteRequest) (*sales.CreditNote, error) {
	note, err := s.notes.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find credit note: %w", err)
	}
	if note == nil {
		return nil, shared.NewDomainError("CREDIT_NOTE_NOT_FOUND", "Credit note does not exist")
	}

	products, err := sales.NormalizeItems(req.Products)
	if err != nil {
		return nil, err
	}

	if err := note.Update(products, req.Signature, req.SaveDraft); err != nil {
		return nil, err
	}

	if err := s.notes.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("update credit note: %w", err)
	}

	s.logger.Info("credit note updated",
		zap.String("number", note.Number),
		zap.String("status", note.Status.String()),
	)
	return note, nil
}

// Get returns a credit note by id
func (s *CreditNoteService) Get(ctx context.Context, id uuid.UUID) (*sales.CreditNote, error) {
	note, err := s.notes.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find credit note: %w", err)
	}
	if note == nil {
		return nil, shared.NewDomainError("CREDIT_NOTE_NOT_FOUND", "Credit note does not exist")
	}
	return note, nil
}
