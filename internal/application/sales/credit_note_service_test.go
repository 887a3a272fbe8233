package sales

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/sales/acl"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreditNoteService(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()
	salesRepID := uuid.New()

	request := func(saveDraft bool) CreditNoteRequest {
		return CreditNoteRequest{
			CustomerID: customerID,
			SalesRepID: salesRepID,
			Products:   testItems(),
			SaveDraft:  saveDraft,
		}
	}

	t.Run("create draft", func(t *testing.T) {
		notes := new(MockCreditNoteRepository)
		directory := new(MockPartyDirectory)
		svc := NewCreditNoteService(notes, directory, zap.NewNop())

		directory.On("FindCustomer", ctx, customerID).Return(&acl.CustomerRef{ID: customerID}, nil)
		directory.On("FindUser", ctx, salesRepID).Return(salesRepRef(salesRepID), nil)
		notes.On("NumberExists", ctx, mock.AnythingOfType("string")).Return(false, nil)
		notes.On("Save", ctx, mock.AnythingOfType("*sales.CreditNote")).Return(nil)

		note, err := svc.Create(ctx, request(true))
		require.NoError(t, err)

		assert.Equal(t, sales.CreditNoteStatusDraft, note.Status)
		assert.Regexp(t, `^CRN-[0-9A-F]{4}-[0-9A-F]{4}$`, note.Number)
	})

	t.Run("create finalized", func(t *testing.T) {
		notes := new(MockCreditNoteRepository)
		directory := new(MockPartyDirectory)
		svc := NewCreditNoteService(notes, directory, zap.NewNop())

		directory.On("FindCustomer", ctx, customerID).Return(&acl.CustomerRef{ID: customerID}, nil)
		directory.On("FindUser", ctx, salesRepID).Return(salesRepRef(salesRepID), nil)
		notes.On("NumberExists", ctx, mock.AnythingOfType("string")).Return(false, nil)
		notes.On("Save", ctx, mock.AnythingOfType("*sales.CreditNote")).Return(nil)

		note, err := svc.Create(ctx, request(false))
		require.NoError(t, err)
		assert.Equal(t, sales.CreditNoteStatusApproved, note.Status)
	})

	t.Run("update finalizes a draft", func(t *testing.T) {
		notes := new(MockCreditNoteRepository)
		directory := new(MockPartyDirectory)
		svc := NewCreditNoteService(notes, directory, zap.NewNop())

		items, err := sales.NormalizeItems(testItems())
		require.NoError(t, err)
		draft, err := sales.NewCreditNote("CRN-AAAA-0001", customerID, salesRepID, items, "", true)
		require.NoError(t, err)

		notes.On("FindByID", ctx, draft.ID).Return(draft, nil)
		notes.On("Update", ctx, draft).Return(nil)

		updated, err := svc.Update(ctx, draft.ID, request(false))
		require.NoError(t, err)
		assert.Equal(t, sales.CreditNoteStatusApproved, updated.Status)
	})

	t.Run("update of an approved note is forbidden", func(t *testing.T) {
		notes := new(MockCreditNoteRepository)
		directory := new(MockPartyDirectory)
		svc := NewCreditNoteService(notes, directory, zap.NewNop())

		items, err := sales.NormalizeItems(testItems())
		require.NoError(t, err)
		approved, err := sales.NewCreditNote("CRN-AAAA-0002", customerID, salesRepID, items, "", false)
		require.NoError(t, err)

		notes.On("FindByID", ctx, approved.ID).Return(approved, nil)

		_, err = svc.Update(ctx, approved.ID, request(true))
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "FORBIDDEN", derr.Code)
		notes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("update of an unknown note", func(t *testing.T) {
		notes := new(MockCreditNoteRepository)
		svc := NewCreditNoteService(notes, new(MockPartyDirectory), zap.NewNop())

		id := uuid.New()
		notes.On("FindByID", ctx, id).Return(nil, nil)

		_, err := svc.Update(ctx, id, request(true))
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "CREDIT_NOTE_NOT_FOUND", derr.Code)
	})
}

func TestRefundService(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()
	salesRepID := uuid.New()

	request := func(noteID *uuid.UUID, saveDraft bool) RefundRequest {
		return RefundRequest{
			CustomerID:   customerID,
			SalesRepID:   salesRepID,
			CreditNoteID: noteID,
			Items:        testItems(),
			SaveDraft:    saveDraft,
		}
	}

	t.Run("create from credit note", func(t *testing.T) {
		refunds := new(MockRefundRepository)
		notes := new(MockCreditNoteRepository)
		directory := new(MockPartyDirectory)
		svc := NewRefundService(refunds, notes, directory, zap.NewNop())

		items, err := sales.NormalizeItems(testItems())
		require.NoError(t, err)
		note, err := sales.NewCreditNote("CRN-BBBB-0001", customerID, salesRepID, items, "", false)
		require.NoError(t, err)

		directory.On("FindCustomer", ctx, customerID).Return(&acl.CustomerRef{ID: customerID}, nil)
		directory.On("FindUser", ctx, salesRepID).Return(salesRepRef(salesRepID), nil)
		notes.On("FindByID", ctx, note.ID).Return(note, nil)
		refunds.On("NumberExists", ctx, mock.AnythingOfType("string")).Return(false, nil)
		refunds.On("Save", ctx, mock.AnythingOfType("*sales.Refund")).Return(nil)

		refund, err := svc.Create(ctx, request(&note.ID, false))
		require.NoError(t, err)

		assert.Equal(t, sales.RefundStatusRefunded, refund.Status)
		require.NotNil(t, refund.CreditNoteID)
		assert.Equal(t, note.ID, *refund.CreditNoteID)
		assert.Regexp(t, `^RFD-[0-9A-F]{4}-[0-9A-F]{4}$`, refund.Number)
	})

	t.Run("create rejects a dangling credit note reference", func(t *testing.T) {
		refunds := new(MockRefundRepository)
		notes := new(MockCreditNoteRepository)
		directory := new(MockPartyDirectory)
		svc := NewRefundService(refunds, notes, directory, zap.NewNop())

		noteID := uuid.New()
		directory.On("FindCustomer", ctx, customerID).Return(&acl.CustomerRef{ID: customerID}, nil)
		directory.On("FindUser", ctx, salesRepID).Return(salesRepRef(salesRepID), nil)
		notes.On("FindByID", ctx, noteID).Return(nil, nil)

		_, err := svc.Create(ctx, request(&noteID, true))
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "CREDIT_NOTE_NOT_FOUND", derr.Code)
		refunds.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("create standalone draft", func(t *testing.T) {
		refunds := new(MockRefundRepository)
		notes := new(MockCreditNoteRepository)
		directory := new(MockPartyDirectory)
		svc := NewRefundService(refunds, notes, directory, zap.NewNop())

		directory.On("FindCustomer", ctx, customerID).Return(&acl.CustomerRef{ID: customerID}, nil)
		directory.On("FindUser", ctx, salesRepID).Return(salesRepRef(salesRepID), nil)
		refunds.On("NumberExists", ctx, mock.AnythingOfType("string")).Return(false, nil)
		refunds.On("Save", ctx, mock.AnythingOfType("*sales.Refund")).Return(nil)

		refund, err := svc.Create(ctx, request(nil, true))
		require.NoError(t, err)
		assert.Equal(t, sales.RefundStatusDraft, refund.Status)
		assert.Nil(t, refund.CreditNoteID)
		notes.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("update of an issued refund is forbidden", func(t *testing.T) {
		refunds := new(MockRefundRepository)
		svc := NewRefundService(refunds, new(MockCreditNoteRepository), new(MockPartyDirectory), zap.NewNop())

		items, err := sales.NormalizeItems(testItems())
		require.NoError(t, err)
		issued, err := sales.NewRefund("RFD-CCCC-0001", customerID, salesRepID, nil, items, "", false)
		require.NoError(t, err)

		refunds.On("FindByID", ctx, issued.ID).Return(issued, nil)

		_, err = svc.Update(ctx, issued.ID, request(nil, true))
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "FORBIDDEN", derr.Code)
		refunds.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
