package sales

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type receiptFixture struct {
	invoice *sales.Invoice
	edit    *sales.InvoiceEdit
}

func newReceiptFixture(t *testing.T) receiptFixture {
	t.Helper()
	inv := newInvoiceFixture(t, 100)
	items, err := sales.NormalizeItems(testItems())
	require.NoError(t, err)
	edit, err := sales.NewInvoiceEdit(inv, inv.Snapshot(), items, valueobject.NewMoneyFromFloat(150))
	require.NoError(t, err)
	inv.AppendEdit(edit.ID)
	return receiptFixture{invoice: inv, edit: edit}
}

func TestGenerateFromInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the receipt for a deposit-adding edit", func(t *testing.T) {
		receipts := new(MockReceiptRepository)
		invoices := new(MockInvoiceRepository)
		edits := new(MockInvoiceEditRepository)
		svc := NewReceiptService(receipts, invoices, edits, zap.NewNop())

		fx := newReceiptFixture(t)
		invoices.On("FindByID", ctx, fx.invoice.ID).Return(fx.invoice, nil)
		edits.On("FindByID", ctx, fx.edit.ID).Return(fx.edit, nil)
		receipts.On("FindByInvoiceEdit", ctx, fx.invoice.ID, fx.edit.ID).Return(nil, nil)
		receipts.On("NumberExists", ctx, mock.AnythingOfType("string")).Return(false, nil)
		receipts.On("Save", ctx, mock.AnythingOfType("*sales.Receipt")).Return(nil)

		result, err := svc.GenerateFromInvoice(ctx, GenerateReceiptRequest{
			InvoiceID: fx.invoice.ID,
			EditID:    fx.edit.ID,
			Signature: "sig",
		})
		require.NoError(t, err)

		assert.False(t, result.AlreadyExists)
		assert.Equal(t, sales.ReceiptStatusCompleted, result.Receipt.Status)
		assert.True(t, result.Receipt.Print)
		assert.True(t, result.Receipt.Total.Equal(fx.edit.Total))
		receipts.AssertExpectations(t)
	})

	t.Run("second call returns the existing receipt unchanged", func(t *testing.T) {
		receipts := new(MockReceiptRepository)
		invoices := new(MockInvoiceRepository)
		edits := new(MockInvoiceEditRepository)
		svc := NewReceiptService(receipts, invoices, edits, zap.NewNop())

		fx := newReceiptFixture(t)
		existing, err := sales.NewReceiptFromEdit("RCP-EXIS-T001", fx.edit, "")
		require.NoError(t, err)

		invoices.On("FindByID", ctx, fx.invoice.ID).Return(fx.invoice, nil)
		edits.On("FindByID", ctx, fx.edit.ID).Return(fx.edit, nil)
		receipts.On("FindByInvoiceEdit", ctx, fx.invoice.ID, fx.edit.ID).Return(existing, nil)

		result, err := svc.GenerateFromInvoice(ctx, GenerateReceiptRequest{
			InvoiceID: fx.invoice.ID,
			EditID:    fx.edit.ID,
		})
		require.NoError(t, err)

		assert.True(t, result.AlreadyExists)
		assert.Equal(t, "RCP-EXIS-T001", result.Receipt.ReceiptNumber)
		receipts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("losing a concurrent race recovers the winner", func(t *testing.T) {
		receipts := new(MockReceiptRepository)
		invoices := new(MockInvoiceRepository)
		edits := new(MockInvoiceEditRepository)
		svc := NewReceiptService(receipts, invoices, edits, zap.NewNop())

		fx := newReceiptFixture(t)
		winner, err := sales.NewReceiptFromEdit("RCP-WINN-ER01", fx.edit, "")
		require.NoError(t, err)

		invoices.On("FindByID", ctx, fx.invoice.ID).Return(fx.invoice, nil)
		edits.On("FindByID", ctx, fx.edit.ID).Return(fx.edit, nil)
		// optimistic lookup sees nothing, insert hits the unique
		// constraint, re-read finds the winner
		receipts.On("FindByInvoiceEdit", ctx, fx.invoice.ID, fx.edit.ID).Return(nil, nil).Once()
		receipts.On("NumberExists", ctx, mock.AnythingOfType("string")).Return(false, nil)
		receipts.On("Save", ctx, mock.AnythingOfType("*sales.Receipt")).Return(sales.ErrDuplicateKey)
		receipts.On("FindByInvoiceEdit", ctx, fx.invoice.ID, fx.edit.ID).Return(winner, nil).Once()

		result, err := svc.GenerateFromInvoice(ctx, GenerateReceiptRequest{
			InvoiceID: fx.invoice.ID,
			EditID:    fx.edit.ID,
		})
		require.NoError(t, err)

		assert.True(t, result.AlreadyExists)
		assert.Equal(t, "RCP-WINN-ER01", result.Receipt.ReceiptNumber)
		receipts.AssertExpectations(t)
	})

	t.Run("rejects an edit from another invoice", func(t *testing.T) {
		receipts := new(MockReceiptRepository)
		invoices := new(MockInvoiceRepository)
		edits := new(MockInvoiceEditRepository)
		svc := NewReceiptService(receipts, invoices, edits, zap.NewNop())

		fx := newReceiptFixture(t)
		other := newInvoiceFixture(t, 0)
		invoices.On("FindByID", ctx, other.ID).Return(other, nil)
		edits.On("FindByID", ctx, fx.edit.ID).Return(fx.edit, nil)

		_, err := svc.GenerateFromInvoice(ctx, GenerateReceiptRequest{
			InvoiceID: other.ID,
			EditID:    fx.edit.ID,
		})
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "EDIT_MISMATCH", derr.Code)
	})

	t.Run("rejects a zero-deposit edit", func(t *testing.T) {
		receipts := new(MockReceiptRepository)
		invoices := new(MockInvoiceRepository)
		edits := new(MockInvoiceEditRepository)
		svc := NewReceiptService(receipts, invoices, edits, zap.NewNop())

		inv := newInvoiceFixture(t, 100)
		items, err := sales.NormalizeItems(testItems())
		require.NoError(t, err)
		// same deposit, items changed: DepositAdded is zero
		edit, err := sales.NewInvoiceEdit(inv, inv.Snapshot(), items, valueobject.NewMoneyFromFloat(100))
		require.NoError(t, err)
		inv.AppendEdit(edit.ID)

		invoices.On("FindByID", ctx, inv.ID).Return(inv, nil)
		edits.On("FindByID", ctx, edit.ID).Return(edit, nil)

		_, err = svc.GenerateFromInvoice(ctx, GenerateReceiptRequest{InvoiceID: inv.ID, EditID: edit.ID})
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "NO_DEPOSIT_ADDED", derr.Code)
	})

	t.Run("unknown edit", func(t *testing.T) {
		receipts := new(MockReceiptRepository)
		invoices := new(MockInvoiceRepository)
		edits := new(MockInvoiceEditRepository)
		svc := NewReceiptService(receipts, invoices, edits, zap.NewNop())

		inv := newInvoiceFixture(t, 0)
		editID := uuid.New()
		invoices.On("FindByID", ctx, inv.ID).Return(inv, nil)
		edits.On("FindByID", ctx, editID).Return(nil, nil)

		_, err := svc.GenerateFromInvoice(ctx, GenerateReceiptRequest{InvoiceID: inv.ID, EditID: editID})
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "EDIT_NOT_FOUND", derr.Code)
	})
}

func TestCreateCashReceipt(t *testing.T) {
	ctx := context.Background()

	t.Run("creates standalone receipt", func(t *testing.T) {
		receipts := new(MockReceiptRepository)
		svc := NewReceiptService(receipts, new(MockInvoiceRepository), new(MockInvoiceEditRepository), zap.NewNop())

		receipts.On("NumberExists", ctx, mock.AnythingOfType("string")).Return(false, nil)
		receipts.On("Save", ctx, mock.AnythingOfType("*sales.Receipt")).Return(nil)

		receipt, err := svc.CreateCashReceipt(ctx, CreateCashReceiptRequest{
			Items:   testItems(),
			Deposit: 225,
		})
		require.NoError(t, err)

		assert.Equal(t, sales.SaleTypeCash, receipt.SaleType)
		assert.Nil(t, receipt.InvoiceID)
		assert.Equal(t, "225.00", receipt.SubtotalAfterDiscount.String())
		assert.Equal(t, "28.13", receipt.Tax.String())
		assert.Equal(t, "253.13", receipt.Total.String())
	})

	t.Run("item validation happens before number generation", func(t *testing.T) {
		receipts := new(MockReceiptRepository)
		svc := NewReceiptService(receipts, new(MockInvoiceRepository), new(MockInvoiceEditRepository), zap.NewNop())

		_, err := svc.CreateCashReceipt(ctx, CreateCashReceiptRequest{
			Items: []sales.RawLineItem{{ProductCode: "", Quantity: 1, Price: 1}},
		})
		require.Error(t, err)
		receipts.AssertNotCalled(t, "NumberExists", mock.Anything, mock.Anything)
	})
}
