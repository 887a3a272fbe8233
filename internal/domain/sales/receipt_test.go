package sales

import (
	"testing"

	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCashReceipt(t *testing.T) {
	items := mustItems(t, []RawLineItem{
		{ProductCode: "SKU-1", Quantity: 2, Price: 50, Discount: 10},
		{ProductCode: "SKU-2", Quantity: 1, Price: 20},
	})

	t.Run("computes totals from items", func(t *testing.T) {
		r, err := NewCashReceipt("RCP-1111-2222", items, valueobject.NewMoneyFromFloat(110), "sig", false)
		require.NoError(t, err)

		assert.Equal(t, SaleTypeCash, r.SaleType)
		assert.Nil(t, r.InvoiceID)
		assert.Equal(t, "120.00", r.SubtotalBeforeDiscount.String())
		assert.Equal(t, "110.00", r.SubtotalAfterDiscount.String())
		assert.Equal(t, "13.75", r.Tax.String())
		assert.Equal(t, "123.75", r.Total.String())
		assert.Equal(t, ReceiptStatusCompleted, r.Status)
	})

	t.Run("draft flag keeps status draft", func(t *testing.T) {
		r, err := NewCashReceipt("RCP-1111-2223", items, valueobject.Zero(), "", true)
		require.NoError(t, err)
		assert.Equal(t, ReceiptStatusDraft, r.Status)
	})
}

func TestNewReceiptFromEdit(t *testing.T) {
	inv := newTestInvoice(t, 100)
	items := mustItems(t, []RawLineItem{{ProductCode: "SKU-1", Quantity: 2, Price: 100, Discount: 10}})
	edit, err := NewInvoiceEdit(inv, inv.Snapshot(), items, valueobject.NewMoneyFromFloat(150))
	require.NoError(t, err)

	r, err := NewReceiptFromEdit("RCP-3333-4444", edit, "customer sig")
	require.NoError(t, err)

	t.Run("links back to the source version", func(t *testing.T) {
		require.NotNil(t, r.InvoiceID)
		require.NotNil(t, r.InvoiceEditID)
		assert.Equal(t, edit.BaseInvoiceID, *r.InvoiceID)
		assert.Equal(t, edit.ID, *r.InvoiceEditID)
		assert.Equal(t, SaleTypeInvoice, r.SaleType)
	})

	t.Run("copies stored totals instead of recomputing", func(t *testing.T) {
		assert.True(t, r.Total.Equal(edit.Total))
		assert.True(t, r.Deposit.Equal(edit.DepositReceived))
	})

	t.Run("back-derives tax from the inclusive total", func(t *testing.T) {
		assert.True(t, r.Tax.Equal(BackDeriveTax(edit.Total)))
		assert.True(t, r.SubtotalAfterDiscount.Equal(edit.Total.Sub(r.Tax)))
	})

	t.Run("back-computes unit prices from edit amounts", func(t *testing.T) {
		require.Len(t, r.Items, 1)
		// amount = 2 * 100 * 0.9 = 180; price = 180 / (2 * 0.9) = 100
		assert.Equal(t, "100.00", r.Items[0].Price.String())
		assert.Equal(t, "180.00", r.Items[0].Amount.String())
	})

	t.Run("always completed and printable", func(t *testing.T) {
		assert.Equal(t, ReceiptStatusCompleted, r.Status)
		assert.True(t, r.Print)
	})
}
