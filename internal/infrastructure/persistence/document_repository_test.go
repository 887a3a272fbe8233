package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreditNoteRepository_Lifecycle(t *testing.T) {
	db := setupSalesTestDB(t)
	repo := NewGormCreditNoteRepository(db)
	ctx := context.Background()

	note, err := sales.NewCreditNote("CRN-AAAA-0001", uuid.New(), uuid.New(), normalizedItems(t), "", true)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, note))

	found, err := repo.FindByID(ctx, note.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, sales.CreditNoteStatusDraft, found.Status)
	assert.Len(t, found.Products, 2)

	require.NoError(t, found.Update(normalizedItems(t), "approver", false))
	require.NoError(t, repo.Update(ctx, found))

	reloaded, err := repo.FindByID(ctx, note.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Equal(t, sales.CreditNoteStatusApproved, reloaded.Status)
	assert.Equal(t, "approver", reloaded.Signature)
}

func TestCreditNoteRepository_DuplicateNumber(t *testing.T) {
	db := setupSalesTestDB(t)
	repo := NewGormCreditNoteRepository(db)
	ctx := context.Background()

	first, err := sales.NewCreditNote("CRN-AAAA-0002", uuid.New(), uuid.New(), normalizedItems(t), "", true)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))

	dup, err := sales.NewCreditNote("CRN-AAAA-0002", uuid.New(), uuid.New(), normalizedItems(t), "", true)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Save(ctx, dup), sales.ErrDuplicateKey)
}

func TestRefundRepository_Lifecycle(t *testing.T) {
	db := setupSalesTestDB(t)
	notes := NewGormCreditNoteRepository(db)
	refunds := NewGormRefundRepository(db)
	ctx := context.Background()

	note, err := sales.NewCreditNote("CRN-BBBB-0001", uuid.New(), uuid.New(), normalizedItems(t), "", false)
	require.NoError(t, err)
	require.NoError(t, notes.Save(ctx, note))

	refund, err := sales.NewRefund("RFD-AAAA-0001", note.CustomerID, note.SalesRepID, &note.ID, normalizedItems(t), "", true)
	require.NoError(t, err)
	require.NoError(t, refunds.Save(ctx, refund))

	found, err := refunds.FindByID(ctx, refund.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, sales.RefundStatusDraft, found.Status)
	require.NotNil(t, found.CreditNoteID)
	assert.Equal(t, note.ID, *found.CreditNoteID)

	require.NoError(t, found.Update(normalizedItems(t), "cashier", false))
	require.NoError(t, refunds.Update(ctx, found))

	reloaded, err := refunds.FindByID(ctx, refund.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Equal(t, sales.RefundStatusRefunded, reloaded.Status)

	exists, err := refunds.NumberExists(ctx, "RFD-AAAA-0001")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPartyDirectory(t *testing.T) {
	db := setupSalesTestDB(t)
	directory := NewGormPartyDirectory(db)
	ctx := context.Background()

	customer := models.CustomerModel{Name: "Acme Hardware"}
	customer.ID = uuid.New()
	require.NoError(t, db.Create(&customer).Error)

	user := models.UserModel{Username: "jchan", Name: "J. Chan", Roles: models.StringList{"sales_representative"}}
	user.ID = uuid.New()
	require.NoError(t, db.Create(&user).Error)

	ref, err := directory.FindCustomer(ctx, customer.ID)
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, "Acme Hardware", ref.Name)

	missing, err := directory.FindCustomer(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	userRef, err := directory.FindUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, userRef)
	assert.True(t, userRef.HasRole("sales_representative"))

	missingUser, err := directory.FindUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missingUser)
}
