package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	salesapp "github.com/retailpos/backend/internal/application/sales"
	"github.com/retailpos/backend/internal/domain/sales/acl"
	"github.com/retailpos/backend/internal/interfaces/http/router"
)

type documentTestEnv struct {
	invoiceTestEnv
	notes   *MockCreditNoteRepository
	refunds *MockRefundRepository
}

func newDocumentTestEnv() *documentTestEnv {
	env := &documentTestEnv{
		invoiceTestEnv: invoiceTestEnv{
			directory: new(MockPartyDirectory),
			engine:    newTestEngine(),
		},
		notes:   new(MockCreditNoteRepository),
		refunds: new(MockRefundRepository),
	}
	noteSvc := salesapp.NewCreditNoteService(env.notes, env.directory, zap.NewNop())
	refundSvc := salesapp.NewRefundService(env.refunds, env.notes, env.directory, zap.NewNop())
	router.NewRouter(env.engine).
		Register(NewCreditNoteHandler(noteSvc)).
		Register(NewRefundHandler(refundSvc)).
		Setup()
	return env
}

func (env *documentTestEnv) expectParties(customerID, salesRepID uuid.UUID) {
	env.directory.On("FindCustomer", mock.Anything, customerID).
		Return(&acl.CustomerRef{ID: customerID, Name: "Acme"}, nil)
	env.directory.On("FindUser", mock.Anything, salesRepID).
		Return(&acl.UserRef{ID: salesRepID, Name: "Rep", Roles: []string{acl.RoleSalesRepresentative}}, nil)
}

func TestCreditNoteHandler(t *testing.T) {
	t.Run("creates finalized credit note", func(t *testing.T) {
		env := newDocumentTestEnv()
		customerID, salesRepID := uuid.New(), uuid.New()
		env.expectParties(customerID, salesRepID)
		env.notes.On("NumberExists", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
		env.notes.On("Save", mock.Anything, mock.AnythingOfType("*sales.CreditNote")).Return(nil)

		w := env.do(http.MethodPost, "/api/v1/creditNote", gin.H{
			"customerId": customerID.String(),
			"salesRepId": salesRepID.String(),
			"products":   []gin.H{{"productCode": "SKU-9", "quantity": 1, "price": 40}},
			"saveDraft":  false,
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "CRN-")
		assert.Contains(t, w.Body.String(), "APPROVED")
	})

	t.Run("unknown credit note on update returns 404", func(t *testing.T) {
		env := newDocumentTestEnv()
		id := uuid.New()
		env.notes.On("FindByID", mock.Anything, id).Return(nil, nil)

		w := env.do(http.MethodPut, "/api/v1/creditNote/"+id.String(), gin.H{
			"customerId": uuid.New().String(),
			"salesRepId": uuid.New().String(),
			"products":   []gin.H{{"productCode": "SKU-9", "quantity": 1, "price": 40}},
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
		env.notes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestRefundHandler(t *testing.T) {
	t.Run("creates refund draft", func(t *testing.T) {
		env := newDocumentTestEnv()
		customerID, salesRepID := uuid.New(), uuid.New()
		env.expectParties(customerID, salesRepID)
		env.refunds.On("NumberExists", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
		env.refunds.On("Save", mock.Anything, mock.AnythingOfType("*sales.Refund")).Return(nil)

		w := env.do(http.MethodPost, "/api/v1/refund", gin.H{
			"customerId": customerID.String(),
			"salesRepId": salesRepID.String(),
			"items":      []gin.H{{"productCode": "SKU-9", "quantity": 1, "price": 40}},
			"saveDraft":  true,
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "RFD-")
		assert.Contains(t, w.Body.String(), "DRAFT")
	})

	t.Run("dangling credit note reference returns 404", func(t *testing.T) {
		env := newDocumentTestEnv()
		customerID, salesRepID := uuid.New(), uuid.New()
		env.expectParties(customerID, salesRepID)
		noteID := uuid.New()
		env.notes.On("FindByID", mock.Anything, noteID).Return(nil, nil)

		w := env.do(http.MethodPost, "/api/v1/refund", gin.H{
			"customerId":   customerID.String(),
			"salesRepId":   salesRepID.String(),
			"creditNoteId": noteID.String(),
			"items":        []gin.H{{"productCode": "SKU-9", "quantity": 1, "price": 40}},
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
		env.refunds.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
