package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/sales/acl"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/auth"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
)

// newTestEngine returns an engine with an authenticated super-admin principal
// attached, so route-level permission checks pass.
func newTestEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		claims := &auth.Claims{
			UserID:      uuid.NewString(),
			Username:    "tester",
			Permissions: []string{"*"},
		}
		c.Set(middleware.JWTClaimsKey, claims)
		c.Set(middleware.JWTUserIDKey, claims.UserID)
		c.Set(middleware.JWTUsernameKey, claims.Username)
		c.Next()
	})
	return engine
}

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Save(ctx context.Context, inv *sales.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateChain(ctx context.Context, inv *sales.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByNumber(ctx context.Context, number string) (*sales.Invoice, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Invoice, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]sales.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

type MockInvoiceEditRepository struct {
	mock.Mock
}

func (m *MockInvoiceEditRepository) Save(ctx context.Context, edit *sales.InvoiceEdit) error {
	args := m.Called(ctx, edit)
	return args.Error(0)
}

func (m *MockInvoiceEditRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.InvoiceEdit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.InvoiceEdit), args.Error(1)
}

func (m *MockInvoiceEditRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]sales.InvoiceEdit, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).([]sales.InvoiceEdit), args.Error(1)
}

type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) Save(ctx context.Context, receipt *sales.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Receipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) FindByInvoiceEdit(ctx context.Context, invoiceID, editID uuid.UUID) (*sales.Receipt, error) {
	args := m.Called(ctx, invoiceID, editID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

type MockCreditNoteRepository struct {
	mock.Mock
}

func (m *MockCreditNoteRepository) Save(ctx context.Context, note *sales.CreditNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockCreditNoteRepository) Update(ctx context.Context, note *sales.CreditNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockCreditNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.CreditNote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.CreditNote), args.Error(1)
}

func (m *MockCreditNoteRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

type MockRefundRepository struct {
	mock.Mock
}

func (m *MockRefundRepository) Save(ctx context.Context, refund *sales.Refund) error {
	args := m.Called(ctx, refund)
	return args.Error(0)
}

func (m *MockRefundRepository) Update(ctx context.Context, refund *sales.Refund) error {
	args := m.Called(ctx, refund)
	return args.Error(0)
}

func (m *MockRefundRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Refund, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Refund), args.Error(1)
}

func (m *MockRefundRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

type MockPartyDirectory struct {
	mock.Mock
}

func (m *MockPartyDirectory) FindCustomer(ctx context.Context, id uuid.UUID) (*acl.CustomerRef, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*acl.CustomerRef), args.Error(1)
}

func (m *MockPartyDirectory) FindUser(ctx context.Context, id uuid.UUID) (*acl.UserRef, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*acl.UserRef), args.Error(1)
}
