package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInvoiceEditRepository implements InvoiceEditRepository using GORM.
// Edit rows are insert-only; there is deliberately no update or delete here.
type GormInvoiceEditRepository struct {
	db *gorm.DB
}

// NewGormInvoiceEditRepository creates a new GormInvoiceEditRepository
func NewGormInvoiceEditRepository(db *gorm.DB) *GormInvoiceEditRepository {
	return &GormInvoiceEditRepository{db: db}
}

// Save inserts a new immutable edit
func (r *GormInvoiceEditRepository) Save(ctx context.Context, edit *sales.InvoiceEdit) error {
	model := models.InvoiceEditModelFromDomain(edit)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// FindByID finds an edit by ID
func (r *GormInvoiceEditRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.InvoiceEdit, error) {
	var model models.InvoiceEditModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByInvoice returns the chain for a base invoice in creation order
func (r *GormInvoiceEditRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]sales.InvoiceEdit, error) {
	var editModels []models.InvoiceEditModel
	if err := r.db.WithContext(ctx).
		Where("base_invoice_id = ?", invoiceID).
		Order("created_at ASC").
		Find(&editModels).Error; err != nil {
		return nil, err
	}

	edits := make([]sales.InvoiceEdit, len(editModels))
	for i, model := range editModels {
		edits[i] = *model.ToDomain()
	}
	return edits, nil
}

var _ sales.InvoiceEditRepository = (*GormInvoiceEditRepository)(nil)
