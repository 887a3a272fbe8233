package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReceiptRepository implements ReceiptRepository using GORM
type GormReceiptRepository struct {
	db *gorm.DB
}

// NewGormReceiptRepository creates a new GormReceiptRepository
func NewGormReceiptRepository(db *gorm.DB) *GormReceiptRepository {
	return &GormReceiptRepository{db: db}
}

// Save inserts a new receipt. A duplicate (invoice_id, invoice_edit_id) pair
// surfaces as sales.ErrDuplicateKey so the caller can recover the winner.
func (r *GormReceiptRepository) Save(ctx context.Context, receipt *sales.Receipt) error {
	model := models.ReceiptModelFromDomain(receipt)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// FindByID finds a receipt by ID
func (r *GormReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Receipt, error) {
	var model models.ReceiptModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByInvoiceEdit finds the receipt generated for an invoice edit, if any
func (r *GormReceiptRepository) FindByInvoiceEdit(ctx context.Context, invoiceID, editID uuid.UUID) (*sales.Receipt, error) {
	var model models.ReceiptModel
	if err := r.db.WithContext(ctx).
		First(&model, "invoice_id = ? AND invoice_edit_id = ?", invoiceID, editID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// NumberExists reports whether a receipt number is taken
func (r *GormReceiptRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ReceiptModel{}).
		Where("receipt_number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ sales.ReceiptRepository = (*GormReceiptRepository)(nil)
