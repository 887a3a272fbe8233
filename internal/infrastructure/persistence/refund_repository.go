package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRefundRepository implements RefundRepository using GORM
type GormRefundRepository struct {
	db *gorm.DB
}

// NewGormRefundRepository creates a new GormRefundRepository
func NewGormRefundRepository(db *gorm.DB) *GormRefundRepository {
	return &GormRefundRepository{db: db}
}

// Save inserts a new refund
func (r *GormRefundRepository) Save(ctx context.Context, refund *sales.Refund) error {
	model := models.RefundModelFromDomain(refund)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// Update persists a re-edit or finalization of a draft
func (r *GormRefundRepository) Update(ctx context.Context, refund *sales.Refund) error {
	model := models.RefundModelFromDomain(refund)
	return r.db.WithContext(ctx).
		Model(&models.RefundModel{}).
		Where("id = ?", refund.ID).
		Updates(map[string]any{
			"items":     model.Items,
			"signature": model.Signature,
			"status":    model.Status,
		}).Error
}

// FindByID finds a refund by ID
func (r *GormRefundRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Refund, error) {
	var model models.RefundModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// NumberExists reports whether a refund number is taken
func (r *GormRefundRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RefundModel{}).
		Where("number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ sales.RefundRepository = (*GormRefundRepository)(nil)
