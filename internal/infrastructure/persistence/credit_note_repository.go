package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCreditNoteRepository implements CreditNoteRepository using GORM
type GormCreditNoteRepository struct {
	db *gorm.DB
}

// NewGormCreditNoteRepository creates a new GormCreditNoteRepository
func NewGormCreditNoteRepository(db *gorm.DB) *GormCreditNoteRepository {
	return &GormCreditNoteRepository{db: db}
}

// Save inserts a new credit note
func (r *GormCreditNoteRepository) Save(ctx context.Context, note *sales.CreditNote) error {
	model := models.CreditNoteModelFromDomain(note)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// Update persists a re-edit or finalization of a draft
func (r *GormCreditNoteRepository) Update(ctx context.Context, note *sales.CreditNote) error {
	model := models.CreditNoteModelFromDomain(note)
	return r.db.WithContext(ctx).
		Model(&models.CreditNoteModel{}).
		Where("id = ?", note.ID).
		Updates(map[string]any{
			"products":  model.Products,
			"signature": model.Signature,
			"status":    model.Status,
		}).Error
}

// FindByID finds a credit note by ID
func (r *GormCreditNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.CreditNote, error) {
	var model models.CreditNoteModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// NumberExists reports whether a credit note number is taken
func (r *GormCreditNoteRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CreditNoteModel{}).
		Where("number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ sales.CreditNoteRepository = (*GormCreditNoteRepository)(nil)
