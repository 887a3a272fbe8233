package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/sales/acl"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPartyDirectory resolves customer and user references from the
// directory tables
type GormPartyDirectory struct {
	db *gorm.DB
}

// NewGormPartyDirectory creates a new GormPartyDirectory
func NewGormPartyDirectory(db *gorm.DB) *GormPartyDirectory {
	return &GormPartyDirectory{db: db}
}

// FindCustomer resolves a customer reference; (nil, nil) when absent
func (d *GormPartyDirectory) FindCustomer(ctx context.Context, id uuid.UUID) (*acl.CustomerRef, error) {
	var model models.CustomerModel
	if err := d.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToRef(), nil
}

// FindUser resolves a user reference; (nil, nil) when absent
func (d *GormPartyDirectory) FindUser(ctx context.Context, id uuid.UUID) (*acl.UserRef, error) {
	var model models.UserModel
	if err := d.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToRef(), nil
}

var _ acl.PartyDirectory = (*GormPartyDirectory)(nil)
