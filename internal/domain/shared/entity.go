package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries the identity and audit timestamps shared by every
// persisted document. Edits and receipts are immutable after creation, so
// their UpdatedAt never moves past CreatedAt; mutable aggregates advance it
// through Touch.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity mints a new identity with both timestamps set to now
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch records that the entity was modified
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}
