package persistence

import (
	"errors"

	"github.com/lib/pq"
	"github.com/retailpos/backend/internal/domain/sales"
	"gorm.io/gorm"
)

// pgUniqueViolation is the Postgres error code for a unique constraint
// violation.
const pgUniqueViolation = "23505"

// translateError maps driver-level errors into domain errors so callers
// never depend on gorm or pq. Unique constraint hits become
// sales.ErrDuplicateKey; everything else passes through.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if isDuplicateKey(err) {
		return sales.ErrDuplicateKey
	}
	return err
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return true
	}
	return false
}
