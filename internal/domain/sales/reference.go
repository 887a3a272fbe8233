package sales

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/retailpos/backend/internal/domain/shared"
)

// Document number prefixes
const (
	PrefixInvoice    = "INV"
	PrefixReceipt    = "RCP"
	PrefixCreditNote = "CRN"
	PrefixRefund     = "RFD"
)

// referenceAttempts bounds the advisory collision retry loop
const referenceAttempts = 5

// ErrGenerationExhausted surfaces after the retry budget is spent on
// colliding candidates
var ErrGenerationExhausted = shared.NewDomainError("GENERATION_EXHAUSTED", "Could not generate a unique document number")

// NumberExistsFunc checks whether a candidate number is already taken.
// The check is advisory only: true uniqueness is enforced by the persisted
// unique constraint, and callers must treat a duplicate-key failure from the
// store as the authoritative collision signal.
type NumberExistsFunc func(ctx context.Context, number string) (bool, error)

// ReferenceGenerator produces human-readable document numbers of the form
// PREFIX-XXXX-XXXX from random hexadecimal material
type ReferenceGenerator struct {
	exists NumberExistsFunc
}

// NewReferenceGenerator creates a generator backed by the given existence check
func NewReferenceGenerator(exists NumberExistsFunc) *ReferenceGenerator {
	return &ReferenceGenerator{exists: exists}
}

// Generate produces a candidate, pre-filters it against the store, and
// retries a bounded number of times before failing with ErrGenerationExhausted
func (g *ReferenceGenerator) Generate(ctx context.Context, prefix string) (string, error) {
	for attempt := 0; attempt < referenceAttempts; attempt++ {
		candidate, err := formatReference(prefix)
		if err != nil {
			return "", err
		}
		taken, err := g.exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("reference existence check: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrGenerationExhausted
}

func formatReference(prefix string) (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reference entropy: %w", err)
	}
	hexed := strings.ToUpper(hex.EncodeToString(buf))
	return fmt.Sprintf("%s-%s-%s", prefix, hexed[:4], hexed[4:]), nil
}
