package sales

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/sales/acl"
	"github.com/retailpos/backend/internal/domain/shared"
)

// partyValidator re-validates party references as a business rule. The
// caller is already authenticated upstream; this is defense in depth, not an
// authentication check.
type partyValidator struct {
	directory acl.PartyDirectory
}

func (v partyValidator) requireCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := v.directory.FindCustomer(ctx, id)
	if err != nil {
		return fmt.Errorf("resolve customer: %w", err)
	}
	if customer == nil {
		return shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer does not exist")
	}
	return nil
}

// requireSalesRep checks the user exists and holds the sales representative
// role
func (v partyValidator) requireSalesRep(ctx context.Context, id uuid.UUID) error {
	user, err := v.directory.FindUser(ctx, id)
	if err != nil {
		return fmt.Errorf("resolve sales rep: %w", err)
	}
	if user == nil {
		return shared.NewDomainError("SALES_REP_NOT_FOUND", "Sales representative does not exist")
	}
	if !user.HasRole(acl.RoleSalesRepresentative) {
		return shared.NewDomainError("FORBIDDEN", "User does not hold the Sales Representative role")
	}
	return nil
}
