// Package acl provides the anti-corruption layer between the sales document
// core and the external party (customer/user) context. The core never manages
// customers or users; it only resolves the minimal references it needs for
// validation and defense-in-depth business checks.
package acl

import (
	"context"

	"github.com/google/uuid"
)

// RoleSalesRepresentative is the role a sales rep must hold. This is a
// business rule re-validated by the core, not an authentication concern.
const RoleSalesRepresentative = "sales_representative"

// CustomerRef is the minimal customer projection the sales context needs
type CustomerRef struct {
	ID   uuid.UUID
	Name string
}

// UserRef is the minimal user projection the sales context needs
type UserRef struct {
	ID    uuid.UUID
	Name  string
	Roles []string
}

// HasRole reports whether the user holds the given role
func (u UserRef) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// PartyDirectory resolves customer and user references from the external
// party context. Implementations return (nil, nil) when the party does not
// exist.
type PartyDirectory interface {
	FindCustomer(ctx context.Context, id uuid.UUID) (*CustomerRef, error)
	FindUser(ctx context.Context, id uuid.UUID) (*UserRef, error)
}
