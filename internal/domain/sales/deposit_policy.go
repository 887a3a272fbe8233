package sales

import (
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
)

// Deposit policy errors
var (
	// ErrDepositReduced rejects a deposit lower than the previous version's.
	// Deposits are monotonically non-decreasing across the edit chain.
	ErrDepositReduced = shared.NewDomainError("DEPOSIT_REDUCED", "Deposit cannot be reduced below the amount already received")

	// ErrAlreadySettled rejects a deposit increase on an invoice whose
	// balance is already zero or negative.
	ErrAlreadySettled = shared.NewDomainError("ALREADY_SETTLED", "Invoice is already settled; no further deposit can be accepted")
)

// CheckDepositChange decides whether a proposed deposit change is acceptable
// given the balance state of the current snapshot. It returns whether the
// deposit actually changed.
//
// An increase that pushes the invoice into overpaid is accepted exactly once:
// at proposal time the balance was still positive, and every later increase
// fails the settled check.
func CheckDepositChange(currentBalance, previousDeposit, newDeposit valueobject.Money) (changed bool, err error) {
	if newDeposit.LessThan(previousDeposit) {
		return false, ErrDepositReduced
	}
	if newDeposit.Equal(previousDeposit) {
		return false, nil
	}
	if !currentBalance.IsPositive() {
		return false, ErrAlreadySettled
	}
	return true, nil
}
