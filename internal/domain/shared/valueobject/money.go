package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a value object representing a monetary amount with a two-decimal
// convention. The system operates in a single currency, so Money carries only
// the amount. It is immutable - all operations return new Money instances.
//
// Rounding to two decimal places happens at every derived step, not only at
// the end, so freshly computed values match stored historical values exactly.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates Money from a decimal amount, rounded to two places
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount.Round(2)}
}

// NewMoneyFromFloat creates Money from a float64 value
func NewMoneyFromFloat(amount float64) Money {
	return Money{amount: decimal.NewFromFloat(amount).Round(2)}
}

// NewMoneyFromString creates Money from a string representation
func NewMoneyFromString(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	return Money{amount: d.Round(2)}, nil
}

// Zero returns zero-value Money
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Float64 returns the amount as a float64 for serialization
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive returns true if the amount is greater than zero
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative returns true if the amount is less than zero
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Add returns a new Money with the sum of both amounts
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount).Round(2)}
}

// Sub returns a new Money with the difference of both amounts
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount).Round(2)}
}

// MulDecimal returns a new Money multiplied by a decimal factor, rounded
func (m Money) MulDecimal(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor).Round(2)}
}

// DivDecimal returns a new Money divided by a decimal divisor, rounded
func (m Money) DivDecimal(divisor decimal.Decimal) Money {
	return Money{amount: m.amount.DivRound(divisor, 2)}
}

// Cmp compares two amounts: -1 if m < other, 0 if equal, 1 if m > other
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// LessThan returns true if m < other
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// GreaterThan returns true if m > other
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// Equal returns true if both amounts are equal
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Neg returns the negated amount
func (m Money) Neg() Money {
	return Money{amount: m.amount.Neg()}
}

// SnapToZero returns exactly zero when the amount is within tolerance of
// zero. Used to absorb floating-point noise from client-supplied deposits.
func (m Money) SnapToZero(tolerance decimal.Decimal) Money {
	if m.amount.Abs().LessThan(tolerance) {
		return Zero()
	}
	return m
}

// String returns the canonical two-decimal string form
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// MarshalJSON serializes Money as a decimal number with two places
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.amount.StringFixed(2)), nil
}

// UnmarshalJSON deserializes a decimal number into Money
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("invalid monetary value: %w", err)
	}
	m.amount = d.Round(2)
	return nil
}

// Value implements driver.Valuer for database storage
func (m Money) Value() (driver.Value, error) {
	return m.amount.Value()
}

// Scan implements sql.Scanner for database retrieval
func (m *Money) Scan(value any) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	m.amount = d
	return nil
}
