package sales

import (
	"fmt"

	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// RawLineItem is a line item as submitted by a caller, before validation.
// Amount is always derived here; a caller-supplied amount is ignored.
type RawLineItem struct {
	ProductCode string  `json:"productCode"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"`
}

// LineItem is a validated line item with its derived monetary amount
type LineItem struct {
	ProductCode string            `json:"productCode"`
	Description string            `json:"description"`
	Quantity    decimal.Decimal   `json:"quantity"`
	Price       valueobject.Money `json:"price"`
	Discount    decimal.Decimal   `json:"discount"`
	Amount      valueobject.Money `json:"amount"`
}

// ItemValidationError reports an invalid line item by index and field
type ItemValidationError struct {
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ItemValidationError) Error() string {
	return fmt.Sprintf("item %d: %s %s", e.Index, e.Field, e.Message)
}

func newItemError(index int, field, message string) *ItemValidationError {
	return &ItemValidationError{Index: index, Field: field, Message: message}
}

var (
	oneHundred = decimal.NewFromInt(100)
	one        = decimal.NewFromInt(1)
)

// NormalizeItem validates a single raw item and derives its amount:
// amount = round2(quantity × price × (1 − discount/100)).
func NormalizeItem(index int, raw RawLineItem) (LineItem, error) {
	if raw.ProductCode == "" {
		return LineItem{}, newItemError(index, "productCode", "must not be empty")
	}
	if raw.Quantity <= 0 {
		return LineItem{}, newItemError(index, "quantity", "must be greater than zero")
	}
	if raw.Price < 0 {
		return LineItem{}, newItemError(index, "price", "must not be negative")
	}
	if raw.Discount < 0 || raw.Discount > 100 {
		return LineItem{}, newItemError(index, "discount", "must be between 0 and 100")
	}

	qty := decimal.NewFromFloat(raw.Quantity)
	price := valueobject.NewMoneyFromFloat(raw.Price)
	discount := decimal.NewFromFloat(raw.Discount)

	// round2 at the derivation step so recomputed values match stored ones
	factor := one.Sub(discount.Div(oneHundred))
	amount := valueobject.NewMoney(qty.Mul(price.Amount()).Mul(factor))

	return LineItem{
		ProductCode: raw.ProductCode,
		Description: raw.Description,
		Quantity:    qty,
		Price:       price,
		Discount:    discount,
		Amount:      amount,
	}, nil
}

// NormalizeItems validates all raw items, failing on the first offender
func NormalizeItems(raw []RawLineItem) ([]LineItem, error) {
	if len(raw) == 0 {
		return nil, newItemError(0, "items", "at least one item is required")
	}
	items := make([]LineItem, 0, len(raw))
	for i, r := range raw {
		item, err := NormalizeItem(i, r)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// UnitPrice back-computes the unit price from a post-discount amount:
// price = amount / (quantity × (1 − discount/100)). Receipts store unit
// prices while invoice edits store post-discount line amounts.
func (li LineItem) UnitPrice() valueobject.Money {
	factor := li.Quantity.Mul(one.Sub(li.Discount.Div(oneHundred)))
	if factor.IsZero() {
		return valueobject.Zero()
	}
	return li.Amount.DivDecimal(factor)
}
