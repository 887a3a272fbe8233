package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/sales"
)

// LineItems stores a line item slice as a JSON document column
type LineItems []sales.LineItem

// Value implements driver.Valuer
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]sales.LineItem(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (l *LineItems) Scan(value any) error {
	return scanJSON(value, (*[]sales.LineItem)(l))
}

// GormDataType returns the column type for GORM
func (LineItems) GormDataType() string {
	return "jsonb"
}

// ReceiptItems stores a receipt item slice as a JSON document column
type ReceiptItems []sales.ReceiptItem

// Value implements driver.Valuer
func (r ReceiptItems) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]sales.ReceiptItem(r))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (r *ReceiptItems) Scan(value any) error {
	return scanJSON(value, (*[]sales.ReceiptItem)(r))
}

// GormDataType returns the column type for GORM
func (ReceiptItems) GormDataType() string {
	return "jsonb"
}

// UUIDList stores an ordered UUID slice as a JSON document column. Element
// order is load-bearing for edit chains; JSON arrays preserve it.
type UUIDList []uuid.UUID

// Value implements driver.Valuer
func (u UUIDList) Value() (driver.Value, error) {
	if u == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]uuid.UUID(u))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (u *UUIDList) Scan(value any) error {
	return scanJSON(value, (*[]uuid.UUID)(u))
}

// GormDataType returns the column type for GORM
func (UUIDList) GormDataType() string {
	return "jsonb"
}

// StringList stores a string slice as a JSON document column
type StringList []string

// Value implements driver.Valuer
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (s *StringList) Scan(value any) error {
	return scanJSON(value, (*[]string)(s))
}

// GormDataType returns the column type for GORM
func (StringList) GormDataType() string {
	return "jsonb"
}

func scanJSON(value, target any) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, target)
	case string:
		return json.Unmarshal([]byte(v), target)
	default:
		return fmt.Errorf("unsupported column type %T for JSON scan", value)
	}
}
