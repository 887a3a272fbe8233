package models

import (
	"github.com/retailpos/backend/internal/domain/sales/acl"
)

// CustomerModel is the read-side projection of the external customer
// directory the sales context validates against
type CustomerModel struct {
	AggregateModel
	Name  string `gorm:"type:varchar(200);not null"`
	Phone string `gorm:"type:varchar(50)"`
	Email string `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToRef converts the model to the minimal reference the domain consumes
func (m *CustomerModel) ToRef() *acl.CustomerRef {
	return &acl.CustomerRef{ID: m.ID, Name: m.Name}
}

// UserModel is the read-side projection of the user directory
type UserModel struct {
	AggregateModel
	Username string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_users_username"`
	Name     string     `gorm:"type:varchar(200);not null"`
	Roles    StringList `gorm:"type:jsonb;not null;default:'[]'"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToRef converts the model to the minimal reference the domain consumes
func (m *UserModel) ToRef() *acl.UserRef {
	return &acl.UserRef{ID: m.ID, Name: m.Name, Roles: m.Roles}
}
