package identity

import (
	"strings"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Role represents a user's role. Roles are ordered by privilege; price-list
// authorization requires at least RoleSupervisor.
type Role string

const (
	RoleCashier     Role = "cashier"
	RoleSalesperson Role = "salesperson"
	RoleSupervisor  Role = "supervisor"
	RoleAdmin       Role = "admin"
)

// privilege ranks roles for authorization comparisons
func (r Role) privilege() int {
	switch r {
	case RoleCashier:
		return 1
	case RoleSalesperson:
		return 2
	case RoleSupervisor:
		return 3
	case RoleAdmin:
		return 4
	}
	return 0
}

// IsValid returns true if the role is known
func (r Role) IsValid() bool {
	return r.privilege() > 0
}

// CanAuthorizePricing reports whether the role may authorize protected price lists
func (r Role) CanAuthorizePricing() bool {
	return r.privilege() >= RoleSupervisor.privilege()
}

// User represents an operator of the point of sale. CommissionRate is the
// percentage applied to line subtotals the user sells; the rate in force at
// sale time is snapshotted into the accrual.
type User struct {
	shared.BaseAggregateRoot
	Username       string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	FullName       string          `gorm:"type:varchar(200);not null"`
	Role           Role            `gorm:"type:varchar(20);not null;default:'cashier'"`
	CommissionRate decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"` // percent, e.g. 2.5
	Active         bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user
func NewUser(username, fullName string, role Role) (*User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          strings.ToLower(username),
		FullName:          fullName,
		Role:              role,
		CommissionRate:    decimal.Zero,
		Active:            true,
	}, nil
}

// SetCommissionRate sets the commission percentage for this user
func (u *User) SetCommissionRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Commission rate cannot be negative")
	}
	if rate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_RATE", "Commission rate cannot exceed 100 percent")
	}
	u.CommissionRate = rate
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// HasCommission returns true when a non-zero rate is configured
func (u *User) HasCommission() bool {
	return u.CommissionRate.GreaterThan(decimal.Zero)
}

// CommissionFor returns the commission amount for a post-discount subtotal
func (u *User) CommissionFor(subtotal valueobject.Money) valueobject.Money {
	return subtotal.Multiply(u.CommissionRate.Div(decimal.NewFromInt(100))).Round(4)
}
