package partner

import (
	"strings"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Customer represents a buyer. Credit eligibility is decided from the blocked
// flag, the configured credit limit, and receivable queries answered by the
// repository (outstanding balance, overdue invoices).
type Customer struct {
	shared.BaseAggregateRoot
	Code        string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string          `gorm:"type:varchar(200);not null"`
	TaxID       string          `gorm:"type:varchar(50);index"`
	Phone       string          `gorm:"type:varchar(50)"`
	Email       string          `gorm:"type:varchar(200)"`
	Blocked     bool            `gorm:"not null;default:false"`
	CreditLimit decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	// CreditDays is the default payment term applied when a credit sale does
	// not carry an explicit due date.
	CreditDays int `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer
func NewCustomer(code, name string) (*Customer, error) {
	if strings.TrimSpace(code) == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Customer code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		CreditLimit:       decimal.Zero,
	}, nil
}

// SetCreditTerms configures the customer's credit limit and default term
func (c *Customer) SetCreditTerms(limit valueobject.Money, days int) error {
	if limit.IsNegative() {
		return shared.NewDomainError("INVALID_LIMIT", "Credit limit cannot be negative")
	}
	if days < 0 {
		return shared.NewDomainError("INVALID_TERM", "Credit days cannot be negative")
	}
	c.CreditLimit = limit.Amount()
	c.CreditDays = days
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Block administratively blocks the customer from credit sales
func (c *Customer) Block() {
	c.Blocked = true
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Unblock lifts the administrative block
func (c *Customer) Unblock() {
	c.Blocked = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// HasCreditLimit returns true when a positive limit is configured
func (c *Customer) HasCreditLimit() bool {
	return c.CreditLimit.GreaterThan(decimal.Zero)
}

// GetCreditLimitMoney returns the credit limit as Money
func (c *Customer) GetCreditLimitMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(c.CreditLimit)
}
