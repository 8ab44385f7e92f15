package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreditGuard decides whether a customer may finance a basket on credit.
// Standing runs before any line is priced; the limit check runs once totals
// are known but before the first stock or serial mutation.
type CreditGuard struct{}

// NewCreditGuard creates a credit guard
func NewCreditGuard() *CreditGuard {
	return &CreditGuard{}
}

// Standing verifies the customer exists, is not blocked, and carries no
// overdue invoices. It returns the customer so the caller can derive default
// payment terms and run the limit check later.
func (g *CreditGuard) Standing(
	ctx context.Context,
	repos TransactionalRepositories,
	customerID uuid.UUID,
	now time.Time,
) (*partner.Customer, error) {
	customer, err := repos.Customers().FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError(shared.ErrNotFound.Code,
			fmt.Sprintf("customer %s not found", customerID))
	}

	if customer.Blocked {
		return nil, shared.NewDomainError(shared.ErrCreditRejected.Code,
			fmt.Sprintf("customer %s is blocked", customer.Code))
	}

	overdue, err := repos.Customers().HasOverdueInvoices(ctx, customerID, now)
	if err != nil {
		return nil, err
	}
	if overdue {
		return nil, shared.NewDomainError(shared.ErrCreditRejected.Code,
			fmt.Sprintf("customer %s has overdue invoices", customer.Code))
	}

	return customer, nil
}

// CheckLimit verifies the customer can carry basketTotal as new credit on top
// of their outstanding balance. Exactly reaching the limit is allowed.
func (g *CreditGuard) CheckLimit(
	ctx context.Context,
	repos TransactionalRepositories,
	customer *partner.Customer,
	basketTotal decimal.Decimal,
) error {
	outstanding, err := repos.Customers().OutstandingBalance(ctx, customer.ID)
	if err != nil {
		return err
	}
	if outstanding.Add(basketTotal).GreaterThan(customer.CreditLimit) {
		return shared.NewDomainError(shared.ErrCreditRejected.Code,
			fmt.Sprintf("customer %s would exceed credit limit: outstanding %s + basket %s > limit %s",
				customer.Code, outstanding, basketTotal, customer.CreditLimit))
	}
	return nil
}
