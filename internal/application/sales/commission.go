package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
)

// CommissionCalculator writes per-line commission accruals. The rate applied
// is the salesperson's configured rate at commit time, copied into the
// accrual by value.
type CommissionCalculator struct{}

// NewCommissionCalculator creates a commission calculator
func NewCommissionCalculator() *CommissionCalculator {
	return &CommissionCalculator{}
}

// Accrue writes an accrual for the line when its salesperson has a non-zero
// rate. Users cache lookups across lines of the same basket.
func (c *CommissionCalculator) Accrue(
	ctx context.Context,
	repos TransactionalRepositories,
	users map[uuid.UUID]*identity.User,
	saleID uuid.UUID,
	line *sales.SaleLine,
) error {
	salesperson, ok := users[line.SalespersonID]
	if !ok {
		found, err := repos.Users().FindByID(ctx, line.SalespersonID)
		if err != nil {
			return err
		}
		users[line.SalespersonID] = found
		salesperson = found
	}
	if salesperson == nil || !salesperson.HasCommission() {
		return nil
	}

	amount := salesperson.CommissionFor(valueobject.NewMoneyUSD(line.Subtotal))
	accrual, err := sales.NewCommissionAccrual(
		saleID, line.ID, salesperson.ID, amount, salesperson.CommissionRate)
	if err != nil {
		return err
	}
	return repos.Commissions().Append(ctx, accrual)
}
