package sales

import (
	"context"

	"github.com/google/uuid"
)

// SaleRepository defines the interface for sale persistence. Save persists
// the aggregate with its lines and payments in one operation.
type SaleRepository interface {
	// FindByID finds a sale with lines and payments by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindByIdempotencyKey finds a sale by its externally supplied basket key
	FindByIdempotencyKey(ctx context.Context, key string) (*Sale, error)

	// Save creates the sale aggregate with its lines and payments
	Save(ctx context.Context, sale *Sale) error

	// GenerateNumber produces the next sequential sale number
	GenerateNumber(ctx context.Context) (string, error)
}

// CommissionAccrualRepository persists per-line commission snapshots
type CommissionAccrualRepository interface {
	// Append persists a new accrual
	Append(ctx context.Context, accrual *CommissionAccrual) error

	// FindBySale returns all accruals written for a sale
	FindBySale(ctx context.Context, saleID uuid.UUID) ([]CommissionAccrual, error)
}
