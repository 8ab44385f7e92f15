package partner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerRepository defines the interface for customer persistence and the
// receivable queries CreditGuard relies on.
type CustomerRepository interface {
	// FindByID finds a customer by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// OutstandingBalance returns the sum of unpaid credit-sale balances
	OutstandingBalance(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)

	// HasOverdueInvoices reports whether any unpaid credit sale is past due as of now
	HasOverdueInvoices(ctx context.Context, customerID uuid.UUID, now time.Time) (bool, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error
}

// WarehouseRepository defines the interface for warehouse persistence
type WarehouseRepository interface {
	// FindByID finds a warehouse by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)

	// FindMain returns the warehouse flagged as main, if any
	FindMain(ctx context.Context) (*Warehouse, error)

	// FindFirstActive returns the first active warehouse ordered by code
	FindFirstActive(ctx context.Context) (*Warehouse, error)

	// Save creates or updates a warehouse
	Save(ctx context.Context, warehouse *Warehouse) error
}
