package sales

import (
	"context"

	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/register"
	"github.com/retailpos/backend/internal/domain/sales"
)

// TransactionalRepositories exposes every repository bound to one open
// database transaction. Rows locked through any of them stay locked until
// the scope commits or rolls back.
type TransactionalRepositories interface {
	Products() catalog.ProductRepository
	Combos() catalog.ComboComponentRepository
	PriceLists() catalog.PriceListRepository
	Customers() partner.CustomerRepository
	Warehouses() partner.WarehouseRepository
	Users() identity.UserRepository
	Sessions() register.SessionRepository
	Stock() inventory.StockLevelRepository
	Movements() inventory.StockMovementRepository
	Serials() inventory.SerializedUnitRepository
	Sales() sales.SaleRepository
	Commissions() sales.CommissionAccrualRepository
}

// TransactionScope runs a unit of work atomically. The function receives
// transaction-bound repositories; a non-nil error rolls everything back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}
