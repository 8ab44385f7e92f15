package persistence

import (
	"context"

	appsales "github.com/retailpos/backend/internal/application/sales"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/register"
	"github.com/retailpos/backend/internal/domain/sales"
	"gorm.io/gorm"
)

// GormTransactionScope implements the application TransactionScope over GORM
// transactions. Every repository handed to the unit of work shares the same
// *gorm.DB transaction handle, so row locks taken through one repository
// hold across all of them.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside one database transaction. A non-nil error rolls
// everything back, including row locks and already-written rows.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appsales.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormTransactionalRepositories) Combos() catalog.ComboComponentRepository {
	return NewGormComboComponentRepository(r.tx)
}

func (r *gormTransactionalRepositories) PriceLists() catalog.PriceListRepository {
	return NewGormPriceListRepository(r.tx)
}

func (r *gormTransactionalRepositories) Customers() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

func (r *gormTransactionalRepositories) Warehouses() partner.WarehouseRepository {
	return NewGormWarehouseRepository(r.tx)
}

func (r *gormTransactionalRepositories) Users() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

func (r *gormTransactionalRepositories) Sessions() register.SessionRepository {
	return NewGormSessionRepository(r.tx)
}

func (r *gormTransactionalRepositories) Stock() inventory.StockLevelRepository {
	return NewGormStockLevelRepository(r.tx)
}

func (r *gormTransactionalRepositories) Movements() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

func (r *gormTransactionalRepositories) Serials() inventory.SerializedUnitRepository {
	return NewGormSerializedUnitRepository(r.tx)
}

func (r *gormTransactionalRepositories) Sales() sales.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

func (r *gormTransactionalRepositories) Commissions() sales.CommissionAccrualRepository {
	return NewGormCommissionAccrualRepository(r.tx)
}

var _ appsales.TransactionScope = (*GormTransactionScope)(nil)
var _ appsales.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
