package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/inventory"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockLevelRepository implements inventory.StockLevelRepository using
// GORM. FindForUpdate issues SELECT ... FOR UPDATE; the returned row stays
// locked until the enclosing transaction ends, so it must only be called
// from inside a transaction scope.
type GormStockLevelRepository struct {
	db *gorm.DB
}

// NewGormStockLevelRepository creates a new GormStockLevelRepository
func NewGormStockLevelRepository(db *gorm.DB) *GormStockLevelRepository {
	return &GormStockLevelRepository{db: db}
}

// FindByProductAndWarehouse finds a stock row without locking it
func (r *GormStockLevelRepository) FindByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) (*inventory.StockLevel, error) {
	var level inventory.StockLevel
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		First(&level).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &level, nil
}

// FindForUpdate finds a stock row and locks it for the current transaction.
// Returns nil when the row does not exist; no lock is taken in that case.
func (r *GormStockLevelRepository) FindForUpdate(ctx context.Context, productID, warehouseID uuid.UUID) (*inventory.StockLevel, error) {
	var level inventory.StockLevel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		First(&level).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &level, nil
}

// Save creates or updates a stock row
func (r *GormStockLevelRepository) Save(ctx context.Context, level *inventory.StockLevel) error {
	return r.db.WithContext(ctx).Save(level).Error
}

var _ inventory.StockLevelRepository = (*GormStockLevelRepository)(nil)
