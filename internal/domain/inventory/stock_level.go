package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockLevel holds the on-hand quantity of one product in one warehouse.
// It is the aggregate root for stock operations; the composite identifier is
// ProductID + WarehouseID. Rows are created lazily on first inbound movement.
//
// Quantity may never go negative: a decrement that would cross zero fails the
// whole operation instead of clamping. Every mutation happens while the row is
// held under a pessimistic lock gathered for the full basket, so concurrent
// baskets competing for the last unit serialize on the row.
type StockLevel struct {
	shared.BaseAggregateRoot
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_product_warehouse,priority:1"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_product_warehouse,priority:2"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (StockLevel) TableName() string {
	return "stock_levels"
}

// NewStockLevel creates an empty stock row for a product-warehouse combination
func NewStockLevel(productID, warehouseID uuid.UUID) (*StockLevel, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}

	return &StockLevel{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		WarehouseID:       warehouseID,
		Quantity:          decimal.Zero,
	}, nil
}

// CanFulfill returns true if the quantity covers the requested amount
func (s *StockLevel) CanFulfill(quantity decimal.Decimal) bool {
	return s.Quantity.GreaterThanOrEqual(quantity)
}

// Decrement removes quantity from the row. The sufficiency check and the
// mutation happen on the same locked row; callers must hold the row lock for
// the duration of the enclosing transaction.
func (s *StockLevel) Decrement(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Decrement quantity must be positive")
	}
	if s.Quantity.LessThan(quantity) {
		return shared.ErrInsufficientStock
	}

	s.Quantity = s.Quantity.Sub(quantity)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewStockChangedEvent(s, quantity.Neg()))
	return nil
}

// Increment adds quantity to the row
func (s *StockLevel) Increment(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Increment quantity must be positive")
	}

	s.Quantity = s.Quantity.Add(quantity)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewStockChangedEvent(s, quantity))
	return nil
}
