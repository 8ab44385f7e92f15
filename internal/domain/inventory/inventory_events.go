package inventory

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeStockLevel     = "StockLevel"
	AggregateTypeSerializedUnit = "SerializedUnit"
)

// Event type constants
const (
	EventTypeStockChanged = "stock.changed"
	EventTypeSerialSold   = "serial.sold"
)

// StockChangedEvent is raised for every stock row a committed operation
// touched. It carries the resulting quantity so subscribers (threshold alerts,
// catalog sync) do not need to re-read the row.
type StockChangedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID       `json:"product_id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	Delta       decimal.Decimal `json:"delta"`
	NewQuantity decimal.Decimal `json:"new_stock"`
}

// NewStockChangedEvent creates a new StockChangedEvent
func NewStockChangedEvent(level *StockLevel, delta decimal.Decimal) *StockChangedEvent {
	return &StockChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockChanged, AggregateTypeStockLevel, level.ID),
		ProductID:       level.ProductID,
		WarehouseID:     level.WarehouseID,
		Delta:           delta,
		NewQuantity:     level.Quantity,
	}
}

// EventType returns the event type name
func (e *StockChangedEvent) EventType() string {
	return EventTypeStockChanged
}

// SerialSoldEvent is raised when a serialized unit transitions to Sold
type SerialSoldEvent struct {
	shared.BaseDomainEvent
	Serial    string    `json:"serial"`
	ProductID uuid.UUID `json:"product_id"`
	SaleID    uuid.UUID `json:"sale_id"`
}

// NewSerialSoldEvent creates a new SerialSoldEvent
func NewSerialSoldEvent(unit *SerializedUnit, saleID uuid.UUID) *SerialSoldEvent {
	return &SerialSoldEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSerialSold, AggregateTypeSerializedUnit, unit.ID),
		Serial:          unit.Serial,
		ProductID:       unit.ProductID,
		SaleID:          saleID,
	}
}

// EventType returns the event type name
func (e *SerialSoldEvent) EventType() string {
	return EventTypeSerialSold
}
