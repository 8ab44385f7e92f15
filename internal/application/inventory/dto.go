package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// ReceiveStockRequest records an inbound quantity for a bulk product
type ReceiveStockRequest struct {
	ProductID   uuid.UUID       `json:"product_id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason"`
	OperatorID  uuid.UUID       `json:"operator_id"`
}

// RegisterSerialsRequest registers individually tracked units as available
type RegisterSerialsRequest struct {
	ProductID   uuid.UUID `json:"product_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Serials     []string  `json:"serials"`
	OperatorID  uuid.UUID `json:"operator_id"`
}

// StockLevelResponse is the read model for one stock row
type StockLevelResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// StockMovementResponse is the read model for one kardex entry
type StockMovementResponse struct {
	ID           uuid.UUID              `json:"id"`
	ProductID    uuid.UUID              `json:"product_id"`
	WarehouseID  *uuid.UUID             `json:"warehouse_id,omitempty"`
	Type         inventory.MovementType `json:"type"`
	Delta        decimal.Decimal        `json:"delta"`
	BalanceAfter decimal.Decimal        `json:"balance_after"`
	Reason       string                 `json:"reason"`
	SourceID     *uuid.UUID             `json:"source_id,omitempty"`
	MovedAt      time.Time              `json:"moved_at"`
}

// ToMovementResponse maps a kardex entry to its read model
func ToMovementResponse(m *inventory.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		WarehouseID:  m.WarehouseID,
		Type:         m.Type,
		Delta:        m.Delta,
		BalanceAfter: m.BalanceAfter,
		Reason:       m.Reason,
		SourceID:     m.SourceID,
		MovedAt:      m.MovedAt,
	}
}
