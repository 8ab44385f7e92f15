package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MovementType classifies a kardex entry
type MovementType string

const (
	// MovementTypeSale is an outbound movement caused by a committed sale
	MovementTypeSale MovementType = "SALE"
	// MovementTypeIntake is an inbound movement from receiving stock
	MovementTypeIntake MovementType = "INTAKE"
	// MovementTypeAdjustment is a manual correction
	MovementTypeAdjustment MovementType = "ADJUSTMENT"
)

// IsValid returns true if the movement type is known
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeSale, MovementTypeIntake, MovementTypeAdjustment:
		return true
	}
	return false
}

// StockMovement is one immutable entry in the kardex. Entries are only ever
// appended; corrections are new entries, never updates or deletes. Delta is
// signed (negative for outbound) and BalanceAfter records the row quantity
// that resulted from applying it.
type StockMovement struct {
	shared.BaseEntity
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_movement_product_time,priority:1"`
	WarehouseID  *uuid.UUID      `gorm:"type:uuid;index"`
	Type         MovementType    `gorm:"type:varchar(20);not null;index"`
	Delta        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BalanceAfter decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reason       string          `gorm:"type:varchar(255);not null"`
	// SourceID links to the originating sale or intake document
	SourceID   *uuid.UUID `gorm:"type:uuid;index"`
	OperatorID *uuid.UUID `gorm:"type:uuid"`
	MovedAt    time.Time  `gorm:"not null;index:idx_movement_product_time,priority:2"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a new kardex entry
func NewStockMovement(
	productID uuid.UUID,
	warehouseID *uuid.UUID,
	movementType MovementType,
	delta decimal.Decimal,
	balanceAfter decimal.Decimal,
	reason string,
) (*StockMovement, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Unknown movement type")
	}
	if delta.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement delta cannot be zero")
	}
	if balanceAfter.IsNegative() {
		return nil, shared.NewDomainError("INVALID_BALANCE", "Resulting balance cannot be negative")
	}
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Movement reason is required")
	}

	return &StockMovement{
		BaseEntity:   shared.NewBaseEntity(),
		ProductID:    productID,
		WarehouseID:  warehouseID,
		Type:         movementType,
		Delta:        delta,
		BalanceAfter: balanceAfter,
		Reason:       reason,
		MovedAt:      time.Now(),
	}, nil
}

// WithSource links the movement to its originating document
func (m *StockMovement) WithSource(sourceID uuid.UUID) *StockMovement {
	m.SourceID = &sourceID
	return m
}

// WithOperator records the user who caused the movement
func (m *StockMovement) WithOperator(operatorID uuid.UUID) *StockMovement {
	m.OperatorID = &operatorID
	return m
}

// IsOutbound returns true for movements that reduced stock
func (m *StockMovement) IsOutbound() bool {
	return m.Delta.IsNegative()
}
