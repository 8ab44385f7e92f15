package partner

import (
	"strings"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
)

// WarehouseStatus represents the status of a warehouse
type WarehouseStatus string

const (
	WarehouseStatusActive   WarehouseStatus = "active"
	WarehouseStatusInactive WarehouseStatus = "inactive"
)

// Warehouse represents a physical stock location. At most one warehouse is
// flagged main; it is the implicit source for baskets that do not name one.
type Warehouse struct {
	shared.BaseAggregateRoot
	Code    string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name    string          `gorm:"type:varchar(200);not null"`
	Address string          `gorm:"type:text"`
	IsMain  bool            `gorm:"not null;default:false"`
	Status  WarehouseStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a new warehouse with required fields
func NewWarehouse(code, name string) (*Warehouse, error) {
	if strings.TrimSpace(code) == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Warehouse code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Warehouse name cannot be empty")
	}

	return &Warehouse{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            WarehouseStatusActive,
	}, nil
}

// MarkAsMain flags this warehouse as the default sale source. The repository
// enforces that only one warehouse carries the flag.
func (w *Warehouse) MarkAsMain() {
	w.IsMain = true
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}

// Deactivate marks the warehouse as inactive
func (w *Warehouse) Deactivate() {
	w.Status = WarehouseStatusInactive
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}

// IsActive returns true if the warehouse can be used as a sale source
func (w *Warehouse) IsActive() bool {
	return w.Status == WarehouseStatusActive
}
