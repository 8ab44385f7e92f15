package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// SerialStatus is the lifecycle state of an individually tracked unit.
// This engine only performs Available → Sold; Sold → Quarantined and
// Quarantined → Available belong to return flows but share the enum so the
// same column can represent them.
type SerialStatus string

const (
	SerialStatusAvailable   SerialStatus = "available"
	SerialStatusSold        SerialStatus = "sold"
	SerialStatusQuarantined SerialStatus = "quarantined"
)

// IsValid returns true if the status is one of the closed set
func (s SerialStatus) IsValid() bool {
	switch s {
	case SerialStatusAvailable, SerialStatusSold, SerialStatusQuarantined:
		return true
	}
	return false
}

// SerializedUnit is one physically identified item (serial/IMEI). A unit
// belongs to exactly one product-warehouse pair at a time and is sold against
// its explicit serial; units are never auto-selected, front-line staff verify
// the physical item being handed over.
type SerializedUnit struct {
	shared.BaseAggregateRoot
	Serial      string       `gorm:"type:varchar(100);not null;uniqueIndex"`
	ProductID   uuid.UUID    `gorm:"type:uuid;not null;index"`
	WarehouseID uuid.UUID    `gorm:"type:uuid;not null;index"`
	Status      SerialStatus `gorm:"type:varchar(20);not null;default:'available';index"`
	// SoldInSaleID is set when the unit transitions to Sold
	SoldInSaleID *uuid.UUID `gorm:"type:uuid;index"`
	SoldAt       *time.Time
}

// TableName returns the table name for GORM
func (SerializedUnit) TableName() string {
	return "serialized_units"
}

// NewSerializedUnit registers a unit as Available in a warehouse
func NewSerializedUnit(serial string, productID, warehouseID uuid.UUID) (*SerializedUnit, error) {
	if strings.TrimSpace(serial) == "" {
		return nil, shared.NewDomainError("INVALID_SERIAL", "Serial cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}

	return &SerializedUnit{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Serial:            strings.TrimSpace(serial),
		ProductID:         productID,
		WarehouseID:       warehouseID,
		Status:            SerialStatusAvailable,
	}, nil
}

// IsAvailable returns true while the unit can be sold
func (u *SerializedUnit) IsAvailable() bool {
	return u.Status == SerialStatusAvailable
}

// MarkSold transitions the unit Available → Sold for the given sale
func (u *SerializedUnit) MarkSold(saleID uuid.UUID) error {
	if u.Status != SerialStatusAvailable {
		return shared.ErrSerializedMismatch
	}
	if saleID == uuid.Nil {
		return shared.NewDomainError("INVALID_SALE", "Sale ID cannot be empty")
	}

	now := time.Now()
	u.Status = SerialStatusSold
	u.SoldInSaleID = &saleID
	u.SoldAt = &now
	u.UpdatedAt = now
	u.IncrementVersion()
	return nil
}
