package inventory

import (
	"context"

	"github.com/google/uuid"
)

// StockLevelRepository defines the interface for stock row persistence.
// FindForUpdate is the locking primitive: implementations must acquire a
// pessimistic row lock (SELECT ... FOR UPDATE) that lives until the enclosing
// transaction commits or rolls back.
type StockLevelRepository interface {
	// FindByProductAndWarehouse finds a stock row without locking it
	FindByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) (*StockLevel, error)

	// FindForUpdate finds a stock row and locks it for the current transaction
	FindForUpdate(ctx context.Context, productID, warehouseID uuid.UUID) (*StockLevel, error)

	// Save creates or updates a stock row
	Save(ctx context.Context, level *StockLevel) error
}

// StockMovementRepository is append-only: kardex entries are never updated or
// deleted once written.
type StockMovementRepository interface {
	// Append persists a new movement
	Append(ctx context.Context, movement *StockMovement) error

	// FindByProduct returns movements for a product, newest first
	FindByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]StockMovement, error)

	// FindBySource returns movements written by a specific document
	FindBySource(ctx context.Context, sourceID uuid.UUID) ([]StockMovement, error)
}

// SerializedUnitRepository defines the interface for serialized unit persistence
type SerializedUnitRepository interface {
	// FindBySerial finds a unit by its serial without locking it
	FindBySerial(ctx context.Context, serial string) (*SerializedUnit, error)

	// FindBySerialsForUpdate finds and locks the named units for the current
	// transaction. Missing serials are simply absent from the result; callers
	// decide whether that is an error.
	FindBySerialsForUpdate(ctx context.Context, serials []string) ([]SerializedUnit, error)

	// Save creates or updates a unit
	Save(ctx context.Context, unit *SerializedUnit) error

	// SaveBatch creates or updates multiple units
	SaveBatch(ctx context.Context, units []*SerializedUnit) error
}
