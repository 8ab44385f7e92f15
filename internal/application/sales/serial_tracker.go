package sales

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SerialTracker validates and consumes the explicit serial numbers of a
// serialized line. Units are never auto-selected: the line must name exactly
// the serials being handed over, and each named unit must exist, sit in the
// sale's warehouse, belong to the line's product, and still be available.
// The units are locked for the transaction before any state changes.
type SerialTracker struct{}

// NewSerialTracker creates a serial tracker
func NewSerialTracker() *SerialTracker {
	return &SerialTracker{}
}

// Sell transitions the named units to Sold for the given sale and returns
// the events to dispatch once the transaction commits. Any mismatch between
// the named serials and sellable units fails the whole line; partial
// consumption never happens.
func (t *SerialTracker) Sell(
	ctx context.Context,
	repos TransactionalRepositories,
	product *catalog.Product,
	warehouseID uuid.UUID,
	serials []string,
	quantity decimal.Decimal,
	saleID uuid.UUID,
) ([]shared.DomainEvent, error) {
	if !quantity.IsInteger() {
		return nil, shared.NewDomainError(shared.ErrSerializedMismatch.Code,
			fmt.Sprintf("product %s: serialized quantity must be a whole number", product.Code))
	}
	if int64(len(serials)) != quantity.IntPart() {
		return nil, shared.NewDomainError(shared.ErrSerializedMismatch.Code,
			fmt.Sprintf("product %s: %d serials named for quantity %s", product.Code, len(serials), quantity))
	}

	seen := make(map[string]struct{}, len(serials))
	for _, serial := range serials {
		if _, dup := seen[serial]; dup {
			return nil, shared.NewDomainError(shared.ErrSerializedMismatch.Code,
				fmt.Sprintf("serial %s named twice on one line", serial))
		}
		seen[serial] = struct{}{}
	}

	units, err := repos.Serials().FindBySerialsForUpdate(ctx, serials)
	if err != nil {
		return nil, err
	}

	found := make(map[string]*inventory.SerializedUnit, len(units))
	for i := range units {
		found[units[i].Serial] = &units[i]
	}

	locked := make([]*inventory.SerializedUnit, 0, len(serials))
	for _, serial := range serials {
		unit, ok := found[serial]
		if !ok {
			return nil, shared.NewDomainError(shared.ErrSerializedMismatch.Code,
				fmt.Sprintf("serial %s is not registered", serial))
		}
		if unit.ProductID != product.ID {
			return nil, shared.NewDomainError(shared.ErrSerializedMismatch.Code,
				fmt.Sprintf("serial %s belongs to a different product", serial))
		}
		if unit.WarehouseID != warehouseID {
			return nil, shared.NewDomainError(shared.ErrSerializedMismatch.Code,
				fmt.Sprintf("serial %s sits in a different warehouse", serial))
		}
		if !unit.IsAvailable() {
			return nil, shared.NewDomainError(shared.ErrSerializedMismatch.Code,
				fmt.Sprintf("serial %s is not available for sale", serial))
		}
		locked = append(locked, unit)
	}

	events := make([]shared.DomainEvent, 0, len(locked))
	for _, unit := range locked {
		if err := unit.MarkSold(saleID); err != nil {
			return nil, err
		}
		events = append(events, inventory.NewSerialSoldEvent(unit, saleID))
	}

	if err := repos.Serials().SaveBatch(ctx, locked); err != nil {
		return nil, err
	}
	return events, nil
}
