package sales

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockObligation is a pending decrement against one stock row, expressed
// in base units.
type StockObligation struct {
	ProductID   uuid.UUID
	WarehouseID uuid.UUID
	Quantity    decimal.Decimal
}

// StockLedger applies a basket's accumulated stock obligations in one pass.
// Rows are locked in a deterministic order so concurrent baskets touching
// the same products cannot deadlock each other.
type StockLedger struct{}

// NewStockLedger creates a stock ledger
func NewStockLedger() *StockLedger {
	return &StockLedger{}
}

// DecrementAll locks every affected stock row, verifies sufficiency for the
// whole basket, then applies the decrements and appends one movement per
// row. No row is mutated until all rows have passed the sufficiency check.
func (l *StockLedger) DecrementAll(
	ctx context.Context,
	repos TransactionalRepositories,
	obligations []StockObligation,
	saleID uuid.UUID,
	saleNumber string,
	operatorID uuid.UUID,
) ([]*inventory.StockLevel, error) {
	merged := mergeObligations(obligations)
	if len(merged) == 0 {
		return nil, nil
	}

	// Lock in (product, warehouse) order regardless of basket line order.
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].ProductID != merged[j].ProductID {
			return merged[i].ProductID.String() < merged[j].ProductID.String()
		}
		return merged[i].WarehouseID.String() < merged[j].WarehouseID.String()
	})

	levels := make([]*inventory.StockLevel, 0, len(merged))
	for _, ob := range merged {
		level, err := repos.Stock().FindForUpdate(ctx, ob.ProductID, ob.WarehouseID)
		if err != nil {
			return nil, err
		}
		if level == nil {
			// A product that was never stocked in this warehouse has zero
			// on hand, which is an availability problem, not a lookup one.
			return nil, shared.NewDomainError(shared.ErrInsufficientStock.Code,
				fmt.Sprintf("product %s has no stock in warehouse %s", ob.ProductID, ob.WarehouseID))
		}
		if !level.CanFulfill(ob.Quantity) {
			return nil, shared.NewDomainError(shared.ErrInsufficientStock.Code,
				fmt.Sprintf("product %s: requested %s, available %s",
					ob.ProductID, ob.Quantity, level.Quantity))
		}
		levels = append(levels, level)
	}

	reason := fmt.Sprintf("sale %s", saleNumber)
	for i, ob := range merged {
		level := levels[i]
		if err := level.Decrement(ob.Quantity); err != nil {
			return nil, err
		}
		if err := repos.Stock().Save(ctx, level); err != nil {
			return nil, err
		}

		warehouseID := ob.WarehouseID
		movement, err := inventory.NewStockMovement(
			ob.ProductID, &warehouseID, inventory.MovementTypeSale,
			ob.Quantity.Neg(), level.Quantity, reason)
		if err != nil {
			return nil, err
		}
		movement.WithSource(saleID).WithOperator(operatorID)
		if err := repos.Movements().Append(ctx, movement); err != nil {
			return nil, err
		}
	}

	return levels, nil
}

// Receive increments stock for an intake, creating the row on first receipt.
func (l *StockLedger) Receive(
	ctx context.Context,
	repos TransactionalRepositories,
	productID, warehouseID uuid.UUID,
	quantity decimal.Decimal,
	reason string,
	operatorID uuid.UUID,
) (*inventory.StockLevel, error) {
	level, err := repos.Stock().FindForUpdate(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		level, err = inventory.NewStockLevel(productID, warehouseID)
		if err != nil {
			return nil, err
		}
	}

	if err := level.Increment(quantity); err != nil {
		return nil, err
	}
	if err := repos.Stock().Save(ctx, level); err != nil {
		return nil, err
	}

	movement, err := inventory.NewStockMovement(
		productID, &warehouseID, inventory.MovementTypeIntake,
		quantity, level.Quantity, reason)
	if err != nil {
		return nil, err
	}
	movement.WithOperator(operatorID)
	if err := repos.Movements().Append(ctx, movement); err != nil {
		return nil, err
	}

	return level, nil
}

// mergeObligations folds duplicate (product, warehouse) pairs so each row is
// locked once and checked against the basket's combined demand.
func mergeObligations(obligations []StockObligation) []StockObligation {
	type key struct {
		product   uuid.UUID
		warehouse uuid.UUID
	}
	index := make(map[key]int, len(obligations))
	merged := make([]StockObligation, 0, len(obligations))
	for _, ob := range obligations {
		k := key{ob.ProductID, ob.WarehouseID}
		if i, ok := index[k]; ok {
			merged[i].Quantity = merged[i].Quantity.Add(ob.Quantity)
			continue
		}
		index[k] = len(merged)
		merged = append(merged, ob)
	}
	return merged
}
