package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	appsales "github.com/retailpos/backend/internal/application/sales"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StockService handles inbound stock: bulk receipts and serialized unit
// registration. Each operation runs in one transaction through the same
// scope the sale engine uses, so intakes and sales serialize on the same
// row locks.
type StockService struct {
	scope      appsales.TransactionScope
	ledger     *appsales.StockLedger
	stockReads inventory.StockLevelRepository
	moveReads  inventory.StockMovementRepository
	publisher  shared.EventPublisher
	logger     *zap.Logger
}

// NewStockService creates the stock service
func NewStockService(
	scope appsales.TransactionScope,
	stockReads inventory.StockLevelRepository,
	moveReads inventory.StockMovementRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *StockService {
	return &StockService{
		scope:      scope,
		ledger:     appsales.NewStockLedger(),
		stockReads: stockReads,
		moveReads:  moveReads,
		publisher:  publisher,
		logger:     logger,
	}
}

// Receive books an inbound quantity for a bulk product, creating the stock
// row on first receipt. Serialized products must go through
// RegisterSerializedUnits so every physical unit gets its serial recorded.
func (s *StockService) Receive(ctx context.Context, req ReceiveStockRequest) (*StockLevelResponse, error) {
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "intake quantity must be positive")
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = "stock intake"
	}

	var result StockLevelResponse
	var pending []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos appsales.TransactionalRepositories) error {
		product, err := repos.Products().FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return shared.NewDomainError(shared.ErrNotFound.Code,
				fmt.Sprintf("product %s not found", req.ProductID))
		}
		if !product.Kind.AffectsStock() || product.IsCombo() {
			return shared.NewDomainError(shared.ErrInvalidInput.Code,
				fmt.Sprintf("product %s does not hold stock of its own", product.Code))
		}
		if product.IsSerialized() {
			return shared.NewDomainError(shared.ErrInvalidInput.Code,
				fmt.Sprintf("product %s is serialized, register units with their serials", product.Code))
		}

		warehouse, err := repos.Warehouses().FindByID(ctx, req.WarehouseID)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return shared.NewDomainError(shared.ErrNotFound.Code,
				fmt.Sprintf("warehouse %s not found", req.WarehouseID))
		}

		level, err := s.ledger.Receive(ctx, repos, req.ProductID, req.WarehouseID, req.Quantity, reason, req.OperatorID)
		if err != nil {
			return err
		}
		pending = append(pending, level.GetDomainEvents()...)
		level.ClearDomainEvents()

		result = StockLevelResponse{
			ProductID:   level.ProductID,
			WarehouseID: level.WarehouseID,
			Quantity:    level.Quantity,
		}
		return nil
	})
	if err != nil {
		if shared.CodeOf(err) == "" {
			return nil, fmt.Errorf("%w: %v", shared.ErrStorageFailure, err)
		}
		return nil, err
	}

	s.publish(ctx, pending)
	s.logger.Info("stock received",
		zap.String("product_id", req.ProductID.String()),
		zap.String("warehouse_id", req.WarehouseID.String()),
		zap.String("quantity", req.Quantity.String()))
	return &result, nil
}

// RegisterSerializedUnits registers the named serials as available units and
// raises the product's aggregate stock by their count. Every serial must be
// new; one duplicate rejects the whole batch.
func (s *StockService) RegisterSerializedUnits(ctx context.Context, req RegisterSerialsRequest) (*StockLevelResponse, error) {
	if len(req.Serials) == 0 {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "no serials given")
	}

	var result StockLevelResponse
	var pending []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos appsales.TransactionalRepositories) error {
		product, err := repos.Products().FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return shared.NewDomainError(shared.ErrNotFound.Code,
				fmt.Sprintf("product %s not found", req.ProductID))
		}
		if !product.IsSerialized() {
			return shared.NewDomainError(shared.ErrInvalidInput.Code,
				fmt.Sprintf("product %s is not serialized", product.Code))
		}

		warehouse, err := repos.Warehouses().FindByID(ctx, req.WarehouseID)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return shared.NewDomainError(shared.ErrNotFound.Code,
				fmt.Sprintf("warehouse %s not found", req.WarehouseID))
		}

		units := make([]*inventory.SerializedUnit, 0, len(req.Serials))
		for _, serial := range req.Serials {
			existing, err := repos.Serials().FindBySerial(ctx, serial)
			if err != nil {
				return err
			}
			if existing != nil {
				return shared.NewDomainError(shared.ErrAlreadyExists.Code,
					fmt.Sprintf("serial %s is already registered", serial))
			}
			unit, err := inventory.NewSerializedUnit(serial, req.ProductID, req.WarehouseID)
			if err != nil {
				return err
			}
			units = append(units, unit)
		}

		if err := repos.Serials().SaveBatch(ctx, units); err != nil {
			return err
		}

		level, err := s.ledger.Receive(ctx, repos, req.ProductID, req.WarehouseID,
			decimal.NewFromInt(int64(len(units))), "serialized intake", req.OperatorID)
		if err != nil {
			return err
		}
		pending = append(pending, level.GetDomainEvents()...)
		level.ClearDomainEvents()

		result = StockLevelResponse{
			ProductID:   level.ProductID,
			WarehouseID: level.WarehouseID,
			Quantity:    level.Quantity,
		}
		return nil
	})
	if err != nil {
		if shared.CodeOf(err) == "" {
			return nil, fmt.Errorf("%w: %v", shared.ErrStorageFailure, err)
		}
		return nil, err
	}

	s.publish(ctx, pending)
	s.logger.Info("serialized units registered",
		zap.String("product_id", req.ProductID.String()),
		zap.Int("count", len(req.Serials)))
	return &result, nil
}

// GetLevel returns the on-hand quantity for one product-warehouse pair.
// A missing row reads as zero.
func (s *StockService) GetLevel(ctx context.Context, productID, warehouseID uuid.UUID) (*StockLevelResponse, error) {
	level, err := s.stockReads.FindByProductAndWarehouse(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return &StockLevelResponse{
			ProductID:   productID,
			WarehouseID: warehouseID,
			Quantity:    decimal.Zero,
		}, nil
	}
	return &StockLevelResponse{
		ProductID:   level.ProductID,
		WarehouseID: level.WarehouseID,
		Quantity:    level.Quantity,
	}, nil
}

// GetMovements returns the most recent kardex entries for a product
func (s *StockService) GetMovements(ctx context.Context, productID uuid.UUID, limit int) ([]StockMovementResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	movements, err := s.moveReads.FindByProduct(ctx, productID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]StockMovementResponse, 0, len(movements))
	for i := range movements {
		out = append(out, ToMovementResponse(&movements[i]))
	}
	return out, nil
}

func (s *StockService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish domain events",
			zap.Int("count", len(events)), zap.Error(err))
	}
}
