package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SaleService coordinates the atomic processing of a basket. One call is one
// database transaction: every stock row, serialized unit, sale record, kardex
// entry and commission accrual either commits together or none of it exists.
// Notifications go out strictly after commit.
type SaleService struct {
	scope       TransactionScope
	reads       sales.SaleRepository
	expander    *ComboExpander
	serials     *SerialTracker
	pricing     *PricingAuthorizer
	credit      *CreditGuard
	commissions *CommissionCalculator
	ledger      *StockLedger
	idempotency shared.IdempotencyStore
	idemConfig  shared.IdempotencyConfig
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewSaleService creates the sale coordinator. idempotency may be nil when no
// store is configured; the database key lookup stays authoritative either way.
func NewSaleService(
	scope TransactionScope,
	reads sales.SaleRepository,
	idempotency shared.IdempotencyStore,
	idemConfig shared.IdempotencyConfig,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *SaleService {
	return &SaleService{
		scope:       scope,
		reads:       reads,
		expander:    NewComboExpander(),
		serials:     NewSerialTracker(),
		pricing:     NewPricingAuthorizer(),
		credit:      NewCreditGuard(),
		commissions: NewCommissionCalculator(),
		ledger:      NewStockLedger(),
		idempotency: idempotency,
		idemConfig:  idemConfig,
		publisher:   publisher,
		logger:      logger,
	}
}

// Process runs one basket through the full pipeline: session check, credit
// standing, pricing resolution, combo expansion, credit limit, serial
// consumption, stock decrement, persistence. Nothing is mutated before every
// guard has passed. A replayed idempotency key returns the previously
// committed sale without reprocessing anything.
func (s *SaleService) Process(ctx context.Context, req ProcessSaleRequest) (*SaleResult, error) {
	if len(req.Lines) == 0 {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "basket has no lines")
	}
	if req.OperatorID == uuid.Nil {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "operator is required")
	}
	rate := req.ExchangeRate
	if rate.LessThanOrEqual(decimal.Zero) {
		rate = decimal.NewFromInt(1)
	}

	if req.IdempotencyKey != "" && s.idempotency != nil && s.idemConfig.Enabled {
		if hit, err := s.idempotency.IsProcessed(ctx, req.IdempotencyKey); err != nil {
			s.logger.Warn("idempotency store unavailable, falling back to database lookup",
				zap.String("key", req.IdempotencyKey), zap.Error(err))
		} else if hit {
			s.logger.Debug("idempotency store hit", zap.String("key", req.IdempotencyKey))
		}
	}

	var result SaleResult
	var pending []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if req.IdempotencyKey != "" {
			existing, err := repos.Sales().FindByIdempotencyKey(ctx, req.IdempotencyKey)
			if err != nil {
				return err
			}
			if existing != nil {
				result = SaleResult{
					SaleID:           existing.ID,
					Number:           existing.Number,
					Total:            existing.Total,
					AlreadyProcessed: true,
				}
				return nil
			}
		}

		session, err := repos.Sessions().FindOpen(ctx)
		if err != nil {
			return err
		}
		if session == nil {
			return shared.ErrNoOpenSession
		}

		operator, err := repos.Users().FindByID(ctx, req.OperatorID)
		if err != nil {
			return err
		}
		if operator == nil {
			return shared.NewDomainError(shared.ErrNotFound.Code,
				fmt.Sprintf("operator %s not found", req.OperatorID))
		}
		if !operator.Active {
			return shared.NewDomainError(shared.ErrInvalidState.Code,
				fmt.Sprintf("operator %s is inactive", operator.Username))
		}

		number, err := repos.Sales().GenerateNumber(ctx)
		if err != nil {
			return err
		}

		sale, err := sales.NewSale(number, req.OperatorID, session.ID, rate)
		if err != nil {
			return err
		}
		sale.SetIdempotencyKey(req.IdempotencyKey)
		if req.CustomerID != nil {
			sale.SetCustomer(*req.CustomerID)
		}

		warehouseID, err := s.resolveWarehouse(ctx, repos, req.WarehouseID)
		if err != nil {
			return err
		}
		if warehouseID != uuid.Nil {
			sale.SetWarehouse(warehouseID)
		}

		// Standing is checked before a single line is touched; a blocked or
		// overdue customer never reaches pricing or stock.
		now := time.Now()
		var customer *partner.Customer
		if req.IsCredit {
			if req.CustomerID == nil {
				return shared.NewDomainError(shared.ErrCreditRejected.Code, "credit sales require a customer")
			}
			customer, err = s.credit.Standing(ctx, repos, *req.CustomerID, now)
			if err != nil {
				return err
			}
		}

		users := map[uuid.UUID]*identity.User{operator.ID: operator}
		var obligations []StockObligation
		var serialLines []serialRequest

		for i := range req.Lines {
			lineObligations, serialLine, err := s.processLine(ctx, repos, sale, &req.Lines[i], warehouseID, req.AuthorizedBy, operator)
			if err != nil {
				return err
			}
			obligations = append(obligations, lineObligations...)
			if serialLine != nil {
				serialLines = append(serialLines, *serialLine)
			}
		}

		// The limit needs the basket total, so it runs after pricing but
		// still ahead of the first serial or stock mutation.
		var dueDate time.Time
		if req.IsCredit {
			if err := s.credit.CheckLimit(ctx, repos, customer, sale.Total); err != nil {
				return err
			}
			switch {
			case req.DueDate != nil:
				dueDate = *req.DueDate
			case customer.CreditDays > 0:
				dueDate = now.AddDate(0, 0, customer.CreditDays)
			default:
				return shared.NewDomainError(shared.ErrInvalidInput.Code,
					fmt.Sprintf("customer %s has no payment term and no due date was given", customer.Code))
			}
		}

		for i := range serialLines {
			sl := &serialLines[i]
			serialEvents, err := s.serials.Sell(ctx, repos, sl.product, sl.warehouseID, sl.serials, sl.quantity, sale.ID)
			if err != nil {
				return err
			}
			pending = append(pending, serialEvents...)
		}

		levels, err := s.ledger.DecrementAll(ctx, repos, obligations, sale.ID, sale.Number, req.OperatorID)
		if err != nil {
			return err
		}
		for _, level := range levels {
			pending = append(pending, level.GetDomainEvents()...)
			level.ClearDomainEvents()
		}

		for i := range req.Payments {
			p := &req.Payments[i]
			amount, err := valueobject.NewMoney(p.Amount, p.Currency)
			if err != nil {
				return err
			}
			payRate := p.ExchangeRate
			if payRate.LessThanOrEqual(decimal.Zero) {
				payRate = decimal.NewFromInt(1)
				if p.Currency != valueobject.PrimaryCurrency {
					payRate = rate
				}
			}
			if err := sale.AddPayment(p.Method, amount, payRate); err != nil {
				return err
			}
		}

		if req.IsCredit {
			if err := sale.FinalizeAsCredit(dueDate); err != nil {
				return err
			}
		} else {
			if err := sale.FinalizeAsPaid(); err != nil {
				return err
			}
		}

		if err := repos.Sales().Save(ctx, sale); err != nil {
			return err
		}

		for i := range sale.Lines {
			if err := s.commissions.Accrue(ctx, repos, users, sale.ID, &sale.Lines[i]); err != nil {
				return err
			}
		}

		pending = append(pending, sale.GetDomainEvents()...)
		sale.ClearDomainEvents()

		result = SaleResult{
			SaleID: sale.ID,
			Number: sale.Number,
			Total:  sale.Total,
		}
		return nil
	})
	if err != nil {
		// Two baskets carrying the same key can race past the in-transaction
		// lookup; the unique index on the key catches the loser, whose basket
		// resolves to the winner's committed sale.
		if req.IdempotencyKey != "" && shared.IsCode(err, shared.ErrDuplicateBasket.Code) {
			existing, readErr := s.reads.FindByIdempotencyKey(ctx, req.IdempotencyKey)
			if readErr == nil && existing != nil {
				s.logger.Info("duplicate basket resolved to committed sale",
					zap.String("key", req.IdempotencyKey), zap.String("number", existing.Number))
				return &SaleResult{
					SaleID:           existing.ID,
					Number:           existing.Number,
					Total:            existing.Total,
					AlreadyProcessed: true,
				}, nil
			}
			return nil, err
		}
		if shared.CodeOf(err) == "" {
			return nil, fmt.Errorf("%w: %v", shared.ErrStorageFailure, err)
		}
		return nil, err
	}

	if result.AlreadyProcessed {
		s.logger.Info("duplicate basket skipped",
			zap.String("key", req.IdempotencyKey), zap.String("number", result.Number))
		return &result, nil
	}

	s.afterCommit(ctx, req.IdempotencyKey, pending)

	s.logger.Info("sale committed",
		zap.String("number", result.Number),
		zap.String("sale_id", result.SaleID.String()),
		zap.String("total", result.Total.String()),
		zap.Int("lines", len(req.Lines)))
	return &result, nil
}

// serialRequest defers the consumption of a serialized line until every
// guard has passed; units are marked sold just before the stock decrement.
type serialRequest struct {
	product     *catalog.Product
	warehouseID uuid.UUID
	serials     []string
	quantity    decimal.Decimal
}

// processLine prices one basket line, dispatches on the product kind, and
// appends the committed line to the sale. It returns the stock obligations
// the line accumulated and, for serialized products, the deferred serial
// consumption.
func (s *SaleService) processLine(
	ctx context.Context,
	repos TransactionalRepositories,
	sale *sales.Sale,
	line *SaleLineRequest,
	warehouseID uuid.UUID,
	authorizedBy *uuid.UUID,
	operator *identity.User,
) ([]StockObligation, *serialRequest, error) {
	product, err := repos.Products().FindByID(ctx, line.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, shared.NewDomainError(shared.ErrNotFound.Code,
			fmt.Sprintf("product %s not found", line.ProductID))
	}
	if !product.IsActive() {
		return nil, nil, shared.NewDomainError(shared.ErrInvalidState.Code,
			fmt.Sprintf("product %s is not sellable", product.Code))
	}

	var resolution sales.PriceResolution
	if line.PriceListID != nil {
		resolution = sales.AuthoritativePrice(*line.PriceListID)
	} else {
		resolution = sales.FreeEntryPrice(valueobject.NewMoneyUSD(line.UnitPrice))
	}
	unitPrice, err := s.pricing.Resolve(ctx, repos, product, resolution, authorizedBy)
	if err != nil {
		return nil, nil, err
	}

	// Lines sold by presentation are stored in base units; the price entered
	// per presentation unit is spread over the converted quantity so the
	// gross amount stays the same.
	quantity := line.Quantity
	if line.UsePresentation && !product.IsCombo() {
		quantity = quantity.Mul(product.ConversionFactor)
		unitPrice = valueobject.NewMoneyUSD(
			unitPrice.Amount().Div(product.ConversionFactor).Round(4))
	}

	salespersonID := operator.ID
	if line.SalespersonID != nil {
		salespersonID = *line.SalespersonID
	}

	var obligations []StockObligation
	var deferred *serialRequest

	switch product.Kind {
	case catalog.KindService:
		// Never touches stock.
	case catalog.KindPhysical:
		if warehouseID == uuid.Nil {
			return nil, nil, shared.NewDomainError(shared.ErrNotFound.Code, "no active warehouse available")
		}
		obligations = append(obligations, StockObligation{
			ProductID:   product.ID,
			WarehouseID: warehouseID,
			Quantity:    quantity,
		})
	case catalog.KindCombo:
		if warehouseID == uuid.Nil {
			return nil, nil, shared.NewDomainError(shared.ErrNotFound.Code, "no active warehouse available")
		}
		expanded, err := s.expander.Expand(ctx, repos, product, line.Quantity, warehouseID)
		if err != nil {
			return nil, nil, err
		}
		obligations = append(obligations, expanded...)
	case catalog.KindSerialized:
		if warehouseID == uuid.Nil {
			return nil, nil, shared.NewDomainError(shared.ErrNotFound.Code, "no active warehouse available")
		}
		deferred = &serialRequest{
			product:     product,
			warehouseID: warehouseID,
			serials:     line.Serials,
			quantity:    quantity,
		}
		obligations = append(obligations, StockObligation{
			ProductID:   product.ID,
			WarehouseID: warehouseID,
			Quantity:    quantity,
		})
	default:
		return nil, nil, shared.NewDomainError(shared.ErrInvalidInput.Code,
			fmt.Sprintf("product %s has unknown kind %q", product.Code, product.Kind))
	}

	added, err := sale.AddLine(
		product.ID, product.Kind, product.Name,
		quantity, unitPrice, line.DiscountPercent,
		product.GetCostMoney(), salespersonID)
	if err != nil {
		return nil, nil, err
	}
	if product.IsSerialized() {
		added.Serials = line.Serials
	}

	return obligations, deferred, nil
}

// resolveWarehouse picks the stock source for the basket: the explicit
// warehouse when given, otherwise the main warehouse, otherwise the first
// active one. uuid.Nil means none exists, which only service-only baskets
// tolerate.
func (s *SaleService) resolveWarehouse(
	ctx context.Context,
	repos TransactionalRepositories,
	explicit *uuid.UUID,
) (uuid.UUID, error) {
	if explicit != nil {
		warehouse, err := repos.Warehouses().FindByID(ctx, *explicit)
		if err != nil {
			return uuid.Nil, err
		}
		if warehouse == nil {
			return uuid.Nil, shared.NewDomainError(shared.ErrNotFound.Code,
				fmt.Sprintf("warehouse %s not found", explicit))
		}
		if !warehouse.IsActive() {
			return uuid.Nil, shared.NewDomainError(shared.ErrInvalidState.Code,
				fmt.Sprintf("warehouse %s is inactive", warehouse.Code))
		}
		return warehouse.ID, nil
	}

	warehouse, err := repos.Warehouses().FindMain(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	if warehouse == nil {
		warehouse, err = repos.Warehouses().FindFirstActive(ctx)
		if err != nil {
			return uuid.Nil, err
		}
	}
	if warehouse == nil {
		return uuid.Nil, nil
	}
	return warehouse.ID, nil
}

// afterCommit runs best-effort work that must never influence the already
// committed transaction: idempotency marking and event dispatch.
func (s *SaleService) afterCommit(ctx context.Context, key string, events []shared.DomainEvent) {
	if key != "" && s.idempotency != nil && s.idemConfig.Enabled {
		if _, err := s.idempotency.MarkProcessed(ctx, key, s.idemConfig.TTL); err != nil {
			s.logger.Warn("failed to mark idempotency key",
				zap.String("key", key), zap.Error(err))
		}
	}

	if s.publisher != nil && len(events) > 0 {
		if err := s.publisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("failed to publish domain events",
				zap.Int("count", len(events)), zap.Error(err))
		}
	}
}

// GetByID returns a committed sale with its lines and payments
func (s *SaleService) GetByID(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.reads.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, shared.NewDomainError(shared.ErrNotFound.Code,
			fmt.Sprintf("sale %s not found", id))
	}
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// GetByIdempotencyKey returns the sale committed under the given basket key
func (s *SaleService) GetByIdempotencyKey(ctx context.Context, key string) (*SaleResponse, error) {
	sale, err := s.reads.FindByIdempotencyKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, shared.NewDomainError(shared.ErrNotFound.Code,
			fmt.Sprintf("no sale recorded for key %s", key))
	}
	resp := ToSaleResponse(sale)
	return &resp, nil
}
