package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SyncStatus tracks whether a sale has been picked up by the cloud sync path
type SyncStatus string

const (
	SyncStatusPending SyncStatus = "pending"
	SyncStatusSynced  SyncStatus = "synced"
)

// PaymentMethod is the tender type of one payment
type PaymentMethod string

const (
	PaymentMethodCash        PaymentMethod = "cash"
	PaymentMethodCard        PaymentMethod = "card"
	PaymentMethodTransfer    PaymentMethod = "transfer"
	PaymentMethodStoreCredit PaymentMethod = "store_credit"
)

// IsValid returns true if the payment method is known
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodStoreCredit:
		return true
	}
	return false
}

// Sale is the aggregate root created exactly once per committed basket.
// After commit it is immutable from this engine's perspective; credit
// payments and returns append their own records later. Totals are carried in
// the primary currency and mirrored into the reference currency at the
// exchange rate captured at sale time.
type Sale struct {
	shared.BaseAggregateRoot
	Number      string     `gorm:"type:varchar(30);not null;uniqueIndex"`
	CustomerID  *uuid.UUID `gorm:"type:uuid;index"`
	WarehouseID *uuid.UUID `gorm:"type:uuid;index"`
	OperatorID  uuid.UUID  `gorm:"type:uuid;not null"`
	SessionID   uuid.UUID  `gorm:"type:uuid;not null;index"`

	Total             decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Currency          valueobject.Currency `gorm:"type:varchar(3);not null"`
	ReferenceTotal    decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	ReferenceCurrency valueobject.Currency `gorm:"type:varchar(3);not null"`
	ExchangeRate      decimal.Decimal      `gorm:"type:decimal(18,6);not null;default:1"`

	IsCredit           bool            `gorm:"not null;default:false"`
	DueDate            *time.Time      `gorm:"index"`
	OutstandingBalance decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	// IdempotencyKey is supplied by the caller; retried requests carrying the
	// same key must resolve to this sale instead of creating a new one.
	IdempotencyKey string     `gorm:"type:varchar(100);uniqueIndex:idx_sales_idempotency_key,where:idempotency_key <> ''"`
	SyncStatus     SyncStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	SoldAt         time.Time  `gorm:"not null;index"`

	Lines    []SaleLine    `gorm:"foreignKey:SaleID;references:ID"`
	Payments []SalePayment `gorm:"foreignKey:SaleID;references:ID"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// SaleLine is one basket line as committed. UnitPrice is the price actually
// charged after pricing authorization; CostAtSale is a frozen snapshot of the
// product's catalog cost and must never be recomputed afterwards.
type SaleLine struct {
	shared.BaseEntity
	SaleID          uuid.UUID           `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID           `gorm:"type:uuid;not null;index"`
	ProductKind     catalog.ProductKind `gorm:"type:varchar(20);not null"`
	Description     string              `gorm:"type:varchar(200)"`
	Quantity        decimal.Decimal     `gorm:"type:decimal(18,4);not null"` // base units
	UnitPrice       decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	DiscountPercent decimal.Decimal     `gorm:"type:decimal(8,4);not null;default:0"`
	Subtotal        decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	CostAtSale      decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	SalespersonID   uuid.UUID           `gorm:"type:uuid;not null"`
	Serials         []string            `gorm:"serializer:json"`
}

// TableName returns the table name for GORM
func (SaleLine) TableName() string {
	return "sale_lines"
}

// SalePayment is one tender applied to a sale. A sale may mix tenders in
// different currencies; each carries its own exchange rate.
type SalePayment struct {
	shared.BaseEntity
	SaleID       uuid.UUID            `gorm:"type:uuid;not null;index"`
	Method       PaymentMethod        `gorm:"type:varchar(20);not null"`
	Amount       decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Currency     valueobject.Currency `gorm:"type:varchar(3);not null"`
	ExchangeRate decimal.Decimal      `gorm:"type:decimal(18,6);not null;default:1"`
}

// TableName returns the table name for GORM
func (SalePayment) TableName() string {
	return "sale_payments"
}

// NewSale starts a sale aggregate for the given operator and session
func NewSale(number string, operatorID, sessionID uuid.UUID, exchangeRate decimal.Decimal) (*Sale, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Sale number cannot be empty")
	}
	if operatorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OPERATOR", "Operator ID cannot be empty")
	}
	if sessionID == uuid.Nil {
		return nil, shared.ErrNoOpenSession
	}
	if exchangeRate.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_RATE", "Exchange rate must be positive")
	}

	return &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		OperatorID:        operatorID,
		SessionID:         sessionID,
		Total:             decimal.Zero,
		Currency:          valueobject.PrimaryCurrency,
		ReferenceTotal:    decimal.Zero,
		ReferenceCurrency: valueobject.ReferenceCurrency,
		ExchangeRate:      exchangeRate,
		SyncStatus:        SyncStatusPending,
		SoldAt:            time.Now(),
		Lines:             make([]SaleLine, 0),
		Payments:          make([]SalePayment, 0),
	}, nil
}

// SetCustomer associates the sale with a customer
func (s *Sale) SetCustomer(customerID uuid.UUID) {
	s.CustomerID = &customerID
}

// SetWarehouse records the resolved source warehouse
func (s *Sale) SetWarehouse(warehouseID uuid.UUID) {
	s.WarehouseID = &warehouseID
}

// SetIdempotencyKey records the externally supplied basket identifier
func (s *Sale) SetIdempotencyKey(key string) {
	s.IdempotencyKey = key
}

// AddLine appends a committed line. The caller has already resolved the final
// unit price and the cost snapshot; this method only computes the subtotal
// and keeps the running totals consistent.
func (s *Sale) AddLine(
	productID uuid.UUID,
	kind catalog.ProductKind,
	description string,
	quantity decimal.Decimal,
	unitPrice valueobject.Money,
	discountPercent decimal.Decimal,
	costAtSale valueobject.Money,
	salespersonID uuid.UUID,
) (*SaleLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount must be between 0 and 100 percent")
	}
	if salespersonID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALESPERSON", "Salesperson ID cannot be empty")
	}

	subtotal := lineSubtotal(quantity, unitPrice.Amount(), discountPercent)

	line := SaleLine{
		BaseEntity:      shared.NewBaseEntity(),
		SaleID:          s.ID,
		ProductID:       productID,
		ProductKind:     kind,
		Description:     description,
		Quantity:        quantity,
		UnitPrice:       unitPrice.Amount(),
		DiscountPercent: discountPercent,
		Subtotal:        subtotal,
		CostAtSale:      costAtSale.Amount(),
		SalespersonID:   salespersonID,
	}
	s.Lines = append(s.Lines, line)

	s.Total = s.Total.Add(subtotal)
	s.ReferenceTotal = s.Total.Mul(s.ExchangeRate).Round(4)
	return &s.Lines[len(s.Lines)-1], nil
}

// AddPayment appends a tender
func (s *Sale) AddPayment(method PaymentMethod, amount valueobject.Money, exchangeRate decimal.Decimal) error {
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT", "Unknown payment method")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_PAYMENT", "Payment amount must be positive")
	}
	if exchangeRate.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_RATE", "Exchange rate must be positive")
	}

	s.Payments = append(s.Payments, SalePayment{
		BaseEntity:   shared.NewBaseEntity(),
		SaleID:       s.ID,
		Method:       method,
		Amount:       amount.Amount(),
		Currency:     amount.Currency(),
		ExchangeRate: exchangeRate,
	})
	return nil
}

// PaidAmount returns the sum of payments expressed in the primary currency
func (s *Sale) PaidAmount() decimal.Decimal {
	total := decimal.Zero
	for i := range s.Payments {
		p := &s.Payments[i]
		if p.Currency == s.Currency {
			total = total.Add(p.Amount)
			continue
		}
		// Foreign tenders divide by their rate back into the primary currency
		total = total.Add(p.Amount.Div(p.ExchangeRate).Round(4))
	}
	return total
}

// FinalizeAsCredit marks the sale as credit-financed with the unpaid balance
// tracked against the customer's limit until settled.
func (s *Sale) FinalizeAsCredit(dueDate time.Time) error {
	if s.CustomerID == nil {
		return shared.NewDomainError("INVALID_CREDIT", "Credit sales require a customer")
	}
	if !dueDate.After(s.SoldAt) {
		return shared.NewDomainError("INVALID_CREDIT", "Due date must be in the future")
	}

	s.IsCredit = true
	s.DueDate = &dueDate
	s.OutstandingBalance = s.Total.Sub(s.PaidAmount())
	if s.OutstandingBalance.IsNegative() {
		return shared.NewDomainError("INVALID_PAYMENT", "Payments exceed the sale total")
	}
	s.AddDomainEvent(NewSaleCompletedEvent(s))
	return nil
}

// FinalizeAsPaid verifies the tenders cover the total and closes the sale
func (s *Sale) FinalizeAsPaid() error {
	if s.PaidAmount().LessThan(s.Total) {
		return shared.NewDomainError("INVALID_PAYMENT", "Payments do not cover the sale total")
	}
	s.OutstandingBalance = decimal.Zero
	s.AddDomainEvent(NewSaleCompletedEvent(s))
	return nil
}

// IsOverdue reports whether an unpaid credit sale is past due at the given time
func (s *Sale) IsOverdue(now time.Time) bool {
	return s.IsCredit &&
		s.OutstandingBalance.GreaterThan(decimal.Zero) &&
		s.DueDate != nil && s.DueDate.Before(now)
}

// lineSubtotal computes quantity * price reduced by the discount percentage
func lineSubtotal(quantity, unitPrice, discountPercent decimal.Decimal) decimal.Decimal {
	gross := quantity.Mul(unitPrice)
	discount := gross.Mul(discountPercent).Div(decimal.NewFromInt(100))
	return gross.Sub(discount).Round(4)
}
