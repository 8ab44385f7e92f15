package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ProcessSaleRequest is the full basket submitted as one sale
type ProcessSaleRequest struct {
	CustomerID  *uuid.UUID `json:"customer_id"`
	WarehouseID *uuid.UUID `json:"warehouse_id"`
	OperatorID  uuid.UUID  `json:"operator_id"`
	// AuthorizedBy identifies the supervisor vouching for protected price
	// lists used anywhere in the basket.
	AuthorizedBy *uuid.UUID `json:"authorized_by"`
	IsCredit     bool       `json:"is_credit"`
	DueDate      *time.Time `json:"due_date"`
	// IdempotencyKey is assigned by the caller; replays with a known key are
	// recognized and skipped rather than reprocessed.
	IdempotencyKey string            `json:"idempotency_key"`
	ExchangeRate   decimal.Decimal   `json:"exchange_rate"`
	Lines          []SaleLineRequest `json:"lines"`
	Payments       []PaymentRequest  `json:"payments"`
}

// SaleLineRequest is one basket line as submitted by the caller
type SaleLineRequest struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	// UnitPrice is trusted only when no price list is referenced; list-priced
	// lines always take the authoritative list price instead.
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	PriceListID     *uuid.UUID      `json:"price_list_id"`
	// UsePresentation sells the line in the product's presentation unit;
	// quantities convert to base units through the product's factor.
	UsePresentation bool       `json:"use_presentation"`
	Serials         []string   `json:"serials"`
	SalespersonID   *uuid.UUID `json:"salesperson_id"`
}

// PaymentRequest is one tender applied to the basket
type PaymentRequest struct {
	Method       sales.PaymentMethod  `json:"method"`
	Amount       decimal.Decimal      `json:"amount"`
	Currency     valueobject.Currency `json:"currency"`
	ExchangeRate decimal.Decimal      `json:"exchange_rate"`
}

// SaleResult identifies the committed sale
type SaleResult struct {
	SaleID uuid.UUID       `json:"sale_id"`
	Number string          `json:"number"`
	Total  decimal.Decimal `json:"total"`
	// AlreadyProcessed is true when the idempotency key matched a previously
	// committed sale and no new processing happened.
	AlreadyProcessed bool `json:"already_processed"`
}

// SaleResponse is the read model for a persisted sale
type SaleResponse struct {
	ID                 uuid.UUID             `json:"id"`
	Number             string                `json:"number"`
	CustomerID         *uuid.UUID            `json:"customer_id,omitempty"`
	WarehouseID        *uuid.UUID            `json:"warehouse_id,omitempty"`
	Total              decimal.Decimal       `json:"total"`
	Currency           valueobject.Currency  `json:"currency"`
	ReferenceTotal     decimal.Decimal       `json:"reference_total"`
	IsCredit           bool                  `json:"is_credit"`
	DueDate            *time.Time            `json:"due_date,omitempty"`
	OutstandingBalance decimal.Decimal       `json:"outstanding_balance"`
	SoldAt             time.Time             `json:"sold_at"`
	Lines              []SaleLineResponse    `json:"lines"`
	Payments           []SalePaymentResponse `json:"payments"`
}

// SaleLineResponse is the read model for a committed line
type SaleLineResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Serials         []string        `json:"serials,omitempty"`
}

// SalePaymentResponse is the read model for one tender
type SalePaymentResponse struct {
	Method       sales.PaymentMethod  `json:"method"`
	Amount       decimal.Decimal      `json:"amount"`
	Currency     valueobject.Currency `json:"currency"`
	ExchangeRate decimal.Decimal      `json:"exchange_rate"`
}

// ToSaleResponse maps a sale aggregate to its read model
func ToSaleResponse(sale *sales.Sale) SaleResponse {
	lines := make([]SaleLineResponse, 0, len(sale.Lines))
	for i := range sale.Lines {
		l := &sale.Lines[i]
		lines = append(lines, SaleLineResponse{
			ID:              l.ID,
			ProductID:       l.ProductID,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			DiscountPercent: l.DiscountPercent,
			Subtotal:        l.Subtotal,
			Serials:         l.Serials,
		})
	}

	payments := make([]SalePaymentResponse, 0, len(sale.Payments))
	for i := range sale.Payments {
		p := &sale.Payments[i]
		payments = append(payments, SalePaymentResponse{
			Method:       p.Method,
			Amount:       p.Amount,
			Currency:     p.Currency,
			ExchangeRate: p.ExchangeRate,
		})
	}

	return SaleResponse{
		ID:                 sale.ID,
		Number:             sale.Number,
		CustomerID:         sale.CustomerID,
		WarehouseID:        sale.WarehouseID,
		Total:              sale.Total,
		Currency:           sale.Currency,
		ReferenceTotal:     sale.ReferenceTotal,
		IsCredit:           sale.IsCredit,
		DueDate:            sale.DueDate,
		OutstandingBalance: sale.OutstandingBalance,
		SoldAt:             sale.SoldAt,
		Lines:              lines,
		Payments:           payments,
	}
}
