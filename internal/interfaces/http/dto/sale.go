package dto

import (
	"time"

	"github.com/google/uuid"
	appsales "github.com/retailpos/backend/internal/application/sales"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ProcessSaleRequest is the wire form of a basket submission
type ProcessSaleRequest struct {
	CustomerID     *uuid.UUID        `json:"customer_id"`
	WarehouseID    *uuid.UUID        `json:"warehouse_id"`
	OperatorID     uuid.UUID         `json:"operator_id" binding:"required"`
	AuthorizedBy   *uuid.UUID        `json:"authorized_by"`
	IsCredit       bool              `json:"is_credit"`
	DueDate        *time.Time        `json:"due_date"`
	IdempotencyKey string            `json:"idempotency_key" binding:"max=100"`
	ExchangeRate   decimal.Decimal   `json:"exchange_rate"`
	Lines          []SaleLineRequest `json:"lines" binding:"required,min=1,dive"`
	Payments       []PaymentRequest  `json:"payments" binding:"dive"`
}

// SaleLineRequest is the wire form of one basket line
type SaleLineRequest struct {
	ProductID       uuid.UUID       `json:"product_id" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	PriceListID     *uuid.UUID      `json:"price_list_id"`
	UsePresentation bool            `json:"use_presentation"`
	Serials         []string        `json:"serials"`
	SalespersonID   *uuid.UUID      `json:"salesperson_id"`
}

// PaymentRequest is the wire form of one tender
type PaymentRequest struct {
	Method       string          `json:"method" binding:"required,oneof=cash card transfer store_credit"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Currency     string          `json:"currency" binding:"required,len=3"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
}

// ToApplication maps the wire request to the application request
func (r *ProcessSaleRequest) ToApplication() appsales.ProcessSaleRequest {
	lines := make([]appsales.SaleLineRequest, 0, len(r.Lines))
	for i := range r.Lines {
		l := &r.Lines[i]
		lines = append(lines, appsales.SaleLineRequest{
			ProductID:       l.ProductID,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			DiscountPercent: l.DiscountPercent,
			PriceListID:     l.PriceListID,
			UsePresentation: l.UsePresentation,
			Serials:         l.Serials,
			SalespersonID:   l.SalespersonID,
		})
	}

	payments := make([]appsales.PaymentRequest, 0, len(r.Payments))
	for i := range r.Payments {
		p := &r.Payments[i]
		payments = append(payments, appsales.PaymentRequest{
			Method:       sales.PaymentMethod(p.Method),
			Amount:       p.Amount,
			Currency:     valueobject.Currency(p.Currency),
			ExchangeRate: p.ExchangeRate,
		})
	}

	return appsales.ProcessSaleRequest{
		CustomerID:     r.CustomerID,
		WarehouseID:    r.WarehouseID,
		OperatorID:     r.OperatorID,
		AuthorizedBy:   r.AuthorizedBy,
		IsCredit:       r.IsCredit,
		DueDate:        r.DueDate,
		IdempotencyKey: r.IdempotencyKey,
		ExchangeRate:   r.ExchangeRate,
		Lines:          lines,
		Payments:       payments,
	}
}
