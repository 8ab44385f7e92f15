package sales

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeSale = "Sale"

// Event type constants
const EventTypeSaleCompleted = "sale.completed"

// SaleCompletedEvent is dispatched once per committed sale, after the
// transaction commits. Subscriber failure never un-commits the sale.
type SaleCompletedEvent struct {
	shared.BaseDomainEvent
	SaleID   uuid.UUID            `json:"sale_id"`
	Number   string               `json:"number"`
	Total    decimal.Decimal      `json:"total"`
	Currency valueobject.Currency `json:"currency"`
	IsCredit bool                 `json:"is_credit"`
}

// NewSaleCompletedEvent creates a new SaleCompletedEvent
func NewSaleCompletedEvent(sale *Sale) *SaleCompletedEvent {
	return &SaleCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCompleted, AggregateTypeSale, sale.ID),
		SaleID:          sale.ID,
		Number:          sale.Number,
		Total:           sale.Total,
		Currency:        sale.Currency,
		IsCredit:        sale.IsCredit,
	}
}

// EventType returns the event type name
func (e *SaleCompletedEvent) EventType() string {
	return EventTypeSaleCompleted
}
