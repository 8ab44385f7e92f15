package sales

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CommissionAccrual records the commission earned on one sale line. The rate
// is the percentage in force when the sale committed, copied by value; later
// changes to the salesperson's configured rate never reprice past accruals.
type CommissionAccrual struct {
	shared.BaseEntity
	SaleID        uuid.UUID            `gorm:"type:uuid;not null;index"`
	SaleLineID    uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex"`
	SalespersonID uuid.UUID            `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Currency      valueobject.Currency `gorm:"type:varchar(3);not null"`
	RatePercent   decimal.Decimal      `gorm:"type:decimal(8,4);not null"`
}

// TableName returns the table name for GORM
func (CommissionAccrual) TableName() string {
	return "commission_accruals"
}

// NewCommissionAccrual creates an accrual for a sale line
func NewCommissionAccrual(saleID, lineID, salespersonID uuid.UUID, amount valueobject.Money, ratePercent decimal.Decimal) (*CommissionAccrual, error) {
	if saleID == uuid.Nil || lineID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale and line IDs are required")
	}
	if salespersonID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALESPERSON", "Salesperson ID cannot be empty")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Commission amount cannot be negative")
	}
	if ratePercent.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_RATE", "Commission rate must be positive")
	}

	return &CommissionAccrual{
		BaseEntity:    shared.NewBaseEntity(),
		SaleID:        saleID,
		SaleLineID:    lineID,
		SalespersonID: salespersonID,
		Amount:        amount.Amount(),
		Currency:      amount.Currency(),
		RatePercent:   ratePercent,
	}, nil
}
