package register

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SessionStatus represents the lifecycle state of a cash register session
type SessionStatus string

const (
	SessionStatusOpen   SessionStatus = "open"
	SessionStatusClosed SessionStatus = "closed"
)

// CashSession represents one shift at the register. The sale engine only reads
// whether an open session exists; opening and closing are separate operations.
// A partial unique index on the open status keeps at most one session open.
type CashSession struct {
	shared.BaseAggregateRoot
	OpenedBy       uuid.UUID        `gorm:"type:uuid;not null"`
	OpeningAmount  decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	DeclaredAmount *decimal.Decimal `gorm:"type:decimal(18,4)"`
	Status         SessionStatus    `gorm:"type:varchar(20);not null;default:'open';index;uniqueIndex:idx_cash_sessions_open,where:status = 'open'"`
	OpenedAt       time.Time        `gorm:"not null"`
	ClosedAt       *time.Time
}

// TableName returns the table name for GORM
func (CashSession) TableName() string {
	return "cash_sessions"
}

// OpenSession opens a new cash register session
func OpenSession(openedBy uuid.UUID, openingAmount valueobject.Money) (*CashSession, error) {
	if openedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Opening user is required")
	}
	if openingAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Opening amount cannot be negative")
	}

	return &CashSession{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OpenedBy:          openedBy,
		OpeningAmount:     openingAmount.Amount(),
		Status:            SessionStatusOpen,
		OpenedAt:          time.Now(),
	}, nil
}

// Close closes the session with the cash amount counted in the drawer
func (s *CashSession) Close(declaredAmount valueobject.Money) error {
	if s.Status != SessionStatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Session is already closed")
	}
	if declaredAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Declared amount cannot be negative")
	}

	amount := declaredAmount.Amount()
	now := time.Now()
	s.DeclaredAmount = &amount
	s.ClosedAt = &now
	s.Status = SessionStatusClosed
	s.UpdatedAt = now
	s.IncrementVersion()
	return nil
}

// IsOpen returns true while the session accepts sales
func (s *CashSession) IsOpen() bool {
	return s.Status == SessionStatusOpen
}
