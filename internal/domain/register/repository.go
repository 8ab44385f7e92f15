package register

import (
	"context"

	"github.com/google/uuid"
)

// SessionRepository defines the interface for cash session persistence.
// FindOpen answers the "is there an open session" precondition the sale
// engine checks before touching any stock.
type SessionRepository interface {
	// FindByID finds a session by ID
	FindByID(ctx context.Context, id uuid.UUID) (*CashSession, error)

	// FindOpen returns the currently open session, or nil when none is open
	FindOpen(ctx context.Context) (*CashSession, error)

	// Save creates or updates a session
	Save(ctx context.Context, session *CashSession) error
}
