package register

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/register"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OpenSessionRequest opens a register shift with the counted float
type OpenSessionRequest struct {
	OpenedBy      uuid.UUID       `json:"opened_by"`
	OpeningAmount decimal.Decimal `json:"opening_amount"`
}

// CloseSessionRequest closes the open shift with the counted drawer amount
type CloseSessionRequest struct {
	DeclaredAmount decimal.Decimal `json:"declared_amount"`
}

// SessionResponse is the read model for a cash session
type SessionResponse struct {
	ID            uuid.UUID              `json:"id"`
	OpenedBy      uuid.UUID              `json:"opened_by"`
	OpeningAmount decimal.Decimal        `json:"opening_amount"`
	Status        register.SessionStatus `json:"status"`
	OpenedAt      time.Time              `json:"opened_at"`
	ClosedAt      *time.Time             `json:"closed_at,omitempty"`
}

// SessionService opens and closes register shifts. The sale engine reads the
// open session through the same repository inside its own transaction.
type SessionService struct {
	sessions register.SessionRepository
	logger   *zap.Logger
}

// NewSessionService creates the session service
func NewSessionService(sessions register.SessionRepository, logger *zap.Logger) *SessionService {
	return &SessionService{sessions: sessions, logger: logger}
}

// Open starts a new shift. Only one session may be open at a time.
func (s *SessionService) Open(ctx context.Context, req OpenSessionRequest) (*SessionResponse, error) {
	existing, err := s.sessions.FindOpen(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError(shared.ErrAlreadyExists.Code, "a session is already open")
	}

	opening, err := valueobject.NewMoney(req.OpeningAmount, valueobject.PrimaryCurrency)
	if err != nil {
		return nil, err
	}
	session, err := register.OpenSession(req.OpenedBy, opening)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("cash session opened",
		zap.String("session_id", session.ID.String()),
		zap.String("opened_by", req.OpenedBy.String()))
	return toSessionResponse(session), nil
}

// Close ends the open shift with the declared drawer amount
func (s *SessionService) Close(ctx context.Context, req CloseSessionRequest) (*SessionResponse, error) {
	session, err := s.sessions.FindOpen(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, shared.ErrNoOpenSession
	}

	declared, err := valueobject.NewMoney(req.DeclaredAmount, valueobject.PrimaryCurrency)
	if err != nil {
		return nil, err
	}
	if err := session.Close(declared); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("cash session closed",
		zap.String("session_id", session.ID.String()))
	return toSessionResponse(session), nil
}

// HasOpen reports whether a session currently accepts sales
func (s *SessionService) HasOpen(ctx context.Context) (bool, error) {
	session, err := s.sessions.FindOpen(ctx)
	if err != nil {
		return false, err
	}
	return session != nil, nil
}

func toSessionResponse(session *register.CashSession) *SessionResponse {
	return &SessionResponse{
		ID:            session.ID,
		OpenedBy:      session.OpenedBy,
		OpeningAmount: session.OpeningAmount,
		Status:        session.Status,
		OpenedAt:      session.OpenedAt,
		ClosedAt:      session.ClosedAt,
	}
}
