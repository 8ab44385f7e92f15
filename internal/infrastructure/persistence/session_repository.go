package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/register"
	"github.com/retailpos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSessionRepository implements register.SessionRepository using GORM
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GormSessionRepository
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// FindByID finds a session by ID, or nil when absent
func (r *GormSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*register.CashSession, error) {
	var session register.CashSession
	if err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// FindOpen returns the open session, or nil when none is open
func (r *GormSessionRepository) FindOpen(ctx context.Context) (*register.CashSession, error) {
	var session register.CashSession
	if err := r.db.WithContext(ctx).
		Where("status = ?", register.SessionStatusOpen).
		Order("opened_at DESC").
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// Save creates or updates a session. The partial unique index on the open
// status rejects a second open session racing past FindOpen.
func (r *GormSessionRepository) Save(ctx context.Context, session *register.CashSession) error {
	err := r.db.WithContext(ctx).Save(session).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.NewDomainError(shared.ErrAlreadyExists.Code, "another session is already open")
	}
	return err
}

var _ register.SessionRepository = (*GormSessionRepository)(nil)
