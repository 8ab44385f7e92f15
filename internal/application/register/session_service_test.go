package register

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/register"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*register.CashSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*register.CashSession)}
}

func (r *fakeSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*register.CashSession, error) {
	return r.sessions[id], nil
}

func (r *fakeSessionRepo) FindOpen(ctx context.Context) (*register.CashSession, error) {
	for _, s := range r.sessions {
		if s.IsOpen() {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) Save(ctx context.Context, session *register.CashSession) error {
	r.sessions[session.ID] = session
	return nil
}

func TestSessionLifecycle(t *testing.T) {
	repo := newFakeSessionRepo()
	service := NewSessionService(repo, zap.NewNop())
	operatorID := uuid.New()

	t.Run("no session open initially", func(t *testing.T) {
		open, err := service.HasOpen(context.Background())
		require.NoError(t, err)
		assert.False(t, open)
	})

	t.Run("open records the float", func(t *testing.T) {
		resp, err := service.Open(context.Background(), OpenSessionRequest{
			OpenedBy:      operatorID,
			OpeningAmount: decimal.NewFromInt(100),
		})
		require.NoError(t, err)
		assert.Equal(t, operatorID, resp.OpenedBy)
		assert.True(t, resp.OpeningAmount.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, register.SessionStatusOpen, resp.Status)

		open, err := service.HasOpen(context.Background())
		require.NoError(t, err)
		assert.True(t, open)
	})

	t.Run("a second open is rejected", func(t *testing.T) {
		_, err := service.Open(context.Background(), OpenSessionRequest{
			OpenedBy:      operatorID,
			OpeningAmount: decimal.NewFromInt(50),
		})
		assert.True(t, shared.IsCode(err, "ALREADY_EXISTS"))
	})

	t.Run("close ends the shift", func(t *testing.T) {
		resp, err := service.Close(context.Background(), CloseSessionRequest{
			DeclaredAmount: decimal.NewFromFloat(342.75),
		})
		require.NoError(t, err)
		assert.Equal(t, register.SessionStatusClosed, resp.Status)
		assert.NotNil(t, resp.ClosedAt)

		open, err := service.HasOpen(context.Background())
		require.NoError(t, err)
		assert.False(t, open)
	})

	t.Run("closing again fails", func(t *testing.T) {
		_, err := service.Close(context.Background(), CloseSessionRequest{
			DeclaredAmount: decimal.Zero,
		})
		assert.True(t, shared.IsCode(err, "NO_OPEN_SESSION"))
	})

	t.Run("a new shift can open after close", func(t *testing.T) {
		_, err := service.Open(context.Background(), OpenSessionRequest{
			OpenedBy:      operatorID,
			OpeningAmount: decimal.NewFromInt(80),
		})
		require.NoError(t, err)
	})

	t.Run("negative float is rejected", func(t *testing.T) {
		repo := newFakeSessionRepo()
		service := NewSessionService(repo, zap.NewNop())
		_, err := service.Open(context.Background(), OpenSessionRequest{
			OpenedBy:      operatorID,
			OpeningAmount: decimal.NewFromInt(-5),
		})
		assert.Error(t, err)
	})
}
