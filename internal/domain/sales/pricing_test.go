package sales

import (
	"testing"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthoritativePrice(t *testing.T) {
	listID := uuid.New()
	resolution := AuthoritativePrice(listID)

	assert.True(t, resolution.IsAuthoritative())
	got, ok := resolution.ListID()
	require.True(t, ok)
	assert.Equal(t, listID, got)
}

func TestFreeEntryPrice(t *testing.T) {
	price := valueobject.NewMoneyUSDFromFloat(12.50)
	resolution := FreeEntryPrice(price)

	assert.False(t, resolution.IsAuthoritative())
	_, ok := resolution.ListID()
	assert.False(t, ok)
	assert.True(t, resolution.EntryPrice().Equals(price))
}
