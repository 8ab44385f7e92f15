package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSerialTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&inventory.SerializedUnit{}))
	return db
}

func TestGormSerializedUnitRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("save and find by serial", func(t *testing.T) {
		db := setupSerialTestDB(t)
		repo := NewGormSerializedUnitRepository(db)

		unit, err := inventory.NewSerializedUnit("IMEI-001", uuid.New(), uuid.New())
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, unit))

		found, err := repo.FindBySerial(ctx, "IMEI-001")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, inventory.SerialStatusAvailable, found.Status)
	})

	t.Run("absent serial is nil, not an error", func(t *testing.T) {
		db := setupSerialTestDB(t)
		repo := NewGormSerializedUnitRepository(db)

		found, err := repo.FindBySerial(ctx, "GHOST")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("save batch persists state transitions", func(t *testing.T) {
		db := setupSerialTestDB(t)
		repo := NewGormSerializedUnitRepository(db)
		productID := uuid.New()
		warehouseID := uuid.New()
		saleID := uuid.New()

		units := make([]*inventory.SerializedUnit, 0, 2)
		for _, serial := range []string{"SN-1", "SN-2"} {
			unit, err := inventory.NewSerializedUnit(serial, productID, warehouseID)
			require.NoError(t, err)
			units = append(units, unit)
		}
		require.NoError(t, repo.SaveBatch(ctx, units))

		for _, unit := range units {
			require.NoError(t, unit.MarkSold(saleID))
			unit.ClearDomainEvents()
		}
		require.NoError(t, repo.SaveBatch(ctx, units))

		for _, serial := range []string{"SN-1", "SN-2"} {
			found, err := repo.FindBySerial(ctx, serial)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, inventory.SerialStatusSold, found.Status)
			require.NotNil(t, found.SoldInSaleID)
			assert.Equal(t, saleID, *found.SoldInSaleID)
		}
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		db := setupSerialTestDB(t)
		repo := NewGormSerializedUnitRepository(db)
		require.NoError(t, repo.SaveBatch(ctx, nil))
	})

	t.Run("empty serial list skips the query", func(t *testing.T) {
		db := setupSerialTestDB(t)
		repo := NewGormSerializedUnitRepository(db)

		units, err := repo.FindBySerialsForUpdate(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, units)
	})
}
