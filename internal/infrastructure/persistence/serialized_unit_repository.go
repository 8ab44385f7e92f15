package persistence

import (
	"context"
	"errors"

	"github.com/retailpos/backend/internal/domain/inventory"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSerializedUnitRepository implements inventory.SerializedUnitRepository
// using GORM. FindBySerialsForUpdate locks the matched unit rows so two
// concurrent baskets naming the same serial serialize on it.
type GormSerializedUnitRepository struct {
	db *gorm.DB
}

// NewGormSerializedUnitRepository creates a new GormSerializedUnitRepository
func NewGormSerializedUnitRepository(db *gorm.DB) *GormSerializedUnitRepository {
	return &GormSerializedUnitRepository{db: db}
}

// FindBySerial finds a unit by its serial without locking it
func (r *GormSerializedUnitRepository) FindBySerial(ctx context.Context, serial string) (*inventory.SerializedUnit, error) {
	var unit inventory.SerializedUnit
	if err := r.db.WithContext(ctx).First(&unit, "serial = ?", serial).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &unit, nil
}

// FindBySerialsForUpdate finds and locks the named units. Serials are sorted
// before querying so concurrent callers acquire the row locks in the same
// order. Missing serials are simply absent from the result.
func (r *GormSerializedUnitRepository) FindBySerialsForUpdate(ctx context.Context, serials []string) ([]inventory.SerializedUnit, error) {
	var units []inventory.SerializedUnit
	if len(serials) == 0 {
		return units, nil
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("serial IN ?", serials).
		Order("serial").
		Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// Save creates or updates a unit
func (r *GormSerializedUnitRepository) Save(ctx context.Context, unit *inventory.SerializedUnit) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

// SaveBatch creates or updates multiple units
func (r *GormSerializedUnitRepository) SaveBatch(ctx context.Context, units []*inventory.SerializedUnit) error {
	if len(units) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(units).Error
}

var _ inventory.SerializedUnitRepository = (*GormSerializedUnitRepository)(nil)
