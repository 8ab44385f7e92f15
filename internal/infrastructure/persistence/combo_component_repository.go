package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// GormComboComponentRepository implements catalog.ComboComponentRepository using GORM
type GormComboComponentRepository struct {
	db *gorm.DB
}

// NewGormComboComponentRepository creates a new GormComboComponentRepository
func NewGormComboComponentRepository(db *gorm.DB) *GormComboComponentRepository {
	return &GormComboComponentRepository{db: db}
}

// FindByParent returns the component list of a bundle product
func (r *GormComboComponentRepository) FindByParent(ctx context.Context, parentProductID uuid.UUID) ([]catalog.ComboComponent, error) {
	var components []catalog.ComboComponent
	if err := r.db.WithContext(ctx).
		Where("parent_product_id = ?", parentProductID).
		Order("created_at").
		Find(&components).Error; err != nil {
		return nil, err
	}
	return components, nil
}

// Save creates or updates a component definition
func (r *GormComboComponentRepository) Save(ctx context.Context, component *catalog.ComboComponent) error {
	return r.db.WithContext(ctx).Save(component).Error
}

var _ catalog.ComboComponentRepository = (*GormComboComponentRepository)(nil)
