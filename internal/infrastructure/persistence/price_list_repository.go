package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// GormPriceListRepository implements catalog.PriceListRepository using GORM
type GormPriceListRepository struct {
	db *gorm.DB
}

// NewGormPriceListRepository creates a new GormPriceListRepository
func NewGormPriceListRepository(db *gorm.DB) *GormPriceListRepository {
	return &GormPriceListRepository{db: db}
}

// FindByID finds a price list with its items, or nil when absent
func (r *GormPriceListRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.PriceList, error) {
	var list catalog.PriceList
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&list, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &list, nil
}

// FindItem finds the authoritative price entry for (list, product), or nil
// when the list carries no price for the product
func (r *GormPriceListRepository) FindItem(ctx context.Context, priceListID, productID uuid.UUID) (*catalog.PriceListItem, error) {
	var item catalog.PriceListItem
	if err := r.db.WithContext(ctx).
		Where("price_list_id = ? AND product_id = ?", priceListID, productID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Save creates or updates a price list with its items
func (r *GormPriceListRepository) Save(ctx context.Context, list *catalog.PriceList) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(list).Error
}

var _ catalog.PriceListRepository = (*GormPriceListRepository)(nil)
