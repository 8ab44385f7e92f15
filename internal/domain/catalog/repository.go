package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByCode finds a product by its code
	FindByCode(ctx context.Context, code string) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error
}

// ComboComponentRepository provides read access to bundle definitions
type ComboComponentRepository interface {
	// FindByParent returns the component list of a bundle product
	FindByParent(ctx context.Context, parentProductID uuid.UUID) ([]ComboComponent, error)

	// Save creates or updates a component definition
	Save(ctx context.Context, component *ComboComponent) error
}

// PriceListRepository defines the interface for price list persistence
type PriceListRepository interface {
	// FindByID finds a price list with its items by ID
	FindByID(ctx context.Context, id uuid.UUID) (*PriceList, error)

	// FindItem finds the authoritative price entry for (list, product)
	FindItem(ctx context.Context, priceListID, productID uuid.UUID) (*PriceListItem, error)

	// Save creates or updates a price list with its items
	Save(ctx context.Context, list *PriceList) error
}
