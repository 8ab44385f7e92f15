package catalog

import (
	"strings"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ProductKind is a closed union of product behaviors. Each sale line is matched
// against exactly one kind; stock handling, serial handling and combo expansion
// are dispatched on it rather than on loose boolean flags.
type ProductKind string

const (
	// KindPhysical is fungible bulk stock tracked per warehouse
	KindPhysical ProductKind = "physical"
	// KindService never touches stock
	KindService ProductKind = "service"
	// KindCombo expands into component obligations at sale time
	KindCombo ProductKind = "combo"
	// KindSerialized is sold unit-by-unit against explicit serial numbers
	KindSerialized ProductKind = "serialized"
)

// IsValid returns true if the product kind is one of the closed set
func (k ProductKind) IsValid() bool {
	switch k {
	case KindPhysical, KindService, KindCombo, KindSerialized:
		return true
	}
	return false
}

// AffectsStock returns true when selling this kind moves warehouse quantities
func (k ProductKind) AffectsStock() bool {
	return k != KindService
}

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// Product represents a product/SKU in the catalog.
// It is the aggregate root for product-related operations. The engine reads
// BasePrice and Cost at sale time; Cost is copied into the sale line as a
// frozen snapshot and never re-resolved afterwards.
type Product struct {
	shared.BaseAggregateRoot
	Code        string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Barcode     string          `gorm:"type:varchar(50);index"`
	Kind        ProductKind     `gorm:"type:varchar(20);not null;default:'physical'"`
	Unit        string          `gorm:"type:varchar(20);not null"` // Base unit (e.g., "pcs", "kg")
	// ConversionFactor converts one presentation unit (e.g., a box) into base
	// units. 1 means the product is sold in base units directly.
	ConversionFactor decimal.Decimal `gorm:"type:decimal(18,4);not null;default:1"`
	BasePrice        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Cost             decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status           ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product of the given kind
func NewProduct(code, name, unit string, kind ProductKind) (*Product, error) {
	if strings.TrimSpace(code) == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown product kind")
	}
	if unit == "" {
		unit = "pcs"
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Unit:              unit,
		Kind:              kind,
		ConversionFactor:  decimal.NewFromInt(1),
		BasePrice:         decimal.Zero,
		Cost:              decimal.Zero,
		Status:            ProductStatusActive,
	}, nil
}

// SetPrices sets the base selling price and the catalog cost
func (p *Product) SetPrices(basePrice, cost valueobject.Money) error {
	if basePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
	}
	p.BasePrice = basePrice.Amount()
	p.Cost = cost.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetConversionFactor sets the presentation-to-base-unit conversion factor
func (p *Product) SetConversionFactor(factor decimal.Decimal) error {
	if factor.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_FACTOR", "Conversion factor must be positive")
	}
	p.ConversionFactor = factor
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// UpdateCost updates the catalog cost. Sale lines written before this call keep
// their own cost snapshot; profit reporting depends on that.
func (p *Product) UpdateCost(cost valueobject.Money) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
	}
	p.Cost = cost.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Deactivate marks the product as inactive
func (p *Product) Deactivate() {
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// IsActive returns true if the product can be sold
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// IsCombo returns true for bundle products
func (p *Product) IsCombo() bool {
	return p.Kind == KindCombo
}

// IsSerialized returns true for individually tracked products
func (p *Product) IsSerialized() bool {
	return p.Kind == KindSerialized
}

// IsService returns true for products that never touch stock
func (p *Product) IsService() bool {
	return p.Kind == KindService
}

// GetBasePriceMoney returns the base price as Money
func (p *Product) GetBasePriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.BasePrice)
}

// GetCostMoney returns the catalog cost as Money
func (p *Product) GetCostMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Cost)
}
