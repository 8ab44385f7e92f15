package catalog

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ComboComponent defines one child of a bundle product: selling one unit of the
// parent consumes QuantityPerBundle units of the child, optionally scaled by the
// child's presentation conversion factor. Bundles of bundles are not supported;
// expansion is one level deep.
type ComboComponent struct {
	shared.BaseEntity
	ParentProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_combo_parent_child,priority:1"`
	ChildProductID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_combo_parent_child,priority:2"`
	QuantityPerBundle decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	// UsePresentation applies the child's conversion factor, so a component can
	// reference a boxed presentation while stock is tracked in base units.
	UsePresentation bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ComboComponent) TableName() string {
	return "combo_components"
}

// NewComboComponent creates a component definition for a bundle
func NewComboComponent(parentID, childID uuid.UUID, quantityPerBundle decimal.Decimal) (*ComboComponent, error) {
	if parentID == uuid.Nil || childID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Parent and child product IDs are required")
	}
	if parentID == childID {
		return nil, shared.NewDomainError("INVALID_COMPONENT", "A bundle cannot contain itself")
	}
	if quantityPerBundle.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity per bundle must be positive")
	}

	return &ComboComponent{
		BaseEntity:        shared.NewBaseEntity(),
		ParentProductID:   parentID,
		ChildProductID:    childID,
		QuantityPerBundle: quantityPerBundle,
	}, nil
}

// WithPresentation marks the component as referencing the child's presentation unit
func (c *ComboComponent) WithPresentation() *ComboComponent {
	c.UsePresentation = true
	return c
}
