package sales

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ComboExpander resolves a bundle line into the stock obligations of its
// components. The bundle product itself carries no stock row; only its
// children do. Expansion is one level deep, matching the catalog rule that
// bundles cannot contain bundles.
type ComboExpander struct{}

// NewComboExpander creates a combo expander
func NewComboExpander() *ComboExpander {
	return &ComboExpander{}
}

// Expand returns the component obligations for selling quantity bundles of
// the given product out of the given warehouse. An empty component list is an
// error: a bundle with no children would silently sell nothing.
func (e *ComboExpander) Expand(
	ctx context.Context,
	repos TransactionalRepositories,
	bundle *catalog.Product,
	quantity decimal.Decimal,
	warehouseID uuid.UUID,
) ([]StockObligation, error) {
	components, err := repos.Combos().FindByParent(ctx, bundle.ID)
	if err != nil {
		return nil, err
	}
	if len(components) == 0 {
		return nil, shared.NewDomainError("INVALID_COMBO",
			fmt.Sprintf("bundle %s has no components", bundle.Code))
	}

	obligations := make([]StockObligation, 0, len(components))
	for i := range components {
		comp := &components[i]
		child, err := repos.Products().FindByID(ctx, comp.ChildProductID)
		if err != nil {
			return nil, err
		}
		if child == nil {
			return nil, shared.NewDomainError(shared.ErrNotFound.Code,
				fmt.Sprintf("bundle %s references missing product %s", bundle.Code, comp.ChildProductID))
		}
		if child.IsCombo() {
			return nil, shared.NewDomainError("INVALID_COMBO",
				fmt.Sprintf("bundle %s nests bundle %s", bundle.Code, child.Code))
		}
		// Bundle lines never carry serial numbers, so a serialized child
		// would decrement aggregate stock while its units stay available.
		if child.IsSerialized() {
			return nil, shared.NewDomainError("INVALID_COMBO",
				fmt.Sprintf("bundle %s contains serialized product %s", bundle.Code, child.Code))
		}
		if !child.Kind.AffectsStock() {
			continue
		}

		perBundle := comp.QuantityPerBundle
		if comp.UsePresentation {
			perBundle = perBundle.Mul(child.ConversionFactor)
		}

		obligations = append(obligations, StockObligation{
			ProductID:   child.ID,
			WarehouseID: warehouseID,
			Quantity:    quantity.Mul(perBundle),
		})
	}

	return obligations, nil
}
