package sales

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
)

// PricingAuthorizer resolves the unit price actually charged for a line.
// List-priced lines take the authoritative server-side price and, when the
// list is protected, demand a privileged authorizing user on the request.
// Free-entry lines trust the caller's price as sent.
type PricingAuthorizer struct{}

// NewPricingAuthorizer creates a pricing authorizer
func NewPricingAuthorizer() *PricingAuthorizer {
	return &PricingAuthorizer{}
}

// Resolve returns the final unit price for a line. authorizedBy is the
// request-level authorizing user, shared by every protected line in the
// basket; the privilege check is evaluated per line touched.
func (a *PricingAuthorizer) Resolve(
	ctx context.Context,
	repos TransactionalRepositories,
	product *catalog.Product,
	resolution sales.PriceResolution,
	authorizedBy *uuid.UUID,
) (valueobject.Money, error) {
	listID, ok := resolution.ListID()
	if !ok {
		return resolution.EntryPrice(), nil
	}

	list, err := repos.PriceLists().FindByID(ctx, listID)
	if err != nil {
		return valueobject.Money{}, err
	}
	if list == nil || !list.Active {
		return valueobject.Money{}, shared.NewDomainError(shared.ErrNotFound.Code,
			fmt.Sprintf("price list %s not found", listID))
	}

	if list.RequiresAuthorization {
		if authorizedBy == nil {
			return valueobject.Money{}, shared.NewDomainError(shared.ErrPricingAuthRequired.Code,
				fmt.Sprintf("price list %q requires authorization", list.Name))
		}
		authorizer, err := repos.Users().FindByID(ctx, *authorizedBy)
		if err != nil {
			return valueobject.Money{}, err
		}
		if authorizer == nil || !authorizer.Active {
			return valueobject.Money{}, shared.NewDomainError(shared.ErrPricingAuthDenied.Code,
				"authorizing user not found or inactive")
		}
		if !authorizer.Role.CanAuthorizePricing() {
			return valueobject.Money{}, shared.NewDomainError(shared.ErrPricingAuthDenied.Code,
				fmt.Sprintf("user %s cannot authorize protected price lists", authorizer.Username))
		}
	}

	item, err := repos.PriceLists().FindItem(ctx, listID, product.ID)
	if err != nil {
		return valueobject.Money{}, err
	}
	if item == nil {
		return valueobject.Money{}, shared.NewDomainError(shared.ErrNotFound.Code,
			fmt.Sprintf("price list %q has no price for product %s", list.Name, product.Code))
	}

	return valueobject.NewMoneyUSD(item.Price), nil
}
