package sales

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
)

// PriceResolution makes the pricing trust boundary explicit in the type
// rather than in a conditional. A line is priced either by an authoritative
// price list (the server recomputes, the client value is discarded) or by
// free entry (the client value is trusted as sent).
type PriceResolution struct {
	listID *uuid.UUID
	price  valueobject.Money
}

// AuthoritativePrice marks a line as priced by the given list. The final
// amount is resolved server-side by the pricing authorizer.
func AuthoritativePrice(listID uuid.UUID) PriceResolution {
	return PriceResolution{listID: &listID}
}

// FreeEntryPrice marks a line as priced by the caller-sent amount
func FreeEntryPrice(price valueobject.Money) PriceResolution {
	return PriceResolution{price: price}
}

// IsAuthoritative returns true when the price comes from a list
func (p PriceResolution) IsAuthoritative() bool {
	return p.listID != nil
}

// ListID returns the price list identifier for authoritative resolutions
func (p PriceResolution) ListID() (uuid.UUID, bool) {
	if p.listID == nil {
		return uuid.Nil, false
	}
	return *p.listID, true
}

// EntryPrice returns the trusted caller price for free-entry resolutions
func (p PriceResolution) EntryPrice() valueobject.Money {
	return p.price
}
