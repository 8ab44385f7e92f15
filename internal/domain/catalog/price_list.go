package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PriceList is a named set of authoritative per-product prices. When a basket
// line references a list, the list price always replaces whatever the client
// sent; lists flagged RequiresAuthorization additionally demand a privileged
// authorizing user on the request.
type PriceList struct {
	shared.BaseAggregateRoot
	Name                  string `gorm:"type:varchar(100);not null;uniqueIndex"`
	RequiresAuthorization bool   `gorm:"not null;default:false"`
	Active                bool   `gorm:"not null;default:true"`

	Items []PriceListItem `gorm:"foreignKey:PriceListID;references:ID"`
}

// TableName returns the table name for GORM
func (PriceList) TableName() string {
	return "price_lists"
}

// PriceListItem is the authoritative price of one product within a list
type PriceListItem struct {
	shared.BaseEntity
	PriceListID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_price_list_product,priority:1"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_price_list_product,priority:2"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (PriceListItem) TableName() string {
	return "price_list_items"
}

// NewPriceList creates a new price list
func NewPriceList(name string, requiresAuthorization bool) (*PriceList, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Price list name cannot be empty")
	}
	return &PriceList{
		BaseAggregateRoot:     shared.NewBaseAggregateRoot(),
		Name:                  name,
		RequiresAuthorization: requiresAuthorization,
		Active:                true,
		Items:                 make([]PriceListItem, 0),
	}, nil
}

// SetPrice sets or replaces the price for a product in this list
func (l *PriceList) SetPrice(productID uuid.UUID, price valueobject.Money) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "List price cannot be negative")
	}

	for i := range l.Items {
		if l.Items[i].ProductID == productID {
			l.Items[i].Price = price.Amount()
			l.IncrementVersion()
			return nil
		}
	}

	l.Items = append(l.Items, PriceListItem{
		BaseEntity:  shared.NewBaseEntity(),
		PriceListID: l.ID,
		ProductID:   productID,
		Price:       price.Amount(),
	})
	l.IncrementVersion()
	return nil
}

// PriceFor returns the authoritative price for a product, if present
func (l *PriceList) PriceFor(productID uuid.UUID) (valueobject.Money, bool) {
	for i := range l.Items {
		if l.Items[i].ProductID == productID {
			return valueobject.NewMoneyUSD(l.Items[i].Price), true
		}
	}
	return valueobject.Money{}, false
}
