package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// PlaceholderImage is the image reference storefront items carry when no
// product photo exists.
const PlaceholderImage = "/placeholder.svg"

// Item is a product offered in the catalog.
// Items are read-only once loaded; the catalog sheet never mutates them.
type Item struct {
	ID         string
	Name       string
	Price      decimal.Decimal
	ImageRef   string
	CategoryID string
	Featured   bool
	Available  bool
	Variants   []string
}

// NewItem creates an available item with no image and no variants
func NewItem(id, name string, price decimal.Decimal, categoryID string) (*Item, error) {
	item := &Item{
		ID:         strings.TrimSpace(id),
		Name:       strings.TrimSpace(name),
		Price:      price,
		ImageRef:   PlaceholderImage,
		CategoryID: strings.TrimSpace(categoryID),
		Available:  true,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Validate checks the item invariants
func (i *Item) Validate() error {
	if i.ID == "" {
		return shared.NewDomainError("INVALID_ITEM_ID", "Item ID cannot be empty")
	}
	if i.Name == "" {
		return shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if len(i.Name) > 200 {
		return shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot exceed 200 characters")
	}
	if i.CategoryID == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Item category cannot be empty")
	}
	if i.Price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Item price cannot be negative")
	}
	for _, v := range i.Variants {
		if strings.TrimSpace(v) == "" {
			return shared.NewDomainError("INVALID_VARIANT", "Variant labels cannot be empty")
		}
	}
	return nil
}

// HasImage reports whether the item references a real image
func (i Item) HasImage() bool {
	return !IsPlaceholderRef(i.ImageRef)
}

// HasVariants reports whether the item lists at least one variant label
func (i Item) HasVariants() bool {
	return len(i.Variants) > 0
}

// PriceMoney returns the price as BRL money
func (i Item) PriceMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(i.Price)
}

// FormattedPrice returns the display price, e.g. "R$ 115,00"
func (i Item) FormattedPrice() string {
	return i.PriceMoney().Format()
}

// IsPlaceholderRef reports whether an image reference is empty or points at
// the placeholder artwork.
func IsPlaceholderRef(ref string) bool {
	ref = strings.TrimSpace(ref)
	return ref == "" || strings.Contains(strings.ToLower(ref), "placeholder")
}

// FilterAvailable returns the available items, preserving order
func FilterAvailable(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Available {
			out = append(out, item)
		}
	}
	return out
}

// FilterByCategory returns the items of one category, preserving order
func FilterByCategory(items []Item, categoryID string) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if item.CategoryID == categoryID {
			out = append(out, item)
		}
	}
	return out
}
