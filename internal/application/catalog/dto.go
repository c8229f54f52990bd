package catalog

import (
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/catalogsheet"
)

// ============================================================================
// Request DTOs
// ============================================================================

// ListItemsFilter selects catalog items. Empty fields do not filter.
type ListItemsFilter struct {
	Category      string `form:"category" binding:"omitempty,max=64"`
	AvailableOnly bool   `form:"available"`
}

// ClassifyRequest asks for the badge classes of one variant label
type ClassifyRequest struct {
	Label    string `form:"label" binding:"max=200"`
	Strength string `form:"strength" binding:"omitempty,oneof=subtle strong"`
}

// ============================================================================
// Response DTOs
// ============================================================================

// VariantResponse is a variant label with its badge styling
type VariantResponse struct {
	Label   string                    `json:"label"`
	Palette catalogsheet.PaletteKey   `json:"palette"`
	Classes catalogsheet.BadgeClasses `json:"classes"`
}

// ItemResponse represents a catalog item in API responses
type ItemResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Price          string            `json:"price"`
	FormattedPrice string            `json:"formatted_price"`
	Image          string            `json:"image"`
	HasImage       bool              `json:"has_image"`
	CategoryID     string            `json:"category_id"`
	CategoryName   string            `json:"category_name"`
	Featured       bool              `json:"featured"`
	Available      bool              `json:"available"`
	Variants       []VariantResponse `json:"variants"`
}

// CategoryResponse is a category with its item count
type CategoryResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ItemCount      int    `json:"item_count"`
	AvailableCount int    `json:"available_count"`
}

// InquiryResponse carries the WhatsApp link for an item
type InquiryResponse struct {
	ItemID  string `json:"item_id"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

// RGBResponse is an sRGB colour
type RGBResponse struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// PaletteEntryResponse describes one palette key for both renderers
type PaletteEntryResponse struct {
	Key    catalogsheet.PaletteKey   `json:"key"`
	RGB    RGBResponse               `json:"rgb"`
	Dark   RGBResponse               `json:"dark"`
	Subtle catalogsheet.BadgeClasses `json:"subtle"`
	Strong catalogsheet.BadgeClasses `json:"strong"`
}

// ClassificationResponse is the result of classifying one label
type ClassificationResponse struct {
	Label    string                    `json:"label"`
	Palette  catalogsheet.PaletteKey   `json:"palette"`
	Strength catalogsheet.Strength     `json:"strength"`
	Classes  catalogsheet.BadgeClasses `json:"classes"`
	RGB      RGBResponse               `json:"rgb"`
}

// ToItemResponse converts a domain item, classifying its variants with strength
func ToItemResponse(item catalog.Item, strength catalogsheet.Strength) ItemResponse {
	variants := make([]VariantResponse, len(item.Variants))
	for i, label := range item.Variants {
		key := catalogsheet.Classify(label)
		variants[i] = VariantResponse{
			Label:   label,
			Palette: key,
			Classes: catalogsheet.Badge(key, strength),
		}
	}
	return ItemResponse{
		ID:             item.ID,
		Name:           item.Name,
		Price:          item.Price.StringFixed(2),
		FormattedPrice: item.FormattedPrice(),
		Image:          item.ImageRef,
		HasImage:       item.HasImage(),
		CategoryID:     item.CategoryID,
		CategoryName:   catalog.DisplayName(item.CategoryID),
		Featured:       item.Featured,
		Available:      item.Available,
		Variants:       variants,
	}
}

// ToItemResponses converts a list of domain items
func ToItemResponses(items []catalog.Item, strength catalogsheet.Strength) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = ToItemResponse(item, strength)
	}
	return out
}

func toRGB(c catalogsheet.Color) RGBResponse {
	return RGBResponse{R: c.R, G: c.G, B: c.B}
}
