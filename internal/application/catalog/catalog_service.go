// Package catalog serves read-only catalog queries for the storefront API.
package catalog

import (
	"context"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/catalogsheet"
	"go.uber.org/zap"
)

// CatalogService handles catalog queries
type CatalogService struct {
	repo          catalog.ItemRepository
	contactNumber string
	logger        *zap.Logger
}

// Option configures a CatalogService
type Option func(*CatalogService)

// WithContactNumber sets the WhatsApp number used for inquiry links
func WithContactNumber(number string) Option {
	return func(s *CatalogService) {
		s.contactNumber = number
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *CatalogService) {
		s.logger = logger
	}
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(repo catalog.ItemRepository, opts ...Option) *CatalogService {
	s := &CatalogService{
		repo:          repo,
		contactNumber: catalog.DefaultContactNumber,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListItems returns items in catalog order, optionally narrowed to one
// category and to available items.
func (s *CatalogService) ListItems(ctx context.Context, filter ListItemsFilter) ([]ItemResponse, error) {
	var (
		items []catalog.Item
		err   error
	)
	if filter.Category != "" {
		items, err = s.repo.FindByCategory(ctx, filter.Category)
	} else {
		items, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		s.logger.Error("failed to list catalog items", zap.String("category", filter.Category), zap.Error(err))
		return nil, err
	}
	if filter.AvailableOnly {
		items = catalog.FilterAvailable(items)
	}
	return ToItemResponses(items, catalogsheet.StrengthSubtle), nil
}

// GetItem returns one item or shared.ErrNotFound
func (s *CatalogService) GetItem(ctx context.Context, id string) (*ItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(*item, catalogsheet.StrengthStrong)
	return &resp, nil
}

// ListCategories returns the categories in encounter order with counts
func (s *CatalogService) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	groups := catalog.GroupByCategory(items)
	out := make([]CategoryResponse, len(groups))
	for i, g := range groups {
		out[i] = CategoryResponse{
			ID:             g.CategoryID,
			Name:           g.DisplayName,
			ItemCount:      g.Count(),
			AvailableCount: len(catalog.FilterAvailable(g.Items)),
		}
	}
	return out, nil
}

// Inquiry builds the WhatsApp inquiry link for an item
func (s *CatalogService) Inquiry(ctx context.Context, id string) (*InquiryResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &InquiryResponse{
		ItemID:  item.ID,
		Message: catalog.InquiryMessage(*item),
		URL:     catalog.InquiryLink(s.contactNumber, *item),
	}, nil
}

// Palette lists every palette key in classification order
func (s *CatalogService) Palette() []PaletteEntryResponse {
	keys := catalogsheet.Keys()
	out := make([]PaletteEntryResponse, len(keys))
	for i, key := range keys {
		rgb := catalogsheet.RGB(key)
		out[i] = PaletteEntryResponse{
			Key:    key,
			RGB:    toRGB(rgb),
			Dark:   toRGB(rgb.Dark()),
			Subtle: catalogsheet.Badge(key, catalogsheet.StrengthSubtle),
			Strong: catalogsheet.Badge(key, catalogsheet.StrengthStrong),
		}
	}
	return out
}

// Classify returns the palette and badge classes for one label
func (s *CatalogService) Classify(req ClassifyRequest) ClassificationResponse {
	key := catalogsheet.Classify(req.Label)
	strength := catalogsheet.ParseStrength(req.Strength)
	return ClassificationResponse{
		Label:    req.Label,
		Palette:  key,
		Strength: strength,
		Classes:  catalogsheet.Badge(key, strength),
		RGB:      toRGB(catalogsheet.RGB(key)),
	}
}
