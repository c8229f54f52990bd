package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// CatalogService is what the catalog endpoints need from the application layer
type CatalogService interface {
	ListItems(ctx context.Context, filter catalogapp.ListItemsFilter) ([]catalogapp.ItemResponse, error)
	GetItem(ctx context.Context, id string) (*catalogapp.ItemResponse, error)
	ListCategories(ctx context.Context) ([]catalogapp.CategoryResponse, error)
	Inquiry(ctx context.Context, id string) (*catalogapp.InquiryResponse, error)
	Palette() []catalogapp.PaletteEntryResponse
	Classify(req catalogapp.ClassifyRequest) catalogapp.ClassificationResponse
}

// CatalogHandler handles catalog browsing endpoints
type CatalogHandler struct {
	BaseHandler
	service CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(service CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ListItems godoc
// @ID           listCatalogItems
// @Summary      List catalog items
// @Description  Items in catalog order, optionally filtered by category and availability
// @Tags         catalog
// @Produce      json
// @Param        category  query     string  false  "Category id"
// @Param        available query     bool    false  "Only available items"
// @Success      200 {object} APIResponse[[]catalog.ItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /catalog/items [get]
func (h *CatalogHandler) ListItems(c *gin.Context) {
	var filter catalogapp.ListItemsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}
	items, err := h.service.ListItems(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, items, len(items))
}

// GetItem godoc
// @ID           getCatalogItem
// @Summary      Get a catalog item
// @Tags         catalog
// @Produce      json
// @Param        id  path      string  true  "Item id"
// @Success      200 {object} APIResponse[catalog.ItemResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /catalog/items/{id} [get]
func (h *CatalogHandler) GetItem(c *gin.Context) {
	item, err := h.service.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Inquiry godoc
// @ID           getCatalogItemInquiry
// @Summary      WhatsApp inquiry link for an item
// @Tags         catalog
// @Produce      json
// @Param        id  path      string  true  "Item id"
// @Success      200 {object} APIResponse[catalog.InquiryResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /catalog/items/{id}/inquiry [get]
func (h *CatalogHandler) Inquiry(c *gin.Context) {
	inquiry, err := h.service.Inquiry(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, inquiry)
}

// ListCategories godoc
// @ID           listCatalogCategories
// @Summary      List categories
// @Description  Categories in the order they first appear, with display names and counts
// @Tags         catalog
// @Produce      json
// @Success      200 {object} APIResponse[[]catalog.CategoryResponse]
// @Router       /catalog/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, categories, len(categories))
}

// Palette godoc
// @ID           getCatalogPalette
// @Summary      Variant colour palette
// @Tags         catalog
// @Produce      json
// @Success      200 {object} APIResponse[[]catalog.PaletteEntryResponse]
// @Router       /catalog/palette [get]
func (h *CatalogHandler) Palette(c *gin.Context) {
	palette := h.service.Palette()
	h.List(c, palette, len(palette))
}

// Classify godoc
// @ID           classifyVariantLabel
// @Summary      Classify a variant label
// @Tags         catalog
// @Produce      json
// @Param        label    query     string  false  "Variant label"
// @Param        strength query     string  false  "subtle or strong"
// @Success      200 {object} APIResponse[catalog.ClassificationResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /catalog/palette/classify [get]
func (h *CatalogHandler) Classify(c *gin.Context) {
	var req catalogapp.ClassifyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	h.Success(c, h.service.Classify(req))
}
