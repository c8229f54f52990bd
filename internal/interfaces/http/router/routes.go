package router

import (
	"github.com/storefront/backend/internal/interfaces/http/handler"
)

// CatalogRoutes exposes browsing, palette and sheet endpoints under /catalog
func CatalogRoutes(catalog *handler.CatalogHandler, sheet *handler.SheetHandler) *DomainGroup {
	g := NewDomainGroup("catalog", "/catalog")
	g.GET("/items", catalog.ListItems)
	g.GET("/items/:id", catalog.GetItem)
	g.GET("/items/:id/inquiry", catalog.Inquiry)
	g.GET("/categories", catalog.ListCategories)
	g.GET("/palette", catalog.Palette)
	g.GET("/palette/classify", catalog.Classify)

	sheets := g.Group("catalog-sheet", "/sheet")
	sheets.GET("", sheet.Download)
	sheets.GET("/stream", sheet.Stream)
	return g
}

// SystemRoutes exposes build information and a versioned liveness probe
// under /system
func SystemRoutes(system *handler.SystemHandler) *DomainGroup {
	g := NewDomainGroup("system", "/system")
	g.GET("/info", system.GetSystemInfo)
	g.GET("/health", system.Health).HEAD("/health", system.Health)
	return g
}
