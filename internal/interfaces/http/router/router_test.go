package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	r := NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	group := NewDomainGroup("test", "/test")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	r.Register(group).Setup()

	w := serve(engine, http.MethodGet, "/api/v1/test/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouterUse(t *testing.T) {
	engine := gin.New()
	engine.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	r := NewRouter(engine).Use(func(c *gin.Context) {
		c.Header("X-Api", "1")
		c.Next()
	})
	r.Register(NewDomainGroup("test", "/test").GET("/a", func(c *gin.Context) {
		c.String(http.StatusOK, "a")
	})).Setup()

	assert.Equal(t, "1", serve(engine, http.MethodGet, "/api/v1/test/a").Header().Get("X-Api"))
	assert.Empty(t, serve(engine, http.MethodGet, "/health").Header().Get("X-Api"))
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("catalog", "/catalog")
		assert.Equal(t, "catalog", g.Name())
		assert.Equal(t, "/catalog", g.Prefix())
	})

	t.Run("registers GET and HEAD routes", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.GET("/items", func(c *gin.Context) {
			c.String(http.StatusOK, "items")
		}).HEAD("/items", func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		g.RegisterRoutes(engine.Group("/api/v1"))

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/test/items").Code)
		assert.Equal(t, http.StatusNoContent, serve(engine, http.MethodHead, "/api/v1/test/items").Code)
		assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodPost, "/api/v1/test/items").Code)
	})

	t.Run("applies middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.Use(func(c *gin.Context) {
			c.Header("X-Test-Middleware", "applied")
			c.Next()
		})
		g.GET("/items", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		g.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, http.MethodGet, "/api/v1/test/items")
		assert.Equal(t, "applied", w.Header().Get("X-Test-Middleware"))
	})

	t.Run("creates subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("catalog", "/catalog")
		g.Group("sheet", "/sheet").GET("", func(c *gin.Context) {
			c.String(http.StatusOK, "pdf")
		})

		g.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, http.MethodGet, "/api/v1/catalog/sheet")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pdf", w.Body.String())
	})
}

func TestCatalogAndSystemRoutes(t *testing.T) {
	engine := gin.New()
	catalog := handler.NewCatalogHandler(nil)
	sheet := handler.NewSheetHandler(nil)
	system := handler.NewSystemHandler("storefront-backend", "test", "static", nil)

	NewRouter(engine).
		Register(CatalogRoutes(catalog, sheet)).
		Register(SystemRoutes(system)).
		Setup()

	registered := make(map[string]bool)
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"GET /api/v1/catalog/items",
		"GET /api/v1/catalog/items/:id",
		"GET /api/v1/catalog/items/:id/inquiry",
		"GET /api/v1/catalog/categories",
		"GET /api/v1/catalog/palette",
		"GET /api/v1/catalog/palette/classify",
		"GET /api/v1/catalog/sheet",
		"GET /api/v1/catalog/sheet/stream",
		"GET /api/v1/system/info",
		"GET /api/v1/system/health",
		"HEAD /api/v1/system/health",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}

	w := serve(engine, http.MethodGet, "/api/v1/system/info")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(engine, http.MethodHead, "/api/v1/system/health")
	assert.Equal(t, http.StatusOK, w.Code)
}
