//go:build integration

package integration

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	sheetapp "github.com/storefront/backend/internal/application/catalogsheet"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/catalogsheet"
	"github.com/storefront/backend/internal/infrastructure/assets"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
	"github.com/storefront/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type sheetStack struct {
	engine *gin.Engine
	lock   *cache.RedisGenerationLock
}

// newSheetStack wires the catalog API the way the server does, backed by the
// test containers and an httptest image origin.
func newSheetStack(t *testing.T, items []catalog.Item) sheetStack {
	t.Helper()
	log := zaptest.NewLogger(t)

	testDB := NewTestDB(t)
	repo := persistence.NewGormItemRepository(testDB.DB)
	require.NoError(t, repo.SaveAll(context.Background(), items))

	lock := cache.NewRedisGenerationLockWithClient(NewTestRedis(t), "")

	jpeg := testutil.JPEG(t, 120, 80)
	images := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "missing.jpeg") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(jpeg)
	}))
	t.Cleanup(images.Close)

	fetcher := assets.NewFetcher(assets.Config{
		BaseDir:      t.TempDir(),
		BaseURL:      images.URL,
		Timeout:      5 * time.Second,
		MaxBytes:     1 << 20,
		MaxDimension: 600,
		Quality:      85,
	}, assets.WithLogger(log))
	assembler := sheetapp.NewAssembler(fetcher, sheetapp.WithConcurrency(4), sheetapp.WithAssemblerLogger(log))
	sheetService := sheetapp.NewService(repo, assembler, lock, sheetapp.Settings{
		Timeout:  time.Minute,
		LockTTL:  time.Minute,
		Location: time.UTC,
	}, sheetapp.WithLogger(log))

	engine := gin.New()
	engine.Use(middleware.RequestID(log))
	router.NewRouter(engine).
		Register(router.CatalogRoutes(
			handler.NewCatalogHandler(catalogapp.NewCatalogService(repo)),
			handler.NewSheetHandler(sheetService, handler.WithSheetLogger(log)),
		)).
		Setup()

	return sheetStack{engine: engine, lock: lock}
}

func fakeItems(n int) []catalog.Item {
	faker := gofakeit.New(42)
	categories := []string{"descartaveis", "pods", "essencias", "acessorios"}
	items := make([]catalog.Item, n)
	for i := range items {
		variants := make([]string, faker.IntRange(0, 6))
		for j := range variants {
			variants[j] = faker.Fruit() + " Ice"
		}
		image := fmt.Sprintf("/products/item-%d.jpeg", i)
		if i%5 == 4 {
			image = "/products/missing.jpeg"
		}
		items[i] = catalog.Item{
			ID:         fmt.Sprintf("%d", i+1),
			Name:       strings.ToUpper(faker.ProductName()),
			Price:      decimal.NewFromFloat(faker.Price(10, 300)).Round(2),
			ImageRef:   image,
			CategoryID: categories[i%len(categories)],
			Featured:   i%7 == 0,
			Available:  i%6 != 5,
			Variants:   variants,
		}
	}
	return items
}

func TestSheetDownload_Integration(t *testing.T) {
	items := fakeItems(30)
	stack := newSheetStack(t, items)

	w := testutil.Serve(stack.engine, http.MethodGet, "/api/v1/catalog/sheet")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Regexp(t, `^attachment; filename="catalogo-\d{4}-\d{2}-\d{2}\.pdf"$`, w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF-"))
}

func TestSheetDownload_Busy_Integration(t *testing.T) {
	stack := newSheetStack(t, fakeItems(4))

	release, err := stack.lock.TryAcquire(context.Background(), catalogsheet.LockKey, time.Minute)
	require.NoError(t, err)
	defer func() { _ = release(context.Background()) }()

	w := testutil.Serve(stack.engine, http.MethodGet, "/api/v1/catalog/sheet")
	assert.Equal(t, http.StatusConflict, w.Code)
	testutil.AssertErrorResponse(t, w, dto.ErrCodeGenerationInProgress)
}

func TestSheetStream_Integration(t *testing.T) {
	items := fakeItems(12)
	stack := newSheetStack(t, items)

	w := testutil.Serve(stack.engine, http.MethodGet, "/api/v1/catalog/sheet/stream")
	require.Equal(t, http.StatusOK, w.Code)

	events := testutil.ParseSSE(t, w.Body.String())
	require.NotEmpty(t, events)

	last := 0
	for _, e := range events[:len(events)-1] {
		require.Equal(t, handler.EventProgress, e.Name)
		var p dto.SheetProgressEvent
		require.NoError(t, json.Unmarshal([]byte(e.Data), &p))
		assert.GreaterOrEqual(t, p.Percent, last, "progress went backwards")
		last = p.Percent
	}

	final := events[len(events)-1]
	require.Equal(t, handler.EventDocument, final.Name)
	var doc dto.SheetDocumentEvent
	require.NoError(t, json.Unmarshal([]byte(final.Data), &doc))
	assert.Equal(t, len(items), doc.ItemCount)
	// every fifth item points at a missing image
	assert.Equal(t, len(items)-len(items)/5, doc.ImagesEmbedded)

	pdf, err := base64.StdEncoding.DecodeString(doc.Content)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF-"))
	assert.Equal(t, len(pdf), doc.Size)
}

func TestCatalogAPI_Integration(t *testing.T) {
	items := fakeItems(8)
	stack := newSheetStack(t, items)

	w := testutil.Serve(stack.engine, http.MethodGet, "/api/v1/catalog/items?category=pods")
	require.Equal(t, http.StatusOK, w.Code)
	got := testutil.DecodeData[[]catalogapp.ItemResponse](t, w)
	require.Len(t, got, 2)
	for _, item := range got {
		assert.Equal(t, "pods", item.CategoryID)
	}

	w = testutil.Serve(stack.engine, http.MethodGet, "/api/v1/catalog/items/404")
	assert.Equal(t, http.StatusNotFound, w.Code)
	testutil.AssertErrorResponse(t, w, dto.ErrCodeNotFound)

	w = testutil.Serve(stack.engine, http.MethodGet, "/api/v1/catalog/categories")
	categories := testutil.DecodeData[[]catalogapp.CategoryResponse](t, w)
	require.Len(t, categories, 4)
	assert.Equal(t, "descartaveis", categories[0].ID)
}
