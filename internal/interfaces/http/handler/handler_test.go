package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/catalogsheet"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/printing"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockCatalogService is a mock implementation of CatalogService
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListItems(ctx context.Context, filter catalogapp.ListItemsFilter) ([]catalogapp.ItemResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalogapp.ItemResponse), args.Error(1)
}

func (m *MockCatalogService) GetItem(ctx context.Context, id string) (*catalogapp.ItemResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ItemResponse), args.Error(1)
}

func (m *MockCatalogService) ListCategories(ctx context.Context) ([]catalogapp.CategoryResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalogapp.CategoryResponse), args.Error(1)
}

func (m *MockCatalogService) Inquiry(ctx context.Context, id string) (*catalogapp.InquiryResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.InquiryResponse), args.Error(1)
}

func (m *MockCatalogService) Palette() []catalogapp.PaletteEntryResponse {
	return m.Called().Get(0).([]catalogapp.PaletteEntryResponse)
}

func (m *MockCatalogService) Classify(req catalogapp.ClassifyRequest) catalogapp.ClassificationResponse {
	return m.Called(req).Get(0).(catalogapp.ClassificationResponse)
}

func serve(router *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func newCatalogRouter(svc CatalogService) *gin.Engine {
	h := NewCatalogHandler(svc)
	r := gin.New()
	r.GET("/items", h.ListItems)
	r.GET("/items/:id", h.GetItem)
	r.GET("/items/:id/inquiry", h.Inquiry)
	r.GET("/categories", h.ListCategories)
	r.GET("/palette", h.Palette)
	r.GET("/palette/classify", h.Classify)
	return r
}

func TestCatalogHandler_ListItems(t *testing.T) {
	svc := new(MockCatalogService)
	svc.On("ListItems", mock.Anything, catalogapp.ListItemsFilter{Category: "refis", AvailableOnly: true}).
		Return([]catalogapp.ItemResponse{{ID: "1", Name: "IGNITE"}}, nil)

	w := serve(newCatalogRouter(svc), http.MethodGet, "/items?category=refis&available=true")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Total)
	svc.AssertExpectations(t)
}

func TestCatalogHandler_ListItems_BadQuery(t *testing.T) {
	svc := new(MockCatalogService)
	w := serve(newCatalogRouter(svc), http.MethodGet, "/items?available=maybe")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, decode(t, w).Success)
	svc.AssertNotCalled(t, "ListItems", mock.Anything, mock.Anything)
}

func TestCatalogHandler_GetItem(t *testing.T) {
	svc := new(MockCatalogService)
	svc.On("GetItem", mock.Anything, "7").Return(&catalogapp.ItemResponse{ID: "7"}, nil)
	svc.On("GetItem", mock.Anything, "nope").Return(nil, shared.ErrNotFound)
	router := newCatalogRouter(svc)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/items/7").Code)

	w := serve(router, http.MethodGet, "/items/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}

func TestCatalogHandler_Inquiry(t *testing.T) {
	svc := new(MockCatalogService)
	svc.On("Inquiry", mock.Anything, "7").Return(&catalogapp.InquiryResponse{ItemID: "7", URL: "https://wa.me/5561982131123?text=x"}, nil)

	w := serve(newCatalogRouter(svc), http.MethodGet, "/items/7/inquiry")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "wa.me")
}

func TestCatalogHandler_CategoriesAndPalette(t *testing.T) {
	svc := new(MockCatalogService)
	svc.On("ListCategories", mock.Anything).Return([]catalogapp.CategoryResponse{{ID: "refis", Name: "Refis", ItemCount: 3}}, nil)
	svc.On("Palette").Return([]catalogapp.PaletteEntryResponse{{}, {}})
	router := newCatalogRouter(svc)

	w := serve(router, http.MethodGet, "/categories")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Refis"`)

	w = serve(router, http.MethodGet, "/palette")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decode(t, w).Meta.Total)
}

func TestCatalogHandler_Classify(t *testing.T) {
	svc := new(MockCatalogService)
	svc.On("Classify", catalogapp.ClassifyRequest{Label: "Grape Ice", Strength: "strong"}).
		Return(catalogapp.ClassificationResponse{Label: "Grape Ice"})
	router := newCatalogRouter(svc)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/palette/classify?label=Grape+Ice&strength=strong").Code)

	w := serve(router, http.MethodGet, "/palette/classify?label=x&strength=loud")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, decode(t, w).Error.Code)
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"domain", shared.ErrInvalidInput, http.StatusBadRequest, dto.ErrCodeInvalidInput},
		{"wrapped busy", fmt.Errorf("run: %w", shared.ErrGenerationInProgress), http.StatusConflict, dto.ErrCodeGenerationInProgress},
		{"render", printing.NewRenderError(printing.ErrCodeImpossibleGeometry, "row too tall", printing.ErrImpossibleGeometry), http.StatusInternalServerError, dto.ErrCodeRenderFailed},
		{"deadline", fmt.Errorf("fetch: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, dto.ErrCodeTimeout},
		{"other", errors.New("disk on fire"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			var h BaseHandler
			h.HandleError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			resp := decode(t, w)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotContains(t, w.Body.String(), "disk on fire")
		})
	}
}

// fakeGenerator reports the given progress then returns doc or err
type fakeGenerator struct {
	progress []int
	doc      *catalogsheet.Document
	err      error
	block    bool
}

func (g *fakeGenerator) Generate(ctx context.Context, onProgress catalogsheet.ProgressFunc) (*catalogsheet.Document, error) {
	for _, p := range g.progress {
		if onProgress != nil {
			onProgress(p)
		}
	}
	if g.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return g.doc, g.err
}

func testDocument() *catalogsheet.Document {
	return &catalogsheet.Document{
		Filename:    "catalogo-2026-10-16.pdf",
		Content:     []byte("%PDF-1.3 test"),
		PageCount:   1,
		ItemCount:   2,
		GeneratedAt: time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
	}
}

func newSheetRouter(t *testing.T, gen SheetGenerator) *gin.Engine {
	h := NewSheetHandler(gen, WithSheetLogger(zaptest.NewLogger(t)))
	r := gin.New()
	r.GET("/sheet", h.Download)
	r.GET("/sheet/stream", h.Stream)
	return r
}

func TestSheetHandler_Download(t *testing.T) {
	w := serve(newSheetRouter(t, &fakeGenerator{doc: testDocument()}), http.MethodGet, "/sheet")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="catalogo-2026-10-16.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3 test", w.Body.String())
}

func TestSheetHandler_Download_Busy(t *testing.T) {
	w := serve(newSheetRouter(t, &fakeGenerator{err: shared.ErrGenerationInProgress}), http.MethodGet, "/sheet")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, dto.ErrCodeGenerationInProgress, decode(t, w).Error.Code)
}

type sseEvent struct {
	Name string
	Data string
}

func parseEvents(t *testing.T, body string) []sseEvent {
	t.Helper()
	var events []sseEvent
	var current sseEvent
	scanner := bufio.NewScanner(strings.NewReader(body))
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			current.Name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			current.Data = strings.TrimPrefix(line, "data: ")
		case line == "" && current.Name != "":
			events = append(events, current)
			current = sseEvent{}
		}
	}
	return events
}

func TestSheetHandler_Stream(t *testing.T) {
	gen := &fakeGenerator{progress: []int{20, 40, 68, 95, 100}, doc: testDocument()}
	w := serve(newSheetRouter(t, gen), http.MethodGet, "/sheet/stream")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	events := parseEvents(t, w.Body.String())
	require.Len(t, events, 6)
	var last int
	for _, e := range events[:5] {
		assert.Equal(t, EventProgress, e.Name)
		var p dto.SheetProgressEvent
		require.NoError(t, json.Unmarshal([]byte(e.Data), &p))
		assert.GreaterOrEqual(t, p.Percent, last)
		last = p.Percent
	}
	assert.Equal(t, 100, last)

	final := events[5]
	assert.Equal(t, EventDocument, final.Name)
	var doc dto.SheetDocumentEvent
	require.NoError(t, json.Unmarshal([]byte(final.Data), &doc))
	assert.Equal(t, "catalogo-2026-10-16.pdf", doc.Filename)
	assert.Equal(t, len("%PDF-1.3 test"), doc.Size)
}

func TestSheetHandler_Stream_Error(t *testing.T) {
	gen := &fakeGenerator{progress: []int{40}, err: shared.ErrGenerationInProgress}
	w := serve(newSheetRouter(t, gen), http.MethodGet, "/sheet/stream")

	events := parseEvents(t, w.Body.String())
	require.NotEmpty(t, events)
	final := events[len(events)-1]
	assert.Equal(t, EventError, final.Name)
	assert.Contains(t, final.Data, dto.ErrCodeGenerationInProgress)
	for _, e := range events {
		assert.NotEqual(t, EventDocument, e.Name)
	}
}

func TestSheetHandler_Stream_ClientGone(t *testing.T) {
	gen := &fakeGenerator{progress: []int{10}, block: true}
	router := newSheetRouter(t, gen)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/sheet/stream", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	finished := make(chan struct{})
	go func() {
		router.ServeHTTP(w, req)
		close(finished)
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not stop after the client went away")
	}
}

func TestSystemHandler(t *testing.T) {
	t.Run("static catalog", func(t *testing.T) {
		h := NewSystemHandler("storefront-backend", "1.0.0", "static", nil)
		r := gin.New()
		r.GET("/health", h.Health)
		r.GET("/info", h.GetSystemInfo)

		w := serve(r, http.MethodGet, "/health")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

		w = serve(r, http.MethodGet, "/info")
		assert.Equal(t, http.StatusOK, w.Code)
		data := decode(t, w).Data.(map[string]any)
		assert.Equal(t, "static", data["catalog_source"])
		assert.NotEmpty(t, data["go_version"])
	})

	t.Run("database down", func(t *testing.T) {
		h := NewSystemHandler("storefront-backend", "1.0.0", "database", pingerFunc(func() error { return errors.New("refused") }))
		r := gin.New()
		r.GET("/health", h.Health)

		w := serve(r, http.MethodGet, "/health")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "unreachable")
	})
}

type pingerFunc func() error

func (f pingerFunc) Ping() error { return f() }
