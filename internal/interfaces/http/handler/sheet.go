package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/domain/catalogsheet"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/printing"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// SheetGenerator produces the catalog sheet
type SheetGenerator interface {
	Generate(ctx context.Context, onProgress catalogsheet.ProgressFunc) (*catalogsheet.Document, error)
}

// SSE event names on the sheet stream
const (
	EventProgress = "progress"
	EventDocument = "document"
	EventError    = "error"
)

// SheetHandler serves the catalog sheet as a download or as an SSE stream
type SheetHandler struct {
	BaseHandler
	generator SheetGenerator
	logger    *zap.Logger
	heartbeat time.Duration
}

// SheetHandlerOption configures a SheetHandler
type SheetHandlerOption func(*SheetHandler)

// WithSheetLogger sets the logger for the handler
func WithSheetLogger(logger *zap.Logger) SheetHandlerOption {
	return func(h *SheetHandler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithSheetHeartbeat sets the keepalive interval of the stream
func WithSheetHeartbeat(interval time.Duration) SheetHandlerOption {
	return func(h *SheetHandler) {
		if interval > 0 {
			h.heartbeat = interval
		}
	}
}

// NewSheetHandler creates a new SheetHandler
func NewSheetHandler(generator SheetGenerator, opts ...SheetHandlerOption) *SheetHandler {
	h := &SheetHandler{
		generator: generator,
		logger:    zap.NewNop(),
		heartbeat: 15 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Download godoc
// @ID           downloadCatalogSheet
// @Summary      Download the catalog sheet
// @Description  Generates the printable catalog and returns it as a PDF attachment
// @Tags         catalog-sheet
// @Produce      application/pdf
// @Success      200 {file}   binary
// @Failure      409 {object} ErrorResponse "Another generation is running"
// @Failure      500 {object} ErrorResponse
// @Router       /catalog/sheet [get]
func (h *SheetHandler) Download(c *gin.Context) {
	doc, err := h.generator.Generate(c.Request.Context(), nil)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	c.Header("Content-Length", strconv.Itoa(doc.Size()))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, catalogsheet.ContentType, doc.Content)
}

type generation struct {
	doc *catalogsheet.Document
	err error
}

// Stream godoc
// @ID           streamCatalogSheet
// @Summary      Generate the catalog sheet with progress events
// @Description  Server-Sent Events: "progress" events with the percentage, then one
// @Description  "document" event with the base64 PDF or one "error" event
// @Tags         catalog-sheet
// @Produce      text/event-stream
// @Success      200 {string} string "SSE stream"
// @Router       /catalog/sheet/stream [get]
func (h *SheetHandler) Stream(c *gin.Context) {
	ctx := c.Request.Context()
	log := h.logger.With(zap.String("request_id", middleware.GetRequestID(c)))

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	// progress drops values while the client is slow to read
	progress := make(chan int, 128)
	done := make(chan generation, 1)
	go func() {
		doc, err := h.generator.Generate(ctx, func(percent int) {
			select {
			case progress <- percent:
			default:
			}
		})
		done <- generation{doc: doc, err: err}
	}()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// the generator sees the same context and stops on its own
			<-done
			log.Info("catalog sheet stream closed by client")
			return
		case <-ticker.C:
			fmt.Fprint(c.Writer, ": keepalive\n\n")
			c.Writer.Flush()
		case percent := <-progress:
			h.sendEvent(c.Writer, EventProgress, dto.SheetProgressEvent{Percent: percent})
			c.Writer.Flush()
		case result := <-done:
			h.drainProgress(c.Writer, progress)
			if result.err != nil {
				code, message := streamError(result.err)
				log.Warn("catalog sheet stream failed", zap.String("code", code), zap.Error(result.err))
				h.sendEvent(c.Writer, EventError, dto.ErrorInfo{
					Code:      code,
					Message:   message,
					RequestID: middleware.GetRequestID(c),
				})
			} else {
				h.sendEvent(c.Writer, EventDocument, dto.ToSheetDocumentEvent(result.doc))
			}
			c.Writer.Flush()
			return
		}
	}
}

func (h *SheetHandler) drainProgress(w io.Writer, progress <-chan int) {
	for {
		select {
		case percent := <-progress:
			h.sendEvent(w, EventProgress, dto.SheetProgressEvent{Percent: percent})
		default:
			return
		}
	}
}

// sendEvent writes one SSE event with a JSON payload
func (h *SheetHandler) sendEvent(w io.Writer, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to marshal SSE event", zap.String("event", event), zap.Error(err))
		return
	}
	fmt.Fprintf(w, "event: %s\n", event)
	fmt.Fprintf(w, "data: %s\n\n", data)
}

// streamError maps a generation error to the code and message of an error event
func streamError(err error) (string, string) {
	var domainErr *shared.DomainError
	var renderErr *printing.RenderError
	switch {
	case errors.As(err, &domainErr):
		return dto.NormalizeErrorCode(domainErr.Code), domainErr.Message
	case errors.As(err, &renderErr):
		return dto.ErrCodeRenderFailed, renderErr.Message
	case errors.Is(err, context.DeadlineExceeded):
		return dto.ErrCodeTimeout, "The catalog sheet took too long to generate"
	default:
		return dto.ErrCodeInternal, "An unexpected error occurred"
	}
}
