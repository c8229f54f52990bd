package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// Pinger checks a backing dependency
type Pinger interface {
	Ping() error
}

// SystemHandler serves health and build information
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	source    string
	database  Pinger
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler. database may be nil when
// the catalog is served from the static file.
func NewSystemHandler(name, version, source string, database Pinger) *SystemHandler {
	return &SystemHandler{
		name:      name,
		version:   version,
		source:    source,
		database:  database,
		startTime: time.Now(),
	}
}

// HealthResponse is the liveness payload
// @name HandlerHealthResponse
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database,omitempty" example:"ok"`
}

// SystemInfoResponse represents the system information response
// @name HandlerSystemInfoResponse
type SystemInfoResponse struct {
	Name          string `json:"name" example:"storefront-backend"`
	Version       string `json:"version" example:"1.0.0"`
	GoVersion     string `json:"go_version" example:"go1.25.5"`
	CatalogSource string `json:"catalog_source" example:"static"`
	Uptime        string `json:"uptime" example:"1h30m45s"`
}

// Health godoc
// @ID           getHealth
// @Summary      Liveness check
// @Description  Reports ok, and pings the database when the catalog lives there
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /system/health [get]
// @Router       /system/health [head]
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{Status: "ok"}
	if h.database != nil {
		resp.Database = "ok"
		if err := h.database.Ping(); err != nil {
			resp.Status = "degraded"
			resp.Database = "unreachable"
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
	}
	c.JSON(http.StatusOK, resp)
}

// GetSystemInfo godoc
// @ID           getSystemInfo
// @Summary      Get system information
// @Description  Returns name, version, catalog source and uptime
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[SystemInfoResponse]
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(SystemInfoResponse{
		Name:          h.name,
		Version:       h.version,
		GoVersion:     runtime.Version(),
		CatalogSource: h.source,
		Uptime:        time.Since(h.startTime).Round(time.Second).String(),
	}))
}
