package dto

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/storefront/backend/internal/domain/catalogsheet"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeUnknown, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeUnavailable, http.StatusServiceUnavailable},
		{ErrCodeTimeout, http.StatusGatewayTimeout},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeGenerationInProgress, http.StatusConflict},
		{ErrCodeRenderFailed, http.StatusInternalServerError},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{shared.ErrNotFound.Code, ErrCodeNotFound},
		{shared.ErrInvalidInput.Code, ErrCodeInvalidInput},
		{shared.ErrInvalidState.Code, ErrCodeInvalidState},
		{shared.ErrGenerationInProgress.Code, ErrCodeGenerationInProgress},
		{shared.ErrRenderFailed.Code, ErrCodeRenderFailed},
		// already normalised codes pass through
		{ErrCodeNotFound, ErrCodeNotFound},
		{"SOMETHING_ELSE", "SOMETHING_ELSE"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestErrorCodeFormat(t *testing.T) {
	for code := range ErrorCodeHTTPStatus {
		assert.True(t, strings.HasPrefix(code, "ERR_"), "code %s", code)
		assert.Equal(t, strings.ToUpper(code), code)
	}
}

func TestErrorResponseJSON(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeGenerationInProgress, "busy", "req-1")

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.NotContains(t, decoded, "data")
	errInfo := decoded["error"].(map[string]any)
	assert.Equal(t, "ERR_GENERATION_IN_PROGRESS", errInfo["code"])
	assert.Equal(t, "req-1", errInfo["request_id"])
}

func TestNewListResponse(t *testing.T) {
	resp := NewListResponse([]string{"a", "b"}, 2)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Total)
	assert.Nil(t, resp.Error)
}

func TestToSheetDocumentEvent(t *testing.T) {
	at := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	doc := &catalogsheet.Document{
		Filename:    "catalogo-2026-10-16.pdf",
		Content:     []byte("%PDF-1.3"),
		PageCount:   2,
		ItemCount:   5,
		GeneratedAt: at,
	}
	event := ToSheetDocumentEvent(doc)
	assert.Equal(t, "application/pdf", event.ContentType)
	assert.Equal(t, 8, event.Size)
	assert.Equal(t, "JVBERi0xLjM=", event.Content)
	assert.Equal(t, 2, event.PageCount)
}
