package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWrapKeepsCode(t *testing.T) {
	base := NewAppError(ErrNotFound, "budget request not found", nil)

	wrapped := Wrap(fmt.Errorf("lookup: %w", base), "failed to load request")

	assert.Equal(t, ErrNotFound, CodeOf(wrapped))
	assert.Contains(t, wrapped.Error(), "budget request not found")
	assert.True(t, Is(wrapped, base))
}

func TestWrapDefaultsToInternal(t *testing.T) {
	wrapped := Wrap(New("connection reset"), "failed to save request")

	assert.Equal(t, ErrInternal, CodeOf(wrapped))
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrInvalidArgument, http.StatusBadRequest},
		{ErrFailedPrecondition, http.StatusConflict},
		{ErrUnprocessable, http.StatusUnprocessableEntity},
		{ErrMethodNotAllowed, http.StatusMethodNotAllowed},
		{ErrPayloadTooLarge, http.StatusRequestEntityTooLarge},
		{ErrInternal, http.StatusInternalServerError},
		{"UNKNOWN", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, ToHTTPStatus(tt.code))
		})
	}
}

func TestFromHTTPError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    string
		message string
	}{
		{"unknown route", echo.ErrNotFound, ErrNotFound, "Not Found"},
		{"wrong method", echo.ErrMethodNotAllowed, ErrMethodNotAllowed, "Method Not Allowed"},
		{"body limit", echo.ErrStatusRequestEntityTooLarge, ErrPayloadTooLarge, "Request Entity Too Large"},
		{"custom message", echo.NewHTTPError(http.StatusBadRequest, "bad form"), ErrInvalidArgument, "bad form"},
		{"non-string message", echo.NewHTTPError(http.StatusConflict, map[string]string{"k": "v"}), ErrConflict, "Conflict"},
		{"unmapped status", echo.NewHTTPError(http.StatusTeapot, "tea"), ErrInternal, "tea"},
		{"plain error", New("boom"), ErrInternal, "boom: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromHTTPError(tt.err)
			assert.Equal(t, tt.code, CodeOf(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}

	coded := NewAppError(ErrUnprocessable, "incomplete", nil)
	assert.Same(t, coded, FromHTTPError(coded))
	assert.Nil(t, FromHTTPError(nil))
}

func TestLogErrorAddsCode(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	logger := zap.New(core)

	LogError(logger, NewAppError(ErrConflict, "duplicate", nil), "request failed", zap.String("op", "create"))
	LogError(logger, nil, "ignored")

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "request failed", entries[0].Message)
	assert.Equal(t, ErrConflict, entries[0].ContextMap()["error_code"])
	assert.Equal(t, "create", entries[0].ContextMap()["op"])
}
