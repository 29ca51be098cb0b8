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
	base := NewAppError(ErrNotFound, "customer not found", nil)
	wrapped := Wrap(fmt.Errorf("lookup: %w", base), "failed to settle purchase")

	assert.Equal(t, ErrNotFound, CodeOf(wrapped))
	assert.True(t, Is(wrapped, base))
	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Equal(t, ErrInternal, CodeOf(New("plain")))
}

func TestToHTTPError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", NewAppError(ErrNotFound, "missing", nil), http.StatusNotFound},
		{"conflict", NewAppError(ErrConflict, "dup", nil), http.StatusConflict},
		{"invalid", NewAppError(ErrInvalidArgument, "bad", nil), http.StatusBadRequest},
		{"plain", New("boom"), http.StatusInternalServerError},
		{"echo", echo.NewHTTPError(http.StatusTeapot, "tea"), http.StatusTeapot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, ToHTTPError(tt.err).Code)
		})
	}
	assert.Nil(t, ToHTTPError(nil))
}

func TestLogErrorLevels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	LogError(logger, NewAppError(ErrNotFound, "missing", nil), "lookup failed")
	LogError(logger, New("db down"), "query failed")
	LogError(logger, nil, "ignored")

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, zap.WarnLevel, entries[0].Level)
		assert.Equal(t, ErrNotFound, entries[0].ContextMap()["error_code"])
		assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	}
}
