package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequestID(t *testing.T, incoming string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Use(RequestIDMiddleware)
	e.GET("/ping", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if incoming != "" {
		req.Header.Set("X-Request-ID", incoming)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	return rec
}

func TestRequestIDGeneratedWhenAbsent(t *testing.T) {
	t.Parallel()
	rec := doRequestID(t, "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDPreservedWhenSupplied(t *testing.T) {
	t.Parallel()
	rec := doRequestID(t, "upstream-trace-42")
	assert.Equal(t, "upstream-trace-42", rec.Header().Get("X-Request-ID"))
}
