package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pharma-service/internal/handler"
	"pharma-service/internal/store"
	"pharma-service/internal/store/filestore"
	"pharma-service/pkg/config"
	"pharma-service/pkg/jwtutil"
	"pharma-service/prometheus"
)

func initTestGlobals() {
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})
	prometheus.InitMetrics(&config.Config{Metrics: config.MetricsConfig{Prefix: "test"}})
}

// newTestServer builds the full route tree over a file store in a temp dir.
// With seed true the demo users and medicines are loaded.
func newTestServer(t *testing.T, seed bool) (*echo.Echo, store.Store) {
	t.Helper()
	initTestGlobals()

	st, err := filestore.New(t.TempDir(), store.Options{ValidationMode: config.ValidationLoose}, zap.NewNop())
	require.NoError(t, err)
	if seed {
		require.NoError(t, store.Seed(st, zap.NewNop()))
	}

	e := echo.New()
	handler.RegisterRoutes(e, st)
	return e, st
}

// doJSON performs a request against the echo instance and decodes the
// response envelope
func doJSON(t *testing.T, e *echo.Echo, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

// testToken issues a session token without going through login
func testToken(t *testing.T) string {
	t.Helper()
	initTestGlobals()
	token, err := jwtutil.GenerateToken("1", "admin@pharma.com", "admin")
	require.NoError(t, err)
	return token
}

// loginAs logs in through the HTTP endpoint and returns the session token
func loginAs(t *testing.T, e *echo.Echo, email, password, role string) string {
	t.Helper()
	code, resp := doJSON(t, e, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
		"role":     role,
	})
	require.Equal(t, http.StatusOK, code)
	token, _ := resp["token"].(string)
	require.NotEmpty(t, token)
	return token
}
