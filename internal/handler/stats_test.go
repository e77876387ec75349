package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharma-service/internal/model"
)

func TestDashboardStats(t *testing.T) {
	t.Parallel()
	e, st := newTestServer(t, false)
	token := testToken(t)

	require.NoError(t, st.Replace(model.CollectionUsers, []model.Record{
		{"id": "1", "email": "a@b.c"},
		{"id": "2", "email": "d@e.f"},
	}))
	require.NoError(t, st.Replace(model.CollectionMedicines, []model.Record{
		{"id": "1", "stock": "500"},
		{"id": "2", "stock": "300"},
		{"id": "3", "stock": "400"},
		{"id": "4", "stock": "250"},
		{"id": "5", "stock": "50"},
	}))
	require.NoError(t, st.Replace(model.CollectionOrders, []model.Record{
		{"id": "1", "total": "100", "status": "pending"},
		{"id": "2", "total": "bad", "status": "completed"},
		{"id": "3", "total": "50"},
	}))

	code, resp := doJSON(t, e, http.MethodGet, "/api/stats/dashboard", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, resp["success"])

	stats, ok := resp["stats"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), stats["totalUsers"])
	assert.Equal(t, float64(5), stats["totalMedicines"])
	assert.Equal(t, float64(3), stats["totalOrders"])
	assert.Equal(t, float64(1), stats["pendingOrders"])
	assert.Equal(t, float64(1), stats["completedOrders"])
	assert.Equal(t, float64(150), stats["totalRevenue"])
	assert.Equal(t, float64(1), stats["lowStockMedicines"])
}

func TestDashboardStatsEmptyCollections(t *testing.T) {
	t.Parallel()
	e, _ := newTestServer(t, false)
	token := testToken(t)

	code, resp := doJSON(t, e, http.MethodGet, "/api/stats/dashboard", token, nil)
	require.Equal(t, http.StatusOK, code)

	stats := resp["stats"].(map[string]any)
	assert.Equal(t, float64(0), stats["totalOrders"])
	assert.Equal(t, float64(0), stats["totalRevenue"])
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()
	e, _ := newTestServer(t, false)

	code, resp := doJSON(t, e, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Backend server is running", resp["message"])
	assert.NotEmpty(t, resp["timestamp"])
}

func TestRootIndex(t *testing.T) {
	t.Parallel()
	e, _ := newTestServer(t, false)

	code, resp := doJSON(t, e, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Pharma Company Backend API", resp["message"])
}
