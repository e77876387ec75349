package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Float(t *testing.T) {
	t.Parallel()

	rec := Record{
		"number":  float64(12.5),
		"numeric": "100",
		"junk":    "bad",
		"nested":  map[string]any{},
	}

	assert.Equal(t, 12.5, rec.Float("number"))
	assert.Equal(t, 100.0, rec.Float("numeric"))
	assert.Equal(t, 0.0, rec.Float("junk"))
	assert.Equal(t, 0.0, rec.Float("nested"))
	assert.Equal(t, 0.0, rec.Float("missing"))
}

func TestRecord_Int(t *testing.T) {
	t.Parallel()

	rec := Record{"stock": "50", "count": float64(3), "junk": "many"}

	n, ok := rec.Int("stock")
	require.True(t, ok)
	assert.Equal(t, 50, n)

	n, ok = rec.Int("count")
	require.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = rec.Int("junk")
	assert.False(t, ok)

	_, ok = rec.Int("missing")
	assert.False(t, ok)
}

func TestRecord_MergeIsShallowAndNonDestructive(t *testing.T) {
	t.Parallel()

	orig := Record{"id": "1", "name": "Paracetamol", "stock": "500"}
	merged := orig.Merge(Record{"stock": "450"})

	assert.Equal(t, "450", merged.String("stock"))
	assert.Equal(t, "Paracetamol", merged.String("name"))
	// original untouched
	assert.Equal(t, "500", orig.String("stock"))
}

func TestRecord_WithoutPassword(t *testing.T) {
	t.Parallel()

	rec := Record{"id": "1", "email": "a@b.c", "password": "hash"}
	clean := rec.WithoutPassword()

	_, has := clean["password"]
	assert.False(t, has)
	// original keeps its password
	assert.Equal(t, "hash", rec.String("password"))
}

func TestRole_Dashboard(t *testing.T) {
	t.Parallel()

	assert.True(t, RoleAdmin.Valid())
	assert.Equal(t, "admin-dashboard", RoleAdmin.Dashboard())
	assert.Equal(t, "district-manager-dashboard", RoleDistrictManager.Dashboard())
	assert.False(t, Role("warehouse").Valid())
}

func TestComputeStats(t *testing.T) {
	t.Parallel()

	medicines := []Record{
		{"stock": "500"},
		{"stock": "300"},
		{"stock": "400"},
		{"stock": "250"},
		{"stock": "50"},
	}
	orders := []Record{
		{"total": float64(100), "status": "pending"},
		{"total": "bad", "status": "completed"},
		{"total": "50"},
	}
	users := []Record{{"id": "1"}, {"id": "2"}}

	stats := ComputeStats(users, medicines, orders)

	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 5, stats.TotalMedicines)
	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, 1, stats.PendingOrders)
	assert.Equal(t, 1, stats.CompletedOrders)
	assert.Equal(t, 150.0, stats.TotalRevenue)
	assert.Equal(t, 1, stats.LowStockMedicines)
}

func TestComputeStats_UnparseableStockIsNotLow(t *testing.T) {
	t.Parallel()

	stats := ComputeStats(nil, []Record{{"stock": "unknown"}, {}}, nil)
	assert.Equal(t, 0, stats.LowStockMedicines)
	assert.Equal(t, 2, stats.TotalMedicines)
}
