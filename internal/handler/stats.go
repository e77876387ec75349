package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"pharma-service/internal/model"
	"pharma-service/internal/store"
	"pharma-service/pkg/logger"
	"pharma-service/prometheus"
)

// StatsHandler derives dashboard counters from the collections. Nothing is
// cached; every request rescans.
type StatsHandler struct {
	Store store.Store
}

// Dashboard computes the dashboard counters
func (h *StatsHandler) Dashboard(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackStoreOperation("all", "scan")(time.Now())
	users, err := h.Store.List(model.CollectionUsers)
	if err != nil {
		log.Error("Failed to load users for stats", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to compute stats",
		})
	}
	medicines, err := h.Store.List(model.CollectionMedicines)
	if err != nil {
		log.Error("Failed to load medicines for stats", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to compute stats",
		})
	}
	orders, err := h.Store.List(model.CollectionOrders)
	if err != nil {
		log.Error("Failed to load orders for stats", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to compute stats",
		})
	}

	stats := model.ComputeStats(users, medicines, orders)
	prometheus.RecordEntityOperation("stats", "dashboard")

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"stats":   stats,
	})
}
