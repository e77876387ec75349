package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"pharma-service/internal/model"
	"pharma-service/internal/store"
	"pharma-service/pkg/logger"
	"pharma-service/prometheus"
)

// OrderHandler serves the orders collection. Orders carry free-form caller
// fields; there is no delete route.
type OrderHandler struct {
	Store store.Store
}

// ListOrders handles retrieving all orders
func (h *OrderHandler) ListOrders(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackStoreOperation(model.CollectionOrders, "list")(time.Now())
	orders, err := h.Store.List(model.CollectionOrders)
	if err != nil {
		log.Error("Failed to list orders", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to retrieve orders",
		})
	}

	prometheus.RecordEntityOperation("order", "list")
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"orders":  orders,
	})
}

// GetOrder handles retrieving a single order by ID
func (h *OrderHandler) GetOrder(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	defer prometheus.TrackStoreOperation(model.CollectionOrders, "get")(time.Now())
	order, err := h.Store.Get(model.CollectionOrders, id)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{
			"success": false,
			"message": "Order not found",
		})
	}
	if err != nil {
		log.Error("Failed to get order", zap.String("order_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to retrieve order",
		})
	}

	prometheus.RecordEntityOperation("order", "get")
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"order":   order,
	})
}

// CreateOrder creates an order. Whatever status the caller sent, a new order
// always starts out pending.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	log := logger.FromContext(c)

	var fields model.Record
	if err := c.Bind(&fields); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Invalid request data",
		})
	}
	if fields == nil {
		fields = model.Record{}
	}
	fields["status"] = model.OrderStatusPending

	defer prometheus.TrackStoreOperation(model.CollectionOrders, "create")(time.Now())
	order, err := h.Store.Create(model.CollectionOrders, fields)
	if err != nil {
		log.Error("Failed to create order", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to create order",
		})
	}

	prometheus.RecordEntityOperation("order", "create")
	log.Info("Order created", zap.String("order_id", order.ID()))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Order created successfully",
		"order":   order,
	})
}

// UpdateOrder shallow-merges the request body over the stored order
func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var fields model.Record
	if err := c.Bind(&fields); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Invalid request data",
		})
	}

	defer prometheus.TrackStoreOperation(model.CollectionOrders, "update")(time.Now())
	order, err := h.Store.Update(model.CollectionOrders, id, fields)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{
			"success": false,
			"message": "Order not found",
		})
	}
	if err != nil {
		log.Error("Failed to update order", zap.String("order_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to update order",
		})
	}

	prometheus.RecordEntityOperation("order", "update")
	log.Info("Order updated",
		zap.String("order_id", id),
		zap.String("status", order.String("status")))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Order updated successfully",
		"order":   order,
	})
}
