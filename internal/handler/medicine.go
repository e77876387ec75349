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

// MedicineHandler serves the medicines collection
type MedicineHandler struct {
	Store store.Store
}

// ListMedicines handles retrieving all medicines
func (h *MedicineHandler) ListMedicines(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackStoreOperation(model.CollectionMedicines, "list")(time.Now())
	medicines, err := h.Store.List(model.CollectionMedicines)
	if err != nil {
		log.Error("Failed to list medicines", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to retrieve medicines",
		})
	}

	prometheus.RecordEntityOperation("medicine", "list")
	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"medicines": medicines,
	})
}

// GetMedicine handles retrieving a single medicine by ID
func (h *MedicineHandler) GetMedicine(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	defer prometheus.TrackStoreOperation(model.CollectionMedicines, "get")(time.Now())
	medicine, err := h.Store.Get(model.CollectionMedicines, id)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{
			"success": false,
			"message": "Medicine not found",
		})
	}
	if err != nil {
		log.Error("Failed to get medicine", zap.String("medicine_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to retrieve medicine",
		})
	}

	prometheus.RecordEntityOperation("medicine", "get")
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"medicine": medicine,
	})
}

// CreateMedicine handles adding a new medicine
func (h *MedicineHandler) CreateMedicine(c echo.Context) error {
	log := logger.FromContext(c)

	var fields model.Record
	if err := c.Bind(&fields); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Invalid request data",
		})
	}

	defer prometheus.TrackStoreOperation(model.CollectionMedicines, "create")(time.Now())
	medicine, err := h.Store.Create(model.CollectionMedicines, fields)
	if err != nil {
		log.Error("Failed to create medicine", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to add medicine",
		})
	}

	prometheus.RecordEntityOperation("medicine", "create")
	log.Info("Medicine added",
		zap.String("medicine_id", medicine.ID()),
		zap.String("medicine_name", medicine.String("name")))
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"message":  "Medicine added successfully",
		"medicine": medicine,
	})
}

// UpdateMedicine shallow-merges the request body over the stored medicine
func (h *MedicineHandler) UpdateMedicine(c echo.Context) error {
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

	defer prometheus.TrackStoreOperation(model.CollectionMedicines, "update")(time.Now())
	medicine, err := h.Store.Update(model.CollectionMedicines, id, fields)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{
			"success": false,
			"message": "Medicine not found",
		})
	}
	if err != nil {
		log.Error("Failed to update medicine", zap.String("medicine_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to update medicine",
		})
	}

	prometheus.RecordEntityOperation("medicine", "update")
	log.Info("Medicine updated", zap.String("medicine_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"message":  "Medicine updated successfully",
		"medicine": medicine,
	})
}

// DeleteMedicine removes a medicine by ID
func (h *MedicineHandler) DeleteMedicine(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	defer prometheus.TrackStoreOperation(model.CollectionMedicines, "delete")(time.Now())
	err := h.Store.Delete(model.CollectionMedicines, id)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{
			"success": false,
			"message": "Medicine not found",
		})
	}
	if err != nil {
		log.Error("Failed to delete medicine", zap.String("medicine_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to delete medicine",
		})
	}

	prometheus.RecordEntityOperation("medicine", "delete")
	log.Info("Medicine deleted", zap.String("medicine_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Medicine deleted successfully",
	})
}
