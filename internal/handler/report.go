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

// ReportHandler serves the reports collection: list and create only
type ReportHandler struct {
	Store store.Store
}

// ListReports handles retrieving all reports
func (h *ReportHandler) ListReports(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackStoreOperation(model.CollectionReports, "list")(time.Now())
	reports, err := h.Store.List(model.CollectionReports)
	if err != nil {
		log.Error("Failed to list reports", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to retrieve reports",
		})
	}

	prometheus.RecordEntityOperation("report", "list")
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"reports": reports,
	})
}

// CreateReport creates a free-form report
func (h *ReportHandler) CreateReport(c echo.Context) error {
	log := logger.FromContext(c)

	var fields model.Record
	if err := c.Bind(&fields); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Invalid request data",
		})
	}

	defer prometheus.TrackStoreOperation(model.CollectionReports, "create")(time.Now())
	report, err := h.Store.Create(model.CollectionReports, fields)
	if err != nil {
		log.Error("Failed to create report", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to create report",
		})
	}

	prometheus.RecordEntityOperation("report", "create")
	log.Info("Report created", zap.String("report_id", report.ID()))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Report created successfully",
		"report":  report,
	})
}
