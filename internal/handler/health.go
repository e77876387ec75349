package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthCheck handles the health check endpoint
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"message":   "Backend server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Index describes the API at the root route
func Index(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Pharma Company Backend API",
		"version": "1.0.0",
		"endpoints": echo.Map{
			"auth":      "/api/auth/login, /api/auth/register",
			"users":     "/api/users",
			"medicines": "/api/medicines",
			"orders":    "/api/orders",
			"reports":   "/api/reports",
			"stats":     "/api/stats/dashboard",
			"health":    "/api/health",
		},
	})
}
