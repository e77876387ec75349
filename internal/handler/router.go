package handler

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mid "pharma-service/internal/middleware"
	"pharma-service/internal/store"
)

// RegisterRoutes wires every endpoint onto the echo instance. The entity,
// report and stats routes sit behind session-token validation; auth, health,
// metrics and the root index stay open.
func RegisterRoutes(e *echo.Echo, st store.Store) {
	e.Use(echomiddleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	authHandler := &AuthHandler{Store: st}
	userHandler := &UserHandler{Store: st}
	medicineHandler := &MedicineHandler{Store: st}
	orderHandler := &OrderHandler{Store: st}
	reportHandler := &ReportHandler{Store: st}
	statsHandler := &StatsHandler{Store: st}

	e.GET("/", Index)
	e.GET("/api/health", HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	authAPI := e.Group("/api/auth")
	authAPI.POST("/login", authHandler.Login)
	authAPI.POST("/register", authHandler.Register)

	userAPI := e.Group("/api/users", mid.AuthMiddleware)
	userAPI.GET("", userHandler.ListUsers)
	userAPI.GET("/:id", userHandler.GetUser)
	userAPI.PUT("/:id", userHandler.UpdateUser)
	userAPI.DELETE("/:id", userHandler.DeleteUser)

	medicineAPI := e.Group("/api/medicines", mid.AuthMiddleware)
	medicineAPI.GET("", medicineHandler.ListMedicines)
	medicineAPI.GET("/:id", medicineHandler.GetMedicine)
	medicineAPI.POST("", medicineHandler.CreateMedicine)
	medicineAPI.PUT("/:id", medicineHandler.UpdateMedicine)
	medicineAPI.DELETE("/:id", medicineHandler.DeleteMedicine)

	orderAPI := e.Group("/api/orders", mid.AuthMiddleware)
	orderAPI.GET("", orderHandler.ListOrders)
	orderAPI.GET("/:id", orderHandler.GetOrder)
	orderAPI.POST("", orderHandler.CreateOrder)
	orderAPI.PUT("/:id", orderHandler.UpdateOrder)

	reportAPI := e.Group("/api/reports", mid.AuthMiddleware)
	reportAPI.GET("", reportHandler.ListReports)
	reportAPI.POST("", reportHandler.CreateReport)

	statsAPI := e.Group("/api/stats", mid.AuthMiddleware)
	statsAPI.GET("/dashboard", statsHandler.Dashboard)
}
