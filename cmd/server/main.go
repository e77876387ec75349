package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"pharma-service/internal/handler"
	"pharma-service/internal/store"
	"pharma-service/internal/store/filestore"
	"pharma-service/internal/store/gormstore"
	"pharma-service/pkg/config"
	"pharma-service/pkg/jwtutil"
	"pharma-service/pkg/logger"
	"pharma-service/prometheus"
)

func main() {
	// Load .env file; absent is fine, env vars may be set directly
	_ = godotenv.Load()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.Init(appConfig)
	log := logger.Get()
	defer log.Sync()

	log.Info("Starting pharma-service", appConfig.LogConfig()...)

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Open the configured store backend
	opts := store.Options{ValidationMode: appConfig.Store.ValidationMode}
	var st store.Store
	switch appConfig.Store.Driver {
	case config.StoreDriverSQLite:
		st, err = gormstore.New(appConfig.Store.SQLitePath, opts)
	default:
		st, err = filestore.New(appConfig.Store.DataDir, opts, log)
	}
	if err != nil {
		log.Fatal("Failed to open store", zap.Error(err))
	}
	defer st.Close()
	log.Info("Store opened", zap.String("driver", appConfig.Store.Driver))

	// Seed bootstrap data on first run
	if err := store.Seed(st, log); err != nil {
		log.Fatal("Failed to seed collections", zap.Error(err))
	}

	// Initialize Echo instance and routes
	e := echo.New()
	e.HideBanner = true
	handler.RegisterRoutes(e, st)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
