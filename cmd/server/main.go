package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Joshua-Anderson1/scoutradioz/internal/api"
	"github.com/Joshua-Anderson1/scoutradioz/internal/db"
	"github.com/Joshua-Anderson1/scoutradioz/internal/logging"
	"github.com/Joshua-Anderson1/scoutradioz/internal/metrics"
	"github.com/Joshua-Anderson1/scoutradioz/internal/routes"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	_ = godotenv.Load()

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}

	if err := logging.Init(appEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Scoutradioz starting up",
		"environment", appEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	// Connect to the canonical store with sqlx
	sqlDB, err := db.NewPostgres()
	if err != nil {
		logging.Fatal("Failed to connect to Postgres (sqlx)", "error", err.Error())
	}
	defer sqlDB.Close()
	logging.Info("Connected to Postgres (sqlx)")

	// Connect to the canonical store with GORM
	ormDB, err := db.NewPostgresORM()
	if err != nil {
		logging.Fatal("Failed to connect to Postgres (GORM)", "error", err.Error())
	}
	logging.Info("Connected to Postgres (GORM)")

	metricsReg := metrics.NewMetricsRegistry()
	deps := api.InitDependencies(sqlDB, ormDB)

	upSince := time.Now()
	router := routes.RegisterRoutes(deps, sqlDB, metricsReg, upSince)

	// Metrics endpoint lives outside the chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logging.Info("Server starting",
		"port", port,
		"environment", appEnv,
	)
	log.Fatal(http.ListenAndServe(":"+port, mux))
}
