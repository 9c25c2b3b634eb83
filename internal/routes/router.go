package routes

import (
	"net/http"
	"os"
	"time"

	"github.com/Joshua-Anderson1/scoutradioz/internal/api"
	"github.com/Joshua-Anderson1/scoutradioz/internal/constants"
	"github.com/Joshua-Anderson1/scoutradioz/internal/logging"
	"github.com/Joshua-Anderson1/scoutradioz/internal/metrics"
	"github.com/Joshua-Anderson1/scoutradioz/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
)

// RegisterRoutes assembles the middleware chain and route tree. Stages
// run in fixed order: request id, rate limit, request logging, HTTP
// metrics, render timing, then per-route authentication and event-info
// enrichment.
func RegisterRoutes(deps *api.Dependencies, sqlDB *sqlx.DB, metricsReg *metrics.MetricsRegistry, upSince time.Time) http.Handler {
	r := chi.NewRouter()

	appEnv := os.Getenv("APP_ENV")
	errHandler := middleware.NewErrorHandler(appEnv)

	// global middleware
	r.Use(middleware.RequestID)
	r.Use(errHandler.Recoverer)
	r.Use(middleware.RateLimit)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.HTTPMetrics(metricsReg))
	r.Use(middleware.RenderTimer(metricsReg))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	// unmatched routes synthesize a 404 error through the error handler
	r.NotFound(errHandler.NotFound)

	logging.Info("Router initialized", "environment", appEnv)

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(sqlDB, upSince))

	userHandlers := api.NewUserHandlers(deps.Services.Session, deps.Repo.Org, deps.Repo.User)
	transferHandlers := api.NewQRTransferHandlers(deps.Services.Transfer)

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	// org/user selection entry point; reachable without a session
	r.Route("/user", func(r chi.Router) {
		r.Get("/orgs", userHandlers.ListOrgs)
		r.Get("/orgs/{orgKey}/users", userHandlers.ListUsers)
		r.Post("/login", userHandlers.Login)
		r.Get("/logout", userHandlers.Logout)
	})

	eventInfo := middleware.EventInfoMiddleware(deps.Repo.Org, deps.Repo.Event, deps.Services.Cache)

	// scouting routes require at least scouter access plus event context
	r.Route("/scouting", func(r chi.Router) {
		r.Use(middleware.Authenticate(deps.Services.Session, constants.AccessScouter))
		r.Use(eventInfo)
		r.Post("/pit/image/{teamKey}", api.PitImageUploadHandler(uploadDir, metricsReg))
	})

	// QR transfer requires a signed-in org identity
	r.Route("/transfer", func(r chi.Router) {
		r.Use(middleware.Authenticate(deps.Services.Session, constants.AccessViewer))
		r.Post("/encode", transferHandlers.Encode)
		r.Post("/decode", transferHandlers.Decode)
	})

	return r
}
