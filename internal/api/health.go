package api

import (
	"net/http"
	"time"

	"github.com/Joshua-Anderson1/scoutradioz/internal/models/dtos"

	"github.com/jmoiron/sqlx"
)

// HealthCheckHandler reports liveness and database reachability.
func HealthCheckHandler(db *sqlx.DB, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := dtos.HealthResponse{
			Status:   "ok",
			Uptime:   time.Since(upSince).Truncate(time.Second).String(),
			Database: "ok",
		}

		if err := db.PingContext(r.Context()); err != nil {
			resp.Status = "degraded"
			resp.Database = "unreachable"
			respondWithSuccess(w, http.StatusServiceUnavailable, &resp)
			return
		}

		respondWithSuccess(w, http.StatusOK, &resp)
	}
}
