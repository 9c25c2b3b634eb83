package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Joshua-Anderson1/scoutradioz/internal/logging"
	"github.com/Joshua-Anderson1/scoutradioz/internal/metrics"
)

// statusRecorder wraps http.ResponseWriter to capture the status code
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.written {
		r.statusCode = code
		r.written = true
		r.ResponseWriter.WriteHeader(code)
	}
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.written {
		r.statusCode = http.StatusOK
		r.written = true
	}
	return r.ResponseWriter.Write(b)
}

// RenderTimer records elapsed time from request start to render or
// redirect completion. It is an explicit instrumentation stage: the
// response writer is wrapped, never reassigned under the handler, so
// return values and side effects pass through untouched.
func RenderTimer(metricsReg *metrics.MetricsRegistry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			elapsed := time.Since(start)
			endpoint := "unknown"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				endpoint = rctx.RoutePattern()
			}

			redirect := wrapped.statusCode >= 300 && wrapped.statusCode < 400
			if redirect {
				metricsReg.RedirectDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
			} else {
				metricsReg.RenderDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
			}

			logging.Debug("Response complete",
				"endpoint", endpoint,
				"status_code", wrapped.statusCode,
				"redirect", redirect,
				"duration_ms", elapsed.Milliseconds(),
			)
		})
	}
}
