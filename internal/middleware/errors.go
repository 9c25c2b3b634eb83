package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/Joshua-Anderson1/scoutradioz/internal/logging"
)

// HTTPError carries a status code alongside an error so the error
// handler can respond with something better than a blanket 500.
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error { return e.Err }

// NewNotFoundError synthesizes the error used for unmatched routes.
func NewNotFoundError(path string) *HTTPError {
	return &HTTPError{Status: http.StatusNotFound, Message: "Not Found: " + path}
}

// ErrorHandler renders errors as a generic error view. Full error
// detail is included only in development mode; a single bad request
// never crashes the process.
type ErrorHandler struct {
	DevMode bool
}

// NewErrorHandler creates an error handler for the given environment.
func NewErrorHandler(appEnv string) *ErrorHandler {
	return &ErrorHandler{DevMode: appEnv != "production"}
}

type errorView struct {
	Status    int       `json:"status"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
	Detail    string    `json:"detail,omitempty"`
}

// Handle writes the error view for err. The status comes from the
// error when it carries one, 500 otherwise.
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if httpErr, ok := err.(*HTTPError); ok && httpErr.Status != 0 {
		status = httpErr.Status
	}

	view := errorView{
		Status:    status,
		Title:     http.StatusText(status),
		Timestamp: time.Now().UTC(),
	}
	if h.DevMode {
		view.Detail = err.Error()
	}

	logging.Warn("Request error",
		"request_id", GetRequestID(r.Context()),
		"url", r.URL.RequestURI(),
		"status", status,
		"error", err.Error(),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(view)
}

// NotFound is the handler for unmatched routes.
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Handle(w, r, NewNotFoundError(r.URL.Path))
}

// Recoverer converts a panicking handler into a rendered 500 instead
// of a dropped connection.
func (h *ErrorHandler) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.Error("Handler panic",
					"request_id", GetRequestID(r.Context()),
					"url", r.URL.RequestURI(),
					"panic", fmt.Sprint(rec),
					"stack", string(debug.Stack()),
				)
				h.Handle(w, r, &HTTPError{
					Status:  http.StatusInternalServerError,
					Message: "internal error",
					Err:     fmt.Errorf("%v", rec),
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
