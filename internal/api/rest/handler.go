// Package rest exposes the charges service over HTTP.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/companieshouse/charges-data-api-sub000/internal/charges"
	"github.com/companieshouse/charges-data-api-sub000/pkg/model"
)

type contextKey string

const contextKeyRequestID contextKey = "request_id"

// Default body size limit and request timeout.
const (
	DefaultMaxBodySize    = 1 << 20 // 1MB
	DefaultRequestTimeout = 30 * time.Second
)

// APIError represents a structured error response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeServiceUnavailable  = "SERVICE_UNAVAILABLE"
	ErrCodeNotificationFailure = "NOTIFICATION_FAILURE"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

type Handler struct {
	service           charges.Service
	internalPrivilege string
	metrics           *requestMetrics
}

// NewHandler creates the HTTP handler over the charges service.
// internalPrivilege is the privilege string required on internal endpoints.
func NewHandler(service charges.Service, internalPrivilege string) *Handler {
	return &Handler{
		service:           service,
		internalPrivilege: internalPrivilege,
		metrics:           newRequestMetrics(),
	}
}

// RegisterRoutes wires all routes onto the mux. Every route carries request
// id, panic recovery, timeout and instrumentation; write routes add a body
// size limit and the internal-app privilege check.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	wrap := func(name string, handler http.HandlerFunc) http.HandlerFunc {
		return withRequestID(withRecover(withTimeout(h.metrics.instrument(name, handler), DefaultRequestTimeout)))
	}

	mux.HandleFunc("GET /company/{company_number}/charges",
		wrap("list_charges", h.authenticated(h.handleListCharges)))
	mux.HandleFunc("GET /company/{company_number}/charges/{charge_id}",
		wrap("get_charge", h.authenticated(h.handleGetCharge)))

	mux.HandleFunc("PUT /internal/company/{company_number}/charge/{charge_id}",
		wrap("upsert_charge", maxBodySize(h.internalOnly(h.handleUpsertCharge), DefaultMaxBodySize)))
	mux.HandleFunc("DELETE /internal/company/{company_number}/charge/{charge_id}",
		wrap("delete_charge", h.internalOnly(h.handleDeleteCharge)))

	mux.HandleFunc("GET /healthcheck", withRequestID(withRecover(withTimeout(h.handleHealthcheck, 5*time.Second))))
	mux.Handle("GET /metrics", h.metrics.handler())
}

func (h *Handler) handleHealthcheck(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Healthy(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Storage unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(APIError{Code: code, Message: message}); err != nil {
		slog.Warn("Failed to encode error response", "error", err)
	}
}

// writeServiceError maps core error kinds onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, ErrCodeNotFound, "Charge not found")
	case errors.Is(err, model.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, model.ErrStorageUnavailable):
		writeError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Storage unavailable")
	case errors.Is(err, model.ErrNotificationFailed):
		writeError(w, http.StatusBadGateway, ErrCodeNotificationFailure, "Change notification failed")
	default:
		slog.Error("Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
			"request_id", getRequestID(r.Context()),
		)
		writeError(w, http.StatusInternalServerError, ErrCodeInternalError, "Internal server error")
	}
}

// writeJSON writes a JSON response with proper error handling.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("Failed to encode JSON response", "error", err)
	}
}

// withRequestID adds a unique request ID to the context and response headers.
func withRequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)
		ctx := context.WithValue(r.Context(), contextKeyRequestID, requestID)
		next(w, r.WithContext(ctx))
	}
}

func getRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(contextKeyRequestID).(string); ok {
		return id
	}
	return ""
}

// withRecover wraps a handler with panic recovery.
func withRecover(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("Panic recovered",
					"method", r.Method,
					"path", r.URL.Path,
					"error", err,
					"stack", string(debug.Stack()),
					"request_id", getRequestID(r.Context()),
				)
				writeError(w, http.StatusInternalServerError, ErrCodeInternalError, "Internal server error")
			}
		}()
		next(w, r)
	}
}

// withTimeout wraps a handler with a context timeout.
func withTimeout(next http.HandlerFunc, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		next(w, r.WithContext(ctx))
	}
}

// maxBodySize wraps a handler with request body size limiting.
func maxBodySize(next http.HandlerFunc, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}
		next(w, r)
	}
}
