package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"nbp-rate-service/internal/domain/ports"
	"nbp-rate-service/internal/metrics"
	"nbp-rate-service/internal/service"
	"nbp-rate-service/pkg/logger"

	"github.com/go-chi/chi/v5"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type Handler struct {
	service ports.RateService
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewHandler(service ports.RateService, log *logger.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		log:     log,
		metrics: metrics,
	}
}

func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if value, err := url.PathUnescape(raw); err == nil {
		return value
	}
	return raw
}

// ListCodesHandler serves GET /api/NBPapi.
func (h *Handler) ListCodesHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.CodesRequestsTotal.Inc()

	codes, err := h.service.ListCodes(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.sendJSON(w, http.StatusOK, codes)
}

// GetRateHandler serves GET /api/NBPapi/{code}.
func (h *Handler) GetRateHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.RateRequestsTotal.Inc()

	mid, err := h.service.GetRate(r.Context(), pathParam(r, "code"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.sendJSON(w, http.StatusOK, mid)
}

// ConvertHandler serves GET /api/NBPapi/{code}/{value}.
func (h *Handler) ConvertHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.ConversionRequestsTotal.Inc()

	value, err := strconv.ParseFloat(pathParam(r, "value"), 64)
	if err != nil {
		h.sendErrorResponse(w, http.StatusBadRequest, "invalid value")
		return
	}

	amount, err := h.service.Convert(r.Context(), pathParam(r, "code"), value)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.sendJSON(w, http.StatusOK, amount)
}

func (h *Handler) sendJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	h.sendJSON(w, statusCode, ErrorResponse{
		Success: false,
		Error:   message,
	})
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := http.StatusInternalServerError
	errorMessage := "internal server error"

	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		statusCode = http.StatusBadRequest
		errorMessage = "invalid argument"
	case errors.Is(err, service.ErrNotFound):
		statusCode = http.StatusNotFound
		errorMessage = "currency not found"
	case errors.Is(err, service.ErrUpstreamUnavailable):
		statusCode = http.StatusServiceUnavailable
		errorMessage = "exchange rate source unavailable"
	}

	h.log.Error("Service error",
		"error", err,
		"status_code", statusCode,
		"request_id", RequestIDFrom(r.Context()),
	)
	h.sendErrorResponse(w, statusCode, errorMessage)
}
