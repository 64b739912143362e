package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"polygon-calculator/domain"
	"polygon-calculator/service"
)

const maxRequestBodyBytes = 1 << 20

// PolygonCalculator is what the handler needs from the service layer.
type PolygonCalculator interface {
	Calculate(ctx context.Context, spec domain.PolygonSpec) (domain.PolygonResult, error)
	Recent(ctx context.Context, limit int) ([]domain.CalculationRecord, error)
}

type PolygonHandler struct {
	service PolygonCalculator
	metrics *Metrics
}

func NewPolygonHandler(service PolygonCalculator, metrics *Metrics) *PolygonHandler {
	return &PolygonHandler{service: service, metrics: metrics}
}

// Calculate serves POST /api/calculate.
func (h *PolygonHandler) Calculate(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	if !isJSON(r.Header.Get("Content-Type")) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var spec domain.PolygonSpec
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		slog.Debug("error decoding request body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Calculate(r.Context(), spec)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			h.metrics.observeCalculation(string(verr.Reason))
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:  verr.Message,
				Reason: string(verr.Reason),
			})
			return
		}

		h.metrics.observeCalculation("error")
		slog.Error("calculation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "an error occurred while performing the calculation")
		return
	}

	h.metrics.observeCalculation("ok")
	writeJSON(w, http.StatusOK, result)
}

// Recent serves GET /api/calculations?limit=N.
func (h *PolygonHandler) Recent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := h.service.Recent(r.Context(), limit)
	if err != nil {
		slog.Error("loading recent calculations failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// isJSON accepts a missing Content-Type.
func isJSON(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}
