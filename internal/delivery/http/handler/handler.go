package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/user/parcel-service/internal/delivery/http/request"
	"github.com/user/parcel-service/internal/delivery/http/response"
	"github.com/user/parcel-service/internal/repository"
	"github.com/user/parcel-service/internal/usecase"
)

type Handler struct {
	parcels usecase.ParcelLookup
	zoning  usecase.ZoningLookup
	combos  usecase.ComboLookup
}

func NewHandler(parcels usecase.ParcelLookup, zoning usecase.ZoningLookup, combos usecase.ComboLookup) *Handler {
	return &Handler{
		parcels: parcels,
		zoning:  zoning,
		combos:  combos,
	}
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) HandleGetParcel(w http.ResponseWriter, r *http.Request) {
	ain := r.PathValue("ain")
	if ain == "" {
		h.writeJSONError(w, "AIN path parameter is required", http.StatusBadRequest)
		return
	}

	summary, err := h.parcels.GetParcel(r.Context(), ain)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) HandleGetZoning(w http.ResponseWriter, r *http.Request) {
	ain := r.PathValue("ain")
	if ain == "" {
		h.writeJSONError(w, "AIN path parameter is required", http.StatusBadRequest)
		return
	}

	summary, err := h.zoning.GetZoning(r.Context(), ain)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) HandleGetCombined(w http.ResponseWriter, r *http.Request) {
	ain := r.PathValue("ain")
	if ain == "" {
		h.writeJSONError(w, "AIN path parameter is required", http.StatusBadRequest)
		return
	}

	combined, err := h.combos.GetCombined(r.Context(), ain)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, combined)
}

func (h *Handler) HandleBatchCombined(w http.ResponseWriter, r *http.Request) {
	var req request.BatchComboRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.AINs) == 0 {
		h.writeJSONError(w, "ains list is required", http.StatusBadRequest)
		return
	}

	results := h.combos.GetCombinedBatch(r.Context(), req.AINs)
	h.writeJSON(w, http.StatusOK, response.BatchComboResponse{Results: results})
}

// writeDomainError maps the error taxonomy onto the API status contract:
// upstream failure -> 502, no usable record -> 404, missing precondition
// -> 400, anything else -> 500.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var upstream *repository.UpstreamError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		h.writeJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, repository.ErrMissingCoordinates):
		h.writeJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &upstream):
		h.writeJSONError(w, err.Error(), http.StatusBadGateway)
	default:
		slog.Error("Request failed", "path", r.URL.Path, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
