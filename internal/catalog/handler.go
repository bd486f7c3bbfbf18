package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/asr-diagnostics/lims-service/internal/pagination"
	"github.com/gorilla/mux"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type InvestigationSuccessResponse struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message"`
	Investigation *Investigation `json:"investigation,omitempty"`
}

func (h *Handler) CreateInvestigation(w http.ResponseWriter, r *http.Request) {
	var req CreateInvestigationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	inv, err := h.service.CreateInvestigation(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "creation_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(InvestigationSuccessResponse{
		Success:       true,
		Message:       "Investigation created successfully",
		Investigation: inv,
	})
}

func (h *Handler) GetInvestigation(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "Investigation ID is required")
		return
	}

	inv, err := h.service.GetInvestigation(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrInvestigationNotFound) {
			respondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(InvestigationSuccessResponse{
		Success:       true,
		Message:       "Investigation retrieved successfully",
		Investigation: inv,
	})
}

func (h *Handler) ListInvestigations(w http.ResponseWriter, r *http.Request) {
	params := pagination.ParseParams(r)
	search := r.URL.Query().Get("search")

	response, err := h.service.ListInvestigationsWithPagination(r.Context(), params, search)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}
