package testorder

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/asr-diagnostics/lims-service/internal/auth"
	"github.com/gorilla/mux"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type WorklistResponse struct {
	Success bool          `json:"success"`
	Entries []CenterEntry `json:"entries"`
	Total   int           `json:"total"`
}

type TransitionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Moved   int64  `json:"moved"`
}

func (h *Handler) ListCenterEntries(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}
	if principal.HospitalID == 0 {
		respondError(w, http.StatusBadRequest, "missing_facility_info", "Facility information not found in token")
		return
	}

	entries, err := h.service.ListCenterEntries(r.Context(), principal.HospitalID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(WorklistResponse{
		Success: true,
		Entries: entries,
		Total:   len(entries),
	})
}

func (h *Handler) SendToNode(w http.ResponseWriter, r *http.Request) {
	var req SendToNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	moved, err := h.service.SendToNode(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrNoPatientsSelected) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "routing_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TransitionResponse{
		Success: true,
		Message: "Tests routed to nodal centre",
		Moved:   moved,
	})
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrNoTestsSelected) || errors.Is(err, ErrInvalidStatus) || errors.Is(err, ErrReasonRequired) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "update_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TransitionResponse{
		Success: true,
		Message: "Test status updated",
		Moved:   updated,
	})
}

func (h *Handler) EnterResult(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	testID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "Test ID is required")
		return
	}

	var req EnterResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	if err := h.service.EnterResult(r.Context(), testID, req); err != nil {
		if errors.Is(err, ErrResultRequired) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		if errors.Is(err, ErrTestNotFound) {
			respondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "entry_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Test result recorded",
	})
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}
