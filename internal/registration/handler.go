package registration

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/asr-diagnostics/lims-service/internal/auth"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

type RegisterSuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UHID    string `json:"uhid"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	if principal.HospitalID == 0 || principal.NodalID == 0 {
		respondError(w, http.StatusBadRequest, "missing_facility_info", "Facility information not found in token")
		return
	}

	var req RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	if req.PName == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Patient name is required")
		return
	}

	user := UserContext{
		HospitalID: principal.HospitalID,
		NodalID:    principal.NodalID,
	}

	uhid, err := h.service.Register(r.Context(), user, &req)
	if err != nil {
		var dup *DuplicateError
		if errors.As(err, &dup) {
			respondDuplicate(w, dup)
			return
		}
		if IsCallerError(err) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		// Storage failures stay generic; the root cause goes to the logs only.
		respondError(w, http.StatusInternalServerError, "registration_failed", "Failed to register patient")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(RegisterSuccessResponse{
		Success: true,
		Message: "Patient registered successfully",
		UHID:    uhid,
	})
}

// respondDuplicate lists every conflicting field so the client can highlight
// all of them in one round-trip.
func respondDuplicate(w http.ResponseWriter, dup *DuplicateError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":     "duplicate_record",
		"message":   dup.Error(),
		"conflicts": dup.Conflicts,
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
