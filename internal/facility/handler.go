package facility

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

type HospitalSuccessResponse struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	Hospital *Hospital `json:"hospital,omitempty"`
}

type NodalSuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Nodal   *Nodal `json:"nodal,omitempty"`
}

type NodalListResponse struct {
	Success bool    `json:"success"`
	Nodals  []Nodal `json:"nodals"`
	Total   int     `json:"total"`
}

func (h *Handler) CreateHospital(w http.ResponseWriter, r *http.Request) {
	var req CreateHospitalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	hospital, err := h.service.CreateHospital(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "creation_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(HospitalSuccessResponse{
		Success:  true,
		Message:  "Hospital created successfully",
		Hospital: hospital,
	})
}

func (h *Handler) GetHospital(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "Hospital ID is required")
		return
	}

	hospital, err := h.service.GetHospital(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrHospitalNotFound) {
			respondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HospitalSuccessResponse{
		Success:  true,
		Message:  "Hospital retrieved successfully",
		Hospital: hospital,
	})
}

func (h *Handler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	params := pagination.ParseParams(r)
	search := r.URL.Query().Get("search")

	response, err := h.service.ListHospitalsWithPagination(r.Context(), params, search)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) CreateNodal(w http.ResponseWriter, r *http.Request) {
	var req CreateNodalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	nodal, err := h.service.CreateNodal(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrHospitalNotFound) {
			respondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		respondError(w, http.StatusBadRequest, "creation_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(NodalSuccessResponse{
		Success: true,
		Message: "Nodal centre created successfully",
		Nodal:   nodal,
	})
}

func (h *Handler) ListNodals(w http.ResponseWriter, r *http.Request) {
	hospitalID, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "Hospital ID is required")
		return
	}

	nodals, err := h.service.ListNodalsByHospital(r.Context(), hospitalID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(NodalListResponse{
		Success: true,
		Nodals:  nodals,
		Total:   len(nodals),
	})
}

func pathID(r *http.Request) (int64, error) {
	vars := mux.Vars(r)
	return strconv.ParseInt(vars["id"], 10, 64)
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}
