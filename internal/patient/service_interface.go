package patient

import (
	"context"

	"github.com/asr-diagnostics/lims-service/internal/pagination"
)

// ServiceInterface defines the contract for patient query and update operations
type ServiceInterface interface {
	ListTodayPatients(ctx context.Context, hospitalID int64, params pagination.Params) (*PaginatedPatientsResponse, error)
	ListTodayPPPPatients(ctx context.Context, hospitalID int64, params pagination.Params) (*PaginatedPatientsResponse, error)
	GetPatient(ctx context.Context, id int64) (*PatientDetail, error)
	UpdatePatient(ctx context.Context, id int64, req UpdatePatientRequest) (*PatientDetail, error)
}

var _ ServiceInterface = (*Service)(nil)
