package patient

import "context"

// RepositoryInterface defines the contract for patient data access
type RepositoryInterface interface {
	ListTodayByHospital(ctx context.Context, hospitalID int64, limit, offset int) ([]PatientDetail, int, error)
	ListTodayPPP(ctx context.Context, hospitalID int64, limit, offset int) ([]PatientDetail, int, error)
	GetPatient(ctx context.Context, id int64) (*PatientDetail, error)
	UpdatePatient(ctx context.Context, id int64, req UpdatePatientRequest) (*PatientDetail, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
