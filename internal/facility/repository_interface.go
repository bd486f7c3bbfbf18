package facility

import "context"

// RepositoryInterface defines the contract for facility data access
type RepositoryInterface interface {
	CreateHospital(ctx context.Context, req CreateHospitalRequest) (*Hospital, error)
	GetHospital(ctx context.Context, id int64) (*Hospital, error)
	ListHospitalsWithPagination(ctx context.Context, limit, offset int, search string) ([]Hospital, int, error)
	CreateNodal(ctx context.Context, req CreateNodalRequest) (*Nodal, error)
	GetNodal(ctx context.Context, id int64) (*Nodal, error)
	ListNodalsByHospital(ctx context.Context, hospitalIDs []int64) ([]Nodal, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
