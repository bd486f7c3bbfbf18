package facility

import (
	"context"

	"github.com/asr-diagnostics/lims-service/internal/pagination"
)

// ServiceInterface defines the contract for facility operations
type ServiceInterface interface {
	CreateHospital(ctx context.Context, req CreateHospitalRequest) (*Hospital, error)
	GetHospital(ctx context.Context, id int64) (*Hospital, error)
	ListHospitalsWithPagination(ctx context.Context, params pagination.Params, search string) (*PaginatedHospitalsResponse, error)
	CreateNodal(ctx context.Context, req CreateNodalRequest) (*Nodal, error)
	GetNodal(ctx context.Context, id int64) (*Nodal, error)
	ListNodalsByHospital(ctx context.Context, hospitalID int64) ([]Nodal, error)
}

var _ ServiceInterface = (*Service)(nil)
