package catalog

import (
	"context"

	"github.com/asr-diagnostics/lims-service/internal/pagination"
)

// ServiceInterface defines the contract for catalog operations
type ServiceInterface interface {
	CreateInvestigation(ctx context.Context, req CreateInvestigationRequest) (*Investigation, error)
	GetInvestigation(ctx context.Context, id int64) (*Investigation, error)
	ListInvestigationsWithPagination(ctx context.Context, params pagination.Params, search string) (*PaginatedInvestigationsResponse, error)
}

var _ ServiceInterface = (*Service)(nil)
