package catalog

import "context"

// RepositoryInterface defines the contract for catalog data access
type RepositoryInterface interface {
	CreateInvestigation(ctx context.Context, req CreateInvestigationRequest) (*Investigation, error)
	GetInvestigation(ctx context.Context, id int64) (*Investigation, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Investigation, error)
	ListInvestigationsWithPagination(ctx context.Context, limit, offset int, search string) ([]Investigation, int, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
