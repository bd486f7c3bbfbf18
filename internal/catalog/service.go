package catalog

import (
	"context"
	"fmt"

	"github.com/asr-diagnostics/lims-service/internal/pagination"
)

type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateInvestigation(ctx context.Context, req CreateInvestigationRequest) (*Investigation, error) {
	if req.TestName == "" {
		return nil, fmt.Errorf("test name is required")
	}
	if req.TestCode == "" {
		return nil, fmt.Errorf("test code is required")
	}
	if req.TestCollection != "Yes" && req.TestCollection != "No" {
		return nil, fmt.Errorf("test collection must be 'Yes' or 'No'")
	}

	inv, err := s.repo.CreateInvestigation(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create investigation: %w", err)
	}

	return inv, nil
}

func (s *Service) GetInvestigation(ctx context.Context, id int64) (*Investigation, error) {
	return s.repo.GetInvestigation(ctx, id)
}

// ListInvestigationsWithPagination retrieves catalog entries with pagination
func (s *Service) ListInvestigationsWithPagination(ctx context.Context, params pagination.Params, search string) (*PaginatedInvestigationsResponse, error) {
	params.Validate()

	investigations, totalCount, err := s.repo.ListInvestigationsWithPagination(ctx, params.Limit, params.CalculateOffset(), search)
	if err != nil {
		return nil, fmt.Errorf("failed to list investigations: %w", err)
	}

	meta := params.CalculateMeta(totalCount)

	return &PaginatedInvestigationsResponse{
		Success:        true,
		Investigations: investigations,
		Pagination:     meta,
	}, nil
}
