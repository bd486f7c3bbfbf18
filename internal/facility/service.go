package facility

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

func (s *Service) CreateHospital(ctx context.Context, req CreateHospitalRequest) (*Hospital, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("hospital name is required")
	}
	if req.City == "" {
		return nil, fmt.Errorf("hospital city is required")
	}

	hospital, err := s.repo.CreateHospital(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create hospital: %w", err)
	}

	return hospital, nil
}

func (s *Service) GetHospital(ctx context.Context, id int64) (*Hospital, error) {
	return s.repo.GetHospital(ctx, id)
}

// ListHospitalsWithPagination retrieves hospitals with pagination
func (s *Service) ListHospitalsWithPagination(ctx context.Context, params pagination.Params, search string) (*PaginatedHospitalsResponse, error) {
	params.Validate()

	hospitals, totalCount, err := s.repo.ListHospitalsWithPagination(ctx, params.Limit, params.CalculateOffset(), search)
	if err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}

	meta := params.CalculateMeta(totalCount)

	return &PaginatedHospitalsResponse{
		Success:    true,
		Hospitals:  hospitals,
		Pagination: meta,
	}, nil
}

func (s *Service) CreateNodal(ctx context.Context, req CreateNodalRequest) (*Nodal, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("nodal centre name is required")
	}
	if req.HospitalID == 0 {
		return nil, fmt.Errorf("hospital ID is required")
	}

	nodal, err := s.repo.CreateNodal(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create nodal centre: %w", err)
	}

	return nodal, nil
}

func (s *Service) GetNodal(ctx context.Context, id int64) (*Nodal, error) {
	return s.repo.GetNodal(ctx, id)
}

func (s *Service) ListNodalsByHospital(ctx context.Context, hospitalID int64) ([]Nodal, error) {
	nodals, err := s.repo.ListNodalsByHospital(ctx, []int64{hospitalID})
	if err != nil {
		return nil, fmt.Errorf("failed to list nodal centres: %w", err)
	}
	return nodals, nil
}
