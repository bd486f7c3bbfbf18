package patient

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

// ListTodayPatients retrieves today's registrations for one hospital
func (s *Service) ListTodayPatients(ctx context.Context, hospitalID int64, params pagination.Params) (*PaginatedPatientsResponse, error) {
	params.Validate()

	patients, totalCount, err := s.repo.ListTodayByHospital(ctx, hospitalID, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, fmt.Errorf("failed to list today's patients: %w", err)
	}

	meta := params.CalculateMeta(totalCount)

	return &PaginatedPatientsResponse{
		Success:    true,
		Patients:   patients,
		Pagination: meta,
	}, nil
}

// ListTodayPPPPatients retrieves today's scheme registrations for one hospital
func (s *Service) ListTodayPPPPatients(ctx context.Context, hospitalID int64, params pagination.Params) (*PaginatedPatientsResponse, error) {
	params.Validate()

	patients, totalCount, err := s.repo.ListTodayPPP(ctx, hospitalID, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, fmt.Errorf("failed to list today's scheme patients: %w", err)
	}

	meta := params.CalculateMeta(totalCount)

	return &PaginatedPatientsResponse{
		Success:    true,
		Patients:   patients,
		Pagination: meta,
	}, nil
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*PatientDetail, error) {
	return s.repo.GetPatient(ctx, id)
}

func (s *Service) UpdatePatient(ctx context.Context, id int64, req UpdatePatientRequest) (*PatientDetail, error) {
	if req.PName != nil && *req.PName == "" {
		return nil, fmt.Errorf("patient name cannot be empty")
	}

	patient, err := s.repo.UpdatePatient(ctx, id, req)
	if err != nil {
		return nil, err
	}

	return patient, nil
}
