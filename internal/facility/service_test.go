package facility

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/asr-diagnostics/lims-service/internal/pagination"
)

type mockRepository struct {
	createHospitalFunc func(ctx context.Context, req CreateHospitalRequest) (*Hospital, error)
	getHospitalFunc    func(ctx context.Context, id int64) (*Hospital, error)
	listHospitalsFunc  func(ctx context.Context, limit, offset int, search string) ([]Hospital, int, error)
	createNodalFunc    func(ctx context.Context, req CreateNodalRequest) (*Nodal, error)
	getNodalFunc       func(ctx context.Context, id int64) (*Nodal, error)
	listNodalsFunc     func(ctx context.Context, hospitalIDs []int64) ([]Nodal, error)
}

func (m *mockRepository) CreateHospital(ctx context.Context, req CreateHospitalRequest) (*Hospital, error) {
	return m.createHospitalFunc(ctx, req)
}

func (m *mockRepository) GetHospital(ctx context.Context, id int64) (*Hospital, error) {
	return m.getHospitalFunc(ctx, id)
}

func (m *mockRepository) ListHospitalsWithPagination(ctx context.Context, limit, offset int, search string) ([]Hospital, int, error) {
	return m.listHospitalsFunc(ctx, limit, offset, search)
}

func (m *mockRepository) CreateNodal(ctx context.Context, req CreateNodalRequest) (*Nodal, error) {
	return m.createNodalFunc(ctx, req)
}

func (m *mockRepository) GetNodal(ctx context.Context, id int64) (*Nodal, error) {
	return m.getNodalFunc(ctx, id)
}

func (m *mockRepository) ListNodalsByHospital(ctx context.Context, hospitalIDs []int64) ([]Nodal, error) {
	return m.listNodalsFunc(ctx, hospitalIDs)
}

// TestCreateHospital_Success tests successful hospital creation
func TestCreateHospital_Success(t *testing.T) {
	mockRepo := &mockRepository{
		createHospitalFunc: func(ctx context.Context, req CreateHospitalRequest) (*Hospital, error) {
			return &Hospital{
				ID:        1,
				Name:      req.Name,
				City:      req.City,
				State:     req.State,
				Status:    "active",
				CreatedAt: time.Now(),
			}, nil
		},
	}

	service := NewService(mockRepo)
	hospital, err := service.CreateHospital(context.Background(), CreateHospitalRequest{
		Name:  "ASR Main Centre",
		City:  "Chennai",
		State: "Tamil Nadu",
	})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if hospital.Name != "ASR Main Centre" {
		t.Errorf("Expected name 'ASR Main Centre', got '%s'", hospital.Name)
	}
	if hospital.Status != "active" {
		t.Errorf("Expected status 'active', got '%s'", hospital.Status)
	}
}

// TestCreateHospital_MissingFields tests validation of required fields
func TestCreateHospital_MissingFields(t *testing.T) {
	service := NewService(&mockRepository{})

	if _, err := service.CreateHospital(context.Background(), CreateHospitalRequest{City: "Chennai"}); err == nil {
		t.Error("Expected error for empty name, got nil")
	}
	if _, err := service.CreateHospital(context.Background(), CreateHospitalRequest{Name: "ASR"}); err == nil {
		t.Error("Expected error for empty city, got nil")
	}
}

// TestListHospitals_Pagination tests that pagination parameters reach the repository
func TestListHospitals_Pagination(t *testing.T) {
	mockRepo := &mockRepository{
		listHospitalsFunc: func(ctx context.Context, limit, offset int, search string) ([]Hospital, int, error) {
			if limit != 10 || offset != 10 {
				t.Errorf("Expected limit=10 offset=10, got limit=%d offset=%d", limit, offset)
			}
			return []Hospital{{ID: 11, Name: "ASR North"}}, 25, nil
		},
	}

	service := NewService(mockRepo)
	params := pagination.Params{Page: 2, Limit: 10}

	resp, err := service.ListHospitalsWithPagination(context.Background(), params, "")

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !resp.Success {
		t.Error("Expected success response")
	}
	if resp.Pagination.TotalRecords != 25 {
		t.Errorf("Expected 25 total records, got %d", resp.Pagination.TotalRecords)
	}
	if resp.Pagination.TotalPages != 3 {
		t.Errorf("Expected 3 total pages, got %d", resp.Pagination.TotalPages)
	}
}

// TestCreateNodal_UnknownHospital tests foreign key failure mapping
func TestCreateNodal_UnknownHospital(t *testing.T) {
	mockRepo := &mockRepository{
		createNodalFunc: func(ctx context.Context, req CreateNodalRequest) (*Nodal, error) {
			return nil, ErrHospitalNotFound
		},
	}

	service := NewService(mockRepo)
	_, err := service.CreateNodal(context.Background(), CreateNodalRequest{
		HospitalID: 99,
		Name:       "North Nodal",
	})

	if !errors.Is(err, ErrHospitalNotFound) {
		t.Errorf("Expected ErrHospitalNotFound, got: %v", err)
	}
}

// TestCreateNodal_MissingFields tests validation of required fields
func TestCreateNodal_MissingFields(t *testing.T) {
	service := NewService(&mockRepository{})

	if _, err := service.CreateNodal(context.Background(), CreateNodalRequest{HospitalID: 1}); err == nil {
		t.Error("Expected error for empty name, got nil")
	}
	if _, err := service.CreateNodal(context.Background(), CreateNodalRequest{Name: "North Nodal"}); err == nil {
		t.Error("Expected error for missing hospital ID, got nil")
	}
}
