package registration

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/asr-diagnostics/lims-service/internal/messaging"
	"github.com/asr-diagnostics/lims-service/internal/testutil"
)

type mockRepository struct {
	registerFunc func(ctx context.Context, user UserContext, req *RegistrationRequest) (*Result, error)
}

func (m *mockRepository) Register(ctx context.Context, user UserContext, req *RegistrationRequest) (*Result, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, user, req)
	}
	return &Result{PatientID: 1, UHID: "ASR/UNK/26/0000001"}, nil
}

func validUser() UserContext {
	return UserContext{HospitalID: 1, NodalID: 2}
}

// TestRegister_Success tests a plain registration without notification
func TestRegister_Success(t *testing.T) {
	mockRepo := &mockRepository{
		registerFunc: func(ctx context.Context, user UserContext, req *RegistrationRequest) (*Result, error) {
			if user.HospitalID != 1 || user.NodalID != 2 {
				t.Errorf("Unexpected user context: %+v", user)
			}
			return &Result{PatientID: 10, UHID: "ASR/CHE/26/1234567"}, nil
		},
	}
	publisher := testutil.NewMockPublisher()
	service := NewService(mockRepo, publisher)

	uhid, err := service.Register(context.Background(), validUser(), &RegistrationRequest{PName: "Asha"})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if uhid != "ASR/CHE/26/1234567" {
		t.Errorf("Expected UHID 'ASR/CHE/26/1234567', got '%s'", uhid)
	}
	publisher.AssertEventNotPublished(t, messaging.EventRegistrationEmail)
}

// TestRegister_ValidationFailsBeforeRepository tests that bad input never reaches storage
func TestRegister_ValidationFailsBeforeRepository(t *testing.T) {
	repoCalled := false
	mockRepo := &mockRepository{
		registerFunc: func(ctx context.Context, user UserContext, req *RegistrationRequest) (*Result, error) {
			repoCalled = true
			return nil, nil
		},
	}
	publisher := testutil.NewMockPublisher()
	service := NewService(mockRepo, publisher)

	req := &RegistrationRequest{
		PName:            "Asha",
		InvestigationIDs: []int64{5, 5},
	}

	_, err := service.Register(context.Background(), validUser(), req)

	if !errors.Is(err, ErrDuplicateInvestigationIDs) {
		t.Errorf("Expected ErrDuplicateInvestigationIDs, got: %v", err)
	}
	if repoCalled {
		t.Error("Repository must not be called when validation fails")
	}
	publisher.AssertEventNotPublished(t, messaging.EventRegistrationEmail)
}

// TestRegister_RepositoryError tests that storage failures surface unchanged
func TestRegister_RepositoryError(t *testing.T) {
	mockRepo := &mockRepository{
		registerFunc: func(ctx context.Context, user UserContext, req *RegistrationRequest) (*Result, error) {
			return nil, errors.New("database connection failed")
		},
	}
	publisher := testutil.NewMockPublisher()
	service := NewService(mockRepo, publisher)

	_, err := service.Register(context.Background(), validUser(), &RegistrationRequest{PName: "Asha"})

	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	publisher.AssertEventNotPublished(t, messaging.EventRegistrationEmail)
}

// TestRegister_EmailJobPublished tests the opt-in email job for a billed registration
func TestRegister_EmailJobPublished(t *testing.T) {
	mockRepo := &mockRepository{
		registerFunc: func(ctx context.Context, user UserContext, req *RegistrationRequest) (*Result, error) {
			return &Result{
				PatientID:    10,
				UHID:         "ASR/CHE/26/1234567",
				TestNames:    []string{"CBC", "Lipid Profile"},
				FacilityName: "ASR Main Centre",
			}, nil
		},
	}
	publisher := testutil.NewMockPublisher()
	service := NewService(mockRepo, publisher)

	req := &RegistrationRequest{
		PTitle:           "Ms",
		PName:            "Asha",
		PLName:           "Rao",
		PEmail:           "asha@example.com",
		EmailOpt:         true,
		PRegDate:         "2026-03-14",
		InvestigationIDs: []int64{11, 24},
		Bill: []BillInput{
			{Total: 1500, AmtReceivable: 1400, PaymentMode: "Single"},
		},
	}

	_, err := service.Register(context.Background(), validUser(), req)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	publisher.AssertEventCount(t, messaging.EventRegistrationEmail, 1)

	event := publisher.GetLastEventByKey(messaging.EventRegistrationEmail)
	var job messaging.RegistrationEmailJob
	if err := json.Unmarshal(event.RawJSON, &job); err != nil {
		t.Fatalf("Failed to unmarshal published job: %v", err)
	}
	if job.Data.To != "asha@example.com" {
		t.Errorf("Expected recipient 'asha@example.com', got '%s'", job.Data.To)
	}
	if job.Data.PatientName != "Ms Asha Rao" {
		t.Errorf("Expected patient name 'Ms Asha Rao', got '%s'", job.Data.PatientName)
	}
	if job.Data.RegType != RegTypeBillTest {
		t.Errorf("Expected reg type '%s', got '%s'", RegTypeBillTest, job.Data.RegType)
	}
	if job.Data.TestNames != "CBC, Lipid Profile" {
		t.Errorf("Unexpected test names: '%s'", job.Data.TestNames)
	}
	if job.Data.BillAmount != 1400 {
		t.Errorf("Expected bill amount 1400, got %v", job.Data.BillAmount)
	}
	if job.Data.FacilityName != "ASR Main Centre" {
		t.Errorf("Unexpected facility name: '%s'", job.Data.FacilityName)
	}
}

// TestRegister_EmailJobSkippedWithoutOptIn tests that no job goes out without consent
func TestRegister_EmailJobSkippedWithoutOptIn(t *testing.T) {
	mockRepo := &mockRepository{}
	publisher := testutil.NewMockPublisher()
	service := NewService(mockRepo, publisher)

	req := &RegistrationRequest{
		PName:    "Asha",
		PEmail:   "asha@example.com",
		EmailOpt: false,
	}

	if _, err := service.Register(context.Background(), validUser(), req); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	publisher.AssertEventNotPublished(t, messaging.EventRegistrationEmail)
}

// TestRegister_EmailJobSkippedWithoutAddress tests opt-in with no address
func TestRegister_EmailJobSkippedWithoutAddress(t *testing.T) {
	mockRepo := &mockRepository{}
	publisher := testutil.NewMockPublisher()
	service := NewService(mockRepo, publisher)

	req := &RegistrationRequest{
		PName:    "Asha",
		EmailOpt: true,
	}

	if _, err := service.Register(context.Background(), validUser(), req); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	publisher.AssertEventNotPublished(t, messaging.EventRegistrationEmail)
}

// TestClassifyRegistration tests the notification priority order
func TestClassifyRegistration(t *testing.T) {
	tests := []struct {
		name     string
		req      *RegistrationRequest
		expected string
	}{
		{
			name: "bill and tests",
			req: &RegistrationRequest{
				InvestigationIDs: []int64{1},
				Bill:             []BillInput{{Total: 100}},
			},
			expected: RegTypeBillTest,
		},
		{
			name: "bill takes precedence over scheme",
			req: &RegistrationRequest{
				InvestigationIDs: []int64{1},
				Bill:             []BillInput{{Total: 100}},
				PaymentSchemes:   []PaymentSchemeInput{{Scheme: "CM Scheme"}},
			},
			expected: RegTypeBillTest,
		},
		{
			name: "tests with scheme only",
			req: &RegistrationRequest{
				InvestigationIDs: []int64{1},
				PaymentSchemes:   []PaymentSchemeInput{{Scheme: "CM Scheme"}},
			},
			expected: RegTypePPPTest,
		},
		{
			name:     "demographics only",
			req:      &RegistrationRequest{},
			expected: RegTypeGeneral,
		},
		{
			name: "bill without tests",
			req: &RegistrationRequest{
				Bill: []BillInput{{Total: 100}},
			},
			expected: RegTypeGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyRegistration(tt.req); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}
