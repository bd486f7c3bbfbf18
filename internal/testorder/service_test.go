package testorder

import (
	"context"
	"errors"
	"testing"

	"github.com/asr-diagnostics/lims-service/internal/messaging"
	"github.com/asr-diagnostics/lims-service/internal/testutil"
)

type mockRepository struct {
	listCenterFunc   func(ctx context.Context, hospitalID int64) ([]CenterEntry, error)
	sendToNodeFunc   func(ctx context.Context, patientIDs []int64) (int64, error)
	updateStatusFunc func(ctx context.Context, testIDs []int64, status, reason string) (int64, error)
	enterResultFunc  func(ctx context.Context, testID int64, result EnterResultRequest) error
}

func (m *mockRepository) ListCenterEntries(ctx context.Context, hospitalID int64) ([]CenterEntry, error) {
	return m.listCenterFunc(ctx, hospitalID)
}

func (m *mockRepository) SendToNode(ctx context.Context, patientIDs []int64) (int64, error) {
	return m.sendToNodeFunc(ctx, patientIDs)
}

func (m *mockRepository) UpdateStatus(ctx context.Context, testIDs []int64, status, reason string) (int64, error) {
	return m.updateStatusFunc(ctx, testIDs, status, reason)
}

func (m *mockRepository) EnterResult(ctx context.Context, testID int64, result EnterResultRequest) error {
	return m.enterResultFunc(ctx, testID, result)
}

// TestSendToNode_NoPatients tests the empty selection guard
func TestSendToNode_NoPatients(t *testing.T) {
	service := NewService(&mockRepository{}, testutil.NewMockPublisher())

	_, err := service.SendToNode(context.Background(), SendToNodeRequest{})

	if !errors.Is(err, ErrNoPatientsSelected) {
		t.Errorf("Expected ErrNoPatientsSelected, got: %v", err)
	}
}

// TestSendToNode_Success tests routing and the status change event
func TestSendToNode_Success(t *testing.T) {
	mockRepo := &mockRepository{
		sendToNodeFunc: func(ctx context.Context, patientIDs []int64) (int64, error) {
			if len(patientIDs) != 2 {
				t.Errorf("Expected 2 patient IDs, got %d", len(patientIDs))
			}
			return 3, nil
		},
	}
	publisher := testutil.NewMockPublisher()
	service := NewService(mockRepo, publisher)

	moved, err := service.SendToNode(context.Background(), SendToNodeRequest{PatientIDs: []int64{4, 7}})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if moved != 3 {
		t.Errorf("Expected 3 tests moved, got %d", moved)
	}
	publisher.AssertEventCount(t, messaging.EventTestStatusChanged, 1)
}

// TestSendToNode_NothingMoved tests that no event fires when no rows change
func TestSendToNode_NothingMoved(t *testing.T) {
	mockRepo := &mockRepository{
		sendToNodeFunc: func(ctx context.Context, patientIDs []int64) (int64, error) {
			return 0, nil
		},
	}
	publisher := testutil.NewMockPublisher()
	service := NewService(mockRepo, publisher)

	moved, err := service.SendToNode(context.Background(), SendToNodeRequest{PatientIDs: []int64{4}})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if moved != 0 {
		t.Errorf("Expected 0 tests moved, got %d", moved)
	}
	publisher.AssertEventNotPublished(t, messaging.EventTestStatusChanged)
}

// TestUpdateStatus_RejectRequiresReason tests the reject guard
func TestUpdateStatus_RejectRequiresReason(t *testing.T) {
	service := NewService(&mockRepository{}, testutil.NewMockPublisher())

	_, err := service.UpdateStatus(context.Background(), UpdateStatusRequest{
		TestIDs: []int64{1},
		Status:  StatusReject,
	})

	if !errors.Is(err, ErrReasonRequired) {
		t.Errorf("Expected ErrReasonRequired, got: %v", err)
	}
}

// TestUpdateStatus_InvalidStatus tests the closed status set
func TestUpdateStatus_InvalidStatus(t *testing.T) {
	service := NewService(&mockRepository{}, testutil.NewMockPublisher())

	_, err := service.UpdateStatus(context.Background(), UpdateStatusRequest{
		TestIDs: []int64{1},
		Status:  "archived",
	})

	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("Expected ErrInvalidStatus, got: %v", err)
	}
}

// TestUpdateStatus_Success tests a reject transition with a reason
func TestUpdateStatus_Success(t *testing.T) {
	mockRepo := &mockRepository{
		updateStatusFunc: func(ctx context.Context, testIDs []int64, status, reason string) (int64, error) {
			if status != StatusReject {
				t.Errorf("Expected status '%s', got '%s'", StatusReject, status)
			}
			if reason != "haemolysed sample" {
				t.Errorf("Unexpected reason: '%s'", reason)
			}
			return int64(len(testIDs)), nil
		},
	}
	service := NewService(mockRepo, testutil.NewMockPublisher())

	updated, err := service.UpdateStatus(context.Background(), UpdateStatusRequest{
		TestIDs: []int64{1, 2},
		Status:  StatusReject,
		Reason:  "haemolysed sample",
	})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if updated != 2 {
		t.Errorf("Expected 2 tests updated, got %d", updated)
	}
}

// TestEnterResult_RequiresResult tests the empty result guard
func TestEnterResult_RequiresResult(t *testing.T) {
	service := NewService(&mockRepository{}, testutil.NewMockPublisher())

	err := service.EnterResult(context.Background(), 1, EnterResultRequest{})

	if !errors.Is(err, ErrResultRequired) {
		t.Errorf("Expected ErrResultRequired, got: %v", err)
	}
}

// TestEnterResult_Success tests result entry and the report event
func TestEnterResult_Success(t *testing.T) {
	mockRepo := &mockRepository{
		enterResultFunc: func(ctx context.Context, testID int64, result EnterResultRequest) error {
			if result.TestResult != "HB 13.2 g/dL" {
				t.Errorf("Unexpected result: '%s'", result.TestResult)
			}
			return nil
		},
	}
	publisher := testutil.NewMockPublisher()
	service := NewService(mockRepo, publisher)

	err := service.EnterResult(context.Background(), 5, EnterResultRequest{TestResult: "HB 13.2 g/dL"})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	publisher.AssertEventCount(t, messaging.EventReportEntered, 1)
}
