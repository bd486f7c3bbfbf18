package testorder

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/asr-diagnostics/lims-service/internal/messaging"
)

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
}

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *Service) ListCenterEntries(ctx context.Context, hospitalID int64) ([]CenterEntry, error) {
	entries, err := s.repo.ListCenterEntries(ctx, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list centre worklist: %w", err)
	}
	return entries, nil
}

// SendToNode routes the selected patients' outsourced tests to the nodal
// queue and reports how many tests moved.
func (s *Service) SendToNode(ctx context.Context, req SendToNodeRequest) (int64, error) {
	if len(req.PatientIDs) == 0 {
		return 0, ErrNoPatientsSelected
	}

	moved, err := s.repo.SendToNode(ctx, req.PatientIDs)
	if err != nil {
		return 0, err
	}

	if moved > 0 {
		s.publishStatusChange(ctx, req.PatientIDs, StatusCenter, StatusNode)
	}

	return moved, nil
}

// UpdateStatus transitions a batch of tests. Rejects must carry a reason.
func (s *Service) UpdateStatus(ctx context.Context, req UpdateStatusRequest) (int64, error) {
	if len(req.TestIDs) == 0 {
		return 0, ErrNoTestsSelected
	}
	if !validStatuses[req.Status] {
		return 0, ErrInvalidStatus
	}
	if req.Status == StatusReject && req.Reason == "" {
		return 0, ErrReasonRequired
	}

	updated, err := s.repo.UpdateStatus(ctx, req.TestIDs, req.Status, req.Reason)
	if err != nil {
		return 0, err
	}

	return updated, nil
}

// EnterResult records a result for one test and announces the report.
func (s *Service) EnterResult(ctx context.Context, testID int64, req EnterResultRequest) error {
	if req.TestResult == "" {
		return ErrResultRequired
	}

	if err := s.repo.EnterResult(ctx, testID, req); err != nil {
		return err
	}

	event := messaging.ReportEnteredEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventReportEntered),
		Data: messaging.ReportEnteredData{
			PatientTestID: testID,
			Status:        StatusCompleted,
			EnteredAt:     time.Now().UTC(),
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventReportEntered, event); err != nil {
		log.Printf("Warning: failed to publish report event for test %d: %v", testID, err)
	}

	return nil
}

func (s *Service) publishStatusChange(ctx context.Context, patientIDs []int64, oldStatus, newStatus string) {
	event := messaging.TestStatusChangedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventTestStatusChanged),
		Data: messaging.TestStatusChangedData{
			PatientIDs: patientIDs,
			OldStatus:  oldStatus,
			NewStatus:  newStatus,
			ChangedAt:  time.Now().UTC(),
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventTestStatusChanged, event); err != nil {
		log.Printf("Warning: failed to publish status change event: %v", err)
	}
}
