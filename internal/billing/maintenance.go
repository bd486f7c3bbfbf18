package billing

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/asr-diagnostics/lims-service/internal/messaging"
)

// DefaultReviewDays is the grace period applied to bills whose review_days
// column was never set.
const DefaultReviewDays = 7

// MaintenanceService flips unpaid bills past their review window to Due so
// the front desk chases them.
type MaintenanceService struct {
	db        *sql.DB
	publisher messaging.PublisherInterface
}

// NewMaintenanceService creates a new bill maintenance service
func NewMaintenanceService(db *sql.DB, publisher messaging.PublisherInterface) *MaintenanceService {
	return &MaintenanceService{
		db:        db,
		publisher: publisher,
	}
}

// MarkOverdueBills marks every unpaid bill whose review window has lapsed.
// Returns the number of bills flipped.
func (s *MaintenanceService) MarkOverdueBills(ctx context.Context) (int, error) {
	log.Println("Starting overdue bill maintenance run")

	result, err := s.db.ExecContext(ctx, `
		UPDATE lims.op_bills
		SET billstatus = 'Due'
		WHERE billstatus = 'Unpaid'
		  AND pamt_due > 0
		  AND bill_date + make_interval(days => GREATEST(review_days, $1)) < CURRENT_DATE
	`, DefaultReviewDays)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue bills: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read maintenance result: %w", err)
	}

	if affected == 0 {
		log.Println("No bills past their review window")
		return 0, nil
	}

	log.Printf("Marked %d bills as Due", affected)

	event := messaging.BillOverdueEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventBillOverdue),
		Data: messaging.BillOverdueData{
			BillCount: int(affected),
			MarkedAt:  time.Now().UTC(),
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventBillOverdue, event); err != nil {
		log.Printf("Warning: failed to publish overdue bill event: %v", err)
	}

	return int(affected), nil
}

// GetOverdueCandidatesCount returns how many bills the next run would flip.
func (s *MaintenanceService) GetOverdueCandidatesCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM lims.op_bills
		WHERE billstatus = 'Unpaid'
		  AND pamt_due > 0
		  AND bill_date + make_interval(days => GREATEST(review_days, $1)) < CURRENT_DATE
	`, DefaultReviewDays).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count overdue candidates: %w", err)
	}

	return count, nil
}
