package testorder

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListCenterEntries returns today's tests still sitting at the registration
// centre for the given hospital, joined with patient and catalog data.
func (r *Repository) ListCenterEntries(ctx context.Context, hospitalID int64) ([]CenterEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.patient_id, p.uhid, p.p_name, t.investigation_id,
		       i.test_code, i.testname, i.test_collection, t.status
		FROM lims.patient_tests t
		JOIN lims.patients p ON p.id = t.patient_id
		JOIN lims.investigations i ON i.id = t.investigation_id
		WHERE t.hospital_id = $1 AND t.status = $2 AND t.test_created_date = CURRENT_DATE
		ORDER BY t.id
	`, hospitalID, StatusCenter)
	if err != nil {
		return nil, fmt.Errorf("failed to query centre worklist: %w", err)
	}
	defer rows.Close()

	var entries []CenterEntry
	for rows.Next() {
		var e CenterEntry
		err := rows.Scan(&e.ID, &e.PatientID, &e.UHID, &e.PatientName, &e.InvestigationID,
			&e.TestCode, &e.TestName, &e.TestCollection, &e.Status)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worklist entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating worklist: %w", err)
	}

	return entries, nil
}

// SendToNode moves the outsourced tests of the given patients from the
// centre to the nodal queue. Only tests whose catalog entry is not
// collected at the centre are routed.
func (r *Repository) SendToNode(ctx context.Context, patientIDs []int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE lims.patient_tests t
		SET status = $1, test_updated_date = CURRENT_DATE
		FROM lims.investigations i
		WHERE i.id = t.investigation_id
		  AND t.patient_id = ANY($2)
		  AND t.status = $3
		  AND i.test_collection = 'No'
	`, StatusNode, pq.Array(patientIDs), StatusCenter)
	if err != nil {
		return 0, fmt.Errorf("failed to route tests to nodal centre: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read routing result: %w", err)
	}
	return affected, nil
}

// UpdateStatus moves a batch of tests to the given state. A reject carries
// its reason alongside.
func (r *Repository) UpdateStatus(ctx context.Context, testIDs []int64, status, reason string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE lims.patient_tests
		SET status = $1, reason = $2, test_updated_date = CURRENT_DATE
		WHERE id = ANY($3)
	`, status, reason, pq.Array(testIDs))
	if err != nil {
		return 0, fmt.Errorf("failed to update test status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read status update result: %w", err)
	}
	return affected, nil
}

// EnterResult records the outcome of one test and moves it to completed.
func (r *Repository) EnterResult(ctx context.Context, testID int64, result EnterResultRequest) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE lims.patient_tests
		SET test_result = $1, test_image = $2, status = $3, test_updated_date = CURRENT_DATE
		WHERE id = $4
	`, result.TestResult, result.TestImage, StatusCompleted, testID)
	if err != nil {
		return fmt.Errorf("failed to record test result: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read result entry outcome: %w", err)
	}
	if affected == 0 {
		return ErrTestNotFound
	}
	return nil
}
