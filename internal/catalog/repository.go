package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var ErrInvestigationNotFound = errors.New("investigation not found")

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateInvestigation(ctx context.Context, req CreateInvestigationRequest) (*Investigation, error) {
	query := `
        INSERT INTO lims.investigations
        (test_code, testname, department, sample_type, price, test_collection, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, 'active', NOW())
        RETURNING id, test_code, testname, department, sample_type, price, test_collection, status, created_at
    `

	var inv Investigation
	var sampleType sql.NullString

	err := r.db.QueryRowContext(ctx, query,
		req.TestCode,
		req.TestName,
		req.Department,
		req.SampleType,
		req.Price,
		req.TestCollection,
	).Scan(
		&inv.ID,
		&inv.TestCode,
		&inv.TestName,
		&inv.Department,
		&sampleType,
		&inv.Price,
		&inv.TestCollection,
		&inv.Status,
		&inv.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, fmt.Errorf("investigation with this test code already exists")
		}
		return nil, fmt.Errorf("failed to insert investigation: %w", err)
	}

	inv.SampleType = sampleType.String

	return &inv, nil
}

func (r *Repository) GetInvestigation(ctx context.Context, id int64) (*Investigation, error) {
	query := `
		SELECT id, test_code, testname, department, sample_type, price, test_collection, status, created_at
		FROM lims.investigations
		WHERE id = $1
	`

	var inv Investigation
	var sampleType sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&inv.ID,
		&inv.TestCode,
		&inv.TestName,
		&inv.Department,
		&sampleType,
		&inv.Price,
		&inv.TestCollection,
		&inv.Status,
		&inv.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrInvestigationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get investigation: %w", err)
	}

	inv.SampleType = sampleType.String

	return &inv, nil
}

// GetByIDs loads a batch of investigations by primary key, preserving no
// particular order. Callers compare lengths to detect unknown IDs.
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]Investigation, error) {
	query := `
		SELECT id, test_code, testname, department, sample_type, price, test_collection, status, created_at
		FROM lims.investigations
		WHERE id = ANY($1)
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query investigations: %w", err)
	}
	defer rows.Close()

	return scanInvestigations(rows)
}

// ListInvestigationsWithPagination retrieves catalog entries with pagination support
func (r *Repository) ListInvestigationsWithPagination(ctx context.Context, limit, offset int, search string) ([]Investigation, int, error) {
	var totalCount int
	countQuery := "SELECT COUNT(*) FROM lims.investigations"
	countArgs := []interface{}{}
	whereClause := ""

	if search != "" {
		whereClause = " WHERE (testname ILIKE $1 OR test_code ILIKE $1)"
		countArgs = append(countArgs, "%"+search+"%")
	}

	if err := r.db.QueryRowContext(ctx, countQuery+whereClause, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count investigations: %w", err)
	}

	args := []interface{}{limit, offset}
	listWhere := ""
	if search != "" {
		listWhere = " WHERE (testname ILIKE $3 OR test_code ILIKE $3)"
		args = append(args, "%"+search+"%")
	}

	query := fmt.Sprintf(`
		SELECT id, test_code, testname, department, sample_type, price, test_collection, status, created_at
		FROM lims.investigations
		%s
		ORDER BY testname
		LIMIT $1 OFFSET $2
	`, listWhere)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query investigations: %w", err)
	}
	defer rows.Close()

	investigations, err := scanInvestigations(rows)
	if err != nil {
		return nil, 0, err
	}

	return investigations, totalCount, nil
}

func scanInvestigations(rows *sql.Rows) ([]Investigation, error) {
	var investigations []Investigation
	for rows.Next() {
		var inv Investigation
		var sampleType sql.NullString

		err := rows.Scan(
			&inv.ID,
			&inv.TestCode,
			&inv.TestName,
			&inv.Department,
			&sampleType,
			&inv.Price,
			&inv.TestCollection,
			&inv.Status,
			&inv.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investigation: %w", err)
		}

		inv.SampleType = sampleType.String

		investigations = append(investigations, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investigations: %w", err)
	}

	return investigations, nil
}
