package facility

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

func (r *Repository) CreateHospital(ctx context.Context, req CreateHospitalRequest) (*Hospital, error) {
	query := `
        INSERT INTO lims.hospitals
        (hospital_name, city, state, address, phone, email, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, 'active', NOW())
        RETURNING id, hospital_name, city, state, address, phone, email, status, created_at
    `

	var h Hospital
	var address, phone, email sql.NullString

	err := r.db.QueryRowContext(ctx, query,
		req.Name,
		req.City,
		req.State,
		req.Address,
		req.Phone,
		req.Email,
	).Scan(
		&h.ID,
		&h.Name,
		&h.City,
		&h.State,
		&address,
		&phone,
		&email,
		&h.Status,
		&h.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, fmt.Errorf("hospital with this name already exists")
		}
		return nil, fmt.Errorf("failed to insert hospital: %w", err)
	}

	h.Address = address.String
	h.Phone = phone.String
	h.Email = email.String

	return &h, nil
}

func (r *Repository) GetHospital(ctx context.Context, id int64) (*Hospital, error) {
	query := `
		SELECT id, hospital_name, city, state, address, phone, email, status, created_at
		FROM lims.hospitals
		WHERE id = $1 AND deleted_at IS NULL
	`

	var h Hospital
	var address, phone, email sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&h.ID,
		&h.Name,
		&h.City,
		&h.State,
		&address,
		&phone,
		&email,
		&h.Status,
		&h.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrHospitalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hospital: %w", err)
	}

	h.Address = address.String
	h.Phone = phone.String
	h.Email = email.String

	return &h, nil
}

// ListHospitalsWithPagination retrieves hospitals with pagination support
func (r *Repository) ListHospitalsWithPagination(ctx context.Context, limit, offset int, search string) ([]Hospital, int, error) {
	whereClause := "WHERE deleted_at IS NULL"
	args := []interface{}{limit, offset}
	countArgs := []interface{}{}

	if search != "" {
		whereClause += ` AND (hospital_name ILIKE $3 OR city ILIKE $3)`
		args = append(args, "%"+search+"%")
		countArgs = append(countArgs, "%"+search+"%")
	}

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM lims.hospitals " + whereClause
	if search != "" {
		countQuery = "SELECT COUNT(*) FROM lims.hospitals WHERE deleted_at IS NULL AND (hospital_name ILIKE $1 OR city ILIKE $1)"
	}
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count hospitals: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, hospital_name, city, state, address, phone, email, status, created_at
		FROM lims.hospitals
		%s
		ORDER BY hospital_name
		LIMIT $1 OFFSET $2
	`, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query hospitals: %w", err)
	}
	defer rows.Close()

	var hospitals []Hospital
	for rows.Next() {
		var h Hospital
		var address, phone, email sql.NullString

		err := rows.Scan(
			&h.ID,
			&h.Name,
			&h.City,
			&h.State,
			&address,
			&phone,
			&email,
			&h.Status,
			&h.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan hospital: %w", err)
		}

		h.Address = address.String
		h.Phone = phone.String
		h.Email = email.String

		hospitals = append(hospitals, h)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating hospitals: %w", err)
	}

	return hospitals, totalCount, nil
}

func (r *Repository) CreateNodal(ctx context.Context, req CreateNodalRequest) (*Nodal, error) {
	query := `
        INSERT INTO lims.nodals
        (hospital_id, nodal_name, address, phone, status, created_at)
        VALUES ($1, $2, $3, $4, 'active', NOW())
        RETURNING id, hospital_id, nodal_name, address, phone, status, created_at
    `

	var n Nodal
	var address, phone sql.NullString

	err := r.db.QueryRowContext(ctx, query,
		req.HospitalID,
		req.Name,
		req.Address,
		req.Phone,
	).Scan(
		&n.ID,
		&n.HospitalID,
		&n.Name,
		&address,
		&phone,
		&n.Status,
		&n.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" { // foreign_key_violation
				return nil, ErrHospitalNotFound
			}
			if pqErr.Code == "23505" {
				return nil, fmt.Errorf("nodal centre with this name already exists for the hospital")
			}
		}
		return nil, fmt.Errorf("failed to insert nodal centre: %w", err)
	}

	n.Address = address.String
	n.Phone = phone.String

	return &n, nil
}

func (r *Repository) GetNodal(ctx context.Context, id int64) (*Nodal, error) {
	query := `
		SELECT id, hospital_id, nodal_name, address, phone, status, created_at
		FROM lims.nodals
		WHERE id = $1 AND deleted_at IS NULL
	`

	var n Nodal
	var address, phone sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&n.ID,
		&n.HospitalID,
		&n.Name,
		&address,
		&phone,
		&n.Status,
		&n.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNodalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get nodal centre: %w", err)
	}

	n.Address = address.String
	n.Phone = phone.String

	return &n, nil
}

// ListNodalsByHospital returns the nodal centres of one or more hospitals.
func (r *Repository) ListNodalsByHospital(ctx context.Context, hospitalIDs []int64) ([]Nodal, error) {
	query := `
		SELECT id, hospital_id, nodal_name, address, phone, status, created_at
		FROM lims.nodals
		WHERE hospital_id = ANY($1) AND deleted_at IS NULL
		ORDER BY nodal_name
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(hospitalIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query nodal centres: %w", err)
	}
	defer rows.Close()

	var nodals []Nodal
	for rows.Next() {
		var n Nodal
		var address, phone sql.NullString

		err := rows.Scan(
			&n.ID,
			&n.HospitalID,
			&n.Name,
			&address,
			&phone,
			&n.Status,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan nodal centre: %w", err)
		}

		n.Address = address.String
		n.Phone = phone.String

		nodals = append(nodals, n)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nodal centres: %w", err)
	}

	return nodals, nil
}
