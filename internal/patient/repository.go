package patient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

var ErrPatientNotFound = errors.New("patient not found")

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const patientColumns = `
	id, uhid, u_name, country, ref_source, ref_details, p_mobile,
	to_char(p_regdate, 'YYYY-MM-DD'), p_title, p_name, p_lname, p_gender, p_age,
	p_blood, p_email, p_whtsap, city, state, p_whtsap_alart, p_email_alart,
	reg_by, hospital_id, nodal_id, created_at`

// ListTodayByHospital returns the patients registered today at the given
// hospital, with tests, bills, schemes and identity records attached.
func (r *Repository) ListTodayByHospital(ctx context.Context, hospitalID int64, limit, offset int) ([]PatientDetail, int, error) {
	var totalCount int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM lims.patients
		WHERE hospital_id = $1 AND p_regdate = CURRENT_DATE
	`, hospitalID).Scan(&totalCount)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count today's patients: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM lims.patients
		WHERE hospital_id = $1 AND p_regdate = CURRENT_DATE
		ORDER BY id DESC
		LIMIT $2 OFFSET $3
	`, patientColumns)

	rows, err := r.db.QueryContext(ctx, query, hospitalID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query today's patients: %w", err)
	}
	defer rows.Close()

	patients, err := scanPatients(rows)
	if err != nil {
		return nil, 0, err
	}

	details, err := r.attachChildren(ctx, patients)
	if err != nil {
		return nil, 0, err
	}

	return details, totalCount, nil
}

// ListTodayPPP returns today's registrations carrying at least one PPP
// scheme record, the worklist the scheme desk works from.
func (r *Repository) ListTodayPPP(ctx context.Context, hospitalID int64, limit, offset int) ([]PatientDetail, int, error) {
	var totalCount int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM lims.patients p
		WHERE p.hospital_id = $1 AND p.p_regdate = CURRENT_DATE
		  AND EXISTS (SELECT 1 FROM lims.ppp_modes m WHERE m.patient_id = p.id)
	`, hospitalID).Scan(&totalCount)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count today's scheme patients: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM lims.patients
		WHERE hospital_id = $1 AND p_regdate = CURRENT_DATE
		  AND EXISTS (SELECT 1 FROM lims.ppp_modes m WHERE m.patient_id = patients.id)
		ORDER BY id DESC
		LIMIT $2 OFFSET $3
	`, patientColumns)

	rows, err := r.db.QueryContext(ctx, query, hospitalID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query today's scheme patients: %w", err)
	}
	defer rows.Close()

	patients, err := scanPatients(rows)
	if err != nil {
		return nil, 0, err
	}

	details, err := r.attachChildren(ctx, patients)
	if err != nil {
		return nil, 0, err
	}

	return details, totalCount, nil
}

func (r *Repository) GetPatient(ctx context.Context, id int64) (*PatientDetail, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM lims.patients
		WHERE id = $1
	`, patientColumns)

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query patient: %w", err)
	}
	defer rows.Close()

	patients, err := scanPatients(rows)
	if err != nil {
		return nil, err
	}
	if len(patients) == 0 {
		return nil, ErrPatientNotFound
	}

	details, err := r.attachChildren(ctx, patients)
	if err != nil {
		return nil, err
	}

	return &details[0], nil
}

// UpdatePatient writes only the fields present in the request.
func (r *Repository) UpdatePatient(ctx context.Context, id int64, req UpdatePatientRequest) (*PatientDetail, error) {
	updates := []string{}
	args := []interface{}{}
	argIndex := 1

	appendSet := func(column string, value interface{}) {
		updates = append(updates, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if req.PMobile != nil {
		appendSet("p_mobile", *req.PMobile)
	}
	if req.PTitle != nil {
		appendSet("p_title", *req.PTitle)
	}
	if req.PName != nil {
		appendSet("p_name", *req.PName)
	}
	if req.PLName != nil {
		appendSet("p_lname", *req.PLName)
	}
	if req.PGender != nil {
		appendSet("p_gender", *req.PGender)
	}
	if req.PAge != nil {
		appendSet("p_age", *req.PAge)
	}
	if req.PBlood != nil {
		appendSet("p_blood", *req.PBlood)
	}
	if req.PEmail != nil {
		appendSet("p_email", *req.PEmail)
	}
	if req.PWhatsapp != nil {
		appendSet("p_whtsap", *req.PWhatsapp)
	}
	if req.Street != nil {
		appendSet("street", *req.Street)
	}
	if req.Landmark != nil {
		appendSet("landmark", *req.Landmark)
	}
	if req.City != nil {
		appendSet("city", *req.City)
	}
	if req.State != nil {
		appendSet("state", *req.State)
	}
	if req.PPincode != nil {
		appendSet("p_pincode", *req.PPincode)
	}
	if req.EmailOpt != nil {
		appendSet("p_email_alart", *req.EmailOpt)
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	updates = append(updates, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE lims.patients
		SET %s
		WHERE id = $%d
	`, strings.Join(updates, ", "), argIndex)
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return nil, ErrPatientNotFound
	}

	return r.GetPatient(ctx, id)
}

func scanPatients(rows *sql.Rows) ([]Patient, error) {
	var patients []Patient
	for rows.Next() {
		var p Patient
		var uName, country, refSource, refDetails, mobile, title, lname sql.NullString
		var gender, blood, email, whatsapp, city, state, regBy sql.NullString

		err := rows.Scan(
			&p.ID, &p.UHID, &uName, &country, &refSource, &refDetails, &mobile,
			&p.PRegDate, &title, &p.PName, &lname, &gender, &p.PAge,
			&blood, &email, &whatsapp, &city, &state, &p.WhatsappOpt, &p.EmailOpt,
			&regBy, &p.HospitalID, &p.NodalID, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}

		p.UName = uName.String
		p.Country = country.String
		p.RefSource = refSource.String
		p.RefDetails = refDetails.String
		p.PMobile = mobile.String
		p.PTitle = title.String
		p.PLName = lname.String
		p.PGender = gender.String
		p.PBlood = blood.String
		p.PEmail = email.String
		p.PWhatsapp = whatsapp.String
		p.City = city.String
		p.State = state.String
		p.RegBy = regBy.String

		patients = append(patients, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating patients: %w", err)
	}

	return patients, nil
}

// attachChildren loads every child collection for the page of patients in
// four batch queries keyed on patient_id.
func (r *Repository) attachChildren(ctx context.Context, patients []Patient) ([]PatientDetail, error) {
	details := make([]PatientDetail, len(patients))
	index := make(map[int64]*PatientDetail, len(patients))
	ids := make([]int64, len(patients))
	for i, p := range patients {
		details[i] = PatientDetail{
			Patient:    p,
			Tests:      []TestEntry{},
			Bills:      []BillEntry{},
			Schemes:    []SchemeEntry{},
			Identities: []IdentityEntry{},
		}
		index[p.ID] = &details[i]
		ids[i] = p.ID
	}
	if len(ids) == 0 {
		return details, nil
	}

	if err := r.loadTests(ctx, ids, index); err != nil {
		return nil, err
	}
	if err := r.loadBills(ctx, ids, index); err != nil {
		return nil, err
	}
	if err := r.loadSchemes(ctx, ids, index); err != nil {
		return nil, err
	}
	if err := r.loadIdentities(ctx, ids, index); err != nil {
		return nil, err
	}

	return details, nil
}

func (r *Repository) loadTests(ctx context.Context, ids []int64, index map[int64]*PatientDetail) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.patient_id, t.id, t.investigation_id, i.test_code, i.testname,
		       i.test_collection, t.status, t.test_result
		FROM lims.patient_tests t
		JOIN lims.investigations i ON i.id = t.investigation_id
		WHERE t.patient_id = ANY($1)
		ORDER BY t.id
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to query patient tests: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var patientID int64
		var entry TestEntry
		var result sql.NullString

		err := rows.Scan(&patientID, &entry.ID, &entry.InvestigationID, &entry.TestCode,
			&entry.TestName, &entry.TestCollection, &entry.Status, &result)
		if err != nil {
			return fmt.Errorf("failed to scan patient test: %w", err)
		}
		entry.TestResult = result.String

		if d, ok := index[patientID]; ok {
			d.Tests = append(d.Tests, entry)
		}
	}
	return rows.Err()
}

func (r *Repository) loadBills(ctx context.Context, ids []int64, index map[int64]*PatientDetail) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT patient_id, id, ptotal, pamt_receivable, pamt_received_total, pamt_due,
		       pamt_mode, billstatus, to_char(bill_date, 'YYYY-MM-DD')
		FROM lims.op_bills
		WHERE patient_id = ANY($1)
		ORDER BY id
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var patientID int64
		var entry BillEntry

		err := rows.Scan(&patientID, &entry.ID, &entry.Total, &entry.AmtReceivable,
			&entry.AmtReceived, &entry.AmtDue, &entry.PaymentMode, &entry.BillStatus, &entry.BillDate)
		if err != nil {
			return fmt.Errorf("failed to scan bill: %w", err)
		}

		if d, ok := index[patientID]; ok {
			d.Bills = append(d.Bills, entry)
		}
	}
	return rows.Err()
}

func (r *Repository) loadSchemes(ctx context.Context, ids []int64, index map[int64]*PatientDetail) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT patient_id, id, pscheme, pbarcode, popno, trfno
		FROM lims.ppp_modes
		WHERE patient_id = ANY($1)
		ORDER BY id
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to query scheme records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var patientID int64
		var entry SchemeEntry
		var barcode, orderNo, trfNo sql.NullString

		err := rows.Scan(&patientID, &entry.ID, &entry.Scheme, &barcode, &orderNo, &trfNo)
		if err != nil {
			return fmt.Errorf("failed to scan scheme record: %w", err)
		}
		entry.Barcode = barcode.String
		entry.OrderNo = orderNo.String
		entry.TRFNo = trfNo.String

		if d, ok := index[patientID]; ok {
			d.Schemes = append(d.Schemes, entry)
		}
	}
	return rows.Err()
}

func (r *Repository) loadIdentities(ctx context.Context, ids []int64, index map[int64]*PatientDetail) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT patient_id, id, aadhar, mobile, abha
		FROM lims.abha_records
		WHERE patient_id = ANY($1)
		ORDER BY id
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to query identity records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var patientID int64
		var entry IdentityEntry
		var aadhar, mobile, abha sql.NullString

		err := rows.Scan(&patientID, &entry.ID, &aadhar, &mobile, &abha)
		if err != nil {
			return fmt.Errorf("failed to scan identity record: %w", err)
		}
		entry.Aadhar = aadhar.String
		entry.Mobile = mobile.String
		entry.ABHA = abha.String

		if d, ok := index[patientID]; ok {
			d.Identities = append(d.Identities, entry)
		}
	}
	return rows.Err()
}
