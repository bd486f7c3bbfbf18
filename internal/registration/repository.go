package registration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

// uhidMaxAttempts bounds the retry loop on a uhid unique violation.
const uhidMaxAttempts = 5

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Register performs the whole registration as one transaction: context
// validation, catalog existence check, cross-entity duplicate scan, then
// the patient insert and the conditional bulk inserts. Any failure rolls
// the whole thing back; callers observe a full registration or nothing.
func (r *Repository) Register(ctx context.Context, user UserContext, req *RegistrationRequest) (*Result, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	facilityName, err := r.validateUserContext(ctx, tx, user)
	if err != nil {
		return nil, err
	}

	var testNames []string
	if len(req.InvestigationIDs) > 0 {
		testNames, err = r.checkInvestigationsExist(ctx, tx, req.InvestigationIDs)
		if err != nil {
			return nil, err
		}
	}

	// Fast-path duplicate scan against the same snapshot the inserts will
	// use. The unique indexes remain the authoritative check; this exists
	// to hand the caller a complete conflict list in the common case.
	if len(req.PaymentSchemes) > 0 {
		if err := r.scanSchemeDuplicates(ctx, tx, req.PaymentSchemes); err != nil {
			return nil, err
		}
	}
	if len(req.Identities) > 0 {
		if err := r.scanIdentityDuplicates(ctx, tx, req.Identities); err != nil {
			return nil, err
		}
	}

	patientID, uhid, err := r.insertPatient(ctx, tx, user, req)
	if err != nil {
		return nil, err
	}

	if len(req.InvestigationIDs) > 0 {
		if err := r.insertTestOrders(ctx, tx, patientID, user, req.InvestigationIDs); err != nil {
			return nil, err
		}
	}
	if len(req.Bill) > 0 {
		if err := r.insertBill(ctx, tx, patientID, user.HospitalID, req.Bill[0]); err != nil {
			return nil, err
		}
	}
	if len(req.PaymentSchemes) > 0 {
		if err := r.insertPaymentSchemes(ctx, tx, patientID, req.PaymentSchemes); err != nil {
			return nil, err
		}
	}
	if len(req.Identities) > 0 {
		if err := r.insertIdentities(ctx, tx, patientID, req.Identities); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit registration: %w", err)
	}

	return &Result{
		PatientID:    patientID,
		UHID:         uhid,
		TestNames:    testNames,
		FacilityName: facilityName,
	}, nil
}

// validateUserContext resolves the hospital and nodal centre from the user
// context and returns the hospital name for the notification job.
func (r *Repository) validateUserContext(ctx context.Context, tx *sql.Tx, user UserContext) (string, error) {
	var facilityName string
	err := tx.QueryRowContext(ctx,
		`SELECT hospital_name FROM lims.hospitals WHERE id = $1`,
		user.HospitalID,
	).Scan(&facilityName)
	if err == sql.ErrNoRows {
		return "", ErrContextInvalid
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up hospital: %w", err)
	}

	var nodalID int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM lims.nodals WHERE id = $1`,
		user.NodalID,
	).Scan(&nodalID)
	if err == sql.ErrNoRows {
		return "", ErrContextInvalid
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up nodal centre: %w", err)
	}

	return facilityName, nil
}

// checkInvestigationsExist fetches the catalog rows for the requested IDs.
// A count mismatch means at least one ID does not exist.
func (r *Repository) checkInvestigationsExist(ctx context.Context, tx *sql.Tx, ids []int64) ([]string, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT testname FROM lims.investigations WHERE id = ANY($1)`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query investigations: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan investigation: %w", err)
		}
		names = append(names, name)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investigations: %w", err)
	}

	if len(names) != len(ids) {
		return nil, ErrInvestigationNotFound
	}
	return names, nil
}

// scanSchemeDuplicates looks for stored ppp_modes rows matching any
// requested barcode, order number or TRF number. Empty values are skipped.
func (r *Repository) scanSchemeDuplicates(ctx context.Context, tx *sql.Tx, schemes []PaymentSchemeInput) error {
	var barcodes, orderNos, trfNos []string
	for _, s := range schemes {
		if s.Barcode != "" {
			barcodes = append(barcodes, s.Barcode)
		}
		if s.OrderNo != "" {
			orderNos = append(orderNos, s.OrderNo)
		}
		if s.TRFNo != "" {
			trfNos = append(trfNos, s.TRFNo)
		}
	}
	if len(barcodes) == 0 && len(orderNos) == 0 && len(trfNos) == 0 {
		return nil
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT pbarcode, popno, trfno
		FROM lims.ppp_modes
		WHERE pbarcode = ANY($1) OR popno = ANY($2) OR trfno = ANY($3)
	`, pq.Array(barcodes), pq.Array(orderNos), pq.Array(trfNos))
	if err != nil {
		return fmt.Errorf("failed to scan for scheme duplicates: %w", err)
	}
	defer rows.Close()

	var conflicts []FieldConflict
	for rows.Next() {
		var barcode, orderNo, trfNo sql.NullString
		if err := rows.Scan(&barcode, &orderNo, &trfNo); err != nil {
			return fmt.Errorf("failed to scan duplicate row: %w", err)
		}
		conflicts = appendConflict(conflicts, "pbarcode", barcode.String, barcodes)
		conflicts = appendConflict(conflicts, "popno", orderNo.String, orderNos)
		conflicts = appendConflict(conflicts, "trfno", trfNo.String, trfNos)
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating duplicate rows: %w", err)
	}

	if len(conflicts) > 0 {
		return &DuplicateError{Conflicts: conflicts}
	}
	return nil
}

// scanIdentityDuplicates does the same for stored Aadhar and ABHA numbers.
func (r *Repository) scanIdentityDuplicates(ctx context.Context, tx *sql.Tx, identities []IdentityInput) error {
	var aadhars, abhas []string
	for _, id := range identities {
		if id.Aadhar != "" {
			aadhars = append(aadhars, id.Aadhar)
		}
		if id.ABHA != "" {
			abhas = append(abhas, id.ABHA)
		}
	}
	if len(aadhars) == 0 && len(abhas) == 0 {
		return nil
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT aadhar, abha
		FROM lims.abha_records
		WHERE aadhar = ANY($1) OR abha = ANY($2)
	`, pq.Array(aadhars), pq.Array(abhas))
	if err != nil {
		return fmt.Errorf("failed to scan for identity duplicates: %w", err)
	}
	defer rows.Close()

	var conflicts []FieldConflict
	for rows.Next() {
		var aadhar, abha sql.NullString
		if err := rows.Scan(&aadhar, &abha); err != nil {
			return fmt.Errorf("failed to scan duplicate row: %w", err)
		}
		conflicts = appendConflict(conflicts, "aadhar", aadhar.String, aadhars)
		conflicts = appendConflict(conflicts, "abha", abha.String, abhas)
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating duplicate rows: %w", err)
	}

	if len(conflicts) > 0 {
		return &DuplicateError{Conflicts: conflicts}
	}
	return nil
}

// appendConflict records value under field when it matches one of the
// requested values. The OR query can return rows that only matched on one
// column, so each column is re-checked here.
func appendConflict(conflicts []FieldConflict, field, value string, requested []string) []FieldConflict {
	if value == "" {
		return conflicts
	}
	for _, want := range requested {
		if value == want {
			return append(conflicts, FieldConflict{Field: field, Value: value})
		}
	}
	return conflicts
}

// insertPatient creates the patient row, retrying with a fresh random UHID
// sequence when the uhid unique constraint rejects a collision.
func (r *Repository) insertPatient(ctx context.Context, tx *sql.Tx, user UserContext, req *RegistrationRequest) (int64, string, error) {
	regDate := req.PRegDate
	if regDate == "" {
		regDate = time.Now().Format("2006-01-02")
	}
	regBy := req.RegBy
	if regBy == "" {
		regBy = "Center"
	}

	query := `
		INSERT INTO lims.patients
		(uhid, u_name, country, ref_source, ref_details, p_mobile, p_regdate, p_title,
		 p_name, p_lname, p_gender, p_age, p_years, p_month, p_days, p_blood,
		 p_id, p_idnum, p_email, p_whtsap, p_guardian, p_guardianmob, p_guardadd, p_rltn,
		 street, landmark, city, state, p_pincode, p_image, p_whtsap_alart, p_email_alart,
		 reg_by, hospital_id, nodal_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
		        $9, $10, $11, $12, $13, $14, $15, $16,
		        $17, $18, $19, $20, $21, $22, $23, $24,
		        $25, $26, $27, $28, $29, $30, $31, $32,
		        $33, $34, $35, $36)
		RETURNING id
	`

	var patientID int64
	for attempt := 0; attempt < uhidMaxAttempts; attempt++ {
		uhid := GenerateUHID(req.City, time.Now())
		err := tx.QueryRowContext(ctx, query,
			uhid, req.UName, req.Country, req.RefSource, req.RefDetails, req.PMobile, regDate, req.PTitle,
			req.PName, req.PLName, req.PGender, req.PAge, req.PYears, req.PMonth, req.PDays, req.PBlood,
			req.PIDType, req.PIDNum, req.PEmail, req.PWhatsapp, req.PGuardian, req.PGuardMob, req.PGuardAddr, req.PRelation,
			req.Street, req.Landmark, req.City, req.State, req.PPincode, req.PImage, req.WhatsappOpt, req.EmailOpt,
			regBy, user.HospitalID, user.NodalID, time.Now(),
		).Scan(&patientID)
		if err == nil {
			return patientID, uhid, nil
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" && pqErr.Constraint == "patients_uhid_key" {
			continue
		}
		if dup := translateUniqueViolation(err); dup != nil {
			return 0, "", dup
		}
		return 0, "", fmt.Errorf("failed to insert patient: %w", err)
	}
	return 0, "", fmt.Errorf("failed to allocate a unique UHID after %d attempts", uhidMaxAttempts)
}

// insertTestOrders bulk-creates one patient test per investigation ID, all
// in the workflow's initial "center" state.
func (r *Repository) insertTestOrders(ctx context.Context, tx *sql.Tx, patientID int64, user UserContext, ids []int64) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO lims.patient_tests
		(patient_id, investigation_id, hospital_id, nodal_id, status, test_created_date, test_updated_date)
		SELECT $1, unnest($2::bigint[]), $3, $4, 'center', CURRENT_DATE, CURRENT_DATE
	`, patientID, pq.Array(ids), user.HospitalID, user.NodalID)
	if err != nil {
		return fmt.Errorf("failed to insert patient tests: %w", err)
	}
	return nil
}

func (r *Repository) insertBill(ctx context.Context, tx *sql.Tx, patientID, hospitalID int64, bill BillInput) error {
	paymentDetails, err := json.Marshal(bill.PaymentDetails)
	if err != nil {
		return fmt.Errorf("failed to marshal payment details: %w", err)
	}
	invDetails, err := json.Marshal(bill.InvDetails)
	if err != nil {
		return fmt.Errorf("failed to marshal bill line items: %w", err)
	}

	billDate := bill.BillDate
	if billDate == "" {
		billDate = time.Now().Format("2006-01-02")
	}
	billStatus := bill.BillStatus
	if billStatus == "" {
		billStatus = "Unpaid"
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO lims.op_bills
		(patient_id, hospital_id, ptotal, pdisc_percentage, pdisc_amount, pamt_receivable,
		 pamt_received_total, pamt_due, pamt_mode, pnote, gstin, billstatus,
		 payment_details, inv_details, review_status, review_days, bill_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`,
		patientID, hospitalID, bill.Total, bill.DiscPercentage, bill.DiscAmount, bill.AmtReceivable,
		bill.AmtReceived, bill.AmtDue, bill.PaymentMode, bill.Note, bill.GSTIN, billStatus,
		paymentDetails, invDetails, bill.ReviewStatus, bill.ReviewDays, billDate,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}
	return nil
}

func (r *Repository) insertPaymentSchemes(ctx context.Context, tx *sql.Tx, patientID int64, schemes []PaymentSchemeInput) error {
	for _, s := range schemes {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO lims.ppp_modes
			(patient_id, pscheme, refdoc, remark, attachfile, pbarcode, pop, popno, trfno)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, patientID, s.Scheme, s.RefDoctor, s.Remark, s.AttachFile, s.Barcode, s.POP, s.OrderNo, s.TRFNo)
		if err != nil {
			if dup := translateUniqueViolation(err); dup != nil {
				return dup
			}
			return fmt.Errorf("failed to insert payment scheme record: %w", err)
		}
	}
	return nil
}

func (r *Repository) insertIdentities(ctx context.Context, tx *sql.Tx, patientID int64, identities []IdentityInput) error {
	for _, id := range identities {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO lims.abha_records
			(patient_id, isaadhar, ismobile, aadhar, mobile, abha)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, patientID, id.IsAadhar, id.IsMobile, id.Aadhar, id.Mobile, id.ABHA)
		if err != nil {
			if dup := translateUniqueViolation(err); dup != nil {
				return dup
			}
			return fmt.Errorf("failed to insert identity record: %w", err)
		}
	}
	return nil
}

// uniqueConstraintFields maps the unique indexes declared in the schema to
// the request field they protect. A violation on any of these means a
// concurrent writer won the race after our pre-insert scan passed.
var uniqueConstraintFields = map[string]string{
	"ppp_modes_pbarcode_key":  "pbarcode",
	"ppp_modes_popno_key":     "popno",
	"ppp_modes_trfno_key":     "trfno",
	"abha_records_aadhar_key": "aadhar",
	"abha_records_abha_key":   "abha",
}

// translateUniqueViolation turns a pq unique violation on one of the known
// constraints into a DuplicateError. Returns nil for any other error.
func translateUniqueViolation(err error) error {
	pqErr, ok := err.(*pq.Error)
	if !ok || pqErr.Code != "23505" {
		return nil
	}
	field, known := uniqueConstraintFields[pqErr.Constraint]
	if !known {
		return nil
	}
	return &DuplicateError{Conflicts: []FieldConflict{
		{Field: field, Value: valueFromDetail(pqErr.Detail)},
	}}
}

// valueFromDetail extracts the conflicting value from a postgres detail
// message of the form `Key (col)=(value) already exists.`.
func valueFromDetail(detail string) string {
	start := strings.Index(detail, ")=(")
	if start < 0 {
		return ""
	}
	rest := detail[start+3:]
	end := strings.Index(rest, ")")
	if end < 0 {
		return ""
	}
	return rest[:end]
}
