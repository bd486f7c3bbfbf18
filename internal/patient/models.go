package patient

import (
	"time"

	"github.com/asr-diagnostics/lims-service/internal/pagination"
)

// Patient is the demographic record created at registration time.
type Patient struct {
	ID          int64     `json:"id"`
	UHID        string    `json:"uhid"`
	UName       string    `json:"u_name,omitempty"`
	Country     string    `json:"country,omitempty"`
	RefSource   string    `json:"ref_source,omitempty"`
	RefDetails  string    `json:"ref_details,omitempty"`
	PMobile     string    `json:"p_mobile,omitempty"`
	PRegDate    string    `json:"p_regdate"`
	PTitle      string    `json:"p_title,omitempty"`
	PName       string    `json:"p_name"`
	PLName      string    `json:"p_lname,omitempty"`
	PGender     string    `json:"p_gender,omitempty"`
	PAge        int       `json:"p_age"`
	PBlood      string    `json:"p_blood,omitempty"`
	PEmail      string    `json:"p_email,omitempty"`
	PWhatsapp   string    `json:"p_whtsap,omitempty"`
	City        string    `json:"city,omitempty"`
	State       string    `json:"state,omitempty"`
	WhatsappOpt bool      `json:"p_whtsap_alart"`
	EmailOpt    bool      `json:"p_email_alart"`
	RegBy       string    `json:"reg_by,omitempty"`
	HospitalID  int64     `json:"hospital_id"`
	NodalID     int64     `json:"nodal_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// TestEntry is one ordered test with its catalog row flattened in, the way
// the front desk views a patient's worklist.
type TestEntry struct {
	ID              int64  `json:"id"`
	InvestigationID int64  `json:"investigation_id"`
	TestCode        string `json:"test_code"`
	TestName        string `json:"testname"`
	TestCollection  string `json:"test_collection"`
	Status          string `json:"status"`
	TestResult      string `json:"test_result,omitempty"`
}

// BillEntry is the visit bill attached to a registration.
type BillEntry struct {
	ID            int64   `json:"id"`
	Total         float64 `json:"ptotal"`
	AmtReceivable float64 `json:"pamt_receivable"`
	AmtReceived   float64 `json:"pamt_received_total"`
	AmtDue        float64 `json:"pamt_due"`
	PaymentMode   string  `json:"pamt_mode"`
	BillStatus    string  `json:"billstatus"`
	BillDate      string  `json:"bill_date"`
}

// SchemeEntry is a PPP scheme record linked to the patient.
type SchemeEntry struct {
	ID      int64  `json:"id"`
	Scheme  string `json:"pscheme"`
	Barcode string `json:"pbarcode,omitempty"`
	OrderNo string `json:"popno,omitempty"`
	TRFNo   string `json:"trfno,omitempty"`
}

// IdentityEntry is an ABHA linkage record.
type IdentityEntry struct {
	ID     int64  `json:"id"`
	Aadhar string `json:"aadhar,omitempty"`
	Mobile string `json:"mobile,omitempty"`
	ABHA   string `json:"abha,omitempty"`
}

// PatientDetail is a patient with every child collection loaded.
type PatientDetail struct {
	Patient
	Tests      []TestEntry     `json:"tests"`
	Bills      []BillEntry     `json:"bills"`
	Schemes    []SchemeEntry   `json:"ppp_modes"`
	Identities []IdentityEntry `json:"abha_records"`
}

// UpdatePatientRequest carries the updatable demographic fields. Only
// non-nil fields are written.
type UpdatePatientRequest struct {
	PMobile   *string `json:"p_mobile,omitempty"`
	PTitle    *string `json:"p_title,omitempty"`
	PName     *string `json:"p_name,omitempty"`
	PLName    *string `json:"p_lname,omitempty"`
	PGender   *string `json:"p_gender,omitempty"`
	PAge      *int    `json:"p_age,omitempty"`
	PBlood    *string `json:"p_blood,omitempty"`
	PEmail    *string `json:"p_email,omitempty"`
	PWhatsapp *string `json:"p_whtsap,omitempty"`
	Street    *string `json:"street,omitempty"`
	Landmark  *string `json:"landmark,omitempty"`
	City      *string `json:"city,omitempty"`
	State     *string `json:"state,omitempty"`
	PPincode  *string `json:"p_pincode,omitempty"`
	EmailOpt  *bool   `json:"p_email_alart,omitempty"`
}

type PaginatedPatientsResponse struct {
	Success    bool            `json:"success"`
	Patients   []PatientDetail `json:"patients"`
	Pagination pagination.Meta `json:"pagination"`
}
