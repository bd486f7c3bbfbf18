package registration

// UserContext carries the facility affiliation of the authenticated user.
// Both identifiers must resolve to existing records before any write happens.
type UserContext struct {
	HospitalID int64
	NodalID    int64
}

// RegistrationRequest is the inbound payload for a patient registration.
// The four arrays are optional; each one present triggers the matching
// conditional write inside the registration transaction.
type RegistrationRequest struct {
	UName       string `json:"u_name"`
	Country     string `json:"country"`
	RefSource   string `json:"ref_source"`
	RefDetails  string `json:"ref_details"`
	PMobile     string `json:"p_mobile"`
	PRegDate    string `json:"p_regdate"` // YYYY-MM-DD, defaults to today when empty
	PTitle      string `json:"p_title"`
	PName       string `json:"p_name"`
	PLName      string `json:"p_lname"`
	PGender     string `json:"p_gender"`
	PAge        int    `json:"p_age"`
	PYears      int    `json:"p_years"`
	PMonth      int    `json:"p_month"`
	PDays       int    `json:"p_days"`
	PBlood      string `json:"p_blood"`
	PIDType     string `json:"p_id"`
	PIDNum      string `json:"p_idnum"`
	PEmail      string `json:"p_email"`
	PWhatsapp   string `json:"p_whtsap"`
	PGuardian   string `json:"p_guardian"`
	PGuardMob   string `json:"p_guardianmob"`
	PGuardAddr  string `json:"p_guardadd"`
	PRelation   string `json:"p_rltn"`
	Street      string `json:"street"`
	Landmark    string `json:"landmark"`
	City        string `json:"city"`
	State       string `json:"state"`
	PPincode    string `json:"p_pincode"`
	PImage      string `json:"p_image"`
	WhatsappOpt bool   `json:"p_whtsap_alart"`
	EmailOpt    bool   `json:"p_email_alart"`
	RegBy       string `json:"reg_by"`

	InvestigationIDs []int64              `json:"investigation_ids"`
	Bill             []BillInput          `json:"opbill"` // 0 or 1 entries
	PaymentSchemes   []PaymentSchemeInput `json:"pptest"`
	Identities       []IdentityInput      `json:"abha"`
}

// BillInput carries the billing totals for one registration visit.
// PaymentDetails is mandatory (non-empty) when PaymentMode is "Multiple".
type BillInput struct {
	Total          float64         `json:"ptotal"`
	DiscPercentage float64         `json:"pdisc_percentage"`
	DiscAmount     float64         `json:"pdisc_amount"`
	AmtReceivable  float64         `json:"pamt_receivable"`
	AmtReceived    float64         `json:"pamt_received_total"`
	AmtDue         float64         `json:"pamt_due"`
	PaymentMode    string          `json:"pamt_mode"` // "Single" or "Multiple"
	Note           string          `json:"pnote"`
	GSTIN          string          `json:"gstin"`
	BillStatus     string          `json:"billstatus"`
	BillDate       string          `json:"bill_date"`
	ReviewStatus   string          `json:"review_status"`
	ReviewDays     int             `json:"review_days"`
	PaymentDetails []PaymentDetail `json:"paymentDetails"`
	InvDetails     []BillLineItem  `json:"invDetails"`
}

// PaymentDetail is one entry of a multiple-mode payment breakdown.
type PaymentDetail struct {
	Method string  `json:"payment_method"` // Cash, Credit, DD, Cheque, UPI, NEFT
	Amount float64 `json:"payment_amount"`
}

// BillLineItem is a free-form bill line referencing an ordered investigation.
type BillLineItem struct {
	InvestigationID int64   `json:"investigation_id"`
	TestName        string  `json:"testname"`
	Price           float64 `json:"price"`
}

// PaymentSchemeInput is a PPP (public-private-partnership) scheme record.
// Barcode, order number and TRF number are globally unique when non-empty.
type PaymentSchemeInput struct {
	Scheme     string `json:"pscheme"`
	RefDoctor  string `json:"refdoc"`
	Remark     string `json:"remark"`
	AttachFile string `json:"attatchfile"`
	Barcode    string `json:"pbarcode"`
	POP        string `json:"pop"`
	OrderNo    string `json:"popno"`
	TRFNo      string `json:"trfno"`
}

// IdentityInput is an ABHA / national health-ID linkage record.
// Aadhar and ABHA numbers are globally unique when non-empty.
type IdentityInput struct {
	IsAadhar bool   `json:"isaadhar"`
	IsMobile bool   `json:"ismobile"`
	Aadhar   string `json:"aadhar"`
	Mobile   string `json:"mobile"`
	ABHA     string `json:"abha"`
}

// Result is what a committed registration hands back to the service layer.
// TestNames and FacilityName are resolved inside the transaction so the
// notification job does not need a second round-trip.
type Result struct {
	PatientID    int64
	UHID         string
	TestNames    []string
	FacilityName string
}

// Registration type labels used to classify the post-commit notification.
const (
	RegTypeBillTest = "BILL_TEST"
	RegTypePPPTest  = "PPP_TEST"
	RegTypeGeneral  = "GENERAL"
)
