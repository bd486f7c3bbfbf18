package testorder

// Workflow states of a patient test, from registration at the centre
// through processing to delivery.
const (
	StatusCenter     = "center"
	StatusNode       = "node"
	StatusCollected  = "collected"
	StatusTechnician = "technician"
	StatusDoctor     = "doctor"
	StatusPending    = "pending"
	StatusAccept     = "accept"
	StatusRedo       = "redo"
	StatusReject     = "reject"
	StatusRecollect  = "recollect"
	StatusDocPending = "docpending"
	StatusInProgress = "inprogress"
	StatusCompleted  = "completed"
	StatusDelivered  = "delivered"
)

// validStatuses is the closed set a transition may target.
var validStatuses = map[string]bool{
	StatusCenter:     true,
	StatusNode:       true,
	StatusCollected:  true,
	StatusTechnician: true,
	StatusDoctor:     true,
	StatusPending:    true,
	StatusAccept:     true,
	StatusRedo:       true,
	StatusReject:     true,
	StatusRecollect:  true,
	StatusDocPending: true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusDelivered:  true,
}

// CenterEntry is one row of the centre worklist: a test still waiting at
// the registration centre.
type CenterEntry struct {
	ID              int64  `json:"id"`
	PatientID       int64  `json:"patient_id"`
	UHID            string `json:"uhid"`
	PatientName     string `json:"p_name"`
	InvestigationID int64  `json:"investigation_id"`
	TestCode        string `json:"test_code"`
	TestName        string `json:"testname"`
	TestCollection  string `json:"test_collection"`
	Status          string `json:"status"`
}

// SendToNodeRequest names the patients whose outsourced tests move from
// the centre to the nodal queue.
type SendToNodeRequest struct {
	PatientIDs []int64 `json:"patient_ids"`
}

// UpdateStatusRequest moves a set of patient tests to a new workflow state.
// Reason is mandatory for reject transitions.
type UpdateStatusRequest struct {
	TestIDs []int64 `json:"test_ids"`
	Status  string  `json:"status"`
	Reason  string  `json:"reason"`
}

// EnterResultRequest records the outcome of a single patient test.
type EnterResultRequest struct {
	TestResult string `json:"test_result"`
	TestImage  string `json:"test_image"`
}
