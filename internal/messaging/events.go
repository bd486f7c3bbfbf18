package messaging

import (
	"time"

	"github.com/google/uuid"
)

// Event routing keys as constants
const (
	// Registration events consumed by the email worker
	EventRegistrationEmail = "registration.email"

	// Test workflow events
	EventTestStatusChanged = "test.status_changed"
	EventReportEntered     = "report.entered"

	// Billing events
	EventBillOverdue = "bill.overdue"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// RegistrationEmailJob is the fire-and-forget job handed to the external
// email worker after a registration commits. Delivery is best-effort; a
// failed send is retried by the worker, never by the registration.
type RegistrationEmailJob struct {
	BaseEvent
	Data RegistrationEmailData `json:"data"`
}

type RegistrationEmailData struct {
	To               string  `json:"to"`
	PatientName      string  `json:"patient_name"`
	UHID             string  `json:"uhid"`
	RegType          string  `json:"reg_type"` // BILL_TEST, PPP_TEST or GENERAL
	TestNames        string  `json:"test_names,omitempty"`
	BillAmount       float64 `json:"bill_amount,omitempty"`
	FacilityName     string  `json:"facility_name,omitempty"`
	RegistrationDate string  `json:"registration_date,omitempty"`
}

// TestStatusChangedEvent reports a bulk workflow transition of patient tests.
type TestStatusChangedEvent struct {
	BaseEvent
	Data TestStatusChangedData `json:"data"`
}

type TestStatusChangedData struct {
	PatientIDs []int64   `json:"patient_ids"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	ChangedAt  time.Time `json:"changed_at"`
}

// ReportEnteredEvent reports that a result was recorded for a patient test.
type ReportEnteredEvent struct {
	BaseEvent
	Data ReportEnteredData `json:"data"`
}

type ReportEnteredData struct {
	PatientTestID int64     `json:"patient_test_id"`
	Status        string    `json:"status"`
	EnteredAt     time.Time `json:"entered_at"`
}

// BillOverdueEvent reports bills flipped to Due by the maintenance job.
type BillOverdueEvent struct {
	BaseEvent
	Data BillOverdueData `json:"data"`
}

type BillOverdueData struct {
	BillCount int       `json:"bill_count"`
	MarkedAt  time.Time `json:"marked_at"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     uuid.New().String(),
		Timestamp:   time.Now().UTC(),
		ServiceName: "lims-service",
	}
}
