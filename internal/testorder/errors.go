package testorder

import "errors"

var (
	ErrNoPatientsSelected = errors.New("Select Patients to send")
	ErrNoTestsSelected    = errors.New("no tests selected")
	ErrInvalidStatus      = errors.New("invalid test status")
	ErrReasonRequired     = errors.New("a reason is required when rejecting a test")
	ErrTestNotFound       = errors.New("patient test not found")
	ErrResultRequired     = errors.New("test result is required")
)
