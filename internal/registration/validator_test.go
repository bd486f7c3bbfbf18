package registration

import (
	"errors"
	"testing"
)

// TestValidateRequest_NoTestsNoBill tests a bare demographic registration
func TestValidateRequest_NoTestsNoBill(t *testing.T) {
	req := &RegistrationRequest{PName: "Asha"}

	if err := ValidateRequest(req); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
}

// TestValidateRequest_DuplicateInvestigationIDs tests the in-request duplicate check
func TestValidateRequest_DuplicateInvestigationIDs(t *testing.T) {
	req := &RegistrationRequest{
		PName:            "Asha",
		InvestigationIDs: []int64{11, 24, 11},
	}

	err := ValidateRequest(req)

	if !errors.Is(err, ErrDuplicateInvestigationIDs) {
		t.Errorf("Expected ErrDuplicateInvestigationIDs, got: %v", err)
	}
}

// TestValidateRequest_UniqueInvestigationIDs tests that distinct IDs pass
func TestValidateRequest_UniqueInvestigationIDs(t *testing.T) {
	req := &RegistrationRequest{
		PName:            "Asha",
		InvestigationIDs: []int64{11, 24, 37},
	}

	if err := ValidateRequest(req); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
}

// TestValidateRequest_MultipleModeWithoutDetails tests the payment breakdown rule
func TestValidateRequest_MultipleModeWithoutDetails(t *testing.T) {
	req := &RegistrationRequest{
		PName: "Asha",
		Bill: []BillInput{
			{Total: 1200, PaymentMode: "Multiple"},
		},
	}

	err := ValidateRequest(req)

	if !errors.Is(err, ErrPaymentDetailsMissing) {
		t.Errorf("Expected ErrPaymentDetailsMissing, got: %v", err)
	}
}

// TestValidateRequest_MultipleModeWithDetails tests a valid multiple-mode bill
func TestValidateRequest_MultipleModeWithDetails(t *testing.T) {
	req := &RegistrationRequest{
		PName: "Asha",
		Bill: []BillInput{
			{
				Total:       1200,
				PaymentMode: "Multiple",
				PaymentDetails: []PaymentDetail{
					{Method: "Cash", Amount: 700},
					{Method: "UPI", Amount: 500},
				},
			},
		},
	}

	if err := ValidateRequest(req); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
}

// TestValidateRequest_SingleModeWithoutDetails tests that single mode needs no breakdown
func TestValidateRequest_SingleModeWithoutDetails(t *testing.T) {
	req := &RegistrationRequest{
		PName: "Asha",
		Bill: []BillInput{
			{Total: 500, PaymentMode: "Single"},
		},
	}

	if err := ValidateRequest(req); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
}

// TestIsCallerError tests the caller-vs-storage error split
func TestIsCallerError(t *testing.T) {
	callerErrs := []error{
		ErrContextInvalid,
		ErrDuplicateInvestigationIDs,
		ErrInvestigationNotFound,
		ErrPaymentDetailsMissing,
		&DuplicateError{Conflicts: []FieldConflict{{Field: "pbarcode", Value: "BC-1"}}},
	}
	for _, err := range callerErrs {
		if !IsCallerError(err) {
			t.Errorf("Expected IsCallerError(%v) to be true", err)
		}
	}

	if IsCallerError(errors.New("connection refused")) {
		t.Error("Expected storage error to not be a caller error")
	}
}

// TestDuplicateError_Message tests that every conflict shows up in the message
func TestDuplicateError_Message(t *testing.T) {
	dup := &DuplicateError{
		Conflicts: []FieldConflict{
			{Field: "aadhar", Value: "123412341234"},
			{Field: "trfno", Value: "TRF-9"},
		},
	}

	msg := dup.Error()
	if msg != "duplicate entry detected: aadhar=123412341234, trfno=TRF-9" {
		t.Errorf("Unexpected message: %s", msg)
	}
}
