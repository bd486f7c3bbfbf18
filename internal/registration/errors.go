package registration

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrContextInvalid            = errors.New("invalid hospital or nodal centre associated with the user")
	ErrDuplicateInvestigationIDs = errors.New("duplicate investigation IDs found in the request")
	ErrInvestigationNotFound     = errors.New("one or more investigation IDs are invalid or not found")
	ErrPaymentDetailsMissing     = errors.New("multiple payment mode requires payment details")
)

// FieldConflict names one stored value that collided with the request.
type FieldConflict struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// DuplicateError reports that a barcode, order number, TRF number, Aadhar
// or ABHA number in the request already exists. It carries every conflict
// found so the caller can correct the payload in one pass.
type DuplicateError struct {
	Conflicts []FieldConflict
}

func (e *DuplicateError) Error() string {
	if len(e.Conflicts) == 0 {
		return "duplicate entry detected"
	}
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("%s=%s", c.Field, c.Value))
	}
	return "duplicate entry detected: " + strings.Join(parts, ", ")
}

// IsCallerError reports whether err is a validation or duplicate failure
// the caller can fix, as opposed to a storage failure on our side.
func IsCallerError(err error) bool {
	var dup *DuplicateError
	if errors.As(err, &dup) {
		return true
	}
	return errors.Is(err, ErrContextInvalid) ||
		errors.Is(err, ErrDuplicateInvestigationIDs) ||
		errors.Is(err, ErrInvestigationNotFound) ||
		errors.Is(err, ErrPaymentDetailsMissing)
}
