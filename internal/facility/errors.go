package facility

import "errors"

var (
	ErrHospitalNotFound = errors.New("hospital not found")
	ErrNodalNotFound    = errors.New("nodal centre not found")
)
