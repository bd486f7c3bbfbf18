package catalog

import (
	"time"

	"github.com/asr-diagnostics/lims-service/internal/pagination"
)

// Investigation is one orderable catalog entry. TestCollection marks whether
// the sample is collected at the registration centre ("Yes") or has to be
// routed to a nodal centre ("No").
type Investigation struct {
	ID             int64     `json:"id"`
	TestCode       string    `json:"test_code"`
	TestName       string    `json:"testname"`
	Department     string    `json:"department"`
	SampleType     string    `json:"sample_type,omitempty"`
	Price          float64   `json:"price"`
	TestCollection string    `json:"test_collection"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreateInvestigationRequest struct {
	TestCode       string  `json:"test_code"`
	TestName       string  `json:"testname"`
	Department     string  `json:"department"`
	SampleType     string  `json:"sample_type"`
	Price          float64 `json:"price"`
	TestCollection string  `json:"test_collection"`
}

type PaginatedInvestigationsResponse struct {
	Success        bool            `json:"success"`
	Investigations []Investigation `json:"investigations"`
	Pagination     pagination.Meta `json:"pagination"`
}
